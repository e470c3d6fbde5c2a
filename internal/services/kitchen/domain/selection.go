package domain

import (
	"context"
	"strings"
	"time"

	"github.com/wsaeed77/spice-loop/internal/platform/id"
)

// SelectionCutoff is the restaurant-local time at which the daily window closes.
var SelectionCutoff = TimeOfDay{Hour: 23, Minute: 59}

const defaultUpcomingLimit = 7

// SelectionStatus tracks whether the kitchen has locked in a choice.
type SelectionStatus string

const (
	SelectionPending   SelectionStatus = "pending"
	SelectionConfirmed SelectionStatus = "confirmed"
)

// DailySelection is a subscriber's meal choice for one day.
type DailySelection struct {
	ID         string
	UserID     string
	MenuItemID string
	Date       Date
	Status     SelectionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WindowState describes the selection window at one instant.
type WindowState struct {
	IsOpen     bool
	TargetDate Date
	ClosesAt   time.Time
}

// SelectionStore persists daily selections. UpsertSelection writes on the
// (user, date) key in one statement and returns the stored row.
type SelectionStore interface {
	UpsertSelection(ctx context.Context, selection DailySelection) (DailySelection, error)
	GetSelection(ctx context.Context, userID string, date Date) (DailySelection, error)
	ListSelections(ctx context.Context, userID string, from Date, limit int) ([]DailySelection, error)
	ConfirmSelections(ctx context.Context, date Date, now time.Time) (int, error)
}

// UserReader loads accounts by id.
type UserReader interface {
	GetUser(ctx context.Context, userID string) (User, error)
}

// SelectionMenu reads the parts of the menu a selection depends on.
type SelectionMenu interface {
	GetMenuItem(ctx context.Context, itemID string) (MenuItem, error)
	GetWeeklyOption(ctx context.Context, itemID string, day Weekday) (WeeklyMenuOption, error)
	ListDayMenu(ctx context.Context, day Weekday) ([]MenuItem, error)
}

// SelectionWindow decides when subscribers may choose tomorrow's meal and
// records one choice per user per day.
type SelectionWindow struct {
	calendar   Calendar
	users      UserReader
	menu       SelectionMenu
	selections SelectionStore
	newID      func() (string, error)
}

// NewSelectionWindow constructs selection use-cases.
func NewSelectionWindow(calendar Calendar, users UserReader, menu SelectionMenu, selections SelectionStore, newID func() (string, error)) *SelectionWindow {
	if newID == nil {
		newID = id.NewID
	}
	return &SelectionWindow{
		calendar:   calendar,
		users:      users,
		menu:       menu,
		selections: selections,
		newID:      newID,
	}
}

// EvaluateWindow reports whether selections are accepted at now. The window
// is open while the local time of day is before the cutoff.
func (w *SelectionWindow) EvaluateWindow(now time.Time) WindowState {
	today := w.calendar.Today(now)
	return WindowState{
		IsOpen:     w.calendar.ClockOf(now).Before(SelectionCutoff),
		TargetDate: today.AddDays(1),
		ClosesAt:   w.calendar.At(today, SelectionCutoff),
	}
}

// SelectItem records userID's choice of menuItemID for selectionDate. The
// checks run in order and the first failure is returned: the date must be
// tomorrow, the window must be open, the user and item must exist, and the
// item must be offered on that weekday. A repeat choice for the same day
// replaces the item and resets the status to pending.
func (w *SelectionWindow) SelectItem(ctx context.Context, userID string, menuItemID string, selectionDate Date, now time.Time) (DailySelection, error) {
	if selectionDate != w.calendar.Tomorrow(now) {
		return DailySelection{}, ErrInvalidDate
	}
	if !w.EvaluateWindow(now).IsOpen {
		return DailySelection{}, ErrWindowClosed
	}

	user, err := w.users.GetUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return DailySelection{}, err
	}
	item, err := w.menu.GetMenuItem(ctx, strings.TrimSpace(menuItemID))
	if err != nil {
		return DailySelection{}, err
	}

	day, ok := WeekdayOf(selectionDate)
	if !ok {
		return DailySelection{}, ErrItemUnavailableForDay
	}
	option, err := w.menu.GetWeeklyOption(ctx, item.ID, day)
	if err != nil {
		if isNotFound(err) {
			return DailySelection{}, ErrItemUnavailableForDay
		}
		return DailySelection{}, err
	}
	if !option.Available {
		return DailySelection{}, ErrItemUnavailableForDay
	}

	selectionID, err := w.newID()
	if err != nil {
		return DailySelection{}, err
	}
	stamp := now.UTC()
	return w.selections.UpsertSelection(ctx, DailySelection{
		ID:         selectionID,
		UserID:     user.ID,
		MenuItemID: item.ID,
		Date:       selectionDate,
		Status:     SelectionPending,
		CreatedAt:  stamp,
		UpdatedAt:  stamp,
	})
}

// SelectionOptions lists the items a subscriber may choose for date.
func (w *SelectionWindow) SelectionOptions(ctx context.Context, date Date) ([]MenuItem, error) {
	day, ok := WeekdayOf(date)
	if !ok {
		return nil, nil
	}
	return w.menu.ListDayMenu(ctx, day)
}

// SelectionFor loads userID's choice for date.
func (w *SelectionWindow) SelectionFor(ctx context.Context, userID string, date Date) (DailySelection, error) {
	return w.selections.GetSelection(ctx, strings.TrimSpace(userID), date)
}

// UpcomingSelections lists userID's choices from the given day onward.
func (w *SelectionWindow) UpcomingSelections(ctx context.Context, userID string, from Date, limit int) ([]DailySelection, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	return w.selections.ListSelections(ctx, strings.TrimSpace(userID), from, limit)
}

// ConfirmSelections locks every pending choice for date and returns how many changed.
func (w *SelectionWindow) ConfirmSelections(ctx context.Context, date Date, now time.Time) (int, error) {
	return w.selections.ConfirmSelections(ctx, date, now.UTC())
}
