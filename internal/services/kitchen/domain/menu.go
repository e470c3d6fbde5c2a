package domain

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/id"
)

// Category groups menu items on the public menu.
type Category string

const (
	CategoryStarter Category = "starter"
	CategoryMain    Category = "main"
	CategorySide    Category = "side"
	CategoryDessert Category = "dessert"
	CategoryDrink   Category = "drink"
)

// Categories lists menu categories in display order.
var Categories = []Category{CategoryStarter, CategoryMain, CategorySide, CategoryDessert, CategoryDrink}

// ParseCategory normalizes a category token.
func ParseCategory(raw string) (Category, bool) {
	category := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Categories {
		if category == known {
			return category, true
		}
	}
	return "", false
}

// MenuItem is one dish or drink the kitchen sells.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Category    Category
	PricePence  int64
	ImageURL    string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WeeklyMenuOption offers a menu item to subscribers on one weekday.
type WeeklyMenuOption struct {
	ID         string
	MenuItemID string
	Day        Weekday
	Available  bool
}

// WeeklyMenuEntry pairs an option with its menu item.
type WeeklyMenuEntry struct {
	Option WeeklyMenuOption
	Item   MenuItem
}

// WeeklyMenuDay is the subscription menu for one weekday.
type WeeklyMenuDay struct {
	Day     Weekday
	Entries []WeeklyMenuEntry
}

// MenuItemInput carries editable menu item fields.
type MenuItemInput struct {
	Name        string
	Description string
	Category    string
	PricePence  int64
	ImageURL    string
	Available   bool
}

// MenuStore persists menu items and the weekly subscription menu.
type MenuStore interface {
	PutMenuItem(ctx context.Context, item MenuItem) error
	GetMenuItem(ctx context.Context, itemID string) (MenuItem, error)
	ListMenuItems(ctx context.Context, availableOnly bool) ([]MenuItem, error)
	PutWeeklyOption(ctx context.Context, option WeeklyMenuOption) (WeeklyMenuOption, error)
	GetWeeklyOption(ctx context.Context, itemID string, day Weekday) (WeeklyMenuOption, error)
	DeleteWeeklyOption(ctx context.Context, itemID string, day Weekday) error
	ListWeeklyOptions(ctx context.Context) ([]WeeklyMenuOption, error)
	ListDayMenu(ctx context.Context, day Weekday) ([]MenuItem, error)
}

// Catalog manages menu items and the weekly subscription menu.
type Catalog struct {
	store MenuStore
	clock func() time.Time
	newID func() (string, error)
}

// NewCatalog constructs menu use-cases.
func NewCatalog(store MenuStore, clock func() time.Time, newID func() (string, error)) *Catalog {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Catalog{store: store, clock: clock, newID: newID}
}

// CreateMenuItem validates and stores a new menu item.
func (c *Catalog) CreateMenuItem(ctx context.Context, input MenuItemInput) (MenuItem, error) {
	item, err := normalizeMenuItem(input)
	if err != nil {
		return MenuItem{}, err
	}
	item.ID, err = c.newID()
	if err != nil {
		return MenuItem{}, err
	}
	now := c.clock().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := c.store.PutMenuItem(ctx, item); err != nil {
		return MenuItem{}, err
	}
	return item, nil
}

// UpdateMenuItem replaces the editable fields of an existing item.
func (c *Catalog) UpdateMenuItem(ctx context.Context, itemID string, input MenuItemInput) (MenuItem, error) {
	existing, err := c.store.GetMenuItem(ctx, strings.TrimSpace(itemID))
	if err != nil {
		return MenuItem{}, err
	}
	item, err := normalizeMenuItem(input)
	if err != nil {
		return MenuItem{}, err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = c.clock().UTC()
	if err := c.store.PutMenuItem(ctx, item); err != nil {
		return MenuItem{}, err
	}
	return item, nil
}

// GetMenuItem loads one menu item.
func (c *Catalog) GetMenuItem(ctx context.Context, itemID string) (MenuItem, error) {
	return c.store.GetMenuItem(ctx, strings.TrimSpace(itemID))
}

// ListMenuItems lists menu items by category then name.
func (c *Catalog) ListMenuItems(ctx context.Context, availableOnly bool) ([]MenuItem, error) {
	return c.store.ListMenuItems(ctx, availableOnly)
}

// SetWeeklyOption offers itemID on day, creating or updating the option.
func (c *Catalog) SetWeeklyOption(ctx context.Context, itemID string, day string, available bool) (WeeklyMenuOption, error) {
	weekday, ok := ParseWeekday(day)
	if !ok {
		return WeeklyMenuOption{}, apperrors.InvalidArgument("day", "day must be monday to friday")
	}
	item, err := c.store.GetMenuItem(ctx, strings.TrimSpace(itemID))
	if err != nil {
		return WeeklyMenuOption{}, err
	}
	optionID, err := c.newID()
	if err != nil {
		return WeeklyMenuOption{}, err
	}
	return c.store.PutWeeklyOption(ctx, WeeklyMenuOption{
		ID:         optionID,
		MenuItemID: item.ID,
		Day:        weekday,
		Available:  available,
	})
}

// RemoveWeeklyOption takes itemID off the menu for day.
func (c *Catalog) RemoveWeeklyOption(ctx context.Context, itemID string, day string) error {
	weekday, ok := ParseWeekday(day)
	if !ok {
		return apperrors.InvalidArgument("day", "day must be monday to friday")
	}
	return c.store.DeleteWeeklyOption(ctx, strings.TrimSpace(itemID), weekday)
}

// WeeklyMenu returns the subscription menu grouped monday to friday.
func (c *Catalog) WeeklyMenu(ctx context.Context) ([]WeeklyMenuDay, error) {
	options, err := c.store.ListWeeklyOptions(ctx)
	if err != nil {
		return nil, err
	}
	items, err := c.store.ListMenuItems(ctx, false)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	days := make([]WeeklyMenuDay, len(MenuDays))
	index := make(map[Weekday]int, len(MenuDays))
	for i, day := range MenuDays {
		days[i] = WeeklyMenuDay{Day: day}
		index[day] = i
	}
	for _, option := range options {
		i, ok := index[option.Day]
		if !ok {
			continue
		}
		item, ok := byID[option.MenuItemID]
		if !ok {
			continue
		}
		days[i].Entries = append(days[i].Entries, WeeklyMenuEntry{Option: option, Item: item})
	}
	return days, nil
}

func normalizeMenuItem(input MenuItemInput) (MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return MenuItem{}, apperrors.InvalidArgument("name", "name is required")
	}
	category, ok := ParseCategory(input.Category)
	if !ok {
		return MenuItem{}, apperrors.InvalidArgument("category", "unknown category")
	}
	if input.PricePence <= 0 {
		return MenuItem{}, apperrors.InvalidArgument("price", "price must be greater than zero")
	}
	return MenuItem{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		PricePence:  input.PricePence,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Available:   input.Available,
	}, nil
}
