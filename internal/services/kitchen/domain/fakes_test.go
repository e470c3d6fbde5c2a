package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

type fakeStore struct {
	mu            sync.Mutex
	users         map[string]User
	items         map[string]MenuItem
	options       map[string]WeeklyMenuOption
	selections    map[string]DailySelection
	orders        map[string]Order
	riders        map[string]Rider
	subscriptions map[string]Subscription
	requests      map[string]ServiceRequest
	settings      *Settings

	listOrdersErr   error
	transitionErr   map[string]error
	transitionCalls int
	lastQuery       OrderQuery
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         map[string]User{},
		items:         map[string]MenuItem{},
		options:       map[string]WeeklyMenuOption{},
		selections:    map[string]DailySelection{},
		orders:        map[string]Order{},
		riders:        map[string]Rider{},
		subscriptions: map[string]Subscription{},
		requests:      map[string]ServiceRequest{},
		transitionErr: map[string]error{},
	}
}

func optionKey(itemID string, day Weekday) string { return itemID + "/" + string(day) }

func selectionKey(userID string, date Date) string { return userID + "/" + date.String() }

func (s *fakeStore) PutUser(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return ErrConflict
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeStore) GetUser(_ context.Context, userID string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *fakeStore) SetUserRole(_ context.Context, userID string, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.Role = role
	s.users[userID] = user
	return nil
}

func (s *fakeStore) PutMenuItem(_ context.Context, item MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *fakeStore) GetMenuItem(_ context.Context, itemID string) (MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	if !ok {
		return MenuItem{}, ErrNotFound
	}
	return item, nil
}

func (s *fakeStore) ListMenuItems(_ context.Context, availableOnly bool) ([]MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []MenuItem
	for _, item := range s.items {
		if availableOnly && !item.Available {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *fakeStore) PutWeeklyOption(_ context.Context, option WeeklyMenuOption) (WeeklyMenuOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := optionKey(option.MenuItemID, option.Day)
	if existing, ok := s.options[key]; ok {
		option.ID = existing.ID
	}
	s.options[key] = option
	return option, nil
}

func (s *fakeStore) GetWeeklyOption(_ context.Context, itemID string, day Weekday) (WeeklyMenuOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	option, ok := s.options[optionKey(itemID, day)]
	if !ok {
		return WeeklyMenuOption{}, ErrNotFound
	}
	return option, nil
}

func (s *fakeStore) DeleteWeeklyOption(_ context.Context, itemID string, day Weekday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := optionKey(itemID, day)
	if _, ok := s.options[key]; !ok {
		return ErrNotFound
	}
	delete(s.options, key)
	return nil
}

func (s *fakeStore) ListWeeklyOptions(_ context.Context) ([]WeeklyMenuOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var options []WeeklyMenuOption
	for _, option := range s.options {
		options = append(options, option)
	}
	sort.Slice(options, func(i, j int) bool { return options[i].MenuItemID < options[j].MenuItemID })
	return options, nil
}

func (s *fakeStore) ListDayMenu(_ context.Context, day Weekday) ([]MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []MenuItem
	for _, option := range s.options {
		if option.Day == day && option.Available {
			if item, ok := s.items[option.MenuItemID]; ok {
				items = append(items, item)
			}
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *fakeStore) UpsertSelection(_ context.Context, selection DailySelection) (DailySelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := selectionKey(selection.UserID, selection.Date)
	if existing, ok := s.selections[key]; ok {
		existing.MenuItemID = selection.MenuItemID
		existing.Status = SelectionPending
		existing.UpdatedAt = selection.UpdatedAt
		s.selections[key] = existing
		return existing, nil
	}
	s.selections[key] = selection
	return selection, nil
}

func (s *fakeStore) GetSelection(_ context.Context, userID string, date Date) (DailySelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	selection, ok := s.selections[selectionKey(userID, date)]
	if !ok {
		return DailySelection{}, ErrNotFound
	}
	return selection, nil
}

func (s *fakeStore) ListSelections(_ context.Context, userID string, from Date, limit int) ([]DailySelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var selections []DailySelection
	for _, selection := range s.selections {
		if selection.UserID == userID && !selection.Date.Before(from) {
			selections = append(selections, selection)
		}
	}
	sort.Slice(selections, func(i, j int) bool { return selections[i].Date.Before(selections[j].Date) })
	if len(selections) > limit {
		selections = selections[:limit]
	}
	return selections, nil
}

func (s *fakeStore) ConfirmSelections(_ context.Context, date Date, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for key, selection := range s.selections {
		if selection.Date == date && selection.Status == SelectionPending {
			selection.Status = SelectionConfirmed
			selection.UpdatedAt = now
			s.selections[key] = selection
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) PutOrder(_ context.Context, order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
	return nil
}

func (s *fakeStore) GetOrder(_ context.Context, orderID string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	return order, nil
}

func (s *fakeStore) ListOrders(_ context.Context, query OrderQuery) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = query
	var orders []Order
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *fakeStore) ListScheduledPendingOrders(_ context.Context) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listOrdersErr != nil {
		return nil, s.listOrdersErr
	}
	var orders []Order
	for _, order := range s.orders {
		if order.Status == OrderPending && order.DeliveryDate != nil && order.DeliveryTime != nil {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (s *fakeStore) TransitionOrderStatus(_ context.Context, orderID string, from OrderStatus, to OrderStatus, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transitionCalls++
	if err := s.transitionErr[orderID]; err != nil {
		return false, err
	}
	order, ok := s.orders[orderID]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	order.UpdatedAt = now
	s.orders[orderID] = order
	return true, nil
}

func (s *fakeStore) SetOrderRider(_ context.Context, orderID string, riderID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.RiderID = riderID
	order.UpdatedAt = now
	s.orders[orderID] = order
	return nil
}

func (s *fakeStore) PutRider(_ context.Context, rider Rider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.riders[rider.ID] = rider
	return nil
}

func (s *fakeStore) GetRider(_ context.Context, riderID string) (Rider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rider, ok := s.riders[riderID]
	if !ok {
		return Rider{}, ErrNotFound
	}
	return rider, nil
}

func (s *fakeStore) ListRiders(_ context.Context, activeOnly bool) ([]Rider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var riders []Rider
	for _, rider := range s.riders {
		if activeOnly && !rider.Active {
			continue
		}
		riders = append(riders, rider)
	}
	return riders, nil
}

func (s *fakeStore) SetRiderActive(_ context.Context, riderID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rider, ok := s.riders[riderID]
	if !ok {
		return ErrNotFound
	}
	rider.Active = active
	s.riders[riderID] = rider
	return nil
}

func (s *fakeStore) GetSettings(_ context.Context) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return DefaultSettings(), nil
	}
	return *s.settings, nil
}

func (s *fakeStore) PutSettings(_ context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	return nil
}

func (s *fakeStore) PutSubscription(_ context.Context, subscription Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subscriptions {
		if existing.UserID == subscription.UserID && existing.Status == SubscriptionActive {
			return ErrConflict
		}
	}
	s.subscriptions[subscription.ID] = subscription
	return nil
}

func (s *fakeStore) GetActiveSubscription(_ context.Context, userID string) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, subscription := range s.subscriptions {
		if subscription.UserID == userID && subscription.Status == SubscriptionActive {
			return subscription, nil
		}
	}
	return Subscription{}, ErrNotFound
}

func (s *fakeStore) CancelActiveSubscription(_ context.Context, userID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, subscription := range s.subscriptions {
		if subscription.UserID == userID && subscription.Status == SubscriptionActive {
			subscription.Status = SubscriptionCancelled
			subscription.UpdatedAt = now
			s.subscriptions[key] = subscription
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) PutRequest(_ context.Context, request ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request
	return nil
}

func (s *fakeStore) GetRequest(_ context.Context, requestID string) (ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[requestID]
	if !ok {
		return ServiceRequest{}, ErrNotFound
	}
	return request, nil
}

func (s *fakeStore) ListRequests(_ context.Context, kind RequestKind) ([]ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var requests []ServiceRequest
	for _, request := range s.requests {
		if kind == "" || request.Kind == kind {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

func (s *fakeStore) SetRequestStatus(_ context.Context, requestID string, status RequestStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[requestID]
	if !ok {
		return ErrNotFound
	}
	request.Status = status
	request.UpdatedAt = now
	s.requests[requestID] = request
	return nil
}

type fakeLocker struct {
	mu       sync.Mutex
	holder   string
	acquired int
	released int
	err      error
}

func (l *fakeLocker) Acquire(_ context.Context, _ string, owner string, _ time.Duration, _ time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if l.holder != "" && l.holder != owner {
		return false, nil
	}
	l.holder = owner
	l.acquired++
	return true, nil
}

func (l *fakeLocker) Release(_ context.Context, _ string, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.holder == owner {
		l.holder = ""
	}
	l.released++
	return nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	placed    []string
	queued    []string
	submitted []string
	err       error
}

func (n *fakeNotifier) OrderPlaced(_ context.Context, order Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, order.ID)
	return n.err
}

func (n *fakeNotifier) OrderQueued(_ context.Context, order Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queued = append(n.queued, order.ID)
	return n.err
}

func (n *fakeNotifier) RequestSubmitted(_ context.Context, request ServiceRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, request.ID)
	return n.err
}

func sequentialIDs(prefix string) func() (string, error) {
	var mu sync.Mutex
	next := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("%s-%d", prefix, next), nil
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var errBoom = errors.New("boom")
