package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/eatsprint/internal/domain/errors"
	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Name: name, Email: email, PasswordHash: passwordHash}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in memory and mirrors the guarded updates
// of the SQL repository. Fn fields override individual operations.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, *model.Order) error
	GetByIDFn            func(context.Context, string) (*model.Order, error)
	MarkPaidFn           func(context.Context, string) (*model.Order, bool, error)
	UpdateStatusFn       func(context.Context, string, model.OrderStatus) (*model.Order, model.OrderStatus, error)
	CompareAndSetFn      func(context.Context, string, model.OrderStatus, model.OrderStatus) (*model.Order, bool, error)
	DeleteUnpaidFn       func(context.Context, string) (bool, error)
	DeleteUnpaidBeforeFn func(context.Context, time.Time) (int64, error)
	Err                  error

	mu      sync.Mutex
	orders  map[string]model.Order
	Deleted []string
}

// NewOrderRepositoryStub constructs stub seeded with orders.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{orders: make(map[string]model.Order)}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

// Put stores order as is.
func (s *OrderRepositoryStub) Put(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orders == nil {
		s.orders = make(map[string]model.Order)
	}
	s.orders[order.ID] = order
}

// Snapshot returns stored order and whether it exists.
func (s *OrderRepositoryStub) Snapshot(id string) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	return o, ok
}

// Create stores a new order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orders == nil {
		s.orders = make(map[string]model.Order)
	}
	if _, exists := s.orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.orders[order.ID] = *order
	return nil
}

// GetByID returns stored order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Snapshot(id)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &o, nil
}

// ListByUser returns orders of the user, newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.list(func(o model.Order) bool { return o.UserID == userID })
}

// ListAll returns every stored order, newest first.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.list(func(model.Order) bool { return true })
}

func (s *OrderRepositoryStub) list(keep func(model.Order) bool) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Order{}
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

// MarkPaid flips the payment flag of an unpaid online order.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, id string) (*model.Order, bool, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id)
	}
	if s.Err != nil {
		return nil, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, false, domainErrors.ErrNotFound
	}
	if !o.Payable() {
		return &o, false, nil
	}
	o.Payment = true
	if o.Status == model.OrderStatusAwaitingPayment {
		o.Status = model.OrderStatusConfirmed
	}
	s.orders[id] = o
	return &o, true, nil
}

// UpdateStatus sets status unconditionally.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, model.OrderStatus, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	if s.Err != nil {
		return nil, "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, "", domainErrors.ErrNotFound
	}
	previous := o.Status
	o.Status = status
	s.orders[id] = o
	return &o, previous, nil
}

// CompareAndSetStatus sets status when current one equals expected.
func (s *OrderRepositoryStub) CompareAndSetStatus(ctx context.Context, id string, expected, status model.OrderStatus) (*model.Order, bool, error) {
	if s.CompareAndSetFn != nil {
		return s.CompareAndSetFn(ctx, id, expected, status)
	}
	if s.Err != nil {
		return nil, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, false, domainErrors.ErrNotFound
	}
	if o.Status != expected {
		return &o, false, nil
	}
	o.Status = status
	s.orders[id] = o
	return &o, true, nil
}

// DeleteUnpaid removes an unpaid online order.
func (s *OrderRepositoryStub) DeleteUnpaid(ctx context.Context, id string) (bool, error) {
	if s.DeleteUnpaidFn != nil {
		return s.DeleteUnpaidFn(ctx, id)
	}
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || !o.AwaitingPayment() {
		return false, nil
	}
	delete(s.orders, id)
	s.Deleted = append(s.Deleted, id)
	return true, nil
}

// DeleteUnpaidBefore purges unpaid online orders created before cutoff.
func (s *OrderRepositoryStub) DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.DeleteUnpaidBeforeFn != nil {
		return s.DeleteUnpaidBeforeFn(ctx, cutoff)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, o := range s.orders {
		if o.AwaitingPayment() && o.Date.Before(cutoff) {
			delete(s.orders, id)
			s.Deleted = append(s.Deleted, id)
			n++
		}
	}
	return n, nil
}

// FoodRepositoryStub serves a fixed catalog.
type FoodRepositoryStub struct {
	Foods []model.Food
	Err   error
}

// List returns configured foods.
func (s *FoodRepositoryStub) List(ctx context.Context) ([]model.Food, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Foods, nil
}

// GetByIDs returns configured foods matching ids.
func (s *FoodRepositoryStub) GetByIDs(ctx context.Context, ids []int64) ([]model.Food, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []model.Food
	for _, f := range s.Foods {
		if _, ok := want[f.ID]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// CartRepositoryStub keeps carts in memory.
type CartRepositoryStub struct {
	Err   error
	mu    sync.Mutex
	carts map[int64]model.Cart
}

// NewCartRepositoryStub constructs empty cart stub.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{carts: make(map[int64]model.Cart)}
}

func (s *CartRepositoryStub) cart(userID int64) model.Cart {
	if s.carts == nil {
		s.carts = make(map[int64]model.Cart)
	}
	c, ok := s.carts[userID]
	if !ok {
		c = model.Cart{}
		s.carts[userID] = c
	}
	return c
}

// Increment adds by to item quantity.
func (s *CartRepositoryStub) Increment(ctx context.Context, userID int64, itemID string, by int) error {
	if s.Err != nil {
		return s.Err
	}
	if by <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(userID)[itemID] += by
	return nil
}

// Decrement lowers item quantity by one dropping zero entries.
func (s *CartRepositoryStub) Decrement(ctx context.Context, userID int64, itemID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(userID)
	if c[itemID] <= 1 {
		delete(c, itemID)
		return nil
	}
	c[itemID]--
	return nil
}

// Merge adds local quantities.
func (s *CartRepositoryStub) Merge(ctx context.Context, userID int64, local model.Cart) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(userID)
	for id, qty := range local.Compact() {
		c[id] += qty
	}
	return nil
}

// Get returns copy of stored cart.
func (s *CartRepositoryStub) Get(ctx context.Context, userID int64) (model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := model.Cart{}
	for id, qty := range s.cart(userID) {
		out[id] = qty
	}
	return out, nil
}

// Clear drops stored cart.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}
