package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// stubUserRepo is an in-memory UserRepository with the same uniqueness and
// not-found semantics the pgx implementation exposes.
type stubUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) add(user *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.nextID++
		user.ID = "user-" + strconv.Itoa(r.nextID)
	}
	copied := *user
	r.users[user.ID] = &copied
	return user
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Name == user.Name || (user.Email != "" && existing.Email == user.Email) {
			return apperrors.NewConflict("name or email already taken", nil)
		}
	}
	r.nextID++
	user.ID = "user-" + strconv.Itoa(r.nextID)
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) GetByNameAndRoles(_ context.Context, name string, roles []domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Name != name {
			continue
		}
		for _, role := range roles {
			if user.Role == role {
				copied := *user
				return &copied, nil
			}
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) ExistsWithName(_ context.Context, name, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, user := range r.users {
		if user.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsWithEmail(_ context.Context, email, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, user := range r.users {
		if user.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

// stubSessionStore records namespace bindings per session key.
type stubSessionStore struct {
	mu      sync.Mutex
	entries map[string]map[domain.SessionNamespace]string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{entries: map[string]map[domain.SessionNamespace]string{}}
}

func (s *stubSessionStore) Login(_ context.Context, sessionKey string, ns domain.SessionNamespace, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sessionKey == "" {
		sessionKey = "session-" + strconv.Itoa(len(s.entries)+1)
	}
	if s.entries[sessionKey] == nil {
		s.entries[sessionKey] = map[domain.SessionNamespace]string{}
	}
	s.entries[sessionKey][ns] = userID
	return sessionKey, nil
}

func (s *stubSessionStore) Resolve(_ context.Context, ns domain.SessionNamespace, sessionKey string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[sessionKey][ns], nil
}

func (s *stubSessionStore) Logout(_ context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionKey)
	return nil
}

// stubMenuRepo serves a fixed set of menus and items.
type stubMenuRepo struct {
	menus map[string]domain.Menu
	items map[string]domain.MenuItem
}

func newStubMenuRepo(items ...domain.MenuItem) *stubMenuRepo {
	r := &stubMenuRepo{menus: map[string]domain.Menu{}, items: map[string]domain.MenuItem{}}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *stubMenuRepo) addMenu(menu domain.Menu) {
	r.menus[menu.ID] = menu
}

func (r *stubMenuRepo) ListMenus(_ context.Context) ([]domain.Menu, error) {
	out := make([]domain.Menu, 0, len(r.menus))
	for _, menu := range r.menus {
		out = append(out, menu)
	}
	return out, nil
}

func (r *stubMenuRepo) GetMenu(_ context.Context, id string) (*domain.Menu, error) {
	menu, ok := r.menus[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &menu, nil
}

func (r *stubMenuRepo) ListItems(_ context.Context, _ string) ([]domain.MenuItem, error) {
	return nil, nil
}

func (r *stubMenuRepo) GetItem(_ context.Context, id string) (*domain.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (r *stubMenuRepo) CreateItem(_ context.Context, item *domain.MenuItem) error {
	if item.ID == "" {
		item.ID = "item-" + strconv.Itoa(len(r.items)+1)
	}
	r.items[item.ID] = *item
	return nil
}

func (r *stubMenuRepo) UpdateItem(_ context.Context, item *domain.MenuItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[item.ID] = *item
	return nil
}

func (r *stubMenuRepo) DeleteItem(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

// stubOrderRepo keeps orders in memory.
type stubOrderRepo struct {
	mu     sync.Mutex
	nextID int
	orders map[string]*domain.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]*domain.Order{}}
}

func (r *stubOrderRepo) add(order *domain.Order) *domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		r.nextID++
		order.ID = "order-" + strconv.Itoa(r.nextID)
	}
	copied := *order
	r.orders[order.ID] = &copied
	return order
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = "order-" + strconv.Itoa(r.nextID)
	for i := range order.Items {
		r.nextID++
		order.Items[i].ID = "line-" + strconv.Itoa(r.nextID)
		order.Items[i].OrderID = order.ID
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	copied.Items = append([]domain.OrderItem{}, order.Items...)
	return &copied, nil
}

func (r *stubOrderRepo) ListByDiner(_ context.Context, dinerID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, order := range r.orders {
		if order.DinerID == dinerID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *stubOrderRepo) ListActive(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, order := range r.orders {
		switch order.Status {
		case domain.OrderStatusPending, domain.OrderStatusPreparing, domain.OrderStatusReady:
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	return r.mutate(id, func(order *domain.Order) { order.Status = status })
}

func (r *stubOrderRepo) UpdateNote(_ context.Context, id, note string) error {
	return r.mutate(id, func(order *domain.Order) { order.Note = note })
}

func (r *stubOrderRepo) UpdateServiceType(_ context.Context, id string, serviceType domain.ServiceType) error {
	return r.mutate(id, func(order *domain.Order) { order.ServiceType = serviceType })
}

func (r *stubOrderRepo) ReplaceItems(_ context.Context, orderID string, items []domain.OrderItem) error {
	return r.mutate(orderID, func(order *domain.Order) {
		for i := range items {
			if items[i].ID == "" {
				r.nextID++
				items[i].ID = "line-" + strconv.Itoa(r.nextID)
			}
			items[i].OrderID = orderID
		}
		order.Items = append([]domain.OrderItem{}, items...)
	})
}

func (r *stubOrderRepo) MarkPaid(_ context.Context, id string, method domain.PaymentMethod) error {
	return r.mutate(id, func(order *domain.Order) {
		order.Paid = true
		order.PaymentMethod = method
	})
}

func (r *stubOrderRepo) mutate(id string, fn func(*domain.Order)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	fn(order)
	return nil
}

// stubFeedbackRepo enforces the one-feedback-per-order rule.
type stubFeedbackRepo struct {
	mu      sync.Mutex
	nextID  int
	byOrder map[string]*domain.Feedback
}

func newStubFeedbackRepo() *stubFeedbackRepo {
	return &stubFeedbackRepo{byOrder: map[string]*domain.Feedback{}}
}

func (r *stubFeedbackRepo) Create(_ context.Context, feedback *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOrder[feedback.OrderID]; ok {
		return apperrors.NewConflict("Feedback already submitted for this order", nil)
	}
	r.nextID++
	feedback.ID = "feedback-" + strconv.Itoa(r.nextID)
	copied := *feedback
	r.byOrder[feedback.OrderID] = &copied
	return nil
}

func (r *stubFeedbackRepo) ExistsForOrder(_ context.Context, orderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byOrder[orderID]
	return ok, nil
}

func (r *stubFeedbackRepo) List(_ context.Context) ([]domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Feedback, 0, len(r.byOrder))
	for _, feedback := range r.byOrder {
		out = append(out, *feedback)
	}
	return out, nil
}
