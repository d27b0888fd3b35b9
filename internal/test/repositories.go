package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
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

// Create registers user unless login or e-mail is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if email != "" {
		if _, err := s.GetByEmail(ctx, email); err == nil {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, Email: email, PasswordHash: passwordHash, IsActive: true}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// CreatePending registers an inactive user waiting to pick a password.
func (s *UserRepositoryStub) CreatePending(ctx context.Context, login, email, uid string) (*model.User, error) {
	user, err := s.Create(ctx, login, email, "")
	if err != nil {
		return nil, err
	}
	user.IsActive = false
	user.ResetPasswordUID = uid
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
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

// GetByEmail scans stored users for the address.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return email != "" && u.Email == email })
}

// GetByResetUID scans stored users for an outstanding reset link.
func (s *UserRepositoryStub) GetByResetUID(ctx context.Context, uid string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return uid != "" && u.ResetPasswordUID == uid })
}

// SetResetUID stores a reset link uid for the user.
func (s *UserRepositoryStub) SetResetUID(ctx context.Context, userID int64, uid string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.ResetPasswordUID = uid
	return nil
}

// UpdatePassword replaces the hash, clears the reset uid and activates the user.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	user.ResetPasswordUID = ""
	user.IsActive = true
	return nil
}

func (s *UserRepositoryStub) find(match func(*model.User) bool) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, user := range s.ByID {
		if match(user) {
			return user, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OrderUpdateCall stores information about UpdateStatus invocations.
type OrderUpdateCall struct {
	OrderID    int64
	Status     model.OrderStatus
	ShipStatus model.ShipStatus
}

// OrderRepositoryStub keeps orders in memory keyed by token.
type OrderRepositoryStub struct {
	CreateFn     func(context.Context, model.Order) (*model.Order, error)
	GetByTokenFn func(context.Context, string) (*model.Order, error)
	Err          error

	mu          sync.Mutex
	orders      map[string]*model.Order
	next        int64
	UpdateCalls []OrderUpdateCall
}

// NewOrderRepositoryStub seeds the stub with orders; zero IDs are assigned.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{}
	for _, o := range orders {
		s.put(o)
	}
	return s
}

func (s *OrderRepositoryStub) put(o model.Order) *model.Order {
	if s.orders == nil {
		s.orders = make(map[string]*model.Order)
	}
	if o.ID == 0 {
		s.next++
		o.ID = s.next
	} else if o.ID > s.next {
		s.next = o.ID
	}
	for i := range o.Lines {
		o.Lines[i].OrderID = o.ID
		if o.Lines[i].ID == 0 {
			o.Lines[i].ID = int64(i + 1)
		}
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Unix(s.next, 0)
	}
	o.UpdatedAt = o.CreatedAt
	stored := o
	s.orders[o.Token] = &stored
	return &stored
}

// Create stores the order unless its token is taken.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.Token]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	created := *s.put(order)
	return &created, nil
}

// GetByToken returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByToken(ctx context.Context, token string) (*model.Order, error) {
	if s.GetByTokenFn != nil {
		return s.GetByTokenFn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[token]; ok {
		order := *o
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns the user's orders newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// UpdateStatus records update invocations and applies them.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, ship model.ShipStatus) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, Status: status, ShipStatus: ship})
	o := s.byID(orderID)
	if o == nil {
		return domainErrors.ErrNotFound
	}
	o.Status = status
	o.ShipStatus = ship
	return nil
}

func (s *OrderRepositoryStub) byID(id int64) *model.Order {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Order returns the stored order by token for assertions.
func (s *OrderRepositoryStub) Order(token string) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[token]; ok {
		order := *o
		return &order
	}
	return nil
}

// SettlementCall records ApplySettlement invocations.
type SettlementCall struct {
	OrderID    int64
	Settlement model.Settlement
	At         time.Time
}

// PaymentRepositoryStub keeps one payment per order and settles orders of the linked OrderRepositoryStub.
type PaymentRepositoryStub struct {
	Orders    *OrderRepositoryStub
	Err       error
	SettleErr error

	mu          sync.Mutex
	payments    map[int64]*model.OrderPayment
	next        int64
	Settlements []SettlementCall
}

// NewPaymentRepositoryStub links payments to the given orders.
func NewPaymentRepositoryStub(orders *OrderRepositoryStub) *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Orders: orders, payments: make(map[int64]*model.OrderPayment)}
}

// GetByOrder returns a copy of the order's payment.
func (s *PaymentRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.OrderPayment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.payments[orderID]; ok {
		payment := *p
		return &payment, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Upsert creates or overwrites the order's payment.
func (s *PaymentRepositoryStub) Upsert(ctx context.Context, payment model.OrderPayment) (*model.OrderPayment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payments == nil {
		s.payments = make(map[int64]*model.OrderPayment)
	}
	if existing, ok := s.payments[payment.OrderID]; ok {
		payment.ID = existing.ID
		payment.CreatedAt = existing.CreatedAt
		payment.PaidAt = existing.PaidAt
	} else {
		s.next++
		payment.ID = s.next
	}
	stored := payment
	s.payments[payment.OrderID] = &stored
	out := stored
	return &out, nil
}

// ApplySettlement updates the linked order and the payment together. Like the
// database it refuses to touch either row when one of them is missing.
func (s *PaymentRepositoryStub) ApplySettlement(ctx context.Context, orderID int64, settlement model.Settlement, at time.Time) error {
	if s.SettleErr != nil {
		return s.SettleErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Settlements = append(s.Settlements, SettlementCall{OrderID: orderID, Settlement: settlement, At: at})

	p, ok := s.payments[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}

	if s.Orders != nil {
		s.Orders.mu.Lock()
		o := s.Orders.byID(orderID)
		if o == nil {
			s.Orders.mu.Unlock()
			return domainErrors.ErrNotFound
		}
		o.Status = settlement.Order
		s.Orders.mu.Unlock()
	}

	p.Status = settlement.Payment
	if settlement.Payment == model.PaymentStatusConfirmed && p.PaidAt == nil {
		paidAt := at
		p.PaidAt = &paidAt
	}
	return nil
}

// ProductRepositoryStub serves a fixed catalog and counts reads.
type ProductRepositoryStub struct {
	Products  map[int64]model.Product
	Err       error
	GetCalls  int
	ListCalls int
}

// NewProductRepositoryStub indexes the given products by ID.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[int64]model.Product)}
	for _, p := range products {
		s.Products[p.ID] = p
	}
	return s
}

// GetByID returns the product or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	s.GetCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		return &p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List pages through products ordered by ID.
func (s *ProductRepositoryStub) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	s.ListCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	filter = filter.Normalize()
	var all []model.Product
	for _, p := range s.Products {
		if filter.CategoryID == 0 || p.CategoryID == filter.CategoryID {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start := filter.Offset()
	if start >= len(all) {
		return nil, nil
	}
	end := start + filter.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// AddressRepositoryStub keeps addresses in memory.
type AddressRepositoryStub struct {
	mu        sync.Mutex
	Addresses map[int64]*model.Address
	Next      int64
	Err       error
}

// NewAddressRepositoryStub seeds the stub with the given addresses.
func NewAddressRepositoryStub(addresses ...model.Address) *AddressRepositoryStub {
	s := &AddressRepositoryStub{Addresses: make(map[int64]*model.Address), Next: 1}
	for i := range addresses {
		a := addresses[i]
		s.Addresses[a.ID] = &a
		if a.ID >= s.Next {
			s.Next = a.ID + 1
		}
	}
	return s
}

// Create stores a copy with a fresh identifier.
func (s *AddressRepositoryStub) Create(ctx context.Context, address model.Address) (*model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	address.ID = s.Next
	s.Next++
	stored := address
	s.Addresses[address.ID] = &stored
	return &address, nil
}

// GetByID returns a copy of the stored address.
func (s *AddressRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.Addresses[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// ListByUser returns the user's addresses ordered by id.
func (s *AddressRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Address
	for _, a := range s.Addresses {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update overwrites the stored fields, keeping the owner.
func (s *AddressRepositoryStub) Update(ctx context.Context, address model.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	a, ok := s.Addresses[address.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	address.UserID = a.UserID
	*a = address
	return nil
}

// Delete removes the address.
func (s *AddressRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Addresses[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Addresses, id)
	return nil
}
