package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/sweetdreamlabs/sweetdream/internal/domain/order"
	"github.com/sweetdreamlabs/sweetdream/internal/httperr"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	products map[uint]*models.Product
	orders   map[uint]*models.Order
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: map[uint]*models.Product{},
		orders:   map[uint]*models.Order{},
		nextID:   1,
	}
}

func (r *fakeRepo) GetProductWithSizes(_ context.Context, id uint) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeRepo) CreateOrder(_ context.Context, o *models.Order) error {
	o.ID = r.nextID
	r.nextID++
	r.orders[o.ID] = o
	return nil
}

func (r *fakeRepo) GetOrderByID(_ context.Context, id uint) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *fakeRepo) ListOrders(_ context.Context, _ domain.ListFilter) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) TransitionStatus(
	_ context.Context,
	id uint,
	apply func(current domain.Status) (domain.Status, error),
) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	next, err := apply(domain.Status(o.Status))
	if err != nil {
		return nil, err
	}
	o.Status = string(next)
	return o, nil
}

func (r *fakeRepo) DeleteOrder(_ context.Context, id uint) error {
	if _, ok := r.orders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeDirectory struct {
	known   map[string]*models.Customer
	down    bool
	created []domain.CustomerInput
}

func (d *fakeDirectory) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	if d.down {
		return nil, errors.New("connection refused")
	}
	if c, ok := d.known[email]; ok {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (d *fakeDirectory) Create(_ context.Context, in domain.CustomerInput) (*models.Customer, error) {
	if d.down {
		return nil, errors.New("connection refused")
	}
	d.created = append(d.created, in)
	return &models.Customer{ID: 42, Name: in.Name, Email: in.Email}, nil
}

func seedProduct(repo *fakeRepo) {
	repo.products[1] = &models.Product{
		ID:   1,
		Name: "Tiramisu",
		Sizes: []models.ProductSize{
			{ProductID: 1, Size: "S", Price: decimal.NewFromInt(80000)},
			{ProductID: 1, Size: "M", Price: decimal.NewFromInt(120000)},
		},
	}
}

// ======================================================
// TESTS
// ======================================================

func TestCreateOrderTotalFromCatalogPrices(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	dir := &fakeDirectory{known: map[string]*models.Customer{
		"an@example.com": {ID: 7, Email: "an@example.com"},
	}}

	uc := NewCreateOrder(repo, dir)

	o, err := uc.Execute(context.Background(), CreateOrderInput{
		Customer: domain.CustomerInput{Name: "An", Email: "an@example.com"},
		Items: []OrderItemInput{
			// Client claims a stale price. The total must ignore it.
			{ProductID: 1, Size: "M", Price: decimal.NewFromInt(99000), Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), o.CustomerID)
	assert.Equal(t, "PENDING", o.Status)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(240000)), "total=%s", o.Total)
	assert.True(t, o.Shipping.Equal(decimal.NewFromInt(30000)))

	// The submitted price is kept on the line as a snapshot.
	require.Len(t, o.Items, 1)
	assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(99000)))
}

func TestCreateOrderCreatesUnknownCustomer(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	dir := &fakeDirectory{known: map[string]*models.Customer{}}

	uc := NewCreateOrder(repo, dir)

	o, err := uc.Execute(context.Background(), CreateOrderInput{
		Customer: domain.CustomerInput{Name: "Binh", Email: "binh@example.com", Phone: "0901"},
		Items: []OrderItemInput{
			{ProductID: 1, Size: "S", Price: decimal.NewFromInt(80000), Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, dir.created, 1)
	assert.Equal(t, "binh@example.com", dir.created[0].Email)
	assert.Equal(t, uint(42), o.CustomerID)
}

func TestCreateOrderDirectoryDown(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	dir := &fakeDirectory{down: true}

	uc := NewCreateOrder(repo, dir)

	_, err := uc.Execute(context.Background(), CreateOrderInput{
		Customer: domain.CustomerInput{Name: "An", Email: "an@example.com"},
		Items: []OrderItemInput{
			{ProductID: 1, Size: "S", Price: decimal.NewFromInt(80000), Quantity: 1},
		},
	})
	require.True(t, httperr.IsBusiness(err, "user_service_unavailable"))

	// Nothing persisted when the directory is unreachable.
	assert.Empty(t, repo.orders)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	repo := newFakeRepo()
	dir := &fakeDirectory{known: map[string]*models.Customer{
		"an@example.com": {ID: 7, Email: "an@example.com"},
	}}

	uc := NewCreateOrder(repo, dir)

	_, err := uc.Execute(context.Background(), CreateOrderInput{
		Customer: domain.CustomerInput{Name: "An", Email: "an@example.com"},
		Items: []OrderItemInput{
			{ProductID: 99, Size: "S", Price: decimal.NewFromInt(1000), Quantity: 1},
		},
	})
	require.True(t, httperr.IsBusiness(err, "product_not_found"))
	assert.Contains(t, httperr.BusinessMessage(err), "99")
}

func TestCreateOrderUnknownSize(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	dir := &fakeDirectory{known: map[string]*models.Customer{
		"an@example.com": {ID: 7, Email: "an@example.com"},
	}}

	uc := NewCreateOrder(repo, dir)

	_, err := uc.Execute(context.Background(), CreateOrderInput{
		Customer: domain.CustomerInput{Name: "An", Email: "an@example.com"},
		Items: []OrderItemInput{
			{ProductID: 1, Size: "XL", Price: decimal.NewFromInt(1000), Quantity: 1},
		},
	})
	require.True(t, httperr.IsBusiness(err, "size_not_found"))
	assert.Contains(t, httperr.BusinessMessage(err), "Tiramisu")
}

func TestUpdateStatusInvalidStatus(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateStatus(repo)

	_, err := uc.Execute(context.Background(), 1, "SHIPPED", true)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestUpdateStatusHappyPath(t *testing.T) {
	repo := newFakeRepo()
	repo.orders[1] = &models.Order{ID: 1, Status: "PENDING"}

	uc := NewUpdateStatus(repo)

	o, err := uc.Execute(context.Background(), 1, domain.StatusConfirmed, false)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", o.Status)
}

func TestUpdateStatusRechecksPersistedState(t *testing.T) {
	repo := newFakeRepo()
	repo.orders[1] = &models.Order{ID: 1, Status: "CANCELLED"}

	uc := NewUpdateStatus(repo)

	_, err := uc.Execute(context.Background(), 1, domain.StatusConfirmed, true)
	assert.True(t, httperr.IsBusiness(err, "order_cancelled"))
}

func TestCancelOrder(t *testing.T) {
	repo := newFakeRepo()
	repo.orders[1] = &models.Order{ID: 1, Status: "CONFIRMED"}

	uc := NewCancelOrder(NewUpdateStatus(repo))

	o, err := uc.Execute(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", o.Status)
}

func TestCancelOrderCustomerTooLate(t *testing.T) {
	repo := newFakeRepo()
	repo.orders[1] = &models.Order{ID: 1, Status: "PREPARING"}

	uc := NewCancelOrder(NewUpdateStatus(repo))

	_, err := uc.Execute(context.Background(), 1, false)
	require.True(t, httperr.IsBusiness(err, "cancel_forbidden"))
	assert.Contains(t, httperr.BusinessMessage(err), domain.SupportContact)
}
