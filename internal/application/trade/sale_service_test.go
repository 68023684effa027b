package trade

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockSaleRepository is a mock implementation of SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) List(ctx context.Context, filter trade.SaleFilter) (shared.Paginated[trade.Sale], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[trade.Sale]), args.Error(1)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSaleRepository) SalesByDay(ctx context.Context, from, to *time.Time, productID *uuid.UUID) ([]trade.DailySales, error) {
	args := m.Called(ctx, from, to, productID)
	return args.Get(0).([]trade.DailySales), args.Error(1)
}

func (m *MockSaleRepository) TopProducts(ctx context.Context, limit int) ([]trade.ProductSales, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]trade.ProductSales), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter catalog.ProductFilter) (shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// =============================================================================
// Tests
// =============================================================================

func testProduct(t *testing.T, qty int64, price float64) *catalog.Product {
	p, err := catalog.NewProduct("Bolt", "SKU-"+uuid.NewString()[:8], qty, decimal.NewFromFloat(price), "hardware")
	require.NoError(t, err)
	return p
}

func TestSaleService_CreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("prices lines from the catalog and deducts stock", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		productRepo := new(MockProductRepository)
		svc := NewSaleService(saleRepo, productRepo, zap.NewNop())

		product := testProduct(t, 10, 2.50)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)
		saleRepo.On("Save", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)

		resp, err := svc.CreateSale(ctx, CreateSaleRequest{
			CustomerName: "Acme",
			Items:        []SaleItemRequest{{ProductID: product.ID, Quantity: 4}},
		})
		require.NoError(t, err)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromFloat(10.00)))
		assert.EqualValues(t, 6, product.Quantity)
		saleRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("insufficient stock fails before any deduction", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		productRepo := new(MockProductRepository)
		svc := NewSaleService(saleRepo, productRepo, zap.NewNop())

		plenty := testProduct(t, 100, 1.00)
		scarce := testProduct(t, 2, 1.00)
		productRepo.On("FindByID", ctx, plenty.ID).Return(plenty, nil)
		productRepo.On("FindByID", ctx, scarce.ID).Return(scarce, nil)

		_, err := svc.CreateSale(ctx, CreateSaleRequest{
			CustomerName: "Acme",
			Items: []SaleItemRequest{
				{ProductID: plenty.ID, Quantity: 10},
				{ProductID: scarce.ID, Quantity: 5},
			},
		})
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, shared.ErrInsufficientStock.Code, derr.Code)
		assert.EqualValues(t, 100, plenty.Quantity)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product fails", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		productRepo := new(MockProductRepository)
		svc := NewSaleService(saleRepo, productRepo, zap.NewNop())

		id := uuid.New()
		productRepo.On("FindByID", ctx, id).Return(nil, nil)

		_, err := svc.CreateSale(ctx, CreateSaleRequest{
			CustomerName: "Acme",
			Items:        []SaleItemRequest{{ProductID: id, Quantity: 1}},
		})
		assert.Error(t, err)
	})
}

func TestSaleService_DeleteSale(t *testing.T) {
	ctx := context.Background()

	t.Run("restocks sold quantities", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		productRepo := new(MockProductRepository)
		svc := NewSaleService(saleRepo, productRepo, zap.NewNop())

		product := testProduct(t, 6, 2.50)
		sale, err := trade.NewSale("Acme", trade.SaleItems{
			{ProductID: product.ID, ProductName: product.Name, Quantity: 4, UnitPrice: product.Price},
		}, "")
		require.NoError(t, err)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)
		saleRepo.On("Delete", ctx, sale.ID).Return(nil)

		require.NoError(t, svc.DeleteSale(ctx, sale.ID))
		assert.EqualValues(t, 10, product.Quantity)
		saleRepo.AssertExpectations(t)
	})

	t.Run("skips restock for deleted products", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		productRepo := new(MockProductRepository)
		svc := NewSaleService(saleRepo, productRepo, zap.NewNop())

		gone := uuid.New()
		sale, err := trade.NewSale("Acme", trade.SaleItems{
			{ProductID: gone, ProductName: "Old", Quantity: 1, UnitPrice: decimal.NewFromFloat(1)},
		}, "")
		require.NoError(t, err)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		productRepo.On("FindByID", ctx, gone).Return(nil, nil)
		saleRepo.On("Delete", ctx, sale.ID).Return(nil)

		require.NoError(t, svc.DeleteSale(ctx, sale.ID))
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
