package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/logistics/backend/internal/domain/finance"
	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/partner"
	"github.com/logistics/backend/internal/domain/pricing"
	"github.com/logistics/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveAllocations(ctx context.Context, orders []order.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockRuleRepository is a mock implementation of pricing.CommissionRuleRepository
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.CommissionRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.CommissionRule), args.Error(1)
}

func (m *MockRuleRepository) FindByCountry(ctx context.Context, country string) ([]*pricing.CommissionRule, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.CommissionRule), args.Error(1)
}

func (m *MockRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*pricing.CommissionRule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.CommissionRule), args.Error(1)
}

func (m *MockRuleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRuleRepository) Save(ctx context.Context, rule *pricing.CommissionRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingRepository is a mock implementation of finance.SettingRepository
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) FindByKey(ctx context.Context, key string) (*finance.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Setting), args.Error(1)
}

func (m *MockSettingRepository) FindAll(ctx context.Context) ([]*finance.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.Setting), args.Error(1)
}

func (m *MockSettingRepository) Save(ctx context.Context, setting *finance.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockSettingRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type orderServiceFixture struct {
	orderRepo    *MockOrderRepository
	customerRepo *MockCustomerRepository
	ruleRepo     *MockRuleRepository
	settingRepo  *MockSettingRepository
	service      *OrderService
}

func newOrderServiceFixture() *orderServiceFixture {
	f := &orderServiceFixture{
		orderRepo:    new(MockOrderRepository),
		customerRepo: new(MockCustomerRepository),
		ruleRepo:     new(MockRuleRepository),
		settingRepo:  new(MockSettingRepository),
	}
	f.service = NewOrderService(
		f.orderRepo,
		f.customerRepo,
		pricing.NewCommissionResolver(f.ruleRepo),
		pricing.NewProfitCalculator(),
		f.settingRepo,
		zap.NewNop(),
	)
	return f
}

func ukCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("CUST-001", "Tripoli Imports", "UK")
	require.NoError(t, err)
	return customer
}

func ukRule(t *testing.T, pct float64) *pricing.CommissionRule {
	t.Helper()
	rule, err := pricing.NewCommissionRule("UK", decimal.Zero, nil, decimal.NewFromFloat(pct), decimal.Zero)
	require.NoError(t, err)
	return rule
}

func markup(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order with commission and profit", func(t *testing.T) {
		f := newOrderServiceFixture()
		customer := ukCustomer(t)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.orderRepo.On("NextOrderNumber", ctx).Return("ORD-2026-00001", nil)
		f.ruleRepo.On("FindByCountry", ctx, "UK").Return([]*pricing.CommissionRule{ukRule(t, 0.15)}, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		resp, err := f.service.Create(ctx, CreateOrderRequest{
			CustomerID:   customer.ID,
			ShippingCost: decimal.NewFromInt(20),
			Items: []CreateOrderItemInput{
				{Description: "Pallet A", Quantity: 1, UnitPrice: decimal.NewFromInt(100), MarkupProfit: markup(10)},
				{Description: "Pallet B", Quantity: 1, UnitPrice: decimal.NewFromInt(80), MarkupProfit: markup(15)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "ORD-2026-00001", resp.OrderNumber)
		assert.Equal(t, "30", resp.Commission.String())
		assert.Equal(t, "230", resp.TotalAmount.String())
		assert.Equal(t, "25", resp.ItemsProfit.String())
		// carrier cost still unknown
		assert.Equal(t, "0", resp.ShippingProfit.String())
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("falls back to the default percentage when no rule matches", func(t *testing.T) {
		f := newOrderServiceFixture()
		customer := ukCustomer(t)
		setting, err := finance.NewSetting(finance.SettingKeyDefaultCommissionPct, "0.05", "")
		require.NoError(t, err)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.orderRepo.On("NextOrderNumber", ctx).Return("ORD-2026-00002", nil)
		f.ruleRepo.On("FindByCountry", ctx, "UK").Return([]*pricing.CommissionRule{}, nil)
		f.settingRepo.On("FindByKey", ctx, finance.SettingKeyDefaultCommissionPct).Return(setting, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		resp, err := f.service.Create(ctx, CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []CreateOrderItemInput{
				{Description: "Pallet", Quantity: 1, UnitPrice: decimal.NewFromInt(200), MarkupProfit: markup(10)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "10", resp.Commission.String())
		f.settingRepo.AssertExpectations(t)
	})

	t.Run("zero commission when no rule and no default configured", func(t *testing.T) {
		f := newOrderServiceFixture()
		customer := ukCustomer(t)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.orderRepo.On("NextOrderNumber", ctx).Return("ORD-2026-00003", nil)
		f.ruleRepo.On("FindByCountry", ctx, "UK").Return([]*pricing.CommissionRule{}, nil)
		f.settingRepo.On("FindByKey", ctx, finance.SettingKeyDefaultCommissionPct).Return(nil, shared.ErrNotFound)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		resp, err := f.service.Create(ctx, CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []CreateOrderItemInput{
				{Description: "Pallet", Quantity: 1, UnitPrice: decimal.NewFromInt(200), MarkupProfit: markup(10)},
			},
		})
		require.NoError(t, err)
		assert.True(t, resp.Commission.IsZero())
	})

	t.Run("rejects the save when an item is missing its margin", func(t *testing.T) {
		f := newOrderServiceFixture()
		customer := ukCustomer(t)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.orderRepo.On("NextOrderNumber", ctx).Return("ORD-2026-00004", nil)
		f.ruleRepo.On("FindByCountry", ctx, "UK").Return([]*pricing.CommissionRule{ukRule(t, 0.15)}, nil)

		_, err := f.service.Create(ctx, CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []CreateOrderItemInput{
				{Description: "Pallet", Quantity: 1, UnitPrice: decimal.NewFromInt(200)},
			},
		})
		assert.ErrorIs(t, err, shared.ErrIncompleteItemData)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects orders for inactive customers", func(t *testing.T) {
		f := newOrderServiceFixture()
		customer := ukCustomer(t)
		customer.Deactivate()

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err := f.service.Create(ctx, CreateOrderRequest{CustomerID: customer.ID})
		require.Error(t, err)
	})
}

func TestOrderService_SetShippingActual(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes shipping profit from the actual cost", func(t *testing.T) {
		f := newOrderServiceFixture()
		customer := ukCustomer(t)

		o, err := order.NewOrder("ORD-2026-00001", customer.ID, decimal.NewFromInt(20))
		require.NoError(t, err)
		item, err := o.AddItem("Pallet", 1, decimal.NewFromInt(180))
		require.NoError(t, err)
		item.SetMarkupProfit(decimal.NewFromInt(25))

		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.ruleRepo.On("FindByCountry", ctx, "UK").Return([]*pricing.CommissionRule{ukRule(t, 0.15)}, nil)
		f.orderRepo.On("SaveWithLock", ctx, o).Return(nil)

		resp, err := f.service.SetShippingActual(ctx, o.ID, SetShippingActualRequest{
			ShippingCostActual: decimal.NewFromInt(18),
		})
		require.NoError(t, err)

		assert.Equal(t, "2", resp.ShippingProfit.String())
		assert.Equal(t, "27", resp.TotalProfit.String())
		assert.Equal(t, "230", resp.TotalAmount.String())
	})

	t.Run("rejects negative actual cost", func(t *testing.T) {
		f := newOrderServiceFixture()
		customer := ukCustomer(t)

		o, err := order.NewOrder("ORD-2026-00002", customer.ID, decimal.NewFromInt(20))
		require.NoError(t, err)

		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err = f.service.SetShippingActual(ctx, o.ID, SetShippingActualRequest{
			ShippingCostActual: decimal.NewFromInt(-1),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	})
}

func TestOrderService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("processes and ships an order", func(t *testing.T) {
		f := newOrderServiceFixture()

		o, err := order.NewOrder("ORD-2026-00001", uuid.New(), decimal.Zero)
		require.NoError(t, err)
		_, err = o.AddItem("Pallet", 1, decimal.NewFromInt(10))
		require.NoError(t, err)

		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		f.orderRepo.On("SaveWithLock", ctx, o).Return(nil)

		resp, err := f.service.MarkProcessing(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing.String(), resp.Status)

		resp, err = f.service.MarkShipped(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped.String(), resp.Status)
	})

	t.Run("cancel rejects shipped orders", func(t *testing.T) {
		f := newOrderServiceFixture()

		o, err := order.NewOrder("ORD-2026-00002", uuid.New(), decimal.Zero)
		require.NoError(t, err)
		_, err = o.AddItem("Pallet", 1, decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, o.MarkProcessing())
		require.NoError(t, o.MarkShipped())

		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err = f.service.Cancel(ctx, o.ID, CancelOrderRequest{Reason: "customer withdrew"})
		require.Error(t, err)
		f.orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}
