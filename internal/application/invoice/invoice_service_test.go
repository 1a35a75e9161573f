package invoice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appfinance "github.com/logistics/backend/internal/application/finance"
	"github.com/logistics/backend/internal/domain/finance"
	"github.com/logistics/backend/internal/domain/invoice"
	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/partner"
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/logistics/backend/internal/domain/shared/valueobject"
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

type invoiceFixture struct {
	orderRepo    *MockOrderRepository
	customerRepo *MockCustomerRepository
	settingRepo  *MockSettingRepository
	service      *InvoiceService
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		orderRepo:    new(MockOrderRepository),
		customerRepo: new(MockCustomerRepository),
		settingRepo:  new(MockSettingRepository),
	}
	f.service = NewInvoiceService(
		f.orderRepo,
		f.customerRepo,
		appfinance.NewSettingsService(f.settingRepo),
		finance.NewCurrencyConverter(valueobject.LYD),
	)
	return f
}

func invoiceOrder(t *testing.T) (*order.Order, *partner.Customer) {
	t.Helper()
	customer, err := partner.NewCustomer("CUST-001", "Tripoli Imports", "UK")
	require.NoError(t, err)

	o, err := order.NewOrder("ORD-2026-00001", customer.ID, decimal.NewFromInt(20))
	require.NoError(t, err)
	_, err = o.AddItem("Pallet A", 1, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = o.AddItem("Pallet B", 1, decimal.NewFromInt(80))
	require.NoError(t, err)
	require.NoError(t, o.ApplyFinancials(decimal.NewFromInt(30), decimal.NewFromInt(25), decimal.NewFromInt(2)))
	require.NoError(t, o.ApplyDownPayment(decimal.NewFromInt(100)))
	return o, customer
}

func TestInvoiceService_GetInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("converts every figure with one rate snapshot", func(t *testing.T) {
		f := newInvoiceFixture()
		o, customer := invoiceOrder(t)
		rateSetting, err := finance.NewSetting(finance.SettingKeyExchangeRate, "5", "")
		require.NoError(t, err)

		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingRepo.On("FindByKey", ctx, finance.SettingKeyExchangeRate).Return(rateSetting, nil)

		resp, err := f.service.GetInvoice(ctx, o.ID, invoice.LanguageEnglish)
		require.NoError(t, err)

		assert.Equal(t, "LYD", resp.Currency)
		assert.Equal(t, "1150.00", resp.TotalAmount.StringFixed(2))
		assert.Equal(t, "500.00", resp.DownPayment.StringFixed(2))
		assert.Equal(t, "650.00", resp.RemainingBalance.StringFixed(2))
		assert.Equal(t, "One Thousand One Hundred Fifty Dinars", resp.TotalInWords)
		assert.Equal(t, "Six Hundred Fifty Dinars", resp.RemainingInWords)
		require.Len(t, resp.Lines, 2)
		assert.Equal(t, "500.00", resp.Lines[0].UnitPrice.StringFixed(2))

		// exactly one settings read for the whole invoice
		f.settingRepo.AssertNumberOfCalls(t, "FindByKey", 1)
	})

	t.Run("no configured rate renders in the base currency", func(t *testing.T) {
		f := newInvoiceFixture()
		o, customer := invoiceOrder(t)

		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingRepo.On("FindByKey", ctx, finance.SettingKeyExchangeRate).Return(nil, shared.ErrNotFound)

		resp, err := f.service.GetInvoice(ctx, o.ID, invoice.LanguageEnglish)
		require.NoError(t, err)

		assert.Equal(t, "USD", resp.Currency)
		assert.Equal(t, "230.00", resp.TotalAmount.StringFixed(2))
		assert.Equal(t, "Two Hundred Thirty Dollars", resp.TotalInWords)
	})

	t.Run("renders the arabic invoice", func(t *testing.T) {
		f := newInvoiceFixture()
		o, customer := invoiceOrder(t)
		rateSetting, err := finance.NewSetting(finance.SettingKeyExchangeRate, "5", "")
		require.NoError(t, err)

		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingRepo.On("FindByKey", ctx, finance.SettingKeyExchangeRate).Return(rateSetting, nil)

		resp, err := f.service.GetInvoice(ctx, o.ID, invoice.LanguageArabic)
		require.NoError(t, err)

		assert.Equal(t, "ألف ومائة وخمسون دينار", resp.TotalInWords)
		assert.Equal(t, "ستمائة وخمسون دينار", resp.RemainingInWords)
	})

	t.Run("rejects unsupported languages", func(t *testing.T) {
		f := newInvoiceFixture()

		_, err := f.service.GetInvoice(ctx, uuid.New(), invoice.Language("fr"))
		require.Error(t, err)
		f.orderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
