package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tradeapp "github.com/logistics/backend/internal/application/trade"
	"github.com/logistics/backend/internal/domain/finance"
	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/pricing"
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/logistics/backend/internal/interfaces/http/dto"
)

// MockOrderRepository implements order.Repository for testing
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

var _ order.Repository = (*MockOrderRepository)(nil)

// MockCommissionRuleRepository implements pricing.CommissionRuleRepository for testing
type MockCommissionRuleRepository struct {
	mock.Mock
}

func (m *MockCommissionRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.CommissionRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.CommissionRule), args.Error(1)
}

func (m *MockCommissionRuleRepository) FindByCountry(ctx context.Context, country string) ([]*pricing.CommissionRule, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.CommissionRule), args.Error(1)
}

func (m *MockCommissionRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*pricing.CommissionRule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.CommissionRule), args.Error(1)
}

func (m *MockCommissionRuleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommissionRuleRepository) Save(ctx context.Context, rule *pricing.CommissionRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockCommissionRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ pricing.CommissionRuleRepository = (*MockCommissionRuleRepository)(nil)

// MockSettingRepository implements finance.SettingRepository for testing
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

var _ finance.SettingRepository = (*MockSettingRepository)(nil)

type orderTestMocks struct {
	orders    *MockOrderRepository
	customers *MockCustomerRepository
	rules     *MockCommissionRuleRepository
	settings  *MockSettingRepository
}

func setupOrderTestRouter() (*gin.Engine, orderTestMocks, *OrderHandler) {
	mocks := orderTestMocks{
		orders:    new(MockOrderRepository),
		customers: new(MockCustomerRepository),
		rules:     new(MockCommissionRuleRepository),
		settings:  new(MockSettingRepository),
	}

	service := tradeapp.NewOrderService(
		mocks.orders,
		mocks.customers,
		pricing.NewCommissionResolver(mocks.rules),
		pricing.NewProfitCalculator(),
		mocks.settings,
		zap.NewNop(),
	)
	return gin.New(), mocks, NewOrderHandler(service)
}

func createTestOrder(customerID uuid.UUID) *order.Order {
	o, _ := order.NewOrder("ORD-20260831-0001", customerID, decimal.NewFromInt(30))
	item, _ := o.AddItem("Spare parts", 2, decimal.NewFromInt(100))
	item.SetMarkupProfit(decimal.NewFromInt(40))
	return o
}

func TestOrderHandler_Create(t *testing.T) {
	t.Run("creates order with computed financials", func(t *testing.T) {
		router, mocks, h := setupOrderTestRouter()
		router.POST("/orders", h.Create)

		customer := createTestCustomer("CUST001")

		rule, err := pricing.NewCommissionRule("Libya", decimal.Zero, nil, decimal.NewFromFloat(0.10), decimal.Zero)
		require.NoError(t, err)

		mocks.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		mocks.orders.On("NextOrderNumber", mock.Anything).Return("ORD-20260831-0001", nil)
		mocks.rules.On("FindByCountry", mock.Anything, "Libya").Return([]*pricing.CommissionRule{rule}, nil)
		mocks.orders.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			// items 200 + shipping 30 = 230 pre-commission, 10% = 23
			return o.Commission.Equal(decimal.NewFromInt(23))
		})).Return(nil)

		markup := decimal.NewFromInt(40)
		body, _ := json.Marshal(tradeapp.CreateOrderRequest{
			CustomerID:   customer.ID,
			ShippingCost: decimal.NewFromInt(30),
			Items: []tradeapp.CreateOrderItemInput{
				{Description: "Spare parts", Quantity: 2, UnitPrice: decimal.NewFromInt(100), MarkupProfit: &markup},
			},
		})

		req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mocks.orders.AssertExpectations(t)
	})

	t.Run("rejects order without items", func(t *testing.T) {
		router, _, h := setupOrderTestRouter()
		router.POST("/orders", h.Create)

		body, _ := json.Marshal(map[string]any{
			"customer_id": uuid.New().String(),
		})
		req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects inactive customer with 422", func(t *testing.T) {
		router, mocks, h := setupOrderTestRouter()
		router.POST("/orders", h.Create)

		customer := createTestCustomer("CUST001")
		customer.Deactivate()
		mocks.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

		body, _ := json.Marshal(tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []tradeapp.CreateOrderItemInput{
				{Description: "Spare parts", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
			},
		})
		req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mocks.orders.AssertNotCalled(t, "Save")
	})
}

func TestOrderHandler_GetByID(t *testing.T) {
	t.Run("returns order", func(t *testing.T) {
		router, mocks, h := setupOrderTestRouter()
		router.GET("/orders/:id", h.GetByID)

		o := createTestOrder(uuid.New())
		mocks.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		req, _ := http.NewRequest(http.MethodGet, "/orders/"+o.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		router, mocks, h := setupOrderTestRouter()
		router.GET("/orders/:id", h.GetByID)

		id := uuid.New()
		mocks.orders.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodGet, "/orders/"+id.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandler_AddItem(t *testing.T) {
	t.Run("rejects incomplete item data with 422", func(t *testing.T) {
		router, mocks, h := setupOrderTestRouter()
		router.POST("/orders/:id/items", h.AddItem)

		customer := createTestCustomer("CUST001")
		o := createTestOrder(customer.ID)

		mocks.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		mocks.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		rule, _ := pricing.NewCommissionRule("Libya", decimal.Zero, nil, decimal.NewFromFloat(0.10), decimal.Zero)
		mocks.rules.On("FindByCountry", mock.Anything, "Libya").Return([]*pricing.CommissionRule{rule}, nil)

		// No markup profit on the new line, so profit cannot be derived
		body, _ := json.Marshal(tradeapp.AddOrderItemRequest{
			Description: "Extra part",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(75),
		})
		req, _ := http.NewRequest(http.MethodPost, "/orders/"+o.ID.String()+"/items", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INCOMPLETE_ITEM_DATA", resp.Error.Code)
		mocks.orders.AssertNotCalled(t, "SaveWithLock")
	})
}

func TestOrderHandler_Cancel(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		router, _, h := setupOrderTestRouter()
		router.POST("/orders/:id/cancel", h.Cancel)

		body, _ := json.Marshal(map[string]string{})
		req, _ := http.NewRequest(http.MethodPost, "/orders/"+uuid.NewString()+"/cancel", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_List(t *testing.T) {
	router, mocks, h := setupOrderTestRouter()
	router.GET("/orders", h.List)

	orders := []order.Order{*createTestOrder(uuid.New())}
	mocks.orders.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(orders, nil)
	mocks.orders.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	req, _ := http.NewRequest(http.MethodGet, "/orders?page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}
