package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/logistics/backend/internal/domain/shared"
)

type mockRuleRepository struct {
	mock.Mock
}

func (m *mockRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*CommissionRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CommissionRule), args.Error(1)
}

func (m *mockRuleRepository) FindByCountry(ctx context.Context, country string) ([]*CommissionRule, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CommissionRule), args.Error(1)
}

func (m *mockRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*CommissionRule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CommissionRule), args.Error(1)
}

func (m *mockRuleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRuleRepository) Save(ctx context.Context, rule *CommissionRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *mockRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func mustRule(t *testing.T, country string, min float64, max *float64, pct, fee float64) *CommissionRule {
	t.Helper()
	var upper *decimal.Decimal
	if max != nil {
		d := decimal.NewFromFloat(*max)
		upper = &d
	}
	rule, err := NewCommissionRule(country, decimal.NewFromFloat(min), upper, decimal.NewFromFloat(pct), decimal.NewFromFloat(fee))
	require.NoError(t, err)
	return rule
}

func floatPtr(f float64) *float64 { return &f }

func TestNewCommissionRule(t *testing.T) {
	t.Run("creates rule with valid inputs", func(t *testing.T) {
		rule := mustRule(t, "UK", 0, floatPtr(500), 0.15, 0)
		assert.Equal(t, "UK", rule.Country)
		assert.True(t, rule.Active)
	})

	t.Run("trims the country", func(t *testing.T) {
		rule := mustRule(t, "  UK  ", 0, nil, 0.10, 0)
		assert.Equal(t, "UK", rule.Country)
	})

	t.Run("rejects empty country", func(t *testing.T) {
		_, err := NewCommissionRule("", decimal.Zero, nil, decimal.NewFromFloat(0.10), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		upper := decimal.NewFromInt(100)
		_, err := NewCommissionRule("UK", decimal.NewFromInt(200), &upper, decimal.NewFromFloat(0.10), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects percentage above one", func(t *testing.T) {
		_, err := NewCommissionRule("UK", decimal.Zero, nil, decimal.NewFromFloat(1.5), decimal.Zero)
		require.Error(t, err)
	})
}

func TestCommissionRule_Matches(t *testing.T) {
	rule := mustRule(t, "UK", 100, floatPtr(500), 0.10, 0)

	tests := []struct {
		name    string
		country string
		value   float64
		want    bool
	}{
		{"inside the bracket", "UK", 250, true},
		{"at the lower bound", "UK", 100, true},
		{"at the upper bound", "UK", 500, false},
		{"just under the upper bound", "UK", 499.99, true},
		{"below the bracket", "UK", 99.99, false},
		{"different country", "DE", 250, false},
		{"country match is case insensitive", "uk", 250, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.Matches(tt.country, decimal.NewFromFloat(tt.value)))
		})
	}

	t.Run("inactive rule never matches", func(t *testing.T) {
		rule.Deactivate()
		assert.False(t, rule.Matches("UK", decimal.NewFromFloat(250)))
		rule.Activate()
	})

	t.Run("open-ended rule has no upper bound", func(t *testing.T) {
		open := mustRule(t, "UK", 500, nil, 0.12, 0)
		assert.True(t, open.Matches("UK", decimal.NewFromInt(1_000_000)))
	})
}

func TestCommissionRule_Apply(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		fee   float64
		value float64
		want  string
	}{
		{"percentage only", 0.15, 0, 200, "30.00"},
		{"fixed fee only", 0, 25, 200, "25.00"},
		{"percentage plus fee", 0.10, 5, 333.33, "38.33"},
		{"rounds half away from zero", 0.10, 0, 100.25, "10.03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := mustRule(t, "UK", 0, nil, tt.pct, tt.fee)
			assert.Equal(t, tt.want, rule.Apply(decimal.NewFromFloat(tt.value)).StringFixed(2))
		})
	}
}

func TestCommissionResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the matching tier", func(t *testing.T) {
		repo := new(mockRuleRepository)
		resolver := NewCommissionResolver(repo)

		rules := []*CommissionRule{
			mustRule(t, "UK", 0, floatPtr(500), 0.15, 0),
			mustRule(t, "UK", 500, nil, 0.12, 0),
		}
		repo.On("FindByCountry", ctx, "UK").Return(rules, nil)

		commission, matched, err := resolver.Resolve(ctx, "UK", decimal.NewFromInt(200))
		require.NoError(t, err)
		assert.Equal(t, "30.00", commission.StringFixed(2))
		assert.Equal(t, rules[0].ID, matched.ID)
	})

	t.Run("tightest bracket wins over a catch-all", func(t *testing.T) {
		repo := new(mockRuleRepository)
		resolver := NewCommissionResolver(repo)

		catchAll := mustRule(t, "UK", 0, nil, 0.20, 0)
		tight := mustRule(t, "UK", 100, floatPtr(500), 0.10, 0)
		repo.On("FindByCountry", ctx, "UK").Return([]*CommissionRule{catchAll, tight}, nil)

		commission, matched, err := resolver.Resolve(ctx, "UK", decimal.NewFromInt(200))
		require.NoError(t, err)
		assert.Equal(t, tight.ID, matched.ID)
		assert.Equal(t, "20.00", commission.StringFixed(2))
	})

	t.Run("upper bound is exclusive", func(t *testing.T) {
		repo := new(mockRuleRepository)
		resolver := NewCommissionResolver(repo)

		lower := mustRule(t, "UK", 0, floatPtr(500), 0.15, 0)
		upper := mustRule(t, "UK", 500, nil, 0.12, 0)
		repo.On("FindByCountry", ctx, "UK").Return([]*CommissionRule{lower, upper}, nil)

		commission, matched, err := resolver.Resolve(ctx, "UK", decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.Equal(t, upper.ID, matched.ID)
		assert.Equal(t, "60.00", commission.StringFixed(2))
	})

	t.Run("returns ErrNoRuleFound when nothing matches", func(t *testing.T) {
		repo := new(mockRuleRepository)
		resolver := NewCommissionResolver(repo)

		repo.On("FindByCountry", ctx, "FR").Return([]*CommissionRule{}, nil)

		_, _, err := resolver.Resolve(ctx, "FR", decimal.NewFromInt(200))
		assert.ErrorIs(t, err, shared.ErrNoRuleFound)
	})

	t.Run("rejects negative order value", func(t *testing.T) {
		repo := new(mockRuleRepository)
		resolver := NewCommissionResolver(repo)

		_, _, err := resolver.Resolve(ctx, "UK", decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
		repo.AssertNotCalled(t, "FindByCountry")
	})
}
