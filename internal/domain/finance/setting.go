package finance

import (
	"context"
	"strings"
	"time"

	"github.com/logistics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Well-known setting keys
const (
	SettingKeyExchangeRate         = "exchange_rate_usd_lyd"
	SettingKeyDefaultCommissionPct = "default_commission_percentage"
)

// Setting is a single key/value configuration row. Values are stored as
// strings and parsed at the point of use.
type Setting struct {
	shared.BaseEntity
	Key         string
	Value       string
	Description string
}

// NewSetting creates a setting
func NewSetting(key, value, description string) (*Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_SETTING", "Setting key cannot be empty")
	}

	return &Setting{
		BaseEntity:  shared.NewBaseEntity(),
		Key:         key,
		Value:       value,
		Description: description,
	}, nil
}

// UpdateValue replaces the setting value
func (s *Setting) UpdateValue(value string) {
	s.Value = value
	s.UpdatedAt = time.Now()
}

// DecimalValue parses the setting value as a decimal
func (s *Setting) DecimalValue() (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s.Value))
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_SETTING", "Setting value is not a valid number")
	}
	return v, nil
}

// SettingRepository defines persistence for application settings
type SettingRepository interface {
	FindByKey(ctx context.Context, key string) (*Setting, error)
	FindAll(ctx context.Context) ([]*Setting, error)
	Save(ctx context.Context, setting *Setting) error
	Delete(ctx context.Context, key string) error
}
