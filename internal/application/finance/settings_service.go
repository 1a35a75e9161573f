package finance

import (
	"context"
	"errors"

	"github.com/logistics/backend/internal/domain/finance"
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SettingsService manages the global financial settings. Validation
// happens at this write boundary so the settings store never holds a
// value the converters cannot parse.
type SettingsService struct {
	settingRepo finance.SettingRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingRepo finance.SettingRepository) *SettingsService {
	return &SettingsService{settingRepo: settingRepo}
}

// GetExchangeRate reads the configured USD to LYD exchange rate.
// An absent or non-positive rate reports as unconfigured.
func (s *SettingsService) GetExchangeRate(ctx context.Context) (*ExchangeRateResponse, error) {
	rate, err := s.ReadRateSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &ExchangeRateResponse{
		Rate:       rate,
		Configured: rate.IsPositive(),
	}, nil
}

// UpdateExchangeRate stores a new exchange rate. Zero clears the rate
// back to the unconfigured state; negative rates are rejected.
func (s *SettingsService) UpdateExchangeRate(ctx context.Context, req UpdateExchangeRateRequest) (*ExchangeRateResponse, error) {
	if req.Rate.IsNegative() {
		return nil, shared.ErrInvalidAmount
	}

	setting, err := s.settingRepo.FindByKey(ctx, finance.SettingKeyExchangeRate)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		setting, err = finance.NewSetting(finance.SettingKeyExchangeRate, req.Rate.String(), "USD to LYD exchange rate")
		if err != nil {
			return nil, err
		}
	} else {
		setting.UpdateValue(req.Rate.String())
	}

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}

	return &ExchangeRateResponse{
		Rate:       req.Rate,
		Configured: req.Rate.IsPositive(),
	}, nil
}

// ReadRateSnapshot reads the exchange rate once for a rendering pass.
// Renderers must hold this snapshot for the whole pass instead of
// re-reading, so every figure on one invoice or report uses the same
// rate. Absent or unparsable settings read as zero, the identity rate.
func (s *SettingsService) ReadRateSnapshot(ctx context.Context) (decimal.Decimal, error) {
	setting, err := s.settingRepo.FindByKey(ctx, finance.SettingKeyExchangeRate)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	rate, err := setting.DecimalValue()
	if err != nil {
		return decimal.Zero, nil
	}
	return rate, nil
}
