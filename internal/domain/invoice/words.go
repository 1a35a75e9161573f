package invoice

import (
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Language selects the invoice rendering language
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// IsValid checks if the language is supported
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageArabic
}

// CurrencyNouns carries the currency words an AmountFormatter needs for
// noun agreement. Arabic distinguishes singular, dual and plural forms;
// English only needs singular and plural.
type CurrencyNouns struct {
	Singular string
	Dual     string
	Plural   string
}

// AmountFormatter spells a monetary amount out in words for the invoice
// footer. Implementations exist per language.
type AmountFormatter interface {
	Language() Language
	Format(amount decimal.Decimal, unit, subunit CurrencyNouns) (string, error)
}

// FormatterFor returns the formatter for the requested language
func FormatterFor(lang Language) (AmountFormatter, error) {
	switch lang {
	case LanguageEnglish:
		return NewEnglishFormatter(), nil
	case LanguageArabic:
		return NewArabicFormatter(), nil
	default:
		return nil, shared.NewDomainError("INVALID_LANGUAGE", "Unsupported invoice language")
	}
}

// ErrAmountTooLarge is returned for amounts beyond the billions scale,
// the largest either language can spell.
var ErrAmountTooLarge = shared.NewDomainError("AMOUNT_TOO_LARGE", "Amount exceeds the largest spellable scale")

// maxSpellableUnits bounds the whole-unit part to the billions scale.
var maxSpellableUnits = decimal.New(1, 12)

// splitAmount breaks an amount into whole units and cents.
// Negative amounts are not meaningful on an invoice.
func splitAmount(amount decimal.Decimal) (int64, int64, error) {
	if amount.IsNegative() {
		return 0, 0, shared.ErrInvalidAmount
	}
	rounded := amount.Round(2)
	if rounded.GreaterThanOrEqual(maxSpellableUnits) {
		return 0, 0, ErrAmountTooLarge
	}
	units := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(units)).Mul(decimal.NewFromInt(100)).IntPart()
	return units, cents, nil
}
