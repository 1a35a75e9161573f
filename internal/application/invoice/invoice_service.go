package invoice

import (
	"context"

	"github.com/google/uuid"

	appfinance "github.com/logistics/backend/internal/application/finance"
	"github.com/logistics/backend/internal/domain/finance"
	"github.com/logistics/backend/internal/domain/invoice"
	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/partner"
	"github.com/logistics/backend/internal/domain/shared/valueobject"
)

// InvoiceService assembles the printable invoice view for an order.
// The exchange rate is snapshotted once per invoice so every converted
// figure on the page uses the same rate, even if the setting changes
// mid-render.
type InvoiceService struct {
	orderRepo    order.Repository
	customerRepo partner.CustomerRepository
	settings     *appfinance.SettingsService
	converter    *finance.CurrencyConverter
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	orderRepo order.Repository,
	customerRepo partner.CustomerRepository,
	settings *appfinance.SettingsService,
	converter *finance.CurrencyConverter,
) *InvoiceService {
	return &InvoiceService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		settings:     settings,
		converter:    converter,
	}
}

// GetInvoice builds the invoice view for an order in the requested
// language
func (s *InvoiceService) GetInvoice(ctx context.Context, orderID uuid.UUID, lang invoice.Language) (*InvoiceResponse, error) {
	formatter, err := invoice.FormatterFor(lang)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, o.CustomerID)
	if err != nil {
		return nil, err
	}

	// one rate snapshot for the whole invoice
	rate, err := s.settings.ReadRateSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	total := s.converter.ToDisplay(valueobject.NewMoneyUSD(o.TotalAmount), rate)
	downPayment := s.converter.ToDisplay(valueobject.NewMoneyUSD(o.DownPayment), rate)
	remaining := s.converter.ToDisplay(valueobject.NewMoneyUSD(o.RemainingBalance), rate)

	unit, subunit := currencyNouns(lang, total.Currency())
	totalInWords, err := formatter.Format(total.Amount(), unit, subunit)
	if err != nil {
		return nil, err
	}
	remainingInWords, err := formatter.Format(remaining.Amount(), unit, subunit)
	if err != nil {
		return nil, err
	}

	lines := make([]InvoiceLineResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		lines[i] = InvoiceLineResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   s.converter.ToDisplay(valueobject.NewMoneyUSD(item.UnitPrice), rate).Amount(),
			TotalPrice:  s.converter.ToDisplay(valueobject.NewMoneyUSD(item.TotalPrice), rate).Amount(),
		}
	}

	return &InvoiceResponse{
		OrderID:          o.ID,
		OrderNumber:      o.OrderNumber,
		IssuedAt:         o.CreatedAt,
		Language:         string(lang),
		CustomerName:     customer.Name,
		CustomerCountry:  customer.Country,
		CustomerAddress:  customer.Address,
		Currency:         string(total.Currency()),
		Lines:            lines,
		ItemsSubtotal:    s.converter.ToDisplay(valueobject.NewMoneyUSD(o.ItemsSubtotal()), rate).Amount(),
		ShippingCost:     s.converter.ToDisplay(valueobject.NewMoneyUSD(o.ShippingCost), rate).Amount(),
		Commission:       s.converter.ToDisplay(valueobject.NewMoneyUSD(o.Commission), rate).Amount(),
		TotalAmount:      total.Amount(),
		DownPayment:      downPayment.Amount(),
		RemainingBalance: remaining.Amount(),
		TotalInWords:     totalInWords,
		RemainingInWords: remainingInWords,
	}, nil
}

// currencyNouns returns the spelled currency nouns for the invoice
// language and display currency
func currencyNouns(lang invoice.Language, currency valueobject.Currency) (invoice.CurrencyNouns, invoice.CurrencyNouns) {
	if lang == invoice.LanguageArabic {
		if currency == valueobject.LYD {
			return invoice.CurrencyNouns{Singular: "دينار", Dual: "ديناران", Plural: "دنانير"},
				invoice.CurrencyNouns{Singular: "درهم", Dual: "درهمان", Plural: "دراهم"}
		}
		return invoice.CurrencyNouns{Singular: "دولار", Dual: "دولاران", Plural: "دولارات"},
			invoice.CurrencyNouns{Singular: "سنت", Dual: "سنتان", Plural: "سنتات"}
	}

	if currency == valueobject.LYD {
		return invoice.CurrencyNouns{Singular: "Dinar", Plural: "Dinars"},
			invoice.CurrencyNouns{Singular: "Dirham", Plural: "Dirhams"}
	}
	return invoice.CurrencyNouns{Singular: "Dollar", Plural: "Dollars"},
		invoice.CurrencyNouns{Singular: "Cent", Plural: "Cents"}
}
