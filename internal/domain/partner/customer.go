package partner

import (
	"strings"
	"time"

	"github.com/logistics/backend/internal/domain/shared"
)

// CustomerStatus represents the lifecycle status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

// IsValid checks if the status is a valid CustomerStatus
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive:
		return true
	}
	return false
}

// Customer represents a customer aggregate root.
// A customer aggregates zero or more orders. It carries no stored financial
// aggregates: totals, down payments and balances are always derived live from
// its orders at read time.
type Customer struct {
	shared.BaseAggregateRoot
	Code    string
	Name    string
	Country string // drives commission tier lookup for the customer's orders
	Phone   string
	Email   string
	Address string
	Status  CustomerStatus
	Notes   string
}

// NewCustomer creates a new customer
func NewCustomer(code, name, country string) (*Customer, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Customer code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if strings.TrimSpace(country) == "" {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "Customer country cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Country:           strings.TrimSpace(country),
		Status:            CustomerStatusActive,
	}, nil
}

// UpdateContact updates the customer's contact details
func (c *Customer) UpdateContact(phone, email, address string) {
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
}

// Rename changes the customer name
func (c *Customer) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

// ChangeCountry changes the country used for commission tier lookup.
// Existing orders keep the commission computed at their entry time;
// only subsequent recomputations pick up the new country.
func (c *Customer) ChangeCountry(country string) error {
	if strings.TrimSpace(country) == "" {
		return shared.NewDomainError("INVALID_COUNTRY", "Customer country cannot be empty")
	}
	c.Country = strings.TrimSpace(country)
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the customer inactive
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
}

// Activate marks the customer active
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// SetNotes sets free-form notes on the customer
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
}
