package models

import (
	"github.com/logistics/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Code    string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_code"`
	Name    string                 `gorm:"type:varchar(200);not null"`
	Country string                 `gorm:"type:varchar(100);not null;index"`
	Phone   string                 `gorm:"type:varchar(50);index"`
	Email   string                 `gorm:"type:varchar(200);index"`
	Address string                 `gorm:"type:text"`
	Status  partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes   string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Country:           m.Country,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Country = c.Country
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.Status = c.Status
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
