package models

import (
	"github.com/logistics/backend/internal/domain/finance"
)

// SettingModel is the persistence model for a key-value application setting.
type SettingModel struct {
	BaseModel
	Key         string `gorm:"type:varchar(100);not null;uniqueIndex:idx_setting_key"`
	Value       string `gorm:"type:text;not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}

// ToDomain converts the persistence model to a domain Setting.
func (m *SettingModel) ToDomain() *finance.Setting {
	return &finance.Setting{
		BaseEntity:  m.BaseModel.ToDomain(),
		Key:         m.Key,
		Value:       m.Value,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Setting.
func (m *SettingModel) FromDomain(s *finance.Setting) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Key = s.Key
	m.Value = s.Value
	m.Description = s.Description
}

// SettingModelFromDomain creates a new persistence model from a domain Setting.
func SettingModelFromDomain(s *finance.Setting) *SettingModel {
	m := &SettingModel{}
	m.FromDomain(s)
	return m
}
