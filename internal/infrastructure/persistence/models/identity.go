package models

import (
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// TenantModel is the persistence model for the Tenant domain entity
type TenantModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name      string        `gorm:"type:varchar(200);not null"`
	Plan      identity.Plan `gorm:"type:varchar(20);not null;default:'BASIC'"`
	ExpiresAt *time.Time    `gorm:"index"`
	Active    bool          `gorm:"not null;default:true"`
	CreatedAt time.Time     `gorm:"not null"`
	UpdatedAt time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		ID:        m.ID,
		Name:      m.Name,
		Plan:      m.Plan,
		ExpiresAt: m.ExpiresAt,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.ID = t.ID
	m.Name = t.Name
	m.Plan = t.Plan
	m.ExpiresAt = t.ExpiresAt
	m.Active = t.Active
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// UserModel is the persistence model for the User domain entity
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID     *uuid.UUID `gorm:"type:uuid;index"`
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	DisplayName  string     `gorm:"type:varchar(200)"`
	Admin        bool       `gorm:"not null;default:false"`
	Active       bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		ID:           m.ID,
		TenantID:     m.TenantID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Admin:        m.Admin,
		Active:       m.Active,
		LastLoginAt:  m.LastLoginAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.ID = u.ID
	m.TenantID = u.TenantID
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Admin = u.Admin
	m.Active = u.Active
	m.LastLoginAt = u.LastLoginAt
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}
