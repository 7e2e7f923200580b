package models

import (
	"time"
)

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;index" json:"name"`
	Email     *string   `gorm:"uniqueIndex;size:255" json:"email,omitempty"`
	Address   string    `gorm:"size:255" json:"address,omitempty"`
	Phone     string    `gorm:"size:20" json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Invoices  []Invoice `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"invoices,omitempty"`
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customers"
}
