package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. Only StatusDraft is assigned at creation; the other
// values are declared for a future status workflow.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"uniqueIndex;size:50;not null" json:"invoice_number"`
	Date          time.Time       `gorm:"not null" json:"date"`
	DueDate       time.Time       `json:"due_date"`
	CustomerID    uint            `gorm:"not null" json:"customer_id"`
	Customer      Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status        string          `gorm:"size:20;not null;default:'draft'" json:"status"`
	Notes         string          `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName overrides the table name
func (Invoice) TableName() string {
	return "invoices"
}
