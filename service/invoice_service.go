package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourusername/invoice-system/config"
	"github.com/yourusername/invoice-system/models"
	"github.com/yourusername/invoice-system/pdf"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxNumberAttempts bounds the regenerate-and-retry loop for invoice
// number collisions before the storage error is surfaced.
const maxNumberAttempts = 3

// InvoiceService is the business core: it validates input, computes
// derived totals and persists through the gorm handle. It holds no
// mutable state across calls.
type InvoiceService struct {
	db     *gorm.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewInvoiceService(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

type CustomerInput struct {
	Name    string
	Email   *string
	Address string
	Phone   string
}

type ItemInput struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateCustomer persists a new customer and returns its ID. The email
// pre-check is an optimization for a friendly message; the unique index
// remains the source of truth under concurrent writes.
func (s *InvoiceService) CreateCustomer(ctx context.Context, in CustomerInput) (uint, error) {
	if in.Name == "" {
		return 0, &ValidationError{Field: "name", Message: "customer name is required"}
	}
	if len(in.Name) > 100 {
		return 0, &ValidationError{Field: "name", Message: "customer name must be at most 100 characters"}
	}
	if len(in.Address) > 255 {
		return 0, &ValidationError{Field: "address", Message: "address must be at most 255 characters"}
	}
	if len(in.Phone) > 20 {
		return 0, &ValidationError{Field: "phone", Message: "phone must be at most 20 characters"}
	}

	email := in.Email
	if email != nil && *email == "" {
		email = nil
	}
	if email != nil {
		if len(*email) > 255 {
			return 0, &ValidationError{Field: "email", Message: "email must be at most 255 characters"}
		}
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Customer{}).
			Where("email = ?", *email).Count(&count).Error; err != nil {
			return 0, persistenceError(err)
		}
		if count > 0 {
			return 0, &ConflictError{Entity: "customer", Field: "email", Value: *email}
		}
	}

	customer := models.Customer{
		Name:    in.Name,
		Email:   email,
		Address: in.Address,
		Phone:   in.Phone,
	}

	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			value := ""
			if email != nil {
				value = *email
			}
			return 0, &ConflictError{Entity: "customer", Field: "email", Value: value}
		}
		return 0, persistenceError(err)
	}

	return customer.ID, nil
}

// CreateInvoice validates the item list, computes totals and writes the
// invoice together with all its items in a single transaction. A unique
// violation on the invoice number regenerates the token and retries the
// whole transaction; no partial invoice is ever visible.
func (s *InvoiceService) CreateInvoice(ctx context.Context, customerID uint, items []ItemInput) (uint, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &NotFoundError{Entity: "customer", ID: customerID}
		}
		return 0, persistenceError(err)
	}

	invoiceItems := make([]models.InvoiceItem, 0, len(items))
	totalAmount := decimal.Zero
	for i, item := range items {
		if err := validateItem(i, item); err != nil {
			return 0, err
		}
		total := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalAmount = totalAmount.Add(total)
		invoiceItems = append(invoiceItems, models.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       total,
		})
	}

	now := time.Now()
	for attempt := 1; ; attempt++ {
		// A failed attempt may have assigned IDs to the associated
		// rows, so each attempt gets a fresh copy of the item set.
		itemsCopy := make([]models.InvoiceItem, len(invoiceItems))
		copy(itemsCopy, invoiceItems)

		invoice := models.Invoice{
			InvoiceNumber: newInvoiceNumber(),
			Date:          now,
			DueDate:       now.AddDate(0, 0, s.cfg.InvoiceDueDays),
			CustomerID:    customerID,
			TotalAmount:   totalAmount,
			Status:        models.StatusDraft,
			Items:         itemsCopy,
		}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(&invoice).Error
		})
		if err == nil {
			return invoice.ID, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < maxNumberAttempts {
			s.logger.Warn("invoice number collision, regenerating",
				zap.String("invoice_number", invoice.InvoiceNumber),
				zap.Int("attempt", attempt))
			continue
		}
		return 0, persistenceError(err)
	}
}

// GetCustomer retrieves a customer by ID.
func (s *InvoiceService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "customer", ID: id}
		}
		return nil, persistenceError(err)
	}
	return &customer, nil
}

// GetInvoice retrieves an invoice with its customer and items. Items
// are returned in insertion order.
func (s *InvoiceService) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_items.id")
		}).
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "invoice", ID: id}
		}
		return nil, persistenceError(err)
	}
	return &invoice, nil
}

// ListCustomers returns all customers ordered by ID.
func (s *InvoiceService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, persistenceError(err)
	}
	return customers, nil
}

// ListInvoices returns all invoices with their customers, ordered by ID.
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.db.WithContext(ctx).Preload("Customer").Order("id").Find(&invoices).Error; err != nil {
		return nil, persistenceError(err)
	}
	return invoices, nil
}

// GeneratePDF renders the invoice document and returns its conventional
// filename together with the PDF bytes. It performs no writes.
func (s *InvoiceService) GeneratePDF(ctx context.Context, invoiceID uint) (string, []byte, error) {
	invoice, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return "", nil, err
	}

	data, err := pdf.Render(invoice, pdf.Company{
		Name:    s.cfg.CompanyName,
		Address: s.cfg.CompanyAddress,
		Phone:   s.cfg.CompanyPhone,
	})
	if err != nil {
		return "", nil, err
	}

	filename := fmt.Sprintf("invoice_%s.pdf", invoice.InvoiceNumber)
	return filename, data, nil
}

func validateItem(index int, item ItemInput) error {
	field := fmt.Sprintf("items[%d]", index)
	if item.Description == "" {
		return &ValidationError{Field: field + ".description", Message: "description is required"}
	}
	if len(item.Description) > 255 {
		return &ValidationError{Field: field + ".description", Message: "description must be at most 255 characters"}
	}
	if item.Quantity <= 0 {
		return &ValidationError{Field: field + ".quantity", Message: "quantity must be greater than 0"}
	}
	if !item.UnitPrice.IsPositive() {
		return &ValidationError{Field: field + ".unit_price", Message: "unit price must be greater than 0"}
	}
	return nil
}

// newInvoiceNumber draws a short high-entropy token, e.g. INV-3F2A9C01.
// Uniqueness is enforced by the index on invoices.invoice_number.
func newInvoiceNumber() string {
	u := uuid.New()
	return "INV-" + strings.ToUpper(hex.EncodeToString(u[:4]))
}
