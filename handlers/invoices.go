package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/invoice-system/config"
	"github.com/yourusername/invoice-system/service"
)

type InvoiceHandler struct {
	service *service.InvoiceService
	config  *config.Config
}

func NewInvoiceHandler(svc *service.InvoiceService, cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		service: svc,
		config:  cfg,
	}
}

type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	CustomerID uint                 `json:"customer_id" binding:"required"`
	Items      []InvoiceItemRequest `json:"items"`
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]service.ItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	id, err := h.service.CreateInvoice(c.Request.Context(), req.CustomerID, items)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Invoice created successfully"})
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	invoice, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GenerateInvoicePDF renders the invoice document, stores it in the
// configured output directory and reports the filename.
func (h *InvoiceHandler) GenerateInvoicePDF(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	filename, data, err := h.service.GeneratePDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if err := os.MkdirAll(h.config.PDFOutputDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create output directory"})
		return
	}
	if err := os.WriteFile(filepath.Join(h.config.PDFOutputDir, filename), data, 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write PDF file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"filename": filename, "message": "PDF generated successfully"})
}
