package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/invoice-system/models"
)

func TestCreateInvoiceEndpoint(t *testing.T) {
	router, db := setupRouter(t, testConfig(t))

	w := postJSON(router, "/customers", gin.H{"name": "Acme", "email": "a@acme.com"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("Valid Request", func(t *testing.T) {
		w := postJSON(router, "/invoices", gin.H{
			"customer_id": 1,
			"items": []gin.H{
				{"description": "Widget", "quantity": 2, "unit_price": "10.00"},
			},
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Invoice created successfully")

		var invoice models.Invoice
		require.NoError(t, db.Preload("Items").First(&invoice).Error)
		assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromFloat(20.00)),
			"expected 20.00, got %s", invoice.TotalAmount)
		require.Len(t, invoice.Items, 1)
	})

	t.Run("Unknown Customer", func(t *testing.T) {
		w := postJSON(router, "/invoices", gin.H{
			"customer_id": 9999,
			"items": []gin.H{
				{"description": "Widget", "quantity": 1, "unit_price": "10.00"},
			},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid Quantity", func(t *testing.T) {
		var before int64
		db.Model(&models.Invoice{}).Count(&before)

		w := postJSON(router, "/invoices", gin.H{
			"customer_id": 1,
			"items": []gin.H{
				{"description": "Widget", "quantity": 0, "unit_price": "10.00"},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var after int64
		db.Model(&models.Invoice{}).Count(&after)
		assert.Equal(t, before, after)
	})
}

func TestGetInvoiceEndpoint(t *testing.T) {
	router, _ := setupRouter(t, testConfig(t))

	w := postJSON(router, "/customers", gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(router, "/invoices", gin.H{
		"customer_id": 1,
		"items": []gin.H{
			{"description": "Item1", "quantity": 2, "unit_price": "10.00"},
			{"description": "Item2", "quantity": 1, "unit_price": "20.00"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("Found With Items", func(t *testing.T) {
		w := getPath(router, "/invoices/1")
		assert.Equal(t, http.StatusOK, w.Code)

		var invoice models.Invoice
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invoice))
		assert.Equal(t, "Acme", invoice.Customer.Name)
		require.Len(t, invoice.Items, 2)
		assert.Equal(t, "Item1", invoice.Items[0].Description)
		assert.Equal(t, "Item2", invoice.Items[1].Description)
	})

	t.Run("Not Found", func(t *testing.T) {
		w := getPath(router, "/invoices/999")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("List", func(t *testing.T) {
		w := getPath(router, "/invoices")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "INV-")
	})
}

func TestGenerateInvoicePDFEndpoint(t *testing.T) {
	cfg := testConfig(t)
	router, db := setupRouter(t, cfg)

	w := postJSON(router, "/customers", gin.H{"name": "Acme", "email": "a@acme.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(router, "/invoices", gin.H{
		"customer_id": 1,
		"items": []gin.H{
			{"description": "Widget", "quantity": 2, "unit_price": "10.00"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("Writes Artifact", func(t *testing.T) {
		w := getPath(router, "/invoices/1/pdf")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Filename string `json:"filename"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		var invoice models.Invoice
		require.NoError(t, db.First(&invoice).Error)
		assert.Equal(t, "invoice_"+invoice.InvoiceNumber+".pdf", resp.Filename)

		data, err := os.ReadFile(filepath.Join(cfg.PDFOutputDir, resp.Filename))
		require.NoError(t, err)
		assert.Greater(t, len(data), 0)
	})

	t.Run("Not Found", func(t *testing.T) {
		w := getPath(router, "/invoices/999/pdf")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
