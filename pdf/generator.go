package pdf

import (
	"bytes"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/yourusername/invoice-system/models"
)

// Company is the static issuer identity printed in the document header.
// It comes from configuration, not from the invoice data.
type Company struct {
	Name    string
	Address string
	Phone   string
}

// Layout constants for a letter page with one-inch margins. Column
// widths sum to the printable width (6.4in).
const (
	margin     = 72.0
	lineHeight = 16.0
	rowHeight  = 22.0

	colDescription = 288.0 // 4in
	colQuantity    = 72.0  // 1in
	colUnitPrice   = 86.4  // 1.2in
	colTotal       = 86.4  // 1.2in
)

// Render produces the paginated PDF document for a resolved invoice.
// It is a pure function of its input: identical invoices render to
// byte-identical output, and item order is preserved as stored.
func Render(invoice *models.Invoice, company Company) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "Letter", "")
	// Pin the document dates so output is reproducible.
	doc.SetCreationDate(time.Unix(0, 0))
	doc.SetModificationDate(time.Unix(0, 0))
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.AddPage()

	// Company header
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, lineHeight+6, company.Name, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, lineHeight, company.Address, "", 1, "L", false, 0, "")
	doc.CellFormat(0, lineHeight, "Phone: "+company.Phone, "", 1, "L", false, 0, "")
	doc.Ln(lineHeight)

	// Invoice metadata
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, lineHeight+4, "Invoice #"+invoice.InvoiceNumber, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, lineHeight, "Date: "+invoice.Date.Format("2006-01-02"), "", 1, "L", false, 0, "")
	doc.CellFormat(0, lineHeight, "Due Date: "+invoice.DueDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	doc.Ln(lineHeight)

	// Bill-to block
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, lineHeight, "Bill To:", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, lineHeight, invoice.Customer.Name, "", 1, "L", false, 0, "")
	if invoice.Customer.Address != "" {
		doc.CellFormat(0, lineHeight, invoice.Customer.Address, "", 1, "L", false, 0, "")
	}
	if invoice.Customer.Email != nil {
		doc.CellFormat(0, lineHeight, *invoice.Customer.Email, "", 1, "L", false, 0, "")
	}
	doc.Ln(lineHeight)

	// Item table header
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(128, 128, 128)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(colDescription, rowHeight, "Description", "1", 0, "C", true, 0, "")
	doc.CellFormat(colQuantity, rowHeight, "Quantity", "1", 0, "C", true, 0, "")
	doc.CellFormat(colUnitPrice, rowHeight, "Unit Price", "1", 0, "C", true, 0, "")
	doc.CellFormat(colTotal, rowHeight, "Total", "1", 1, "C", true, 0, "")

	// Item rows, in stored order
	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(0, 0, 0)
	for _, item := range invoice.Items {
		doc.CellFormat(colDescription, rowHeight, item.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(colQuantity, rowHeight, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		doc.CellFormat(colUnitPrice, rowHeight, money(item.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(colTotal, rowHeight, money(item.Total), "1", 1, "R", false, 0, "")
	}

	// Trailing total row
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(245, 245, 220)
	doc.CellFormat(colDescription, rowHeight, "", "", 0, "L", false, 0, "")
	doc.CellFormat(colQuantity, rowHeight, "", "", 0, "L", false, 0, "")
	doc.CellFormat(colUnitPrice, rowHeight, "Total:", "1", 0, "R", true, 0, "")
	doc.CellFormat(colTotal, rowHeight, money(invoice.TotalAmount), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
