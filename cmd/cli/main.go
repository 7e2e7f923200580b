package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/invoice-system/config"
	"github.com/yourusername/invoice-system/logger"
	"github.com/yourusername/invoice-system/service"
)

func printMenu() {
	fmt.Println("\n=== Invoice Generator System ===")
	fmt.Println("1. Add Customer")
	fmt.Println("2. Create Invoice")
	fmt.Println("3. Generate PDF for Invoice")
	fmt.Println("4. List All Customers")
	fmt.Println("5. List All Invoices")
	fmt.Println("6. Exit")
	fmt.Println("==============================")
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := config.InitDB(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	svc := service.NewInvoiceService(db, cfg, log)
	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	for {
		printMenu()
		choice := prompt(reader, "Enter your choice (1-6): ")

		switch choice {
		case "1":
			addCustomer(ctx, reader, svc)
		case "2":
			createInvoice(ctx, reader, svc)
		case "3":
			generatePDF(ctx, reader, svc, cfg.PDFOutputDir)
		case "4":
			listCustomers(ctx, svc)
		case "5":
			listInvoices(ctx, svc)
		case "6":
			fmt.Println("\nGoodbye!")
			return
		default:
			fmt.Println("\nInvalid choice. Please try again.")
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func addCustomer(ctx context.Context, reader *bufio.Reader, svc *service.InvoiceService) {
	fmt.Println("\nEnter Customer Details:")
	name := prompt(reader, "Name: ")
	email := prompt(reader, "Email: ")
	address := prompt(reader, "Address: ")
	phone := prompt(reader, "Phone: ")

	in := service.CustomerInput{Name: name, Address: address, Phone: phone}
	if email != "" {
		in.Email = &email
	}

	id, err := svc.CreateCustomer(ctx, in)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}
	fmt.Printf("\nCustomer created successfully! ID: %d\n", id)
}

func createInvoice(ctx context.Context, reader *bufio.Reader, svc *service.InvoiceService) {
	if !listCustomers(ctx, svc) {
		fmt.Println("Please add a customer first.")
		return
	}

	customerID, err := strconv.ParseUint(prompt(reader, "\nEnter Customer ID from the list above: "), 10, 32)
	if err != nil {
		fmt.Println("Invalid input. Please enter a number.")
		return
	}

	items := collectItems(reader)
	if len(items) == 0 {
		fmt.Println("\nNo items added. Invoice creation cancelled.")
		return
	}

	id, err := svc.CreateInvoice(ctx, uint(customerID), items)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}
	fmt.Printf("\nInvoice created successfully! ID: %d\n", id)
	fmt.Println("You can now generate a PDF for this invoice using option 3.")
}

func collectItems(reader *bufio.Reader) []service.ItemInput {
	var items []service.ItemInput
	for {
		fmt.Println("\nAdd Invoice Item:")
		description := prompt(reader, "Description (or press enter to finish): ")
		if description == "" {
			break
		}

		quantity, err := strconv.Atoi(prompt(reader, "Quantity: "))
		if err != nil {
			fmt.Println("Invalid input. Please enter a number for quantity.")
			continue
		}
		if quantity <= 0 {
			fmt.Println("Quantity must be greater than 0")
			continue
		}

		unitPrice, err := decimal.NewFromString(prompt(reader, "Unit Price: $"))
		if err != nil {
			fmt.Println("Invalid input. Please enter a number for price.")
			continue
		}
		if !unitPrice.IsPositive() {
			fmt.Println("Price must be greater than 0")
			continue
		}

		items = append(items, service.ItemInput{
			Description: description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		})
		fmt.Printf("Item added: %d x %s at $%s each\n", quantity, description, unitPrice.StringFixed(2))

		if strings.ToLower(prompt(reader, "\nAdd another item? (y/n): ")) != "y" {
			break
		}
	}
	return items
}

func generatePDF(ctx context.Context, reader *bufio.Reader, svc *service.InvoiceService, outputDir string) {
	if !listInvoices(ctx, svc) {
		fmt.Println("Create an invoice first.")
		return
	}

	invoiceID, err := strconv.ParseUint(prompt(reader, "\nEnter Invoice ID from the list above: "), 10, 32)
	if err != nil {
		fmt.Println("Invalid input. Please enter a number.")
		return
	}

	filename, data, err := svc.GeneratePDF(ctx, uint(invoiceID))
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}
	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}
	fmt.Printf("\nPDF generated successfully: %s\n", path)
}

func listCustomers(ctx context.Context, svc *service.InvoiceService) bool {
	customers, err := svc.ListCustomers(ctx)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return false
	}
	if len(customers) == 0 {
		fmt.Println("\nNo customers found in the database.")
		return false
	}

	fmt.Println("\nAvailable Customers:")
	fmt.Println("ID  | Name                 | Email")
	fmt.Println(strings.Repeat("-", 50))
	for _, c := range customers {
		email := ""
		if c.Email != nil {
			email = *c.Email
		}
		fmt.Printf("%-3d | %-20s | %s\n", c.ID, truncate(c.Name, 20), email)
	}
	return true
}

func listInvoices(ctx context.Context, svc *service.InvoiceService) bool {
	invoices, err := svc.ListInvoices(ctx)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return false
	}
	if len(invoices) == 0 {
		fmt.Println("\nNo invoices found.")
		return false
	}

	fmt.Println("\nInvoices:")
	fmt.Println("ID  | Invoice Number    | Customer Name        | Total Amount")
	fmt.Println(strings.Repeat("-", 65))
	for _, inv := range invoices {
		fmt.Printf("%-3d | %-16s | %-18s | $%s\n",
			inv.ID, inv.InvoiceNumber, truncate(inv.Customer.Name, 18), inv.TotalAmount.StringFixed(2))
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
