package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/yourusername/invoice-system/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port           string
	Env            string
	DatabaseURL    string
	JWTSecret      string
	PDFOutputDir   string
	InvoiceDueDays int
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	return &Config{
		Port:           os.Getenv("PORT"),
		Env:            getEnvOrDefault("ENV", "development"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		PDFOutputDir:   getEnvOrDefault("PDF_OUTPUT_DIR", "pdfs"),
		InvoiceDueDays: getEnvIntOrDefault("INVOICE_DUE_DAYS", 30),
		CompanyName:    getEnvOrDefault("COMPANY_NAME", "Your Company Name"),
		CompanyAddress: getEnvOrDefault("COMPANY_ADDRESS", "123 Business Street"),
		CompanyPhone:   getEnvOrDefault("COMPANY_PHONE", "(555) 555-5555"),
	}, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	// TranslateError maps driver unique-constraint failures to
	// gorm.ErrDuplicatedKey, which the service layer relies on.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Customer{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
