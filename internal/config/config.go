package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Printer   PrinterConfig
	Receipt   ReceiptConfig
	Store     StoreConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// DatabaseConfig describes the optional print-journal database. When Enabled
// is false the service runs without journaling or idempotency caching.
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type PrinterConfig struct {
	// Type is "usb", "network", "file", or "none".
	Type    string
	USBPath string
	Address string
}

// ReceiptConfig holds the layout and policy knobs of the receipt engine.
type ReceiptConfig struct {
	Width            int
	MaxLines         int
	FeedLines        int
	Cut              bool
	BoldHeader       bool
	DoubleWidthTotal bool
	// VATMode is "inclusive" (entered prices include VAT, subtotal derived as
	// total/(1+rate)) or "exclusive" (per-item net prices plus VAT).
	VATMode string
	// VATRate is the deployment default rate fraction for templates without
	// an override.
	VATRate string
	// Barcode enables the receipt-ID barcode directive in the footer.
	Barcode bool
	// SimulateCard appends an illustrative card-transaction block to
	// card-present payments when the caller supplies none.
	SimulateCard  bool
	LogoMaxWidth  int
	LogoMaxHeight int
}

// StoreConfig locates the file-backed stores.
type StoreConfig struct {
	TemplatesDir string
	LogosDir     string
	SettingsFile string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "kuitti-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_ENABLED", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "kuitti")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Europe/Helsinki")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("RECEIPT_WIDTH", 42)
	viper.SetDefault("RECEIPT_MAX_LINES", 200)
	viper.SetDefault("RECEIPT_FEED_LINES", 3)
	viper.SetDefault("RECEIPT_CUT", true)
	viper.SetDefault("RECEIPT_BOLD_HEADER", true)
	viper.SetDefault("RECEIPT_DOUBLE_WIDTH_TOTAL", false)
	viper.SetDefault("RECEIPT_VAT_MODE", "inclusive")
	viper.SetDefault("RECEIPT_VAT_RATE", "0.24")
	viper.SetDefault("RECEIPT_BARCODE", false)
	viper.SetDefault("RECEIPT_SIMULATE_CARD", false)
	viper.SetDefault("LOGO_MAX_WIDTH", 384)
	viper.SetDefault("LOGO_MAX_HEIGHT", 240)
	viper.SetDefault("TEMPLATES_DIR", "templates/companies")
	viper.SetDefault("LOGOS_DIR", "templates/logos")
	viper.SetDefault("SETTINGS_FILE", "config/settings.yaml")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{})
	viper.SetDefault("CORS_ALLOWED_METHODS", []string{})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 10)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
		},
		Receipt: ReceiptConfig{
			Width:            viper.GetInt("RECEIPT_WIDTH"),
			MaxLines:         viper.GetInt("RECEIPT_MAX_LINES"),
			FeedLines:        viper.GetInt("RECEIPT_FEED_LINES"),
			Cut:              viper.GetBool("RECEIPT_CUT"),
			BoldHeader:       viper.GetBool("RECEIPT_BOLD_HEADER"),
			DoubleWidthTotal: viper.GetBool("RECEIPT_DOUBLE_WIDTH_TOTAL"),
			VATMode:          viper.GetString("RECEIPT_VAT_MODE"),
			VATRate:          viper.GetString("RECEIPT_VAT_RATE"),
			Barcode:          viper.GetBool("RECEIPT_BARCODE"),
			SimulateCard:     viper.GetBool("RECEIPT_SIMULATE_CARD"),
			LogoMaxWidth:     viper.GetInt("LOGO_MAX_WIDTH"),
			LogoMaxHeight:    viper.GetInt("LOGO_MAX_HEIGHT"),
		},
		Store: StoreConfig{
			TemplatesDir: viper.GetString("TEMPLATES_DIR"),
			LogosDir:     viper.GetString("LOGOS_DIR"),
			SettingsFile: viper.GetString("SETTINGS_FILE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

// DSN builds the postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
