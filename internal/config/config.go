package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"
	StoreMongoDB  = "mongodb"
)

// Sheet sinks accepted by SHEET_SINK.
const (
	SinkForward = "forward"
	SinkAPI     = "api"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	Forwarding ForwardingConfig
	Store      StoreConfig
	Sheets     SheetsConfig
	WhatsApp   WhatsAppConfig
	Billing    BillingConfig
	Reporting  ReportingConfig
	Console    ConsoleConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// ForwardingConfig holds the secrets consumed by the /api/add-data endpoint.
// They are checked per request, not at startup.
type ForwardingConfig struct {
	SecretKey  string
	WebhookURL string
}

// Configured reports whether both the secret and the webhook URL are present.
func (c ForwardingConfig) Configured() bool {
	return c.SecretKey != "" && c.WebhookURL != ""
}

// StoreConfig selects and configures the customer and bill store.
type StoreConfig struct {
	Driver      string
	SupabaseURL string
	SupabaseKey string
	PostgresDSN string
	MongoURI    string
	MongoDBName string
}

// SheetsConfig configures the spreadsheet sink used by submissions.
type SheetsConfig struct {
	Sink            string
	ForwardBaseURL  string
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// WhatsAppConfig contains deep link settings and optional Cloud API credentials.
type WhatsAppConfig struct {
	CountryCode   string
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	OwnerNumber   string
}

// CloudAPIEnabled reports whether messages can be sent directly through the Cloud API.
func (c WhatsAppConfig) CloudAPIEnabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != ""
}

// BillingConfig holds the business identity printed on bills.
type BillingConfig struct {
	DefaultPricePerLiter float64
	BusinessName         string
	Tagline              string
	ProductName          string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// ConsoleConfig holds settings used only by the operator console.
type ConsoleConfig struct {
	LogFile string
	PDFDir  string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	price, err := getenvFloat("DEFAULT_PRICE_PER_LITER", 50)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getenvWithDefault("APP_PORT", "8080"),
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Forwarding: ForwardingConfig{
			SecretKey:  os.Getenv("SECRET_KEY"),
			WebhookURL: os.Getenv("GOOGLE_SHEET_WEBAPP_URL"),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getenvWithDefault("STORE_DRIVER", StoreSupabase)),
			SupabaseURL: os.Getenv("SUPABASE_URL"),
			SupabaseKey: os.Getenv("SUPABASE_KEY"),
			PostgresDSN: os.Getenv("DATABASE_URL"),
			MongoURI:    os.Getenv("MONGODB_URI"),
			MongoDBName: getenvWithDefault("MONGODB_DB_NAME", "milkbill"),
		},
		Sheets: SheetsConfig{
			Sink:            strings.ToLower(getenvWithDefault("SHEET_SINK", SinkForward)),
			ForwardBaseURL:  getenvWithDefault("FORWARD_BASE_URL", "http://localhost:8080"),
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Bills!A:F"),
		},
		WhatsApp: WhatsAppConfig{
			CountryCode:   getenvWithDefault("WHATSAPP_COUNTRY_CODE", "91"),
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			OwnerNumber:   os.Getenv("WHATSAPP_OWNER_NUMBER"),
		},
		Billing: BillingConfig{
			DefaultPricePerLiter: price,
			BusinessName:         getenvWithDefault("BUSINESS_NAME", "Shreenathji Gir Gaushala"),
			Tagline:              getenvWithDefault("BUSINESS_TAGLINE", "Fresh Milk Delivery Service"),
			ProductName:          getenvWithDefault("PRODUCT_NAME", "Fresh Gir Cow Milk"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 8 1 * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
		Console: ConsoleConfig{
			LogFile: getenvWithDefault("BILLDESK_LOG_FILE", "billdesk.log"),
			PDFDir:  getenvWithDefault("BILLDESK_PDF_DIR", "."),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Driver {
	case StoreSupabase:
		if c.Store.SupabaseURL == "" {
			return errors.New("SUPABASE_URL must be provided")
		}
		if c.Store.SupabaseKey == "" {
			return errors.New("SUPABASE_KEY must be provided")
		}
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("DATABASE_URL must be provided")
		}
	case StoreMongoDB:
		if c.Store.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.Store.MongoDBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Sheets.Sink {
	case SinkForward:
		if c.Sheets.ForwardBaseURL == "" {
			return errors.New("FORWARD_BASE_URL must not be empty")
		}
	case SinkAPI:
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided")
		}
		if c.Sheets.Range == "" {
			return errors.New("GOOGLE_SHEET_RANGE must not be empty")
		}
	default:
		return fmt.Errorf("unsupported SHEET_SINK %q", c.Sheets.Sink)
	}

	if c.WhatsApp.CountryCode == "" {
		return errors.New("WHATSAPP_COUNTRY_CODE must not be empty")
	}

	if c.Billing.DefaultPricePerLiter < 0 {
		return errors.New("DEFAULT_PRICE_PER_LITER must not be negative")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
