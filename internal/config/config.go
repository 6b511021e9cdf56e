package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every external setting the notifier needs. Load validates
// the required settings up front so the process refuses to start half
// configured instead of failing mid-pipeline.
type Config struct {
	// PostgreSQL connection to the accounting database.
	PostgresHost     string
	PostgresPort     int
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string

	// Evolution API messaging gateway.
	EvolutionAPIURL   string
	EvolutionAPIKey   string
	EvolutionInstance string

	// Destination number for every notification.
	WhatsAppNumber string

	// Continuous posting monitor.
	NotifiedLogPath string
	MonitorWindow   time.Duration
	MonitorLimit    int

	// Optional dispatch-audit events. Empty disables publishing.
	KafkaBrokers []string
}

// Load reads .env (when present) and the environment, applies the legacy
// ODOO_URL host:port fallback, and validates required settings. All missing
// settings are reported in a single error.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		PostgresHost:      os.Getenv("POSTGRES_HOST"),
		PostgresDB:        envOr("POSTGRES_DB", os.Getenv("ODOO_DB")),
		PostgresUser:      envOr("POSTGRES_USER", os.Getenv("ODOO_USERNAME")),
		PostgresPassword:  envOr("POSTGRES_PASSWORD", os.Getenv("ODOO_PASSWORD")),
		EvolutionAPIURL:   strings.TrimRight(os.Getenv("EVOLUTION_API_URL"), "/"),
		EvolutionAPIKey:   os.Getenv("EVOLUTION_API_KEY"),
		EvolutionInstance: os.Getenv("EVOLUTION_INSTANCE"),
		WhatsAppNumber:    os.Getenv("WHATSAPP_NUMBER"),
		NotifiedLogPath:   envOr("NOTIFIED_LOG_PATH", "notified_moves.log"),
		MonitorWindow:     24 * time.Hour,
		MonitorLimit:      100,
	}

	cfg.PostgresPort = 5432
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid POSTGRES_PORT %q: %w", v, err)
		}
		cfg.PostgresPort = port
	}

	// Older deployments only set ODOO_URL; take host and port from it when
	// the dedicated variables are absent.
	if host, port, ok := splitHostPort(os.Getenv("ODOO_URL")); ok {
		if cfg.PostgresHost == "" {
			cfg.PostgresHost = host
		}
		if os.Getenv("POSTGRES_PORT") == "" && port != 0 {
			cfg.PostgresPort = port
		}
	}

	if v := os.Getenv("MONITOR_WINDOW_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("config: invalid MONITOR_WINDOW_HOURS %q", v)
		}
		cfg.MonitorWindow = time.Duration(hours) * time.Hour
	}
	if v := os.Getenv("MONITOR_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("config: invalid MONITOR_LIMIT %q", v)
		}
		cfg.MonitorLimit = limit
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, broker := range strings.Split(v, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	required := map[string]string{
		"POSTGRES_HOST":      c.PostgresHost,
		"POSTGRES_DB":        c.PostgresDB,
		"POSTGRES_USER":      c.PostgresUser,
		"POSTGRES_PASSWORD":  c.PostgresPassword,
		"EVOLUTION_API_URL":  c.EvolutionAPIURL,
		"EVOLUTION_API_KEY":  c.EvolutionAPIKey,
		"EVOLUTION_INSTANCE": c.EvolutionInstance,
		"WHATSAPP_NUMBER":    c.WhatsAppNumber,
	}
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.New("config: missing required settings: " + strings.Join(missing, ", "))
	}
	return nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=disable connect_timeout=10",
		c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresUser, c.PostgresPassword,
	)
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// splitHostPort extracts host and port from a URL-ish value such as
// "http://db.example.com:5432" or "db.example.com".
func splitHostPort(raw string) (string, int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", 0, false
	}
	if idx := strings.Index(raw, "://"); idx >= 0 {
		raw = raw[idx+3:]
	}
	raw = strings.TrimSuffix(raw, "/")
	host, portStr, found := strings.Cut(raw, ":")
	if !found {
		return raw, 0, true
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 0, true
	}
	return host, port, true
}
