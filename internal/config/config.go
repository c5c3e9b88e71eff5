package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port   string // サーバーポート（8080）
	GoEnv  string // dev/prod
	AppURL string // フロントURL（メール本文・CORSで使う）

	DBDriver         string // postgres / sqlite
	DatabaseURL      string // あれば最優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string
	SQLitePath       string

	JWTSecret        string
	AuthTokenTTL     time.Duration
	CookieSecure     bool
	CartCookieMaxAge time.Duration // cartIdの寿命（30日）

	LogLevel    string // debug/info/warn/error
	LogEncoding string // json/console

	UploadDir      string
	UploadMaxBytes int64

	MailAPIURL string // 空ならログ出力のみ
	MailAPIKey string
	MailFrom   string
	AppName    string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Loadは環境変数から設定を読む
func Load() (Config, error) {
	pgPort, err := getenvInt("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	tokenTTL, err := getenvDuration("AUTH_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cartAge, err := getenvDuration("CART_COOKIE_MAX_AGE", 30*24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	uploadMax, err := getenvInt("UPLOAD_MAX_BYTES", 5<<20)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:   getenv("PORT", "8080"),
		GoEnv:  getenv("GO_ENV", "dev"),
		AppURL: getenv("APP_URL", "http://localhost:3000"),

		DBDriver:         strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "storefront"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getenv("SQLITE_PATH", "storefront.db"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		AuthTokenTTL:     tokenTTL,
		CookieSecure:     getenvBool("COOKIE_SECURE", false),
		CartCookieMaxAge: cartAge,

		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogEncoding: getenv("LOG_ENCODING", "json"),

		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: int64(uploadMax),

		MailAPIURL: os.Getenv("MAIL_API_URL"),
		MailAPIKey: os.Getenv("MAIL_API_KEY"),
		MailFrom:   getenv("MAIL_FROM", "onboarding@resend.dev"),
		AppName:    getenv("APP_NAME", "Storefront"),
	}

	//必須チェック
	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return Config{}, fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverSQLite)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProd() {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = "dev_secret_change_me"
	}
	if cfg.MailAPIURL != "" && cfg.MailAPIKey == "" {
		return Config{}, fmt.Errorf("MAIL_API_KEY is required when MAIL_API_URL is set")
	}

	return cfg, nil
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// PostgresDSN はDATABASE_URLかPOSTGRES_*からDSNを組み立てる
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func getenvBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
