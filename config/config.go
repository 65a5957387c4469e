package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"
)

var DB *sqlx.DB

// CMSConfig holds the landing page cache settings.
type CMSConfig struct {
	Revalidate          time.Duration
	FallbackTTL         time.Duration
	LoadTimeout         time.Duration
	InvalidationChannel string
}

// ServerConfig holds the HTTP settings.
type ServerConfig struct {
	Addr            string
	AllowOrigins    []string
	ShutdownTimeout time.Duration
	JWTSecret       string
}

func InitConfig() error {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("DB_DRIVER", "mysql")
	viper.SetDefault("CMS_REVALIDATE", "60s")
	viper.SetDefault("CMS_FALLBACK_TTL", "5s")
	viper.SetDefault("CMS_LOAD_TIMEOUT", "5s")
	viper.SetDefault("CMS_INVALIDATION_CHANNEL", "cms:invalidate")

	// The .env file is optional; plain environment variables are enough.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	return nil
}

func LoadCMS() CMSConfig {
	return CMSConfig{
		Revalidate:          viper.GetDuration("CMS_REVALIDATE"),
		FallbackTTL:         viper.GetDuration("CMS_FALLBACK_TTL"),
		LoadTimeout:         viper.GetDuration("CMS_LOAD_TIMEOUT"),
		InvalidationChannel: viper.GetString("CMS_INVALIDATION_CHANNEL"),
	}
}

func LoadServer() ServerConfig {
	var origins []string
	for _, o := range strings.Split(viper.GetString("CORS_ALLOW_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return ServerConfig{
		Addr:            viper.GetString("HTTP_ADDR"),
		AllowOrigins:    origins,
		ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
	}
}

// InitDB connects to DATABASE_URL with the DB_DRIVER driver ("mysql" or
// "postgres") and stores the pool in DB.
func InitDB() error {
	driver := viper.GetString("DB_DRIVER")
	dsn := viper.GetString("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	switch driver {
	case "mysql":
		dsn = withMySQLParams(dsn)
	case "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	maxOpenConns := viper.GetInt("DB_MAX_OPEN_CONNS")
	if maxOpenConns == 0 {
		maxOpenConns = 25
	}
	maxIdleConns := viper.GetInt("DB_MAX_IDLE_CONNS")
	if maxIdleConns == 0 {
		maxIdleConns = 10
	}
	connMaxLifetime := viper.GetDuration("DB_CONN_MAX_LIFETIME")
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	connMaxIdleTime := viper.GetDuration("DB_CONN_MAX_IDLE_TIME")
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 1 * time.Minute
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	DB = db
	return nil
}

// withMySQLParams adds the connection parameters the service relies on
// unless the DSN already sets them.
func withMySQLParams(dsn string) string {
	params := []struct{ key, value string }{
		{"parseTime", "true"},
		{"loc", "UTC"},
		{"timeout", "10s"},
		{"readTimeout", "30s"},
		{"writeTimeout", "30s"},
	}

	var extra []string
	for _, p := range params {
		if !strings.Contains(dsn, p.key+"=") {
			extra = append(extra, p.key+"="+p.value)
		}
	}
	if len(extra) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
		if strings.HasSuffix(dsn, "?") || strings.HasSuffix(dsn, "&") {
			sep = ""
		}
	}
	return dsn + sep + strings.Join(extra, "&")
}

// CloseDB closes the database connection gracefully
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
