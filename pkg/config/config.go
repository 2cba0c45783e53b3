package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Razorpay     RazorpayConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOLAR_APP_ENV" required:"true"`
	Port         string `envconfig:"SOLAR_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"SOLAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOLAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOLAR_DB_DSN"`
	Driver string `envconfig:"SOLAR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOLAR_DB_HOST"`
	LegacyPort     int    `envconfig:"SOLAR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOLAR_DB_USER"`
	LegacyPassword string `envconfig:"SOLAR_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOLAR_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOLAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOLAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOLAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOLAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOLAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOLAR_REDIS_URL"`
	Address      string        `envconfig:"SOLAR_REDIS_ADDR"`
	Password     string        `envconfig:"SOLAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOLAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOLAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOLAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOLAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOLAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOLAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SOLAR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SOLAR_JWT_ISSUER" default:"energy-solar-backend"`
	ExpirationMinutes int    `envconfig:"SOLAR_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SOLAR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SOLAR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SOLAR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SOLAR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SOLAR_ARGON_KEY_LEN" default:"32"`
}

type RazorpayConfig struct {
	KeyID     string        `envconfig:"SOLAR_RAZORPAY_KEY_ID" required:"true"`
	KeySecret string        `envconfig:"SOLAR_RAZORPAY_KEY_SECRET" required:"true"`
	Currency  string        `envconfig:"SOLAR_RAZORPAY_CURRENCY" default:"INR"`
	BaseURL   string        `envconfig:"SOLAR_RAZORPAY_BASE_URL" default:"https://api.razorpay.com/v1"`
	Timeout   time.Duration `envconfig:"SOLAR_RAZORPAY_TIMEOUT" default:"15s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SOLAR_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SOLAR_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, "sqlite") {
		db.DSN = "file::memory:?cache=shared"
		return nil
	}

	missing := []string{}
	for name, value := range map[string]string{
		"SOLAR_DB_HOST": db.LegacyHost,
		"SOLAR_DB_USER": db.LegacyUser,
		"SOLAR_DB_NAME": db.LegacyName,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either SOLAR_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
