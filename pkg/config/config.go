package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
	Webhook       WebhookConfig
	Leads         LeadsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	cfg.Leads.Statuses = normalizeList(cfg.Leads.Statuses, strings.ToUpper)
	if len(cfg.Leads.Statuses) == 0 {
		return nil, fmt.Errorf("%s must list at least one status", EnvLeadStatuses)
	}
	cfg.CORS.AllowedOrigins = normalizeList(cfg.CORS.AllowedOrigins, nil)
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LEADFLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"LEADFLOW_APP_PORT" default:"4000"`
	LogLevel     string `envconfig:"LEADFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LEADFLOW_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"LEADFLOW_LOG_FORMAT" default:"json"`
}

// ConsoleLogs reports whether logs should use the human readable writer.
func (a AppConfig) ConsoleLogs() bool {
	return strings.EqualFold(strings.TrimSpace(a.LogFormat), "console")
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "development")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	DSN    string `envconfig:"LEADFLOW_DB_DSN"`
	Driver string `envconfig:"LEADFLOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LEADFLOW_DB_HOST"`
	LegacyPort     int    `envconfig:"LEADFLOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LEADFLOW_DB_USER"`
	LegacyPassword string `envconfig:"LEADFLOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"LEADFLOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"LEADFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LEADFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LEADFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LEADFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LEADFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the datasource is a SQLite file.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

// RedisConfig is optional; leaving both URL and Address empty disables rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"LEADFLOW_REDIS_URL"`
	Address      string        `envconfig:"LEADFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"LEADFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"LEADFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LEADFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LEADFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LEADFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LEADFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LEADFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"LEADFLOW_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LEADFLOW_JWT_ISSUER" default:"leadflow"`
	ExpirationMinutes int    `envconfig:"LEADFLOW_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LEADFLOW_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LEADFLOW_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LEADFLOW_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LEADFLOW_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LEADFLOW_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow         time.Duration `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit     int           `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit        int           `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	BootstrapWindow     time.Duration `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_BOOTSTRAP_WINDOW" default:"5m"`
	BootstrapEmailLimit int           `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_BOOTSTRAP_EMAIL_LIMIT" default:"3"`
	BootstrapIPLimit    int           `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_BOOTSTRAP_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LEADFLOW_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LEADFLOW_CORS_ALLOWED_ORIGINS" default:"*"`
}

type WebhookConfig struct {
	Token                string `envconfig:"LEADFLOW_WEBHOOK_TOKEN"`
	DefaultAssigneeEmail string `envconfig:"LEADFLOW_WEBHOOK_DEFAULT_ASSIGNEE_EMAIL"`
	DefaultSource        string `envconfig:"LEADFLOW_WEBHOOK_DEFAULT_SOURCE" default:"doubletick"`
}

type LeadsConfig struct {
	Statuses []string `envconfig:"LEADFLOW_LEAD_STATUSES" default:"INITIAL_CONTACT,COLD,WARM,WAITING_FOR_LOCATION,NEGOTIATIONS,FOLLOW_UP,DATE_SHIPMENT,WON,LOST,CANCELLED"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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

func normalizeList(values []string, transform func(string) string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if transform != nil {
			v = transform(v)
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
