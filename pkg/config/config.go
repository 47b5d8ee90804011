package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BAKEOPS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "BAKEOPS_APP_ENV"
	EnvPort           = "BAKEOPS_APP_PORT"
	EnvDBDSN          = "BAKEOPS_DB_DSN"
	EnvDBHost         = "BAKEOPS_DB_HOST"
	EnvDBUser         = "BAKEOPS_DB_USER"
	EnvDBName         = "BAKEOPS_DB_NAME"
	EnvRedisURL       = "BAKEOPS_REDIS_URL"
	EnvJWTSecret      = "BAKEOPS_JWT_SECRET"
	EnvJWTIssuer      = "BAKEOPS_JWT_ISSUER"
	EnvJWTExpMins     = "BAKEOPS_JWT_EXPIRATION_MINUTES"
	EnvGCPProjectID   = "BAKEOPS_GCP_PROJECT_ID"
	EnvPubSubSchedTop = "BAKEOPS_PUBSUB_SCHEDULING_TOPIC"
	EnvPubSubSchedSub = "BAKEOPS_PUBSUB_SCHEDULING_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Scheduling    SchedulingConfig
	Cron          CronConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
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
	Env          string `envconfig:"BAKEOPS_APP_ENV" required:"true"`
	Port         string `envconfig:"BAKEOPS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BAKEOPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BAKEOPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"BAKEOPS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"BAKEOPS_DB_DSN"`
	Driver string `envconfig:"BAKEOPS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BAKEOPS_DB_HOST"`
	LegacyPort     int    `envconfig:"BAKEOPS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BAKEOPS_DB_USER"`
	LegacyPassword string `envconfig:"BAKEOPS_DB_PASSWORD"`
	LegacyName     string `envconfig:"BAKEOPS_DB_NAME"`
	LegacySSLMode  string `envconfig:"BAKEOPS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BAKEOPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BAKEOPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BAKEOPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BAKEOPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BAKEOPS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BAKEOPS_REDIS_ADDR"`
	Password     string        `envconfig:"BAKEOPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"BAKEOPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BAKEOPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BAKEOPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BAKEOPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BAKEOPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BAKEOPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BAKEOPS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BAKEOPS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BAKEOPS_JWT_EXPIRATION_MINUTES" required:"true"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BAKEOPS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BAKEOPS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BAKEOPS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BAKEOPS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BAKEOPS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"BAKEOPS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"BAKEOPS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"BAKEOPS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BAKEOPS_AUTO_MIGRATE" default:"false"`
}

// SchedulingConfig tunes the distributor auto-scheduling engine.
type SchedulingConfig struct {
	MaxDailyCapacity int `envconfig:"BAKEOPS_SCHEDULING_MAX_DAILY_CAPACITY" default:"5"`
	// MinConfidenceScore is reserved for a future auto-approval gate. Every
	// draft currently goes to human review regardless of score.
	MinConfidenceScore  float64       `envconfig:"BAKEOPS_SCHEDULING_MIN_CONFIDENCE" default:"70"`
	DefaultDeliverySlot string        `envconfig:"BAKEOPS_SCHEDULING_DEFAULT_SLOT" default:"09:00-12:00"`
	BackfillLookback    time.Duration `envconfig:"BAKEOPS_SCHEDULING_BACKFILL_LOOKBACK" default:"168h"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"BAKEOPS_CRON_INTERVAL" default:"15m"`
	LockKey  string        `envconfig:"BAKEOPS_CRON_LOCK_KEY" default:"bakeops:cron:lock"`
	LockTTL  time.Duration `envconfig:"BAKEOPS_CRON_LOCK_TTL" default:"30m"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"BAKEOPS_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"BAKEOPS_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"BAKEOPS_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	SchedulingTopic        string `envconfig:"BAKEOPS_PUBSUB_SCHEDULING_TOPIC" default:"bakeops-scheduling-events"`
	SchedulingSubscription string `envconfig:"BAKEOPS_PUBSUB_SCHEDULING_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"BAKEOPS_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"BAKEOPS_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"BAKEOPS_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
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
