package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,         default=8080"`
	Env         string `env:"ENV,          default=development"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	FrontendURL string `env:"FRONTEND_URL, default=http://localhost:5173"`

	Identity IdentityConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Checkin  CheckinConfig
	Maint    MaintenanceConfig
}

// IdentityConfig points at the hosted identity service. In development the
// local in-process store is used instead; JWTSecret signs its tokens and the
// bootstrap admin is seeded into it at startup.
type IdentityConfig struct {
	URL            string `env:"IDENTITY_URL"`
	AnonKey        string `env:"IDENTITY_ANON_KEY"`
	ServiceRoleKey string `env:"IDENTITY_SERVICE_ROLE_KEY"`
	JWTSecret      string `env:"JWT_SECRET,       default=dev-secret"`
	AdminEmail     string `env:"ADMIN_EMAIL,      default=admin@ghsm.edu"`
	AdminPassword  string `env:"ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ticketing_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type CheckinConfig struct {
	Workers int `env:"CHECKIN_WORKERS, default=4"`
}

type MaintenanceConfig struct {
	Enabled       bool   `env:"MAINTENANCE_ENABLED,        default=false"`
	Message       string `env:"MAINTENANCE_MESSAGE,        default=We're currently performing scheduled maintenance to improve your experience."`
	EstimatedTime string `env:"MAINTENANCE_ESTIMATED_TIME, default=2 hours"`
	ContactEmail  string `env:"MAINTENANCE_CONTACT_EMAIL,  default=support@ghsm.edu"`
	AllowAdmin    bool   `env:"MAINTENANCE_ALLOW_ADMIN,    default=true"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
