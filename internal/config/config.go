package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for STORE_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	Port string

	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	SQLitePath  string

	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration
	MongoMaxPool  uint64

	JWTSecret string
	TokenTTL  time.Duration

	SessionSecret string
	SessionStore  string
	RedisHost     string
	RedisPort     string

	GinMode     string
	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMySQL)),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "taskuser"),
		DBPassword:    getEnv("DB_PASSWORD", "taskpassword"),
		DBName:        getEnv("DB_NAME", "workviyo"),
		SQLitePath:    getEnv("SQLITE_PATH", "taskboard.db"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "workviyo"),
		MongoTimeout:  getDuration("MONGODB_TIMEOUT", 30*time.Second),
		MongoMaxPool:  getUint("MONGODB_MAX_POOL", 10),
		JWTSecret:     getEnv("JWT_SECRET", "default-jwt-secret-change-me"),
		TokenTTL:      getDuration("TOKEN_TTL", 24*time.Hour),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", "cookie")),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		CORSOrigins:   getList("CORS_ORIGINS", []string{"*"}),
	}
}

// Validate reports configuration values the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getUint(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
