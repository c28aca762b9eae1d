package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort            string   // Application port
	DBUser             string   // Database user
	DBPassword         string   // Database password
	DBHost             string   // Database host
	DBPort             string   // Database port
	DBName             string   // Database name
	DBPoolerDSN        string   // Optional full DSN of a pooled connection, overrides the parts above
	JWTSecret          string   // JWT secret key
	AuthEnabled        bool     // Whether the JWT middleware actually enforces tokens
	RedisAddr          string   // Redis server address
	RedisPass          string   // Redis password
	RedisDB            int      // Redis database number
	StartupHealthCheck bool     // Force the startup database health probe
	ExtraOrigins       []string // Additional allowed CORS origins
	IsProd             bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	var extraOrigins []string
	// CORS_EXTRA_ORIGINS is a comma-separated list of additional origins
	if raw := os.Getenv("CORS_EXTRA_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				extraOrigins = append(extraOrigins, origin)
			}
		}
	}
	return &Config{
		AppPort:            os.Getenv("APP_PORT"),                              // Application port
		DBUser:             os.Getenv("DB_USER"),                               // Database user
		DBPassword:         os.Getenv("DB_PASSWORD"),                           // Database password
		DBHost:             os.Getenv("DB_HOST"),                               // Database host
		DBPort:             os.Getenv("DB_PORT"),                               // Database port
		DBName:             os.Getenv("DB_NAME"),                               // Database name
		DBPoolerDSN:        os.Getenv("DB_POOLER_DSN"),                         // Pooled DSN override (platforms often provide one)
		JWTSecret:          os.Getenv("JWT_SECRET"),                            // JWT secret key
		AuthEnabled:        os.Getenv("AUTH_ENABLED") == "true",                // Token enforcement switch
		RedisAddr:          os.Getenv("REDIS_ADDR"),                            // Redis server address
		RedisPass:          os.Getenv("REDIS_PASS"),                            // Redis password
		RedisDB:            redisDB,                                            // Redis database number
		StartupHealthCheck: os.Getenv("ENABLE_STARTUP_HEALTH_CHECK") == "true", // Startup probe switch
		ExtraOrigins:       extraOrigins,                                       // Additional CORS origins
		IsProd:             os.Getenv("IS_PROD") == "true",                     // Is production environment
	}
}

// DSN returns the MySQL connection string, preferring the pooled DSN when set
func (c *Config) DSN() string {
	if c.DBPoolerDSN != "" {
		return c.DBPoolerDSN
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
