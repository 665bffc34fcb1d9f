package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Log       LogConfig
	Redis     RedisConfig // token revocation store (optional)
	NATS      NATSConfig  // task events (optional)
	Scheduler SchedulerConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

// DatabaseConfig รองรับ postgres (production) และ sqlite (local dev)
type DatabaseConfig struct {
	Driver   string // postgres, sqlite
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	DSN      string // สำหรับ sqlite: path ของไฟล์ หรือ file::memory:
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

type AuthConfig struct {
	PasswordScheme string // hmac-sha512, bcrypt
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

type RedisConfig struct {
	URL      string // redis://localhost:6379, empty = disabled
	Password string
	DB       int
}

type NATSConfig struct {
	URL           string // nats://localhost:4222, empty = disabled
	SubjectPrefix string
}

type SchedulerConfig struct {
	Enabled     bool
	OverdueCron string
}

type CORSConfig struct {
	AllowOrigins string
}

// DefaultJWTSecret ใช้ได้เฉพาะตอน dev เท่านั้น
const DefaultJWTSecret = "your-secret-key"

func LoadConfig() (*Config, error) {
	// ไม่ error ถ้าไม่มี .env file (ใช้ environment variables แทน)
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	jwtTTL, err := time.ParseDuration(getEnv("JWT_TTL", "3h"))
	if err != nil || jwtTTL <= 0 {
		jwtTTL = 3 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Task Manager API"),
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "task_manager"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			DSN:      getEnv("DB_DSN", "data/task_manager.db"),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", DefaultJWTSecret),
			Issuer:   getEnv("JWT_ISSUER", "task-manager-api"),
			Audience: getEnv("JWT_AUDIENCE", "task-manager-clients"),
			TTL:      jwtTTL,
		},
		Auth: AuthConfig{
			PasswordScheme: strings.ToLower(getEnv("AUTH_PASSWORD_SCHEME", "hmac-sha512")),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "both"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", ""),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "tasks"),
		},
		Scheduler: SchedulerConfig{
			Enabled:     getEnv("SCHEDULER_ENABLED", "true") == "true",
			OverdueCron: getEnv("SCHEDULER_OVERDUE_CRON", "*/15 * * * *"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		},
	}

	if config.IsProduction() && config.UsesDefaultJWTSecret() {
		return nil, errors.New("JWT_SECRET must be set when APP_ENV=production")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsDevelopment ตรวจสอบว่าเป็น development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction ตรวจสอบว่าเป็น production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWT.Secret == DefaultJWTSecret
}
