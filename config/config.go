package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

// Config returns the value of an environment variable, loading .env on first use.
func Config(key string) string {
	loadEnv.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using process environment")
		}
	})
	return os.Getenv(key)
}

type Settings struct {
	Port string

	DBDriver   string
	DBHost     string
	DBPort     uint64
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TokenSecret           string
	AdminTokenSecret      string
	SuperAdminTokenSecret string
	AccessTokenTTL        time.Duration
	CookieSecure          bool

	AdminEmail         string
	AdminPassword      string
	SuperAdminEmail    string
	SuperAdminPassword string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	AllowOrigins   string
	StorageTimeout time.Duration
	SweepSchedule  string
}

// Load reads every setting the server needs. Missing optional values fall back to defaults.
func Load() Settings {
	return Settings{
		Port: getenv("PORT", "3000"),

		DBDriver:   getenv("DB_DRIVER", "postgres"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     parseUint(getenv("DB_PORT", "5432")),
		DBUser:     Config("DB_USER"),
		DBPassword: Config("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "movie_reservation"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: Config("REDIS_PASSWORD"),
		RedisDB:       atoi(getenv("REDIS_DB", "0")),

		TokenSecret:           Config("TOKEN_SECRET"),
		AdminTokenSecret:      Config("ADMIN_TOKEN_SECRET"),
		SuperAdminTokenSecret: Config("SUPER_ADMIN_TOKEN_SECRET"),
		AccessTokenTTL:        parseDur(getenv("TOKEN_TTL", "1h")),
		CookieSecure:          getenv("COOKIE_SECURE", "false") == "true",

		AdminEmail:         Config("ADMIN_EMAIL"),
		AdminPassword:      Config("ADMIN_PASSWORD"),
		SuperAdminEmail:    Config("SUPER_ADMIN_EMAIL"),
		SuperAdminPassword: Config("SUPER_ADMIN_PASSWORD"),

		SMTPHost:     getenv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:     atoi(getenv("SMTP_PORT", "587")),
		SMTPUsername: Config("SMTP_USERNAME"),
		SMTPPassword: Config("SMTP_PASSWORD"),
		SMTPFrom:     Config("SMTP_FROM"),

		CloudinaryCloudName: Config("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    Config("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: Config("CLOUDINARY_API_SECRET"),

		AllowOrigins:   getenv("ALLOW_ORIGINS", "http://localhost:5173"),
		StorageTimeout: parseDur(getenv("STORAGE_TIMEOUT", "5s")),
		SweepSchedule:  getenv("SWEEP_SCHEDULE", "*/5 * * * *"),
	}
}

func getenv(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseUint(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		panic("failed to parse database port")
	}
	return n
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
