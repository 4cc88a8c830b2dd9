package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	AllowOrigins []string
	// TrustedProxies lists the CIDRs or addresses whose X-Forwarded-For is
	// believed. Empty means clients are identified by the socket peer.
	TrustedProxies  []string
	FrontendBaseURL string
	StaticDir       string
	SwaggerPath     string
	LogstashTCPAddr string
	BodyLimit       string

	SessionTTL       time.Duration
	PasswordResetTTL time.Duration
	BcryptCost       int

	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	SMTPUseTLS      bool
	SMTPSkipVerify  bool
	MailSendTimeout time.Duration

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOPublicURL     string
	MinIOBucketBlog    string
	BlogMediaMaxBytes  int64
	BlogMediaMaxPixels int

	AuthRateLimit  int
	AuthRateWindow time.Duration
	APIRateLimit   int
	APIRateWindow  time.Duration

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// MailEnabled reports whether enough SMTP settings exist to send mail.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// MinIOEnabled reports whether blog media storage is configured.
func (c Config) MinIOEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       must("JWT_SECRET"),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		TrustedProxies:  splitList(getenv("TRUSTED_PROXIES", "")),
		FrontendBaseURL: getenv("FRONTEND_BASE_URL", "http://localhost:3000"),
		StaticDir:       getenv("STATIC_DIR", "client/build"),
		SwaggerPath:     getenv("SWAGGER_PATH", "docs/swagger.yaml"),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		BodyLimit:       getenv("BODY_LIMIT", "10M"),

		SessionTTL:       getDuration("SESSION_TTL", time.Hour),
		PasswordResetTTL: getDuration("PASSWORD_RESET_TTL", time.Hour),
		BcryptCost:       getInt("BCRYPT_COST", 12),

		SMTPHost:        getenv("SMTP_HOST", ""),
		SMTPPort:        getInt("SMTP_PORT", 587),
		SMTPUsername:    getenv("SMTP_USERNAME", ""),
		SMTPPassword:    getenv("SMTP_PASSWORD", ""),
		SMTPFrom:        getenv("SMTP_FROM", ""),
		SMTPUseTLS:      getBool("SMTP_USE_TLS", false),
		SMTPSkipVerify:  getBool("SMTP_SKIP_VERIFY", false),
		MailSendTimeout: getDuration("MAIL_SEND_TIMEOUT", 30*time.Second),

		MinIOEndpoint:      getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        getBool("MINIO_USE_SSL", false),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),
		MinIOBucketBlog:    getenv("MINIO_BUCKET_BLOG_MEDIA", "portfolio-blog-media"),
		BlogMediaMaxBytes:  int64(getInt("BLOG_MEDIA_MAX_BYTES", 5*1024*1024)),
		BlogMediaMaxPixels: getInt("BLOG_MEDIA_MAX_DIMENSION", 3840),

		AuthRateLimit:  getInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: getDuration("AUTH_RATE_WINDOW", 15*time.Minute),
		APIRateLimit:   getInt("API_RATE_LIMIT", 200),
		APIRateWindow:  getDuration("API_RATE_WINDOW", 15*time.Minute),

		AdminEmail:    getenv("ADMIN_EMAIL", ""),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),
		AdminName:     getenv("ADMIN_NAME", "Administrator"),
	}
}

func splitAndTrim(input string) []string {
	out := splitList(input)
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func splitList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

// getInt falls back to d when the value is missing, malformed or negative.
func getInt(k string, d int) int {
	v, err := strconv.Atoi(getenv(k, ""))
	if err != nil || v < 0 {
		return d
	}
	return v
}

func getBool(k string, d bool) bool {
	v, err := strconv.ParseBool(getenv(k, ""))
	if err != nil {
		return d
	}
	return v
}

func getDuration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid duration for %s=%q, using %s", k, raw, d)
		return d
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
