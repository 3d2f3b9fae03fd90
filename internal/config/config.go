package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ClientConfig configures the SDK and terminal client.
type ClientConfig struct {
	BaseURL      string `yaml:"base_url"`
	UploadFolder string `yaml:"upload_folder"`
}

// ServerConfig configures the reference development server.
type ServerConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	DBPath  string `yaml:"db_path"`
}

// RedisConfig configures the OTP store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig configures token issuance.
type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

// OTPConfig configures code generation and throttling.
type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

// TwilioConfig configures SMS delivery; empty credentials fall back to
// mock printing.
type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

// CloudinaryConfig configures the media host; empty credentials fall
// back to deterministic fake URLs.
type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
}

// ConfigFile is the on-disk yaml layout.
type ConfigFile struct {
	Client     ClientConfig     `yaml:"client"`
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	OTP        OTPConfig        `yaml:"otp"`
	Twilio     TwilioConfig     `yaml:"twilio"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
}

// Config is the resolved runtime configuration.
type Config struct {
	BaseURL          string
	UploadFolder     string
	Port             string
	GinMode          string
	DBPath           string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	TokenTTL         time.Duration
	OTP_TTL          time.Duration
	OTP_Length       int
	OTP_MaxAttempts  int
	OTP_ResendWindow time.Duration
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads the config file when present, with environment variables
// filling the gaps. A missing file is not an error: every field has an
// env fallback so a bare environment still boots.
func Load(path string) (*Config, error) {
	// .env is optional developer convenience.
	_ = godotenv.Load()

	var file ConfigFile
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("could not parse config yaml: %w", err)
		}
	}

	tokenTTL, err := parseDuration(file.JWT.TTL, env("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}
	otpTTL, err := parseDuration(file.OTP.TTL, env("OTP_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	resendWindow, err := parseDuration(file.OTP.ResendWindow, env("OTP_RESEND_WINDOW", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	cfg := &Config{
		BaseURL:          firstOf(file.Client.BaseURL, env("API_BASE_URL", "http://localhost:8080")),
		UploadFolder:     firstOf(file.Client.UploadFolder, env("UPLOAD_FOLDER", "profiles")),
		Port:             firstOf(intString(file.Server.Port), env("PORT", "8080")),
		GinMode:          firstOf(file.Server.GinMode, env("GIN_MODE", "debug")),
		DBPath:           firstOf(file.Server.DBPath, env("DB_PATH", "devserver.db")),
		RedisAddr:        firstOf(file.Redis.Addr, env("REDIS_ADDR", "localhost:6379")),
		RedisPassword:    firstOf(file.Redis.Password, os.Getenv("REDIS_PASSWORD")),
		RedisDB:          file.Redis.DB,
		JWTSecret:        firstOf(file.JWT.Secret, env("JWT_SECRET", "dev-secret")),
		JWTIssuer:        firstOf(file.JWT.Issuer, env("JWT_ISSUER", "tutor-dev")),
		TokenTTL:         tokenTTL,
		OTP_TTL:          otpTTL,
		OTP_Length:       6,
		OTP_MaxAttempts:  firstNonZero(file.OTP.MaxAttempts, envInt("OTP_MAX_ATTEMPTS", 3)),
		OTP_ResendWindow: resendWindow,
		TwilioSID:        firstOf(file.Twilio.AccountSID, os.Getenv("TWILIO_ACCOUNT_SID")),
		TwilioToken:      firstOf(file.Twilio.AuthToken, os.Getenv("TWILIO_AUTH_TOKEN")),
		TwilioFrom:       firstOf(file.Twilio.FromNumber, os.Getenv("TWILIO_FROM_NUMBER")),
		CloudinaryName:   firstOf(file.Cloudinary.CloudName, os.Getenv("CLOUDINARY_CLOUD_NAME")),
		CloudinaryKey:    firstOf(file.Cloudinary.APIKey, os.Getenv("CLOUDINARY_API_KEY")),
		CloudinarySecret: firstOf(file.Cloudinary.APISecret, os.Getenv("CLOUDINARY_API_SECRET")),
	}
	if file.OTP.Length > 0 {
		cfg.OTP_Length = file.OTP.Length
	}
	if file.Redis.DB == 0 {
		cfg.RedisDB = envInt("REDIS_DB", 0)
	}
	return cfg, nil
}

func parseDuration(fromFile, fallback string) (time.Duration, error) {
	if fromFile != "" {
		return time.ParseDuration(fromFile)
	}
	return time.ParseDuration(fallback)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
