package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	Length      int    `yaml:"length"`
	TTL         string `yaml:"ttl"`
	EnvelopeKey string `yaml:"envelope_key"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	APIHost  string `yaml:"api_host"`
}

type S3Config struct {
	Region        string `yaml:"region"`
	Bucket        string `yaml:"bucket"`
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type BcryptConfig struct {
	Cost int `yaml:"cost"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	S3       S3Config       `yaml:"s3"`
	Bcrypt   BcryptConfig   `yaml:"bcrypt"`
}

type Config struct {
	Port           string
	GinMode        string
	DSN            string
	AccessSecret   string
	RefreshSecret  string
	JWTIssuer      string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	OtpLength      int
	OtpTTL         time.Duration
	OtpEnvelopeKey string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPFrom       string
	APIHost        string
	S3Region       string
	S3Bucket       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3PublicBase   string
	BcryptCost     int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// the secrets that should never live in a checked-in file.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	cfg := &Config{
		Port:           fmt.Sprintf("%d", configFile.App.Port),
		GinMode:        configFile.App.GinMode,
		DSN:            env("DATABASE_DSN", configFile.Database.DSN),
		AccessSecret:   env("ACCESS_TOKEN_KEY", configFile.JWT.AccessSecret),
		RefreshSecret:  env("REFRESH_TOKEN_KEY", configFile.JWT.RefreshSecret),
		JWTIssuer:      configFile.JWT.Issuer,
		AccessTTL:      accTTL,
		RefreshTTL:     refTTL,
		OtpLength:      configFile.OTP.Length,
		OtpTTL:         otpTTL,
		OtpEnvelopeKey: env("OTP_ENVELOPE_KEY", configFile.OTP.EnvelopeKey),
		SMTPHost:       env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:       configFile.SMTP.Port,
		SMTPUsername:   env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:   env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:       configFile.SMTP.From,
		APIHost:        env("API_HOST", configFile.SMTP.APIHost),
		S3Region:       configFile.S3.Region,
		S3Bucket:       configFile.S3.Bucket,
		S3Endpoint:     env("S3_ENDPOINT", configFile.S3.Endpoint),
		S3AccessKey:    env("S3_ACCESS_KEY", configFile.S3.AccessKey),
		S3SecretKey:    env("S3_SECRET_KEY", configFile.S3.SecretKey),
		S3PublicBase:   configFile.S3.PublicBaseURL,
		BcryptCost:     configFile.Bcrypt.Cost,
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("jwt secrets are not configured")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("access and refresh secrets must differ")
	}
	if cfg.OtpLength <= 0 {
		cfg.OtpLength = 5
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
