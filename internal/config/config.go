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

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type CodesConfig struct {
	VerificationTTL string `yaml:"verification_ttl"`
	ResetTTL        string `yaml:"reset_ttl"`
	OTPTTL          string `yaml:"otp_ttl"`
	OTPLength       int    `yaml:"otp_length"`
	RateLimitWindow string `yaml:"rate_limit_window"`
	RateLimitMax    int    `yaml:"rate_limit_max"`
}

type SchedulerConfig struct {
	LeaveSyncInterval string `yaml:"leave_sync_interval"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type MailConfig struct {
	FromAddress string `yaml:"from_address"`
	FromName    string `yaml:"from_name"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Codes     CodesConfig     `yaml:"codes"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Mail      MailConfig      `yaml:"mail"`
	Casbin    CasbinConfig    `yaml:"casbin"`
}

type Config struct {
	Port              string
	GinMode           string
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTSecret         string
	JWTIssuer         string
	AccessTTL         time.Duration
	RefreshTTL        time.Duration
	VerificationTTL   time.Duration
	ResetTTL          time.Duration
	OTPTTL            time.Duration
	OTPLength         int
	RateLimitWindow   time.Duration
	RateLimitMax      int
	LeaveSyncInterval time.Duration
	TwilioSID         string
	TwilioToken       string
	TwilioFrom        string
	MailFromAddress   string
	MailFromName      string
	CasbinModelPath   string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
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

	verTTL, err := time.ParseDuration(configFile.Codes.VerificationTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification code TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.Codes.ResetTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset code TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.Codes.OTPTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	rateWnd, err := time.ParseDuration(configFile.Codes.RateLimitWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	syncInterval, err := time.ParseDuration(configFile.Scheduler.LeaveSyncInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid leave sync interval: %w", err)
	}

	return &Config{
		Port:              fmt.Sprintf("%d", configFile.App.Port),
		GinMode:           configFile.App.GinMode,
		DSN:               env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:         env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:     env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:           configFile.Redis.DB,
		JWTSecret:         env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:         configFile.JWT.Issuer,
		AccessTTL:         accTTL,
		RefreshTTL:        refTTL,
		VerificationTTL:   verTTL,
		ResetTTL:          resetTTL,
		OTPTTL:            otpTTL,
		OTPLength:         configFile.Codes.OTPLength,
		RateLimitWindow:   rateWnd,
		RateLimitMax:      configFile.Codes.RateLimitMax,
		LeaveSyncInterval: syncInterval,
		TwilioSID:         env("TWILIO_SID", configFile.Twilio.AccountSID),
		TwilioToken:       env("TWILIO_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:        configFile.Twilio.FromNumber,
		MailFromAddress:   configFile.Mail.FromAddress,
		MailFromName:      configFile.Mail.FromName,
		CasbinModelPath:   configFile.Casbin.ModelPath,
	}, nil
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
