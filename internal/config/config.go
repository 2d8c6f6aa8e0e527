package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// TLS modes for SMTP submission.
const (
	SMTPTLSStartTLS = "starttls" // explicit TLS, default port 587
	SMTPTLSImplicit = "implicit" // implicit TLS, default port 465
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Observer location and time zone.
	Latitude  float64
	Longitude float64
	TZName    string
	Location  *time.Location

	// Notification thresholds.
	LISThreshold float64
	GMinNotify   int
	RMinNotify   int
	SMinNotify   int
	ShortBzNT    float64
	ShortSpdKms  float64
	DailyHour    int // local hour of the daily report, 0–23

	// Telemetry access.
	SWPCBaseURL string
	SWPCTimeout time.Duration

	// Email channel (enabled only when the full credential group is set).
	SMTPServer string
	SMTPPort   int // 0 means "default for the TLS mode"
	SMTPTLS    string
	SMTPUser   string
	SMTPPass   string
	EmailFrom  string
	EmailTo    string

	// SMS channel via Twilio.
	TwilioSID   string
	TwilioToken string
	TwilioFrom  string
	SMSTo       string

	// Kafka alert bus.
	KafkaBrokers     []string
	KafkaAlertsTopic string

	// Ops surface.
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	lat, err := parseFloat("LAT", 28.9)
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("LON", -81.3)
	if err != nil {
		return nil, err
	}
	lisThreshold, err := parseFloat("LIS_THRESHOLD", 40)
	if err != nil {
		return nil, err
	}
	shortBz, err := parseFloat("SHORT_BZ_NT", -10)
	if err != nil {
		return nil, err
	}
	shortSpd, err := parseFloat("SHORT_SPD_KMS", 600)
	if err != nil {
		return nil, err
	}

	gMin, err := parseInt("G_MIN_NOTIFY", 2)
	if err != nil {
		return nil, err
	}
	rMin, err := parseInt("R_MIN_NOTIFY", 2)
	if err != nil {
		return nil, err
	}
	sMin, err := parseInt("S_MIN_NOTIFY", 2)
	if err != nil {
		return nil, err
	}
	dailyHour, err := parseInt("DAILY_REPORT_HOUR", 7)
	if err != nil {
		return nil, err
	}

	tzName := envOrDefault("LOCAL_TZ", "America/New_York")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCAL_TZ %q: %w", tzName, err)
	}

	swpcTimeout, err := parseDuration("SWPC_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	smtpPort, err := parseInt("SMTP_PORT", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Latitude:  lat,
		Longitude: lon,
		TZName:    tzName,
		Location:  loc,

		LISThreshold: lisThreshold,
		GMinNotify:   gMin,
		RMinNotify:   rMin,
		SMinNotify:   sMin,
		ShortBzNT:    shortBz,
		ShortSpdKms:  shortSpd,
		DailyHour:    dailyHour,

		SWPCBaseURL: envOrDefault("SWPC_BASE_URL", "https://services.swpc.noaa.gov"),
		SWPCTimeout: swpcTimeout,

		SMTPServer: os.Getenv("SMTP_SERVER"),
		SMTPPort:   smtpPort,
		SMTPTLS:    envOrDefault("SMTP_TLS", SMTPTLSStartTLS),
		SMTPUser:   os.Getenv("SMTP_USERNAME"),
		SMTPPass:   os.Getenv("SMTP_PASSWORD"),
		EmailFrom:  os.Getenv("EMAIL_FROM"),
		EmailTo:    os.Getenv("EMAIL_TO"),

		TwilioSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioToken: os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:  os.Getenv("TWILIO_FROM"),
		SMSTo:       os.Getenv("SMS_TO"),

		KafkaBrokers:     parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaAlertsTopic: envOrDefault("KAFKA_ALERTS_TOPIC", "spaceweather-alerts"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.Latitude < -90 || cfg.Latitude > 90 {
		return nil, errors.New("LAT must be in [-90, 90]")
	}
	if cfg.Longitude < -180 || cfg.Longitude > 180 {
		return nil, errors.New("LON must be in [-180, 180]")
	}
	if cfg.DailyHour < 0 || cfg.DailyHour > 23 {
		return nil, errors.New("DAILY_REPORT_HOUR must be in [0, 23]")
	}
	if cfg.SMTPTLS != SMTPTLSStartTLS && cfg.SMTPTLS != SMTPTLSImplicit {
		return nil, fmt.Errorf("SMTP_TLS must be %q or %q", SMTPTLSStartTLS, SMTPTLSImplicit)
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaAlertsTopic == "" {
		return nil, errors.New("KAFKA_ALERTS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// EmailEnabled reports whether the full SMTP credential group is present.
// A partial group silently disables the channel rather than failing startup.
func (c *Config) EmailEnabled() bool {
	return c.SMTPServer != "" && c.SMTPUser != "" && c.SMTPPass != "" &&
		c.EmailFrom != "" && c.EmailTo != ""
}

// SMSEnabled reports whether the full Twilio credential group is present.
func (c *Config) SMSEnabled() bool {
	return c.TwilioSID != "" && c.TwilioToken != "" && c.TwilioFrom != "" && c.SMSTo != ""
}

// KafkaEnabled reports whether the alert bus is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
