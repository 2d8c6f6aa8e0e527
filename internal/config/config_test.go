package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 28.9, cfg.Latitude)
	assert.Equal(t, -81.3, cfg.Longitude)
	assert.Equal(t, "America/New_York", cfg.TZName)
	require.NotNil(t, cfg.Location)

	assert.Equal(t, 40.0, cfg.LISThreshold)
	assert.Equal(t, 2, cfg.GMinNotify)
	assert.Equal(t, 2, cfg.RMinNotify)
	assert.Equal(t, 2, cfg.SMinNotify)
	assert.Equal(t, -10.0, cfg.ShortBzNT)
	assert.Equal(t, 600.0, cfg.ShortSpdKms)
	assert.Equal(t, 7, cfg.DailyHour)

	assert.Equal(t, "https://services.swpc.noaa.gov", cfg.SWPCBaseURL)
	assert.Equal(t, 10*time.Second, cfg.SWPCTimeout)

	assert.Equal(t, SMTPTLSStartTLS, cfg.SMTPTLS)
	assert.Equal(t, "spaceweather-alerts", cfg.KafkaAlertsTopic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.False(t, cfg.EmailEnabled())
	assert.False(t, cfg.SMSEnabled())
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("LAT", "64.8")
	t.Setenv("LON", "-147.7")
	t.Setenv("LOCAL_TZ", "America/Anchorage")
	t.Setenv("LIS_THRESHOLD", "55")
	t.Setenv("G_MIN_NOTIFY", "1")
	t.Setenv("SHORT_BZ_NT", "-15")
	t.Setenv("SHORT_SPD_KMS", "700")
	t.Setenv("DAILY_REPORT_HOUR", "6")
	t.Setenv("SWPC_BASE_URL", "http://localhost:9999")
	t.Setenv("SWPC_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_ALERTS_TOPIC", "alerts")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 64.8, cfg.Latitude)
	assert.Equal(t, -147.7, cfg.Longitude)
	assert.Equal(t, "America/Anchorage", cfg.TZName)
	assert.Equal(t, 55.0, cfg.LISThreshold)
	assert.Equal(t, 1, cfg.GMinNotify)
	assert.Equal(t, -15.0, cfg.ShortBzNT)
	assert.Equal(t, 700.0, cfg.ShortSpdKms)
	assert.Equal(t, 6, cfg.DailyHour)
	assert.Equal(t, "http://localhost:9999", cfg.SWPCBaseURL)
	assert.Equal(t, 3*time.Second, cfg.SWPCTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "alerts", cfg.KafkaAlertsTopic)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.KafkaEnabled())
}

func TestLoad_InvalidTimeZone(t *testing.T) {
	t.Setenv("LOCAL_TZ", "Mars/Olympus_Mons")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOCAL_TZ")
}

func TestLoad_InvalidLatitude(t *testing.T) {
	t.Setenv("LAT", "91")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAT")
}

func TestLoad_UnparseableLatitude(t *testing.T) {
	t.Setenv("LAT", "north-a-bit")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAT")
}

func TestLoad_InvalidDailyHour(t *testing.T) {
	t.Setenv("DAILY_REPORT_HOUR", "24")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DAILY_REPORT_HOUR")
}

func TestLoad_InvalidSMTPTLS(t *testing.T) {
	t.Setenv("SMTP_TLS", "opportunistic")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_TLS")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("SWPC_TIMEOUT", "-10s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SWPC_TIMEOUT")
}

func TestEmailEnabled_RequiresFullCredentialGroup(t *testing.T) {
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "watcher")
	t.Setenv("SMTP_PASSWORD", "hunter2")
	t.Setenv("EMAIL_FROM", "watcher@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.EmailEnabled(), "missing EMAIL_TO must disable the channel")

	t.Setenv("EMAIL_TO", "ops@example.com")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.EmailEnabled())
}

func TestSMSEnabled_RequiresFullCredentialGroup(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_FROM", "+15550001111")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.SMSEnabled(), "missing SMS_TO must disable the channel")

	t.Setenv("SMS_TO", "+15550002222")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.SMSEnabled())
}
