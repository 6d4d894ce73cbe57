package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
user = "booking"
password = "secret"
dbname = "booking"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Booking.StepTimeMinutes)
	assert.Equal(t, 60, cfg.Booking.LeadTimeMinutes)
	assert.Equal(t, 30, cfg.Booking.BookingNoticeMinutes)
	assert.Equal(t, 15, cfg.Booking.HoldTimeoutMinutes)
	assert.Equal(t, 5, cfg.Booking.MaxSlotsPerOrder)
	assert.Equal(t, 50.0, cfg.Booking.DefaultPrice)
	assert.Equal(t, "order.status.changed", cfg.Kafka.Topic)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.IdleTTLDuration())
	assert.Empty(t, cfg.RateLimit.IPHeader)
	assert.Equal(t, "host=localhost port=5432 user=booking password=secret dbname=booking sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, domain.DefaultBookingSettings(), cfg.Booking.Settings())
}

func TestLoad_BookingOverrides(t *testing.T) {
	path := writeConfig(t, `
[booking]
step_time_minutes = 15
hold_timeout_minutes = 20
default_price = 120.5
timezone = "UTC"

[reaper]
enabled = true
interval_seconds = 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Booking.StepTimeMinutes)
	assert.Equal(t, 20, cfg.Booking.HoldTimeoutMinutes)
	assert.Equal(t, 120.5, cfg.Booking.DefaultPrice)
	assert.True(t, cfg.Reaper.Enabled)
	assert.Equal(t, float64(30), cfg.Reaper.Interval().Seconds())

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_InvalidStep(t *testing.T) {
	path := writeConfig(t, `
[booking]
step_time_minutes = 25
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
