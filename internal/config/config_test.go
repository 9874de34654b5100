package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Len(t, cfg.EncryptionKey, 32)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 180, cfg.ReviewReminderDays)
	assert.Equal(t, "0 6 * * *", cfg.RateRefreshSchedule)
	assert.Equal(t, models.CityNonMetro, cfg.CityTierDefault)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REVIEW_REMINDER_DAYS", "90")
	t.Setenv("CITY_TIER_DEFAULT", "metro")
	t.Setenv("ENCRYPTION_KEY", "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90, cfg.ReviewReminderDays)
	assert.Equal(t, models.CityMetro, cfg.CityTierDefault)
	assert.Equal(t, byte(0x11), cfg.EncryptionKey[1])
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"short key", "ENCRYPTION_KEY", "abcd", "32 bytes"},
		{"non-hex key", "ENCRYPTION_KEY", "zz", "must be hex"},
		{"empty jwt secret", "JWT_SECRET", "", "JWT_SECRET is required"},
		{"bad smtp port", "SMTP_PORT", "smtp", "SMTP_PORT must be an integer"},
		{"zero reminder days", "REVIEW_REMINDER_DAYS", "0", "must be positive"},
		{"unknown city tier", "CITY_TIER_DEFAULT", "tier2", "CITY_TIER_DEFAULT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
