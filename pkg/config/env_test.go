package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kolsha/yousum/pkg/config"
)

func TestGetEnvString(t *testing.T) {
	t.Run("returns value when set", func(t *testing.T) {
		t.Setenv("TEST_STRING", "configured")
		assert.Equal(t, "configured", config.GetEnvString("TEST_STRING", "default"))
	})

	t.Run("returns default when unset", func(t *testing.T) {
		assert.Equal(t, "default", config.GetEnvString("TEST_STRING_UNSET", "default"))
	})
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback int
		want     int
	}{
		{name: "valid integer", value: "42", fallback: 7, want: 42},
		{name: "invalid integer falls back", value: "not-a-number", fallback: 7, want: 7},
		{name: "empty falls back", value: "", fallback: 7, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_INT", tt.value)
			}
			assert.Equal(t, tt.want, config.GetEnvInt("TEST_INT", tt.fallback))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback bool
		want     bool
	}{
		{name: "true value", value: "true", fallback: false, want: true},
		{name: "numeric true", value: "1", fallback: false, want: true},
		{name: "false value", value: "false", fallback: true, want: false},
		{name: "invalid falls back", value: "yes", fallback: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, config.GetEnvBool("TEST_BOOL", tt.fallback))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("valid duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "90s")
		assert.Equal(t, 90*time.Second, config.GetEnvDuration("TEST_DURATION", time.Minute))
	})

	t.Run("invalid duration falls back", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "ninety seconds")
		assert.Equal(t, time.Minute, config.GetEnvDuration("TEST_DURATION", time.Minute))
	})
}
