package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	t.Setenv("FR_STR", " value ")
	t.Setenv("FR_INT", "12")
	t.Setenv("FR_BAD_INT", "twelve")
	t.Setenv("FR_FLOAT", "0.25")
	t.Setenv("FR_BOOL", "false")
	t.Setenv("FR_DUR", "3s")
	t.Setenv("FR_NEG_DUR", "-3s")
	t.Setenv("FR_LIST", "a:9092, ,b:9092")

	assert.Equal(t, "value", Get("FR_STR", "x"))
	assert.Equal(t, "x", Get("FR_MISSING", "x"))
	assert.Equal(t, 12, GetInt("FR_INT", 1))
	assert.Equal(t, 1, GetInt("FR_BAD_INT", 1))
	assert.InDelta(t, 0.25, GetFloat("FR_FLOAT", 0.5), 1e-9)
	assert.False(t, GetBool("FR_BOOL", true))
	assert.Equal(t, 3*time.Second, GetDuration("FR_DUR", time.Second))
	assert.Equal(t, time.Second, GetDuration("FR_NEG_DUR", time.Second))
	assert.Equal(t, []string{"a:9092", "b:9092"}, GetList("FR_LIST"))
	assert.Nil(t, GetList("FR_MISSING"))
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "PROVIDER_TIMEOUT", "PERISHABILITY_EXTERNAL_WEIGHT", "MATCH_LIMIT", "KAFKA_BROKERS", "DATABASE_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.InDelta(t, 0.5, cfg.PerishabilityExternalWeight, 1e-9)
	assert.Equal(t, 5, cfg.MatchLimit)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.DatabaseURL)
}
