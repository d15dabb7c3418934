package config

import (
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDigest(t *testing.T, body string) DigestConfig {
	t.Helper()
	var c Config
	_, err := toml.Decode(body, &c)
	require.NoError(t, err)
	return c.DigestConfig
}

func TestDigestHourDefaultsOnlyWhenAbsent(t *testing.T) {
	assert.Equal(t, 7, decodeDigest(t, "[digestConfig]\ntimeZone = \"UTC\"\n").Hour())
	assert.Equal(t, 0, decodeDigest(t, "[digestConfig]\ntargetHour = 0\n").Hour())
	assert.Equal(t, 18, decodeDigest(t, "[digestConfig]\ntargetHour = 18\n").Hour())
	assert.Equal(t, 7, decodeDigest(t, "[digestConfig]\ntargetHour = 24\n").Hour())
}

func TestDigestDefaults(t *testing.T) {
	d := decodeDigest(t, "[digestConfig]\ntimeZone = \"Not/AZone\"\n")
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 15*time.Minute, d.Cooldown())
	assert.Equal(t, 5, d.TopAssets())
	assert.Equal(t, "* * * * *", d.Spec())

	assert.Equal(t, "America/Chicago", DigestConfig{}.Location().String())
}

func TestEmailDefaults(t *testing.T) {
	e := EmailConfig{}
	assert.Equal(t, 10*time.Second, e.Timeout())
	assert.Equal(t, 5, e.Workers())
}
