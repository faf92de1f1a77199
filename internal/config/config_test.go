package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/properties"
)

const sample = `
log_level: debug
tick_interval: 100ms
max_sessions: 20
flush_workers: 4
tap:
  addr: 127.0.0.1:9090
  write_timeout: 2s
  buffer: 64
families:
  - name: armor_stand
    properties:
      - name: custom:pose
        kind: enum
        values: [idle, wave]
  - name: custom_family
    properties:
      - name: custom:glow
        kind: bool
`

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, log.LevelInfo, Default().Level())
}

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, log.LevelDebug, c.Level())
	assert.Equal(t, 100*time.Millisecond, c.TickInterval)
	assert.Equal(t, 20, c.MaxSessions)
	assert.Equal(t, 4, c.FlushWorkers)
	assert.Equal(t, "127.0.0.1:9090", c.Tap.Addr)
	assert.Equal(t, 2*time.Second, c.Tap.WriteTimeout)

	defs, err := c.PropertyDefinitions()
	require.NoError(t, err)
	assert.Equal(t, []properties.Definition{properties.Enum("custom:pose", "idle", "wave")}, defs["armor_stand"])
	assert.Equal(t, []properties.Definition{properties.Bool("custom:glow")}, defs["custom_family"])

	reg, err := properties.BuildRegistry(defs)
	require.NoError(t, err)
	index, _, err := reg.Schema(properties.ArmorStandFamily).Lookup("custom:pose")
	require.NoError(t, err)
	assert.Equal(t, 21, index)
}

func TestDecodeKeepsDefaults(t *testing.T) {
	c, err := Decode(strings.NewReader("max_sessions: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.MaxSessions)
	assert.Equal(t, Default().TickInterval, c.TickInterval)
	assert.Equal(t, Default().Tap.Buffer, c.Tap.Buffer)
}

func TestDecodeEmpty(t *testing.T) {
	c, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":      "listen: x\n",
		"bad level":        "log_level: loud\n",
		"zero tick":        "tick_interval: 0s\n",
		"negative workers": "flush_workers: -1\n",
		"bad kind":         "families:\n  - name: display\n    properties:\n      - name: x\n        kind: string\n",
		"unnamed family":   "families:\n  - properties: []\n",
		"tap no buffer":    "tap:\n  addr: \":9000\"\n  buffer: 0\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Families, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
