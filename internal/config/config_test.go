package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/study-session/internal/model"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLanguage, cfg.Language)
	assert.Equal(t, model.GoalCasual, cfg.Goal)
	require.NotNil(t, cfg.NewCardsPerDay)
	assert.Equal(t, DefaultNewCardsPerDay, *cfg.NewCardsPerDay)
	assert.Equal(t, DefaultLogMode, cfg.LogMode)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
db_path: /tmp/study.db
language: french
goal: Travel
new_cards_per_day: 0
log_mode: prod
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/study.db", cfg.DBPath)
	assert.Equal(t, "french", cfg.Language)
	assert.Equal(t, model.GoalTravel, cfg.Goal)
	assert.Equal(t, 0, *cfg.NewCardsPerDay)
	assert.Equal(t, "prod", cfg.LogMode)
}

func TestLoadNormalizesLanguage(t *testing.T) {
	cfg, err := Load(writeFile(t, "language: \" Japanese \"\n"))
	require.NoError(t, err)
	assert.Equal(t, "japanese", cfg.Language)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"goal":      "goal: gaming\n",
		"language":  "language: klingon\n",
		"new cards": "new_cards_per_day: -1\n",
		"yaml":      "goal: [unclosed\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestResolveDBPathPrecedence(t *testing.T) {
	cfg := Config{DBPath: "/from/config.db"}

	t.Setenv(EnvDB, "/from/env.db")
	assert.Equal(t, "/from/flag.db", cfg.ResolveDBPath("/from/flag.db"))
	assert.Equal(t, "/from/env.db", cfg.ResolveDBPath(""))

	t.Setenv(EnvDB, "")
	assert.Equal(t, "/from/config.db", cfg.ResolveDBPath(""))
	assert.Equal(t, filepath.Join(DefaultDir(), "study.db"), Config{}.ResolveDBPath(""))
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfig, "/env/config.yaml")
	assert.Equal(t, "/x.yaml", Path("/x.yaml"))
	assert.Equal(t, "/env/config.yaml", Path(""))
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.Language = "english"
	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
