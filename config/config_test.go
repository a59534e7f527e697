package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(t.TempDir(), "", noEnv)
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONCFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `{
		// comments are allowed
		"server": {"addr": ":9090", "uploads_dir": "files", "body_limit_mb": 4},
		"client": {"server_url": "http://planner:9090", "data_dir": "mirror", "timeout_seconds": 3,},
	}`)

	cfg, err := Load(dir, "", noEnv)
	require.NoError(t, err)

	want := Default()
	want.Server = ServerConfig{Addr: ":9090", UploadsDir: "files", BodyLimitMB: 4}
	want.Client = ClientConfig{ServerURL: "http://planner:9090", DataDir: "mirror", TimeoutSeconds: 3}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 3*time.Second, cfg.Client.Timeout())
	require.True(t, cfg.Database.AutoMigrate, "absent keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `{"server": {"addr": ":9090"}}`)

	env := map[string]string{
		"LIFEPLAN_ADDR":         ":7000",
		"LIFEPLAN_AUTO_MIGRATE": "false",
		"DB_USER":               "planner",
		"DB_NAME":               "life",
	}
	cfg, err := Load(dir, "", func(k string) string { return env[k] })
	require.NoError(t, err)

	require.Equal(t, ":7000", cfg.Server.Addr)
	require.False(t, cfg.Database.AutoMigrate)

	url, err := cfg.DatabaseURL()
	require.NoError(t, err)
	require.Equal(t, "postgresql://planner@localhost:5432/life", url)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir, "missing.json", noEnv)
	require.ErrorIs(t, err, errConfigFileNotFound)

	writeFile(t, dir, "bad.json", `{"server": `)
	_, err = Load(dir, "bad.json", noEnv)
	require.ErrorIs(t, err, errConfigInvalid)

	writeFile(t, dir, "unknown.json", `{"nope": 1}`)
	_, err = Load(dir, "unknown.json", noEnv)
	require.ErrorIs(t, err, errConfigInvalid)

	writeFile(t, dir, "zero.json", `{"client": {"timeout_seconds": 0}}`)
	_, err = Load(dir, "zero.json", noEnv)
	require.ErrorIs(t, err, errConfigInvalid)
}

func TestDatabaseURL_Missing(t *testing.T) {
	_, err := Default().DatabaseURL()
	require.Error(t, err)
}
