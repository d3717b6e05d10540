package agenda_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/agenda/internal/agenda"
	"github.com/calvinalkan/agenda/internal/store"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func loadConfig(t *testing.T, dir string, mutate func(*agenda.LoadConfigInput)) (agenda.Config, error) {
	t.Helper()

	input := agenda.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{"HOME": filepath.Join(dir, "home")},
	}

	if mutate != nil {
		mutate(&input)
	}

	return agenda.LoadConfig(input)
}

func Test_LoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := loadConfig(t, dir, nil)
	require.NoError(t, err)

	assert.Equal(t, store.BackendFile, cfg.Storage)
	assert.Equal(t, agenda.DefaultStorageKey, cfg.StorageKey)
	assert.Equal(t, agenda.IDStrategyTimestamp, cfg.IDStrategy)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, agenda.DefaultExportName, cfg.ExportName)
	assert.Equal(t, filepath.Join(dir, ".agenda"), cfg.DataDirAbs)
	assert.Equal(t, dir, cfg.EffectiveCwd)
	assert.Equal(t, int64(2_000_000), cfg.MaxPictureBytes)
	assert.Empty(t, cfg.Sources.Global)
	assert.Empty(t, cfg.Sources.Project)
}

func Test_LoadConfig_Project_File_Accepts_Comments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, agenda.ConfigFileName), `{
		// keep contacts next to the project
		"data_dir": "contacts",
		"storage": "sqlite",
		"max_picture_size": "512KB", // small avatars only
	}`)

	cfg, err := loadConfig(t, dir, nil)
	require.NoError(t, err)

	assert.Equal(t, store.BackendSQLite, cfg.Storage)
	assert.Equal(t, filepath.Join(dir, "contacts"), cfg.DataDirAbs)
	assert.Equal(t, int64(512_000), cfg.MaxPictureBytes)
	assert.Equal(t, filepath.Join(dir, agenda.ConfigFileName), cfg.Sources.Project)
}

func Test_LoadConfig_Explicit_TOML_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "agenda.toml"), `
storage_key = "work"
id_strategy = "uuid"
log_level = "debug"
`)

	cfg, err := loadConfig(t, dir, func(in *agenda.LoadConfigInput) {
		in.ConfigPath = "agenda.toml"
	})
	require.NoError(t, err)

	assert.Equal(t, "work", cfg.StorageKey)
	assert.Equal(t, agenda.IDStrategyUUID, cfg.IDStrategy)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func Test_LoadConfig_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := filepath.Join(dir, "xdg")

	writeFile(t, filepath.Join(xdg, "agenda", "config.json"), `{"storage": "memory", "export_name": "global.xml", "log_level": "info"}`)
	writeFile(t, filepath.Join(dir, agenda.ConfigFileName), `{"export_name": "project.xml"}`)

	cfg, err := loadConfig(t, dir, func(in *agenda.LoadConfigInput) {
		in.Env["XDG_CONFIG_HOME"] = xdg
		in.Env[agenda.LogLevelEnv] = "error"
		in.StorageOverride = "file"
		in.DataDirOverride = "/var/lib/agenda"
	})
	require.NoError(t, err)

	assert.Equal(t, store.BackendFile, cfg.Storage)
	assert.Equal(t, "project.xml", cfg.ExportName)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/var/lib/agenda", cfg.DataDirAbs)
	assert.Equal(t, filepath.Join(xdg, "agenda", "config.json"), cfg.Sources.Global)
}

func Test_LoadConfig_Rejects_Invalid_Values(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		config  string
		wantErr string
	}{
		{name: "unknown storage", config: `{"storage": "redis"}`, wantErr: "storage"},
		{name: "empty data dir", config: `{"data_dir": ""}`, wantErr: "data_dir cannot be empty"},
		{name: "empty storage key", config: `{"storage_key": ""}`, wantErr: "storage_key cannot be empty"},
		{name: "storage key with slash", config: `{"storage_key": "a/b"}`, wantErr: "storage_key"},
		{name: "unknown id strategy", config: `{"id_strategy": "random"}`, wantErr: "id_strategy"},
		{name: "unknown log level", config: `{"log_level": "loud"}`, wantErr: "log_level"},
		{name: "bad picture size", config: `{"max_picture_size": "huge"}`, wantErr: "max_picture_size"},
		{name: "broken json", config: `{"storage": `, wantErr: "invalid JSONC"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, agenda.ConfigFileName), tt.config)

			_, err := loadConfig(t, dir, nil)
			require.ErrorIs(t, err, agenda.ErrConfigInvalid)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func Test_LoadConfig_Rejects_Invalid_Storage_Override(t *testing.T) {
	t.Parallel()

	_, err := loadConfig(t, t.TempDir(), func(in *agenda.LoadConfigInput) {
		in.StorageOverride = "s3"
	})
	require.ErrorIs(t, err, agenda.ErrConfigInvalid)
}

func Test_LoadConfig_Missing_Explicit_File(t *testing.T) {
	t.Parallel()

	_, err := loadConfig(t, t.TempDir(), func(in *agenda.LoadConfigInput) {
		in.ConfigPath = "nope.json"
	})
	require.ErrorIs(t, err, agenda.ErrConfigFileNotFound)
}
