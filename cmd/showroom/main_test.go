package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/testdb"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoPath(parts ...string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(append([]string{filepath.Dir(file), "..", ".."}, parts...)...)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "showroom.db"))
	t.Setenv("DB_MIGRATION_FOLDER_PATH", testdb.MigrationsPath())
	t.Setenv("LOG_LEVEL", "error")
}

func TestSeedThenQuery(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "migrate")
	require.NoError(t, err)

	out, err := run(t, "seed", "--file", repoPath("db", "seed", "showroom.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, `"products": 5`)

	out, err = run(t, "resolve", "3")
	require.NoError(t, err)
	var resolution models.Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &resolution))
	assert.Equal(t, models.TierScene, resolution.Tier)
	require.NotEmpty(t, resolution.Products)
	assert.Equal(t, "LASER 2010 XY", resolution.Products[0].Name)

	out, err = run(t, "scene", "1")
	require.NoError(t, err)
	var descriptor models.SceneDescriptor
	require.NoError(t, json.Unmarshal([]byte(out), &descriptor))
	assert.Equal(t, 1, descriptor.Scene.ID)

	out, err = run(t, "product", "LASER 2010 XY")
	require.NoError(t, err)
	assert.Contains(t, out, `"Name": "LASER 2010 XY"`)
}

func TestQueryErrors(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "resolve", "abc")
	assert.ErrorContains(t, err, "invalid id")

	_, err = run(t, "scene", "404")
	assert.ErrorContains(t, err, "scene 404 not found")

	_, err = run(t, "resolve")
	assert.Error(t, err)
}

func TestResolveZeroIDIsEmpty(t *testing.T) {
	setupEnv(t)

	for _, id := range []string{"0", "-3"} {
		out, err := run(t, "resolve", "--", id)
		require.NoError(t, err, id)

		var resolution models.Resolution
		require.NoError(t, json.Unmarshal([]byte(out), &resolution))
		assert.Equal(t, models.TierNone, resolution.Tier)
		assert.Empty(t, resolution.Products)
	}
}
