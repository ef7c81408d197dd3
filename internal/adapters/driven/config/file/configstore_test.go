package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("project.package", "tubeharvest")
	require.NoError(t, err)

	val, ok := store.Get("project.package")
	assert.True(t, ok)
	assert.Equal(t, "tubeharvest", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("index.test_simple_url", "https://test.pypi.org/simple/")
	require.NoError(t, err)

	val := store.GetString("index.test_simple_url")
	assert.Equal(t, "https://test.pypi.org/simple/", val)

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	err = store.Set("int_key", 42)
	require.NoError(t, err)
	assert.Equal(t, "", store.GetString("int_key"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("ci.max_line_length", 127)
	require.NoError(t, err)

	assert.Equal(t, 127, store.GetInt("ci.max_line_length"))

	// Non-existent key
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	// Wrong type
	err = store.Set("string_key", "not an int")
	require.NoError(t, err)
	assert.Equal(t, 0, store.GetInt("string_key"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("publish.auto_confirm", true)
	require.NoError(t, err)

	assert.True(t, store.GetBool("publish.auto_confirm"))

	// Non-existent key
	assert.False(t, store.GetBool("nonexistent"))

	// Wrong type
	err = store.Set("string_key", "true")
	require.NoError(t, err)
	assert.False(t, store.GetBool("string_key"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("ci.oses", []string{"ubuntu-latest", "macos-latest"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ubuntu-latest", "macos-latest"}, store.GetStringSlice("ci.oses"))

	// Non-existent key
	assert.Nil(t, store.GetStringSlice("nonexistent"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("project.dir", "/work/tubeharvest"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/work/tubeharvest", reloaded.GetString("project.dir"))
}

// Nested TOML tables round-trip as dot-notation keys.
func TestConfigStore_Load_FlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `[project]
dir = "/work/tubeharvest"
package = "tubeharvest"

[index]
test_simple_url = "https://test.pypi.org/simple/"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/work/tubeharvest", store.GetString("project.dir"))
	assert.Equal(t, "tubeharvest", store.GetString("project.package"))
	assert.Equal(t, "https://test.pypi.org/simple/", store.GetString("index.test_simple_url"))
}

func TestConfigStore_Load_MalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[broken"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_RestrictedPermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
