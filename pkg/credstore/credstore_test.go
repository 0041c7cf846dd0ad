package credstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store := New(path)

	err := store.Save(Credentials{ClientID: "id", ClientSecret: "secret"})
	assert.NoError(t, err)

	creds, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "id", creds.ClientID)
	assert.Equal(t, "secret", creds.ClientSecret)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		assert.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestSaveRejectsIncompleteCredentials(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "credentials.json"))

	assert.Error(t, store.Save(Credentials{ClientID: "id"}))
	assert.Error(t, store.Save(Credentials{ClientSecret: "secret"}))
}

func TestLoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "credentials.json"))

	_, err := store.Load()

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := New(path)
	assert.NoError(t, store.Save(Credentials{ClientID: "id", ClientSecret: "secret"}))

	assert.NoError(t, store.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// clearing twice is fine
	assert.NoError(t, store.Clear())
}
