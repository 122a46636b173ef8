package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRedirectURL(t *testing.T) {
	assert.Equal(t, "http://localhost:6789/oauth2callback", redirectURL("urn:ietf:wg:oauth:2.0:oob"))
	assert.Equal(t, "http://localhost:6789", redirectURL("http://localhost"))
	assert.Equal(t, "http://127.0.0.1:6789/cb", redirectURL("http://127.0.0.1:9999/cb"))
	assert.Equal(t, "https://example.com/cb", redirectURL("https://example.com/cb"))
}

func TestTokenFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", TokenFile)
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, saveToken(path, tok))

	loaded, err := tokenFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, Reset(filepath.Dir(path)))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, Reset(filepath.Dir(path)), "resetting twice is fine")
}

func TestGetConfigMissingSecrets(t *testing.T) {
	_, err := GetConfig(t.TempDir(), CalendarScopes)
	assert.Error(t, err)
}
