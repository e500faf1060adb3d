package config_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"swasthya-portal/config"

	"github.com/stretchr/testify/require"
)

func TestWatchOfflineCacheName(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("OFFLINE_CACHE_NAME=swasthyabandhu-v1\n"), 0o644))

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "swasthyabandhu-v1", cfg.Offline.CacheName)

	var (
		mu   sync.Mutex
		seen string
	)
	require.True(t, config.WatchOfflineCacheName(func(name string) {
		mu.Lock()
		seen = name
		mu.Unlock()
	}))

	require.NoError(t, os.WriteFile(".env", []byte("OFFLINE_CACHE_NAME=swasthyabandhu-v2\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen == "swasthyabandhu-v2"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatchOfflineCacheName_WithoutEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := config.LoadConfig()
	require.NoError(t, err)
	require.False(t, config.WatchOfflineCacheName(func(string) {}))
}
