package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRuntimeSwapsReloadableSections(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Mode: "debug"},
		Upload:    UploadConfig{MaxImageSizeMB: 3},
		RateLimit: RateLimitConfig{MaxRequests: 6000, WindowMinutes: 1},
	}

	cfg.ApplyRuntime(&Config{
		Server:    ServerConfig{Mode: "release"},
		Upload:    UploadConfig{MaxImageSizeMB: 5},
		RateLimit: RateLimitConfig{MaxRequests: 100, WindowMinutes: 2},
	})

	assert.Equal(t, 5, cfg.MaxImageSizeMB())
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	// Non-reloadable sections keep their boot-time value.
	assert.Equal(t, "debug", cfg.Server.Mode)
}

func TestApplyRuntimeConcurrentReads(t *testing.T) {
	cfg := &Config{Upload: UploadConfig{MaxImageSizeMB: 3}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				size := cfg.MaxImageSizeMB()
				assert.Contains(t, []int{3, 5}, size)
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		cfg.ApplyRuntime(&Config{Upload: UploadConfig{MaxImageSizeMB: 5}})
		cfg.ApplyRuntime(&Config{Upload: UploadConfig{MaxImageSizeMB: 3}})
	}
	cfg.ApplyRuntime(&Config{Upload: UploadConfig{MaxImageSizeMB: 5}})
	wg.Wait()

	assert.Equal(t, 5, cfg.MaxImageSizeMB())
}
