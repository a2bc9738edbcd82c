package indexer

import (
	"context"

	"github.com/code-payments/name-service/pkg/config"
	"github.com/code-payments/name-service/pkg/config/env"
	"github.com/code-payments/name-service/pkg/config/memory"
	"github.com/code-payments/name-service/pkg/config/wrapper"
)

const (
	envConfigPrefix = "REGISTRY_INDEXER_"

	BatchSizeConfigEnvName = envConfigPrefix + "BATCH_SIZE"
	defaultBatchSize       = 250

	CacheSizeConfigEnvName = envConfigPrefix + "CACHE_SIZE"
	defaultCacheSize       = 100_000
)

type conf struct {
	batchSize config.Uint64
	cacheSize config.Uint64
}

// pageSize never returns zero, since an empty page would never advance the
// cursor
func (c *conf) pageSize(ctx context.Context) uint64 {
	size := c.batchSize.Get(ctx)
	if size == 0 {
		return defaultBatchSize
	}
	return size
}

// cacheBudget never returns zero, since an LRU without budget cannot hold
// a single entry
func (c *conf) cacheBudget(ctx context.Context) int {
	size := c.cacheSize.Get(ctx)
	if size == 0 {
		return defaultCacheSize
	}
	return int(size)
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			batchSize: env.NewUint64Config(BatchSizeConfigEnvName, defaultBatchSize),
			cacheSize: env.NewUint64Config(CacheSizeConfigEnvName, defaultCacheSize),
		}
	}
}

type testOverrides struct {
	batchSize uint64
	cacheSize uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		batchSize := uint64(defaultBatchSize)
		if overrides.batchSize > 0 {
			batchSize = overrides.batchSize
		}

		cacheSize := uint64(defaultCacheSize)
		if overrides.cacheSize > 0 {
			cacheSize = overrides.cacheSize
		}

		return &conf{
			batchSize: wrapper.NewUint64Config(memory.NewConfig(batchSize), defaultBatchSize),
			cacheSize: wrapper.NewUint64Config(memory.NewConfig(cacheSize), defaultCacheSize),
		}
	}
}
