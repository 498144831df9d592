package cli

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackcensus/pkg/cache"
	"github.com/matzehuels/stackcensus/pkg/config"
	"github.com/matzehuels/stackcensus/pkg/deps/python"
	"github.com/matzehuels/stackcensus/pkg/errors"
	"github.com/matzehuels/stackcensus/pkg/integrations/pypi"
	"github.com/matzehuels/stackcensus/pkg/query"
	"github.com/matzehuels/stackcensus/pkg/store"
)

// newCache opens the configured cache, scoped to the deployment prefix.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	var backend cache.Cache
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheMemory:
		m, err := cache.NewMemoryCache(cache.DefaultMemorySize)
		if err != nil {
			return nil, err
		}
		backend = m
	case config.CacheRedis:
		r, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConnectFailure, err, "connect to redis at %s", cfg.Cache.RedisAddr)
		}
		backend = r
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, err
		}
		f, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		backend = f
	}
	return cache.Scoped(backend, cfg.DeploymentPrefix+":"), nil
}

func cacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// newValidator builds the PyPI name validator. A nil validator keeps every
// well-formed name.
func newValidator(cfg *config.Config, backend cache.Cache, logger *log.Logger) (python.Validator, error) {
	switch cfg.PyPI.Validation {
	case config.ValidateOff:
		return python.AllowAll, nil
	case config.ValidateStatic:
		v, err := python.LoadStaticValidator(cfg.PyPI.KnownPackages)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded known packages", "count", v.Len(), "path", cfg.PyPI.KnownPackages)
		return v, nil
	default:
		client := pypi.NewClient(backend, cfg.Cache.TTL.Duration).WithBaseURL(cfg.PyPI.BaseURL)
		return python.NewRegistryValidator(client, logger), nil
	}
}

// newQueryClient returns a FileSource when rowsFile is set, BigQuery otherwise.
func newQueryClient(ctx context.Context, cfg *config.Config, rowsFile string, logger *log.Logger) (query.Client, func() error, error) {
	if rowsFile != "" {
		return query.NewFileSource(rowsFile, logger), func() error { return nil }, nil
	}
	bq, err := query.NewBigQuery(ctx, query.BigQueryConfig{
		ProjectID:       cfg.BigQuery.ProjectID,
		CredentialsFile: cfg.BigQuery.CredentialsFile,
		Location:        cfg.BigQuery.Location,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return bq, bq.Close, nil
}

// newStore opens the configured object store.
func newStore(cfg *config.Config, logger *log.Logger) (store.Blob, error) {
	switch cfg.StoreBackend() {
	case config.StoreMongo:
		return store.NewMongoStore(store.MongoConfig{
			URI:        cfg.Store.MongoURI,
			Database:   cfg.Store.MongoDatabase,
			Collection: cfg.Store.MongoCollection,
		}, logger)
	case config.StoreLocal:
		return store.NewLocalStore(filepath.Join(cfg.Store.LocalDir, cfg.BucketName())), nil
	default:
		return store.NewS3Store(store.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.BucketName(),
			UseSSL:    cfg.S3.UseSSL,
		}, logger)
	}
}
