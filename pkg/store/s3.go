package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/matzehuels/stackcensus/pkg/errors"
	"github.com/matzehuels/stackcensus/pkg/httputil"
)

// DefaultRegion is used when S3Config.Region is empty.
const DefaultRegion = "us-east-1"

// DefaultS3Endpoint is the AWS S3 endpoint.
const DefaultS3Endpoint = "s3.amazonaws.com"

// S3Config configures an [S3Store].
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// CreateBucket makes the bucket on Connect if it does not exist.
	CreateBucket bool
}

// S3Store stores objects in one S3 bucket.
type S3Store struct {
	client  *minio.Client
	bucket  string
	region  string
	create  bool
	backoff httputil.Backoff
	logger  *log.Logger

	mu        sync.Mutex
	connected bool
}

// NewS3Store creates an S3 store. No network calls are made until Connect.
func NewS3Store(cfg S3Config, logger *log.Logger) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultS3Endpoint
	}
	// minio wants a bare host
	if strings.HasPrefix(endpoint, "https://") {
		endpoint = strings.TrimPrefix(endpoint, "https://")
		cfg.UseSSL = true
	}
	endpoint = strings.TrimSuffix(strings.TrimPrefix(endpoint, "http://"), "/")

	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = DefaultRegion
	}
	if logger == nil {
		logger = log.Default()
	}

	var creds *credentials.Credentials
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		creds = credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), "")
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{Client: &http.Client{Transport: http.DefaultTransport}},
		})
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "create s3 client for %s", endpoint)
	}

	return &S3Store{
		client:  client,
		bucket:  bucket,
		region:  region,
		create:  cfg.CreateBucket,
		backoff: httputil.Backoff{Attempts: 3, Delay: 500 * time.Millisecond, MaxDelay: 5 * time.Second},
		logger:  logger,
	}, nil
}

// Bucket returns the bucket name.
func (s *S3Store) Bucket() string { return s.bucket }

// Connect checks that the bucket is reachable, creating it when configured
// to. Transient failures are retried.
func (s *S3Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected {
		return nil
	}

	b := s.backoff
	b.OnRetry = func(attempt int, err error) {
		s.logger.Warn("s3 connect failed, retrying", "bucket", s.bucket, "attempt", attempt, "error", err)
	}
	err := b.Do(ctx, func() error {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		if exists {
			return nil
		}
		if !s.create {
			return fmt.Errorf("bucket %s does not exist", s.bucket)
		}
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	if err != nil {
		return err
	}

	s.connected = true
	s.logger.Debug("connected to s3", "bucket", s.bucket)
	return nil
}

// IsConnected reports whether Connect has verified the bucket.
func (s *S3Store) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Exists stats the object. A missing key is (false, nil).
func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, err
}

// Get reads the whole object. It returns [ErrNotFound] for a missing key.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put uploads data as an application/json object, replacing any previous one.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

// Location returns bucket/key.
func (s *S3Store) Location(key string) string {
	return s.bucket + "/" + key
}

// Close is a no-op; the minio client holds no resources that need release.
func (s *S3Store) Close(context.Context) error { return nil }

func isNoSuchKey(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}
