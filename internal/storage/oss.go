package storage

import (
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/napat/work-monitor-api/internal/config"
)

// OSSStore backs BlobStore with an Aliyun OSS bucket.
type OSSStore struct {
	bucket        *oss.Bucket
	deleteEnabled bool
}

// NewOSSStore builds an OSSStore from configuration. Deletes stay disabled
// unless both access and secret keys are present.
func NewOSSStore(cfg *config.Config) (*OSSStore, error) {
	endpoint := cfg.OSSEndpoint
	if endpoint == "" {
		endpoint = "dummy"
	}

	cli, err := oss.New(endpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}

	bucket, err := cli.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}

	return &OSSStore{
		bucket:        bucket,
		deleteEnabled: cfg.OSSAccessKey != "" && cfg.OSSSecretKey != "",
	}, nil
}

func (s *OSSStore) Provider() string { return "oss" }

func (s *OSSStore) DeleteEnabled() bool { return s.deleteEnabled }

func (s *OSSStore) Delete(publicID string) error {
	return s.bucket.DeleteObject(publicID)
}
