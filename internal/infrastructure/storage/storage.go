// Package storage implements provider.StorageProvider on the local disk,
// Amazon S3 and Google Cloud Storage, and builds public URLs for stored files.
package storage

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/config"
	"github.com/oksasatya/t2-user-service/internal/domain/provider"
)

// New builds the provider selected by cfg.StorageDriver. The returned
// closer releases client resources and is never nil.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (provider.StorageProvider, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StorageDisk:
		d, err := NewDisk(cfg.TmpFolder, cfg.UploadsFolder)
		if err != nil {
			return nil, noop, err
		}
		logger.WithField("dir", cfg.UploadsFolder).Info("storage: disk")
		return d, noop, nil

	case config.StorageS3:
		client, err := NewS3Client(ctx, cfg.S3Region, cfg.AWSProfile, cfg.S3Endpoint)
		if err != nil {
			return nil, noop, err
		}
		logger.WithFields(logrus.Fields{"bucket": cfg.S3Bucket, "region": cfg.S3Region}).Info("storage: s3")
		return NewS3(client, cfg.S3Bucket, cfg.TmpFolder), noop, nil

	case config.StorageGCS:
		client, err := NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, noop, fmt.Errorf("init gcs client: %w", err)
		}
		logger.WithField("bucket", cfg.GCSBucket).Info("storage: gcs")
		return NewGCS(client, cfg.GCSBucket, cfg.TmpFolder), client.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// URLBuilder derives the public URL of a stored file for the active driver.
type URLBuilder struct {
	Driver   string
	APIURL   string
	Bucket   string
	Region   string
	Endpoint string
}

func NewURLBuilder(cfg *config.Config) URLBuilder {
	b := URLBuilder{Driver: cfg.StorageDriver, APIURL: cfg.AppAPIURL}
	switch cfg.StorageDriver {
	case config.StorageS3:
		b.Bucket, b.Region, b.Endpoint = cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint
	case config.StorageGCS:
		b.Bucket = cfg.GCSBucket
	}
	return b
}

// URL returns the public URL for file, or "" when the driver is unknown.
func (b URLBuilder) URL(file string) string {
	name := url.PathEscape(file)
	switch b.Driver {
	case config.StorageDisk:
		return b.APIURL + "/files/" + name
	case config.StorageS3:
		if b.Endpoint != "" {
			return fmt.Sprintf("%s/%s/%s", b.Endpoint, b.Bucket, name)
		}
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.Bucket, b.Region, name)
	case config.StorageGCS:
		return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.Bucket, name)
	}
	return ""
}

// AvatarURL is URL for a possibly unset avatar.
func (b URLBuilder) AvatarURL(avatar *string) *string {
	if avatar == nil || *avatar == "" {
		return nil
	}
	u := b.URL(*avatar)
	if u == "" {
		return nil
	}
	return &u
}
