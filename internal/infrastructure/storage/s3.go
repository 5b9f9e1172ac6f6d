package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/oksasatya/t2-user-service/internal/domain/provider"
)

type s3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type s3Deleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 uploads staged avatars to a public-read bucket keyed by file name.
type S3 struct {
	Bucket    string
	TmpFolder string
	uploader  s3Uploader
	client    s3Deleter
}

// NewS3Client loads the default AWS credential chain. A non-empty endpoint
// targets an S3-compatible store with path-style addressing.
func NewS3Client(ctx context.Context, region, profile, endpoint string) (*s3.Client, error) {
	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	if profile != "" {
		opts = append(opts, awscfg.WithSharedConfigProfile(profile))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3(client *s3.Client, bucket, tmpFolder string) *S3 {
	return &S3{
		Bucket:    bucket,
		TmpFolder: tmpFolder,
		uploader:  manager.NewUploader(client),
		client:    client,
	}
}

func contentTypeOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

func (s *S3) SaveFile(ctx context.Context, file string) (string, error) {
	name := filepath.Base(file)
	contentType := contentTypeOf(name)
	if contentType == "" {
		return "", provider.ErrFileNotFound
	}

	path := filepath.Join(s.TmpFolder, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", provider.ErrFileNotFound
		}
		return "", err
	}
	defer func() { _ = f.Close() }()

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(name),
		Body:        f,
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	_ = f.Close()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("remove staged %s: %w", name, err)
	}
	return name, nil
}

func (s *S3) DeleteFile(ctx context.Context, file string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(filepath.Base(file)),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", file, err)
	}
	return nil
}

var _ provider.StorageProvider = (*S3)(nil)
