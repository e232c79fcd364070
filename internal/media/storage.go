package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Storage uploads processed images to S3 compatible object storage.
type Storage struct {
	client    objectPutter
	bucket    string
	publicURL string
	maxSide   int
}

func NewS3Storage(cfg Config) *Storage {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		// MinIO and friends
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return newStorage(s3.New(opts), cfg)
}

func newStorage(client objectPutter, cfg Config) *Storage {
	public := strings.TrimRight(cfg.PublicURL, "/")
	if public == "" {
		switch {
		case cfg.Endpoint != "":
			public = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		default:
			public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: public,
		maxSide:   DefaultMaxSide,
	}
}

// Upload converts the image to webp and stores it under folder. It returns
// the public URL of the object.
func (s *Storage) Upload(ctx context.Context, folder string, r io.Reader) (string, error) {
	data, err := ToWebP(r, s.maxSide)
	if err != nil {
		return "", err
	}

	key := strings.Trim(folder, "/") + "/" + uuid.NewString() + ".webp"
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/webp"),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.publicURL + "/" + key, nil
}
