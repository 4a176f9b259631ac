package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hzchat/internal/pkg/logx"
)

// LogShipper uploads rotated protocol log segments to an S3-compatible
// bucket. A nil *LogShipper is valid and Ship becomes a no-op, so callers do
// not need to branch on whether S3_BUCKET was configured.
type LogShipper struct {
	bucket   string
	uploader *manager.Uploader
}

// NewLogShipper builds a shipper targeting bucket at endpoint/region, signing
// requests with the given static credentials (set by the operator for an
// S3-compatible provider rather than relying on the default AWS credential
// chain). Pass an empty bucket to get a nil, no-op shipper.
func NewLogShipper(ctx context.Context, bucket, endpoint, region, accessKeyID, secretAccessKey string) (*LogShipper, error) {
	if bucket == "" {
		return nil, nil
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("archive: load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &LogShipper{
		bucket:   bucket,
		uploader: manager.NewUploader(client),
	}, nil
}

// Ship uploads the file at path under key "logs/<basename>-<unix nanos>.log"
// so repeated rotations of the same server.log never collide. Upload
// failures are logged, not returned: a failed shipment must never delay or
// block the rotation it is archiving.
func (s *LogShipper) Ship(ctx context.Context, path string, rotatedAt time.Time) {
	if s == nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logx.Error(err, "Failed to open rotated log segment for S3 shipment", "path", path)
		return
	}
	defer f.Close()

	key := fmt.Sprintf("logs/%s-%d.log", filepath.Base(path), rotatedAt.UnixNano())

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		logx.Error(err, "Failed to ship rotated log segment to S3", "path", path, "key", key)
	}
}
