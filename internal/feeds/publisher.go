package feeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/clearledger/blogen/internal/config"
)

// Publisher uploads generated feed XML to S3-compatible object storage
// (Cloudflare R2) so the static site can serve it from the CDN.
type Publisher struct {
	client *s3.Client
	bucket string
}

// NewPublisher returns nil when no R2 endpoint is configured; feed
// publishing is optional.
func NewPublisher(ctx context.Context, cfg *config.Config) (*Publisher, error) {
	if cfg.R2Endpoint == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKey, cfg.R2SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true
	})

	return &Publisher{
		client: client,
		bucket: cfg.R2Bucket,
	}, nil
}

// Publish writes one XML document to the bucket.
func (p *Publisher) Publish(ctx context.Context, key, body, contentType string) error {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(key),
		Body:         strings.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", key, err)
	}
	return nil
}
