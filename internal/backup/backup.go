package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"agency-backend/internal/config"
	"agency-backend/internal/logger"
)

// Uploader pushes periodic snapshots of the local data document to an
// S3-compatible bucket. Local mode only, best-effort: a failed upload is
// logged and retried on the next tick.
type Uploader struct {
	cfg      *config.Config
	dataPath string
	client   *s3.Client
	log      zerolog.Logger
}

func NewUploader(cfg *config.Config, dataPath string) (*Uploader, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Backup.AccessKey,
			cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Backup.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure backup client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
		}
	})

	return &Uploader{
		cfg:      cfg,
		dataPath: dataPath,
		client:   client,
		log:      logger.WithComponent("backup"),
	}, nil
}

// Run uploads a snapshot immediately and then on every interval tick until
// the context is cancelled.
func (u *Uploader) Run(ctx context.Context) {
	interval := time.Duration(u.cfg.Backup.IntervalHours) * time.Hour
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	u.upload(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.upload(ctx)
		}
	}
}

func (u *Uploader) upload(ctx context.Context) {
	raw, err := os.ReadFile(u.dataPath)
	if err != nil {
		u.log.Warn().Err(err).Msg("skipping backup, data file unreadable")
		return
	}

	key := fmt.Sprintf("snapshots/appdata-%s.json", time.Now().UTC().Format("20060102-150405"))
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Backup.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		u.log.Warn().Err(err).Str("key", key).Msg("snapshot upload failed")
		return
	}
	u.log.Info().Str("key", key).Int("bytes", len(raw)).Msg("snapshot uploaded")
}
