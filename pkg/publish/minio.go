// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package publish uploads catalogs to S3-compatible object storage.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mesh-intelligence/content-catalog/pkg/catalog"
)

// ErrPublishNotConfigured is returned when no endpoint or bucket is set.
var ErrPublishNotConfigured = errors.New("publish endpoint and bucket are not configured")

// Publisher puts catalog bytes into one bucket.
type Publisher struct {
	client   *minio.Client
	bucket   string
	object   string
	region   string
	initOnce sync.Once
	initErr  error
}

// Options are the resolved publisher settings.
type Options struct {
	Endpoint  string
	Bucket    string
	Object    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// OptionsFromConfig resolves credentials from the environment variables
// named in cfg.
func OptionsFromConfig(cfg catalog.Config) Options {
	p := cfg.Publish
	return Options{
		Endpoint:  p.Endpoint,
		Bucket:    p.Bucket,
		Object:    cfg.PublishObject(),
		Region:    p.Region,
		AccessKey: os.Getenv(p.AccessKeyEnv),
		SecretKey: os.Getenv(p.SecretKeyEnv),
		UseSSL:    p.UseSSL,
	}
}

// New builds a Publisher. No network call is made until Publish.
func New(opts Options) (*Publisher, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	bucket := strings.TrimSpace(opts.Bucket)
	if endpoint == "" || bucket == "" {
		return nil, ErrPublishNotConfigured
	}
	access := strings.TrimSpace(opts.AccessKey)
	secret := strings.TrimSpace(opts.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	object := strings.TrimLeft(strings.TrimSpace(opts.Object), "/")
	if object == "" {
		return nil, fmt.Errorf("s3 object key is required")
	}
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: opts.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &Publisher{client: client, bucket: bucket, object: object, region: region}, nil
}

// Object returns the destination object key.
func (p *Publisher) Object() string {
	return p.object
}

// Bucket returns the destination bucket.
func (p *Publisher) Bucket() string {
	return p.bucket
}

func (p *Publisher) ensureBucket(ctx context.Context) error {
	p.initOnce.Do(func() {
		exists, err := p.client.BucketExists(ctx, p.bucket)
		if err != nil {
			p.initErr = err
			return
		}
		if exists {
			return
		}
		p.initErr = p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region})
	})
	return p.initErr
}

// Publish uploads data as application/json. The fingerprint, when set, is
// attached as object metadata so consumers can skip unchanged catalogs.
func (p *Publisher) Publish(ctx context.Context, data []byte, fingerprint string) error {
	if err := p.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensuring bucket %s: %w", p.bucket, err)
	}
	opts := minio.PutObjectOptions{ContentType: "application/json"}
	if fingerprint != "" {
		opts.UserMetadata = map[string]string{"Catalog-Fingerprint": fingerprint}
	}
	info, err := p.client.PutObject(ctx, p.bucket, p.object, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return fmt.Errorf("uploading %s/%s: %w", p.bucket, p.object, err)
	}
	logf("publish: uploaded %s/%s (%d bytes, etag %s)", p.bucket, p.object, info.Size, info.ETag)
	return nil
}

func logf(format string, args ...any) {
	catalog.Logger().Info(fmt.Sprintf(format, args...))
}
