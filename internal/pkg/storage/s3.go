// Copyright 2026 Forgegate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

type s3Storage struct {
	client *s3.Client
	conf   *Storage
}

func newS3(s *Storage) (IStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s.Region),
	}
	if s.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Storage{client: client, conf: s}, nil
}

func (st *s3Storage) PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (ArtifactRef, error) {
	fullPath := getFullPath(st.conf.BasePath, objectName)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(st.conf.Bucket),
		Key:           aws.String(fullPath),
		Body:          reader,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := st.client.PutObject(ctx, input); err != nil {
		return ArtifactRef{}, errors.Wrapf(err, "s3 put %s", fullPath)
	}

	return ArtifactRef{Provider: S3, Bucket: st.conf.Bucket, Key: fullPath}, nil
}

func (st *s3Storage) GetObject(ctx context.Context, objectName string) (io.ReadCloser, error) {
	fullPath := getFullPath(st.conf.BasePath, objectName)

	out, err := st.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(st.conf.Bucket),
		Key:    aws.String(fullPath),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "s3 get %s", fullPath)
	}
	return out.Body, nil
}

func (st *s3Storage) Provider() string {
	return S3
}
