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

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type minioStorage struct {
	client *minio.Client
	conf   *Storage
}

func newMinio(s *Storage) (IStorage, error) {
	client, err := minio.New(s.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.UseTLS,
		Region: s.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}
	return &minioStorage{client: client, conf: s}, nil
}

func (m *minioStorage) PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (ArtifactRef, error) {
	fullPath := getFullPath(m.conf.BasePath, objectName)

	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := m.client.PutObject(ctx, m.conf.Bucket, fullPath, reader, size, opts); err != nil {
		return ArtifactRef{}, errors.Wrapf(err, "minio put %s", fullPath)
	}

	return ArtifactRef{Provider: Minio, Bucket: m.conf.Bucket, Key: fullPath}, nil
}

func (m *minioStorage) GetObject(ctx context.Context, objectName string) (io.ReadCloser, error) {
	fullPath := getFullPath(m.conf.BasePath, objectName)

	obj, err := m.client.GetObject(ctx, m.conf.Bucket, fullPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "minio get %s", fullPath)
	}
	return obj, nil
}

func (m *minioStorage) Provider() string {
	return Minio
}
