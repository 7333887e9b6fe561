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
	"fmt"
	"io"
	"path"
	"strings"
)

// Provider names.
const (
	Minio = "minio"
	S3    = "s3"
)

// Storage holds object storage configuration.
type Storage struct {
	Provider  string `mapstructure:"provider"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseTLS    bool   `mapstructure:"useTLS"`
	BasePath  string `mapstructure:"basePath"`
}

// ArtifactRef locates an object in the artifact store.
type ArtifactRef struct {
	Provider string `json:"provider"`
	Bucket   string `json:"bucket"`
	Key      string `json:"key"`
}

// String renders the reference in provider://bucket/key form.
func (r ArtifactRef) String() string {
	return fmt.Sprintf("%s://%s/%s", r.Provider, r.Bucket, r.Key)
}

// IStorage is the artifact store consumed by the Publish stage and by the
// downstream consumer of the final build artifact.
type IStorage interface {
	// PutObject writes an object and returns its reference.
	PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (ArtifactRef, error)
	// GetObject opens an object for reading.
	GetObject(ctx context.Context, objectName string) (io.ReadCloser, error)
	// Provider returns the driver name.
	Provider() string
}

// NewStorage creates a storage driver from configuration.
func NewStorage(s *Storage) (IStorage, error) {
	switch s.Provider {
	case Minio:
		return newMinio(s)
	case S3:
		return newS3(s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

// getFullPath joins BasePath and objectName, avoiding double slashes.
func getFullPath(basePath, objectName string) string {
	if basePath == "" {
		return strings.TrimPrefix(objectName, "/")
	}
	basePath = strings.Trim(basePath, "/")
	objectName = strings.TrimPrefix(objectName, "/")
	return path.Join(basePath, objectName)
}
