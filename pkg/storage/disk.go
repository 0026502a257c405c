// Package storage abstracts where seed files live.
//
// Two drivers are available:
//   - "local"  local filesystem under STORAGE_LOCAL_ROOT (default)
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disk, err := storage.Open(ctx, config.SeedDisk())
//	data, err := disk.Get(ctx, "data/users.json")
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/offerdesk/config"
)

// ErrNotExist is returned by Get when path is absent.
var ErrNotExist = errors.New("storage: file does not exist")

// Disk is the filesystem driver interface. Paths are slash separated and
// relative to the disk root.
type Disk interface {
	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Files lists the files directly inside directory, sorted.
	Files(ctx context.Context, directory string) ([]string, error)
}

// Open builds the named disk from configuration.
func Open(ctx context.Context, name string) (Disk, error) {
	switch name {
	case "", "local":
		return NewLocal(config.StorageLocalRoot()), nil
	case "s3":
		d, err := NewS3(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
		})
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("storage: unsupported disk %q (supported: local, s3)", name)
	}
}
