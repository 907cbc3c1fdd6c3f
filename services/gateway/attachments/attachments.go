// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package attachments stores meeting attachment bytes. Attachment
// metadata lives in the meeting service; this package only holds the
// file contents, keyed by meeting UID and attachment UID.
package attachments

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

// Store reads and writes attachment bytes.
type Store interface {
	Put(ctx context.Context, meetingUID, attachmentUID string, contentType string, body io.Reader) error
	Get(ctx context.Context, meetingUID, attachmentUID string) (io.ReadCloser, error)
	Delete(ctx context.Context, meetingUID, attachmentUID string) error
}

func objectPath(meetingUID, attachmentUID string) string {
	return fmt.Sprintf("meetings/%s/attachments/%s", meetingUID, attachmentUID)
}

// GCSStore keeps attachments in a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

var _ Store = (*GCSStore)(nil)

// NewGCSStore opens the bucket client. saKeyPath is optional; empty
// falls back to ambient application-default credentials.
func NewGCSStore(ctx context.Context, bucket, saKeyPath string) (*GCSStore, error) {
	var opts []option.ClientOption
	if saKeyPath != "" {
		if _, err := os.Stat(saKeyPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("service account key not found at %s", saKeyPath)
		}
		opts = append(opts, option.WithCredentialsFile(saKeyPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Put(ctx context.Context, meetingUID, attachmentUID, contentType string, body io.Reader) error {
	obj := s.client.Bucket(s.bucket).Object(objectPath(meetingUID, attachmentUID))
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "no-cache, no-store, must-revalidate"
	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write attachment %s: %w", attachmentUID, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize attachment %s: %w", attachmentUID, err)
	}
	return nil
}

func (s *GCSStore) Get(ctx context.Context, meetingUID, attachmentUID string) (io.ReadCloser, error) {
	obj := s.client.Bucket(s.bucket).Object(objectPath(meetingUID, attachmentUID))
	reader, err := obj.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, datatypes.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to open attachment %s: %w", attachmentUID, err)
	}
	return reader, nil
}

func (s *GCSStore) Delete(ctx context.Context, meetingUID, attachmentUID string) error {
	obj := s.client.Bucket(s.bucket).Object(objectPath(meetingUID, attachmentUID))
	if err := obj.Delete(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return datatypes.ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to delete attachment %s: %w", attachmentUID, err)
	}
	return nil
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// LocalStore keeps attachments under a directory. Demo mode uses it so
// uploads work without cloud credentials.
type LocalStore struct {
	root string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates the root directory if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create attachment dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(meetingUID, attachmentUID string) string {
	return filepath.Join(s.root, filepath.FromSlash(objectPath(meetingUID, attachmentUID)))
}

func (s *LocalStore) Put(_ context.Context, meetingUID, attachmentUID, _ string, body io.Reader) error {
	path := s.path(meetingUID, attachmentUID)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create attachment dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer file.Close()
	if _, err := io.Copy(file, body); err != nil {
		return fmt.Errorf("failed to write attachment file: %w", err)
	}
	return nil
}

func (s *LocalStore) Get(_ context.Context, meetingUID, attachmentUID string) (io.ReadCloser, error) {
	file, err := os.Open(s.path(meetingUID, attachmentUID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, datatypes.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to open attachment file: %w", err)
	}
	return file, nil
}

func (s *LocalStore) Delete(_ context.Context, meetingUID, attachmentUID string) error {
	if err := os.Remove(s.path(meetingUID, attachmentUID)); err != nil {
		if os.IsNotExist(err) {
			return datatypes.ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to delete attachment file: %w", err)
	}
	return nil
}
