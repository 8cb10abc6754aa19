package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/model"
	"github.com/ytget/playlist-demo/internal/platform"
)

const payloadContentType = "text/plain; charset=utf-8"

// MinioClient stores objects in a single bucket.
type MinioClient struct {
	client *minio.Client
	bucket string
}

// NewMinioClient connects to endpoint and creates bucket if needed.
func NewMinioClient(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioClient, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := minioClient.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioClient{
		client: minioClient,
		bucket: bucket,
	}, nil
}

// Upload stores content under objectKey
func (m *MinioClient) Upload(ctx context.Context, objectKey string, content []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectKey, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: payloadContentType,
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	return nil
}

// Download retrieves the object stored under objectKey
func (m *MinioClient) Download(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object failed: %w", err)
	}
	defer obj.Close()

	buf := new(bytes.Buffer)
	if _, err = io.Copy(buf, obj); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("copy object content failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RemovePrefix deletes every object under prefix
func (m *MinioClient) RemovePrefix(ctx context.Context, prefix string) error {
	objects := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return fmt.Errorf("list objects failed: %w", obj.Err)
		}
		if err := m.client.RemoveObject(ctx, m.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove object failed: %w", err)
		}
	}
	return nil
}

type objectStore interface {
	Upload(ctx context.Context, objectKey string, content []byte) error
	Download(ctx context.Context, objectKey string) ([]byte, error)
	RemovePrefix(ctx context.Context, prefix string) error
}

// ObjectStore keeps files as objects keyed <session id>/<file name>.
type ObjectStore struct {
	objects objectStore
}

// NewObjectStore wraps a MinIO client as a Store.
func NewObjectStore(client *MinioClient) *ObjectStore {
	return &ObjectStore{objects: client}
}

// Saver returns a saver uploading into the session's prefix.
func (s *ObjectStore) Saver(sessionID string, faults platform.FaultInjector) platform.Saver {
	if faults == nil {
		faults = platform.NoFaults
	}
	return &objectSaver{objects: s.objects, prefix: sessionID, faults: faults, now: time.Now}
}

// Read downloads a saved object.
func (s *ObjectStore) Read(ctx context.Context, sessionID, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return s.objects.Download(ctx, path.Join(sessionID, name))
}

// RemoveSession deletes the session's objects.
func (s *ObjectStore) RemoveSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.objects.RemovePrefix(ctx, sessionID+"/")
}

type objectSaver struct {
	objects objectStore
	prefix  string
	faults  platform.FaultInjector
	now     func() time.Time
}

// Save builds the payload in memory and uploads it unless the save is
// blocked. The buffer is dropped on both paths.
func (s *objectSaver) Save(ctx context.Context, index int, video *model.Video) (string, error) {
	payload := platform.BuildPayload(video, s.now())
	if s.faults.ShouldBlock(index, video) {
		return "", errors.Wrapf(model.ErrSaveBlocked, "save %s", video.ID)
	}

	key := path.Join(s.prefix, platform.SanitizeFileName(video.Title))
	start := time.Now()
	if err := s.objects.Upload(ctx, key, payload); err != nil {
		logger.Logger.Error("Object upload failed", "key", key, "error", err.Error())
		return "", errors.Wrapf(err, "upload %s", key)
	}
	logger.Logger.Debug("Object uploaded",
		"key", key,
		"file_size_bytes", len(payload),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return key, nil
}
