package task

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore keeps attachment blobs on local disk under random keys; the
// database row carries the original file name and metadata.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(src io.Reader) (string, int64, error) {
	key := uuid.NewString()

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", 0, fmt.Errorf("create attachment file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, src)
	if err != nil {
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("write attachment file: %w", err)
	}

	return key, n, nil
}

func (s *DiskStore) Open(key string) (io.ReadCloser, error) {
	// keys are uuids we generated; reject anything path-like
	if filepath.Base(key) != key {
		return nil, ErrAttachmentNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return f, nil
}
