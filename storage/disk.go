package storage

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

// DiskStorage keeps blobs on a local drive. Files land under the bucket's
// directory and are served back by the router's /files route, so the locator
// is a URL on this server.
type DiskStorage struct {
	bucket    *Bucket
	baseURL   string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(bucket *Bucket, baseURL string) StorageAPI {
	return &DiskStorage{
		bucket:  bucket,
		baseURL: baseURL,
		dirs:    make(map[string]bool, 10),
	}
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	s.dirs[dir] = true
	return os.MkdirAll(dir, 0777)
}

func (s *DiskStorage) getFullPath(path string) string {
	return s.bucket.Name + "/" + path
}

func (s *DiskStorage) Store(reader io.Reader, path string) (string, error) {
	fileName := s.getFullPath(path)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return "", err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(file, reader)
	file.Close()
	if err != nil {
		return "", err
	}
	return s.baseURL + "/files/" + path, nil
}

func (s *DiskStorage) Delete(path string) error {
	return os.Remove(s.getFullPath(path))
}

func (s *DiskStorage) GetBucket() *Bucket {
	return s.bucket
}
