package storage

import (
	"fmt"
	"io"
	"log"

	"albumapi/config"
	"albumapi/db"
)

// StorageAPI is the blob-storage contract the upload flow depends on: store
// bytes under a key, get back a durable locator URL. Failures are surfaced
// to the caller, never retried internally.
type StorageAPI interface {
	Store(reader io.Reader, path string) (locator string, err error)
	Delete(path string) error
	GetBucket() *Bucket
}

var cachedStorage []StorageAPI

// Init loads the configured buckets and builds a backend for each. When no
// bucket exists yet and DEFAULT_BUCKET_DIR is set, an initial disk bucket is
// created so a fresh install works out of the box.
func Init(cfg *config.Config) {
	db.Instance.AutoMigrate(&Bucket{})

	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 && cfg.DefaultBucketDir != "" {
		b := Bucket{
			Name:        cfg.DefaultBucketDir,
			StorageType: StorageTypeFile,
		}
		if err := b.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, b)
	}
	log.Printf("Storage buckets found: %d\n", len(buckets))

	cachedStorage = []StorageAPI{}
	for _, bucket := range buckets {
		var storage StorageAPI
		if bucket.StorageType == StorageTypeFile {
			storage = NewDiskStorage(&bucket, cfg.BackendURL)
		} else if bucket.StorageType == StorageTypeS3 {
			storage = NewS3Storage(&bucket)
		} else {
			panic(fmt.Sprintf("storage type unavailable for bucket %d", bucket.ID))
		}
		cachedStorage = append(cachedStorage, storage)
	}
}

func StorageFrom(bucket *Bucket) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucket.ID {
			return s
		}
	}
	return nil
}

func GetDefaultStorage() StorageAPI {
	if len(cachedStorage) == 0 {
		panic("no storage available")
	}
	return cachedStorage[0]
}
