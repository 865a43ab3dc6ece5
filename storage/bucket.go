package storage

import (
	"os"
	"strings"

	"albumapi/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket is a configured blob-storage location. Name is the directory root
// for disk buckets and the S3 bucket name for S3 buckets.
type Bucket struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	Name          string `gorm:"type:varchar(200)"`
	StorageType   StorageType
	Path          string // path on a drive or a key prefix in a S3 bucket
	Region        string `gorm:"type:varchar(50)"`
	Endpoint      string `gorm:"type:varchar(300)"` // for S3-compatible services
	AuthDetails   string // S3 credentials as "key:secret"
	SSEEncryption string `gorm:"type:varchar(20)"`
}

func (b *Bucket) Create() error {
	if err := db.Instance.Create(b).Error; err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Name, 0777)
	}
	return nil
}

// CreateSVC builds the S3 client for this bucket.
func (b *Bucket) CreateSVC() *s3.S3 {
	creds := strings.SplitN(b.AuthDetails, ":", 2)
	if len(creds) != 2 {
		creds = []string{"", ""}
	}
	cfg := aws.Config{
		Region:      aws.String(b.Region),
		Credentials: credentials.NewStaticCredentials(creds[0], creds[1], ""),
	}
	if b.Endpoint != "" {
		cfg.Endpoint = aws.String(b.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&cfg)))
}

// GetRemotePath prepends the bucket's key prefix, if any.
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}
