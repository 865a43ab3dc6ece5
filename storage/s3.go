package storage

import (
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Storage struct {
	bucket   *Bucket
	s3Client *s3.S3
}

func NewS3Storage(bucket *Bucket) StorageAPI {
	return &S3Storage{
		bucket:   bucket,
		s3Client: bucket.CreateSVC(),
	}
}

func (s *S3Storage) Store(reader io.Reader, path string) (string, error) {
	key := s.bucket.GetRemotePath(path)
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	input := s3manager.UploadInput{
		Bucket: &s.bucket.Name,
		Key:    aws.String(key),
		Body:   reader,
	}
	if s.bucket.SSEEncryption != "" {
		input.ServerSideEncryption = &s.bucket.SSEEncryption
	}
	out, err := uploader.Upload(&input)
	if err != nil {
		return "", err
	}
	if out.Location != "" {
		return out.Location, nil
	}
	return s.objectURL(key), nil
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.bucket.Name,
		Key:    aws.String(s.bucket.GetRemotePath(path)),
	})
	return err
}

func (s *S3Storage) GetBucket() *Bucket {
	return s.bucket
}

func (s *S3Storage) objectURL(key string) string {
	if s.bucket.Endpoint != "" {
		return strings.TrimSuffix(s.bucket.Endpoint, "/") + "/" + s.bucket.Name + "/" + key
	}
	return "https://" + s.bucket.Name + ".s3." + s.bucket.Region + ".amazonaws.com/" + key
}
