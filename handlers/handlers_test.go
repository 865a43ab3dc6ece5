package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"albumapi/db"
	"albumapi/models"
	"albumapi/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	instance, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := instance.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	db.Instance = instance
	models.Init()
	db.Instance.AutoMigrate(&storage.Bucket{})
}

func createUser(t *testing.T, googleID, email string) models.User {
	t.Helper()
	u, err := models.UserFirstOrCreate(googleID, email, "user "+googleID, "")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func createAlbum(t *testing.T, owner models.User, name string) models.Album {
	t.Helper()
	a := models.Album{UserID: owner.ID, Name: name}
	if err := a.Create(); err != nil {
		t.Fatal(err)
	}
	return a
}

// jsonContext builds a request context with route params and a JSON body.
func jsonContext(t *testing.T, method string, params gin.Params, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	c.Request = httptest.NewRequest(method, "/", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	return c, w
}

// multipartContext builds an upload request carrying one file plus form fields.
func multipartContext(t *testing.T, params gin.Params, fields map[string]string, fileName string, content []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	c.Params = params
	return c, w
}

func albumParams(album models.Album) gin.Params {
	return gin.Params{{Key: "albumId", Value: strconv.FormatUint(album.ID, 10)}}
}

func imageParams(album models.Album, imageID uint64) gin.Params {
	return gin.Params{
		{Key: "albumId", Value: strconv.FormatUint(album.ID, 10)},
		{Key: "imageId", Value: strconv.FormatUint(imageID, 10)},
	}
}

// fakeStorage records calls so tests can assert a gate rejected the request
// before any blob left the process.
type fakeStorage struct {
	bucket     storage.Bucket
	storeCalls int
	failStore  bool
	deleted    []string
}

func (f *fakeStorage) Store(reader io.Reader, path string) (string, error) {
	f.storeCalls++
	if f.failStore {
		return "", errors.New("blob store unavailable")
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	return "https://blobs.example/" + path, nil
}

func (f *fakeStorage) Delete(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) GetBucket() *storage.Bucket {
	return &f.bucket
}

func imageCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := db.Instance.Model(&models.Image{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	return count
}
