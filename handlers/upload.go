package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"albumapi/apperr"
	"albumapi/auth"
	"albumapi/authz"
	"albumapi/models"
	"albumapi/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxUploadSize is a hard ceiling, not configurable at runtime.
const MaxUploadSize = 5 << 20

const uploadFolder = "uploads"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ImageUpload validates, stores the blob, then persists the metadata record.
// Every gate fails fast with no side effects; the blob goes out before the
// row so a storage failure cannot leave an Image pointing at nothing.
func ImageUpload(store storage.StorageAPI) auth.HandlerFunc {
	return func(c *gin.Context, caller *authz.Caller) {
		album, err := loadAlbum(c, caller, authz.OpImageUpload)
		if err != nil {
			fail(c, err)
			return
		}
		file, err := c.FormFile("file")
		if err != nil {
			fail(c, apperr.Validation("no file uploaded"))
			return
		}
		if file.Size > MaxUploadSize {
			fail(c, apperr.Validation("file size exceeds the 5MB limit", file.Filename))
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExtensions[ext] {
			fail(c, apperr.Validation("only image files are allowed (jpg, jpeg, png, gif)", file.Filename))
			return
		}

		src, err := file.Open()
		if err != nil {
			fail(c, err)
			return
		}
		defer src.Close()
		path := uploadFolder + "/" + uuid.NewString() + ext
		locator, err := store.Store(src, path)
		if err != nil {
			fail(c, apperr.Upstream("blob storage", err))
			return
		}

		name := c.PostForm("name")
		if name == "" {
			name = file.Filename
		}
		favourite, _ := strconv.ParseBool(c.PostForm("isFavorite"))
		image := models.Image{
			AlbumID:   album.ID,
			BucketID:  store.GetBucket().ID,
			Name:      name,
			FileURL:   locator,
			FilePath:  path,
			Person:    c.PostForm("person"),
			Favourite: favourite,
			Size:      file.Size,
		}
		image.SetTags(models.ParseTags(c.PostForm("tags")))
		if err := image.Create(); err != nil {
			// Do not leave the blob behind without its record.
			_ = store.Delete(path)
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "image uploaded successfully", "image": image})
	}
}
