package handlers

import (
	"log"
	"net/http"

	"albumapi/authz"
	"albumapi/models"
	"albumapi/storage"

	"github.com/gin-gonic/gin"
)

type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func ImageList(c *gin.Context, caller *authz.Caller) {
	album, err := loadAlbum(c, caller, authz.OpImageList)
	if err != nil {
		fail(c, err)
		return
	}
	images, err := models.ImagesInAlbum(album.ID, c.Query("tags"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func ImageFavourite(c *gin.Context, caller *authz.Caller) {
	image, err := loadImage(c, caller, authz.OpImageFavourite)
	if err != nil {
		fail(c, err)
		return
	}
	if err := image.ToggleFavourite(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image favorite status updated successfully", "image": image})
}

func ImageComment(c *gin.Context, caller *authz.Caller) {
	image, err := loadImage(c, caller, authz.OpCommentAdd)
	if err != nil {
		fail(c, err)
		return
	}
	r := CommentRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	comment, err := image.AddComment(caller.ID, r.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment added successfully", "comment": comment})
}

func ImageDelete(c *gin.Context, caller *authz.Caller) {
	image, err := loadImage(c, caller, authz.OpImageDelete)
	if err != nil {
		fail(c, err)
		return
	}
	if err := image.Delete(); err != nil {
		fail(c, err)
		return
	}
	// Blob removal is best effort - the record is already gone.
	if backend := storage.StorageFrom(&storage.Bucket{ID: image.BucketID}); backend != nil {
		if err := backend.Delete(image.FilePath); err != nil {
			log.Printf("could not delete blob %s: %v", image.FilePath, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "image deleted successfully", "image": image})
}

// loadImage resolves the album, authorizes op, then resolves the image
// within that album. An image attached to a different album reads as
// not-found, it can never be acted on through the wrong parent.
func loadImage(c *gin.Context, caller *authz.Caller, op authz.Op) (*models.Image, error) {
	album, err := loadAlbum(c, caller, op)
	if err != nil {
		return nil, err
	}
	imageID, err := paramID(c, "imageId")
	if err != nil {
		return nil, err
	}
	image, err := models.ImageInAlbum(album.ID, imageID)
	if err != nil {
		return nil, err
	}
	return &image, nil
}
