package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"albumapi/apperr"
	"albumapi/authz"
	"albumapi/models"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AlbumCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type AlbumUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AlbumShareRequest struct {
	Emails []string `json:"emails"`
}

func AlbumCreate(c *gin.Context, caller *authz.Caller) {
	r := AlbumCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := authz.Authorize(caller, authz.OpAlbumCreate, nil); err != nil {
		fail(c, err)
		return
	}
	album := models.Album{
		Name:        r.Name,
		Description: r.Description,
		UserID:      caller.ID,
	}
	if err := album.Create(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "album saved successfully", "album": album})
}

// AlbumGet is registered without the auth wrapper: album metadata is
// readable by id without a session.
func AlbumGet(c *gin.Context) {
	albumID, err := paramID(c, "albumId")
	if err != nil {
		fail(c, err)
		return
	}
	album, err := models.AlbumByID(albumID)
	if err != nil {
		fail(c, err)
		return
	}
	if err := authz.Authorize(nil, authz.OpAlbumRead, &album); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func AlbumList(c *gin.Context, caller *authz.Caller) {
	albums, err := models.AlbumsOwnedBy(caller.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"albums": albums})
}

func AlbumListShared(c *gin.Context, caller *authz.Caller) {
	albums, err := models.AlbumsSharedWith(caller.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"albums": albums})
}

func AlbumUpdate(c *gin.Context, caller *authz.Caller) {
	album, err := loadAlbum(c, caller, authz.OpAlbumUpdate)
	if err != nil {
		fail(c, err)
		return
	}
	r := AlbumUpdateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if r.Name != "" {
		album.Name = r.Name
	}
	if r.Description != "" {
		album.Description = r.Description
	}
	if err := album.Save(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "album updated successfully", "album": album})
}

func AlbumDelete(c *gin.Context, caller *authz.Caller) {
	album, err := loadAlbum(c, caller, authz.OpAlbumDelete)
	if err != nil {
		fail(c, err)
		return
	}
	if err := album.Delete(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "album deleted successfully", "album": album})
}

// Matches local@domain with no whitespace, nothing stricter.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func AlbumShare(c *gin.Context, caller *authz.Caller) {
	r := AlbumShareRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if len(r.Emails) == 0 {
		fail(c, apperr.Validation("no emails provided"))
		return
	}
	// All-or-nothing: one bad address rejects the whole call.
	invalid := []string{}
	for _, email := range r.Emails {
		if err := validation.Validate(email, validation.Required, validation.Match(emailPattern)); err != nil {
			invalid = append(invalid, email)
		}
	}
	if len(invalid) > 0 {
		fail(c, apperr.Validation("invalid email addresses", invalid...))
		return
	}
	missing, err := models.UsersMissingEmails(r.Emails)
	if err != nil {
		fail(c, err)
		return
	}
	if len(missing) > 0 {
		fail(c, fmt.Errorf("no users %w for emails: %s", apperr.ErrNotFound, strings.Join(missing, ", ")))
		return
	}
	album, err := loadAlbum(c, caller, authz.OpAlbumShare)
	if err != nil {
		fail(c, err)
		return
	}
	if err := album.ShareWith(r.Emails); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "album shared successfully", "album": album})
}

// loadAlbum resolves the album from the route and authorizes op on it.
// Lookup runs first: a missing album reads as not-found even when the caller
// would also have been denied.
func loadAlbum(c *gin.Context, caller *authz.Caller, op authz.Op) (*models.Album, error) {
	albumID, err := paramID(c, "albumId")
	if err != nil {
		return nil, err
	}
	album, err := models.AlbumByID(albumID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, op, &album); err != nil {
		return nil, err
	}
	return &album, nil
}
