package models

import (
	"errors"
	"strings"

	"albumapi/apperr"
	"albumapi/db"
	"albumapi/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Image struct {
	ID        uint64         `gorm:"primaryKey" json:"id"`
	CreatedAt int64          `json:"uploaded_at"`
	UpdatedAt int64          `json:"-"`
	AlbumID   uint64         `gorm:"not null;index:album_image_created,priority:1" json:"album_id"` // fixed at creation
	BucketID  uint64         `json:"-"`
	Bucket    storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Name      string         `gorm:"type:varchar(300)" json:"name"`
	FileURL   string         `gorm:"type:varchar(2000)" json:"file"` // durable locator returned by blob storage
	FilePath  string         `gorm:"type:varchar(500)" json:"-"`     // object key within the bucket
	Person    string         `gorm:"type:varchar(150)" json:"person"`
	Favourite bool           `gorm:"not null;default:false" json:"is_favorite"`
	Size      int64          `json:"size"`
	Tags      []ImageTag     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tags"`
	Comments  []Comment      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
}

type ImageTag struct {
	ImageID uint64 `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Tag     string `gorm:"primaryKey;type:varchar(150)" json:"tag"`
}

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping empty entries.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (i *Image) SetTags(tags []string) {
	i.Tags = make([]ImageTag, 0, len(tags))
	for _, t := range tags {
		i.Tags = append(i.Tags, ImageTag{Tag: t})
	}
}

// ImageInAlbum loads an image, requiring it to belong to the given album.
// A mismatched parent reads the same as a missing image.
func ImageInAlbum(albumID, imageID uint64) (i Image, err error) {
	err = db.Instance.Preload("Tags").Preload("Comments.User").
		Where("album_id = ?", albumID).
		First(&i, imageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = apperr.NotFound("image")
	}
	return
}

// ImagesInAlbum lists an album's images, optionally restricted to a tag.
func ImagesInAlbum(albumID uint64, tag string) (images []Image, err error) {
	q := db.Instance.Preload("Tags").Preload("Comments.User").
		Where("images.album_id = ?", albumID).
		Order("images.created_at ASC")
	if tag != "" {
		q = q.Joins("join image_tags on image_tags.image_id = images.id").
			Where("image_tags.tag = ?", tag)
	}
	err = q.Find(&images).Error
	return
}

func (i *Image) Create() error {
	return db.Instance.Create(i).Error
}

func (i *Image) ToggleFavourite() error {
	i.Favourite = !i.Favourite
	return db.Instance.Model(i).Update("favourite", i.Favourite).Error
}

// AddComment appends a comment and reloads it with its author preloaded.
func (i *Image) AddComment(userID uint64, content string) (Comment, error) {
	comment := Comment{ImageID: i.ID, UserID: userID, Content: content}
	if err := db.Instance.Create(&comment).Error; err != nil {
		return Comment{}, err
	}
	err := db.Instance.Preload("User").First(&comment, comment.ID).Error
	return comment, err
}

func (i *Image) Delete() error {
	return db.Instance.Select(clause.Associations).Delete(i).Error
}
