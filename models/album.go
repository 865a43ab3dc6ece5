package models

import (
	"errors"

	"albumapi/apperr"
	"albumapi/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Album struct {
	ID          uint64       `gorm:"primaryKey" json:"id"`
	CreatedAt   int64        `json:"created_at"`
	UpdatedAt   int64        `json:"updated_at"`
	UserID      uint64       `gorm:"not null;index:user_album_created,priority:1" json:"owner"` // fixed at creation
	User        User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name        string       `gorm:"type:varchar(300)" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Shares      []AlbumShare `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"shared_users"`
	Images      []Image      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func AlbumByID(id uint64) (a Album, err error) {
	err = db.Instance.Preload("Shares").First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = apperr.NotFound("album")
	}
	return
}

// AlbumsOwnedBy lists albums where the user is the owner. Albums merely
// shared with them are a separate view, see AlbumsSharedWith.
func AlbumsOwnedBy(userID uint64) (albums []Album, err error) {
	err = db.Instance.Preload("Shares").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&albums).Error
	return
}

func AlbumsSharedWith(email string) (albums []Album, err error) {
	err = db.Instance.Preload("Shares").
		Joins("join album_shares on album_shares.album_id = albums.id").
		Where("album_shares.email = ?", email).
		Order("albums.created_at DESC").
		Find(&albums).Error
	return
}

func (a *Album) Create() error {
	return db.Instance.Create(a).Error
}

func (a *Album) Save() error {
	return db.Instance.Save(a).Error
}

func (a *Album) Delete() error {
	return db.Instance.Select(clause.Associations).Delete(a).Error
}

// SharedWith reports email membership in the album's shared-users set.
func (a *Album) SharedWith(email string) bool {
	for _, s := range a.Shares {
		if s.Email == email {
			return true
		}
	}
	return false
}

// ShareWith unions emails into the shared-users set. The grant is a single
// conflict-ignoring batch insert, so concurrent grants on the same album
// cannot lose each other - there is no read-modify-write of the set here.
func (a *Album) ShareWith(emails []string) error {
	rows := make([]AlbumShare, 0, len(emails))
	for _, email := range emails {
		rows = append(rows, AlbumShare{AlbumID: a.ID, Email: email})
	}
	err := db.Instance.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		return err
	}
	return db.Instance.Where("album_id = ?", a.ID).Find(&a.Shares).Error
}
