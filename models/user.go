package models

import (
	"errors"

	"albumapi/apperr"
	"albumapi/db"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"-"`
	GoogleID  string `gorm:"type:varchar(100);index:uniq_google_id,unique;not null" json:"-"`
	Email     string `gorm:"type:varchar(150);index:user_email" json:"email"`
	Name      string `gorm:"type:varchar(100)" json:"name"`
	AvatarURL string `gorm:"type:varchar(500)" json:"avatar_url"`
}

// UserFirstOrCreate provisions a local account on first login. The lookup key
// is the external (Google) id - a second login with the same id returns the
// existing row, it never creates a duplicate.
func UserFirstOrCreate(googleID, email, name, avatarURL string) (u User, err error) {
	err = db.Instance.
		Where(User{GoogleID: googleID}).
		Attrs(User{Email: email, Name: name, AvatarURL: avatarURL}).
		FirstOrCreate(&u).Error
	return
}

func UserByID(id uint64) (u User, err error) {
	err = db.Instance.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = apperr.NotFound("user")
	}
	return
}

// UsersMissingEmails returns the subset of emails that do not belong to any
// existing user, preserving the input order.
func UsersMissingEmails(emails []string) ([]string, error) {
	var found []string
	err := db.Instance.Model(&User{}).Where("email IN ?", emails).Pluck("email", &found).Error
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(found))
	for _, e := range found {
		existing[e] = true
	}
	missing := []string{}
	for _, e := range emails {
		if !existing[e] {
			existing[e] = true // report each missing address once
			missing = append(missing, e)
		}
	}
	return missing, nil
}
