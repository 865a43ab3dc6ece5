package models

// AlbumShare is one membership row of an album's shared-users set. The
// composite primary key is the set constraint: an (album, email) pair can
// exist at most once, so granting is naturally idempotent.
type AlbumShare struct {
	CreatedAt int64  `json:"-"`
	AlbumID   uint64 `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Email     string `gorm:"primaryKey;type:varchar(150)" json:"email"`
}
