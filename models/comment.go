package models

// Comment is append-only: there is no edit or delete operation. Its lifetime
// is the lifetime of the image it lives on.
type Comment struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	UserID    uint64 `json:"-"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ImageID   uint64 `gorm:"not null;index" json:"-"`
	Content   string `gorm:"type:text" json:"text"`
}
