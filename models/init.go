package models

import "albumapi/db"

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&AlbumShare{})
	db.Instance.AutoMigrate(&Image{})
	db.Instance.AutoMigrate(&ImageTag{})
	db.Instance.AutoMigrate(&Comment{})
}
