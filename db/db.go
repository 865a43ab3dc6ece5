package db

import (
	"albumapi/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

func Init(cfg *config.Config) {
	var (
		db  *gorm.DB
		err error
	)
	opts := &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}
	if cfg.MysqlDSN != "" {
		db, err = gorm.Open(mysql.Open(cfg.MysqlDSN), opts)
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SqliteFile), opts)
	}
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}
