package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// WaitForMySQL polls the database until it accepts connections or the timeout
// elapses. Returns the connected instance on success.
func WaitForMySQL(dsn string, timeout time.Duration) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := NewMySQL(dsn)
		if err == nil {
			if sqlDB, derr := db.DB(); derr == nil {
				if perr := sqlDB.Ping(); perr == nil {
					return db, nil
				}
			}
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database unavailable after %s: %w", timeout, err)
		}
		log.Println("database unavailable, waiting 1 second...")
		time.Sleep(time.Second)
	}
}
