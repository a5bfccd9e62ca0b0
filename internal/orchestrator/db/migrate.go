package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to dsn and runs AutoMigrate for the three tables. The
// schema is simple enough that hand-written migrations aren't worth the
// upkeep; gorm's AutoMigrate only ever adds columns/indexes, never drops
// them, so this is safe to run on every startup.
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("db: connecting: %w", err)
	}
	if err := conn.AutoMigrate(&User{}, &Wallet{}, &Transaction{}); err != nil {
		return nil, fmt.Errorf("db: migrating: %w", err)
	}
	return conn, nil
}
