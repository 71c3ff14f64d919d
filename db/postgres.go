package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func Connect(connStr string) error {
	if connStr == "" {
		return errors.New("postgres connection string is empty")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
