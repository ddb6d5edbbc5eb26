package mysql

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
)

const connectionTimeout = 20 * time.Second

// LoadDB opens the MySQL connection named by MYSQL_DSN and applies the
// schema files. The DSN must carry parseTime=true so TIMESTAMP columns
// scan into time.Time.
func LoadDB() *sqlx.DB {
	db, err := sqlx.Open("mysql", os.Getenv("MYSQL_DSN"))
	if err != nil {
		log.Fatal(err)
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = time.Second
	eb.MaxElapsedTime = connectionTimeout

	if err := backoff.Retry(db.Ping, eb); err != nil {
		log.Fatal("Cannot connect to DB:", err)
	}

	if err := exec(db); err != nil {
		log.Fatal("Cannot create tables:", err)
	}
	return db
}

func exec(db *sqlx.DB) error {
	files := []string{
		"./internal/mysql/users.sql",
		"./internal/mysql/debts.sql",
	}
	for _, file := range files {
		query, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if _, err := db.Exec(string(query)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", file, err)
		}
	}
	return nil
}
