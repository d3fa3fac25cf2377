package postgresql

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/crave-catering/cc-order/config"
)

var (
	once sync.Once
	db   *sql.DB
)

func GetDatabase() *sql.DB {
	once.Do(func() {
		c := config.Get()

		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Postgres.Host, c.Postgres.Port, c.Postgres.User,
			c.Postgres.Password, c.Postgres.Name, c.Postgres.SSLMode,
		)

		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			panic(err)
		}

		conn.SetMaxOpenConns(c.Postgres.MaxOpenConns)
		conn.SetMaxIdleConns(c.Postgres.MaxIdleConns)
		conn.SetConnMaxLifetime(time.Hour)

		db = conn
	})

	return db
}
