package store // import "github.com/bookgrove/bookgrove/store"

import (
	"database/sql"
	"sync"
)

type Store struct {
	db          *sql.DB
	dbLock      sync.Mutex // dbLock serializes mutating transactions
	UserCache   sync.Map   // map[int32]*User
	BookCache   sync.Map   // map[int]*Book
	ReviewCache sync.Map   // map[int]*Review
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

type MigrationHistory struct {
	Version   string
	CreatedTs int64
}

type UpsertMigrationHistory struct {
	Version string
}

type FindMigrationHistory struct {
}
