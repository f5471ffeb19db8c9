package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Kyoronginus/Grasshaeru/internal/models"
	sqlitedb "github.com/Kyoronginus/Grasshaeru/internal/repository/db"
)

// Write errors the services translate into their own taxonomy.
var (
	// ErrDuplicate reports an insert that hit a UNIQUE constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound reports a write that matched no rows.
	ErrNotFound = errors.New("record not found")
)

type Authorization interface {
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type TodoRepo interface {
	Create(ctx context.Context, t models.Todo) error
	GetByID(ctx context.Context, id string) (models.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error)
	Update(ctx context.Context, t models.Todo) error
	Delete(ctx context.Context, id string) error
}

type CommitRepo interface {
	Append(ctx context.Context, c models.Commit) error
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Commit, error)
	CountByDay(ctx context.Context, ownerID int64, from, to time.Time) (map[string]int, error)
}

type Repository struct {
	Auth    Authorization
	Todos   TodoRepo
	Commits CommitRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:    NewUserRepository(db),
		Todos:   NewTodoSQLite(db),
		Commits: NewCommitSQLite(db),
	}
}

// InitDB opens the SQLite file and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return sqlitedb.InitDB(path)
}
