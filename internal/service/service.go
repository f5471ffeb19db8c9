package service

import (
	"context"
	"errors"
	"time"

	"github.com/Kyoronginus/Grasshaeru/internal/models"
	"github.com/Kyoronginus/Grasshaeru/internal/repository"
)

// Errors shared by the record services; handlers map them to HTTP codes.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("record not found")
	ErrForbidden  = errors.New("record belongs to another user")
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int64, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int64, error)
}

// Todos exposes owner-scoped CRUD on the todo list.
type Todos interface {
	List(ctx context.Context, ownerID int64) ([]models.Todo, error)
	Create(ctx context.Context, ownerID int64, content string) (models.Todo, error)
	Update(ctx context.Context, ownerID int64, id string, patch TodoPatch) (models.Todo, error)
	Delete(ctx context.Context, ownerID int64, id string) error
}

// Journal exposes the append-only commit log and its calendar view.
type Journal interface {
	List(ctx context.Context, ownerID int64) ([]models.Commit, error)
	Create(ctx context.Context, ownerID int64, message string) (models.Commit, error)
	Calendar(ctx context.Context, ownerID int64, days int) ([]models.CalendarDay, error)
}

// Feed is the in-process per-user event hub backing the websocket.
// Stop via context cancellation in main() for graceful shutdown.
type Feed interface {
	Run(ctx context.Context)
	Subscribe(ownerID int64) (<-chan FeedEvent, func())
	Publish(ownerID int64, ev FeedEvent)
}

// AuthConfig carries the process-wide token settings, loaded once at startup.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

type Service struct {
	Authorization
	Todos
	Journal
	Feed
}

func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	feed := NewFeedHub()
	return &Service{
		Authorization: NewAuthService(repos.Auth, authCfg),
		Todos:         NewTodoService(repos.Todos, feed),
		Journal:       NewJournalService(repos.Commits, feed),
		Feed:          feed,
	}
}
