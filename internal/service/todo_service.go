package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kyoronginus/Grasshaeru/internal/models"
	"github.com/Kyoronginus/Grasshaeru/internal/repository"

	"github.com/google/uuid"
)

// TodoPatch carries the mutable fields of a todo; nil means "leave as is".
type TodoPatch struct {
	Content     *string
	IsCompleted *bool
}

type TodoService struct {
	todoRepo repository.TodoRepo
	feed     Feed
}

func NewTodoService(todoRepo repository.TodoRepo, feed Feed) *TodoService {
	return &TodoService{todoRepo: todoRepo, feed: feed}
}

func (s *TodoService) List(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	return s.todoRepo.ListByOwner(ctx, ownerID)
}

// Create validates the content, assigns id and timestamps, and persists.
func (s *TodoService) Create(ctx context.Context, ownerID int64, content string) (models.Todo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Todo{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	now := time.Now().UTC().Truncate(time.Second)
	t := models.Todo{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Content:     content,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.todoRepo.Create(ctx, t); err != nil {
		return models.Todo{}, err
	}

	s.feed.Publish(ownerID, FeedEvent{Type: EventTodoCreated, Data: t, At: now})
	return t, nil
}

// Update applies a field-level patch after checking the record exists and
// belongs to the caller.
func (s *TodoService) Update(ctx context.Context, ownerID int64, id string, patch TodoPatch) (models.Todo, error) {
	if patch.Content == nil && patch.IsCompleted == nil {
		return models.Todo{}, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	t, err := s.ownedTodo(ctx, ownerID, id)
	if err != nil {
		return models.Todo{}, err
	}

	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return models.Todo{}, fmt.Errorf("%w: content is required", ErrValidation)
		}
		t.Content = content
	}
	if patch.IsCompleted != nil {
		t.IsCompleted = *patch.IsCompleted
	}
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if err := s.todoRepo.Update(ctx, t); err != nil {
		// the row can vanish between the ownership read and the write
		if errors.Is(err, repository.ErrNotFound) {
			return models.Todo{}, ErrNotFound
		}
		return models.Todo{}, err
	}

	s.feed.Publish(ownerID, FeedEvent{Type: EventTodoUpdated, Data: t, At: t.UpdatedAt})
	return t, nil
}

// Delete removes the record after the same existence and ownership checks.
func (s *TodoService) Delete(ctx context.Context, ownerID int64, id string) error {
	t, err := s.ownedTodo(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.todoRepo.Delete(ctx, t.ID); err != nil {
		return err
	}

	s.feed.Publish(ownerID, FeedEvent{Type: EventTodoDeleted, Data: t, At: time.Now().UTC()})
	return nil
}

// ownedTodo loads the record and enforces that the caller owns it.
// Absent records yield ErrNotFound, foreign ones ErrForbidden.
func (s *TodoService) ownedTodo(ctx context.Context, ownerID int64, id string) (models.Todo, error) {
	t, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return models.Todo{}, err
	}
	if t.ID == "" {
		return models.Todo{}, ErrNotFound
	}
	if t.UserID != ownerID {
		return models.Todo{}, ErrForbidden
	}
	return t, nil
}
