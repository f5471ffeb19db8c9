package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kyoronginus/Grasshaeru/internal/models"
	"github.com/Kyoronginus/Grasshaeru/internal/repository"

	"github.com/google/uuid"
)

// Calendar window bounds: default a full trailing year.
const (
	defaultCalendarDays = 365
	maxCalendarDays     = 366
)

const dateLayout = "2006-01-02"

type JournalService struct {
	commitRepo repository.CommitRepo
	feed       Feed
}

func NewJournalService(commitRepo repository.CommitRepo, feed Feed) *JournalService {
	return &JournalService{commitRepo: commitRepo, feed: feed}
}

func (s *JournalService) List(ctx context.Context, ownerID int64) ([]models.Commit, error) {
	return s.commitRepo.ListByOwner(ctx, ownerID)
}

// Create appends an immutable commit. No update or delete exists.
func (s *JournalService) Create(ctx context.Context, ownerID int64, message string) (models.Commit, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.Commit{}, fmt.Errorf("%w: message is required", ErrValidation)
	}

	c := models.Commit{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Message:   message,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.commitRepo.Append(ctx, c); err != nil {
		return models.Commit{}, err
	}

	s.feed.Publish(ownerID, FeedEvent{Type: EventCommitCreated, Data: c, At: c.CreatedAt})
	return c, nil
}

// Calendar returns one entry per day for the trailing window ending today
// (UTC), oldest first. Days without commits appear with count 0.
func (s *JournalService) Calendar(ctx context.Context, ownerID int64, days int) ([]models.CalendarDay, error) {
	if days <= 0 {
		days = defaultCalendarDays
	}
	if days > maxCalendarDays {
		days = maxCalendarDays
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	first := today.AddDate(0, 0, -(days - 1))
	last := today.Add(24*time.Hour - time.Second) // end of today

	counts, err := s.commitRepo.CountByDay(ctx, ownerID, first, last)
	if err != nil {
		return nil, err
	}

	out := make([]models.CalendarDay, 0, days)
	for d := first; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		n := counts[key]
		out = append(out, models.CalendarDay{
			Date:  key,
			Count: n,
			Level: intensityLevel(n),
		})
	}
	return out, nil
}

// intensityLevel buckets a daily commit count into the 0..4 color scale
// the contribution graph renders.
func intensityLevel(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 10:
		return 3
	default:
		return 4
	}
}
