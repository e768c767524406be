package service

import (
	"context"
	"time"

	"bookcase/internal/http-api/repository"
	"bookcase/internal/stats"
)

// StatsService loads one user's rows and hands them to the pure analytics
// functions in internal/stats. Nothing is cached or maintained incrementally;
// every read recomputes from the rows as they are right now.
type StatsService interface {
	Dashboard(ctx context.Context, userID string, now time.Time) (stats.DashboardStats, error)
	Timeline(ctx context.Context, userID string, windowDays int, now time.Time) ([]stats.TimelinePoint, error)
	GenreBreakdown(ctx context.Context, userID string) ([]stats.GenreStats, error)
	Habits(ctx context.Context, userID string, now time.Time) (stats.HabitStats, error)
}

type statsService struct {
	tx repository.TxRunner
}

func NewStatsService(tx repository.TxRunner) StatsService {
	return &statsService{tx: tx}
}

func (s *statsService) snapshot(ctx context.Context, userID string) (stats.Snapshot, error) {
	var snap stats.Snapshot
	// One transaction so the three loads see the same committed state; a
	// write landing between them cannot produce a torn snapshot.
	err := s.tx.InTx(ctx, func(r repository.Repos) error {
		books, err := r.UserBooks.ListByUser(ctx, userID, "")
		if err != nil {
			return err
		}
		ratings, err := r.Ratings.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		sessions, err := r.Sessions.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		snap.Books = books
		snap.Ratings = ratings
		snap.Sessions = sessions
		return nil
	})
	if err != nil {
		return stats.Snapshot{}, storeErr(err)
	}
	return snap, nil
}

func (s *statsService) Dashboard(ctx context.Context, userID string, now time.Time) (stats.DashboardStats, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return stats.DashboardStats{}, err
	}
	return stats.Dashboard(snap, now), nil
}

func (s *statsService) Timeline(ctx context.Context, userID string, windowDays int, now time.Time) ([]stats.TimelinePoint, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.Timeline(snap, windowDays, now), nil
}

func (s *statsService) GenreBreakdown(ctx context.Context, userID string) ([]stats.GenreStats, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.GenreBreakdown(snap), nil
}

func (s *statsService) Habits(ctx context.Context, userID string, now time.Time) (stats.HabitStats, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return stats.HabitStats{}, err
	}
	return stats.Habits(snap, now), nil
}
