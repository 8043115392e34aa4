package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/repositories"
)

// DashboardSnapshot is one tournament's precomputed overview, refreshed on a
// schedule so dashboard polling never hits the scoring path directly.
type DashboardSnapshot struct {
	TournamentID int                     `json:"tournament_id"`
	Standings    []models.TeamStanding   `json:"standings"`
	MVP          *models.PlayerAggregate `json:"mvp,omitempty"`
	RefreshedAt  time.Time               `json:"refreshed_at"`
}

// StandingsRefresher keeps a snapshot per live tournament, recomputed on a
// fixed interval by a background scheduler.
type StandingsRefresher struct {
	tournamentRepo repositories.TournamentRepository
	standings      StandingsService
	interval       time.Duration
	logger         *slog.Logger

	scheduler gocron.Scheduler

	mu        sync.RWMutex
	snapshots map[int]DashboardSnapshot
}

func NewStandingsRefresher(
	tournamentRepo repositories.TournamentRepository,
	standings StandingsService,
	interval time.Duration,
	logger *slog.Logger,
) (*StandingsRefresher, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &StandingsRefresher{
		tournamentRepo: tournamentRepo,
		standings:      standings,
		interval:       interval,
		logger:         logger,
		scheduler:      scheduler,
		snapshots:      make(map[int]DashboardSnapshot),
	}, nil
}

// Start registers the refresh job and runs it once immediately so the cache
// is warm before the first dashboard request.
func (r *StandingsRefresher) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(r.refreshAll),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule standings refresh: %w", err)
	}
	r.scheduler.Start()
	return nil
}

func (r *StandingsRefresher) Stop() error {
	return r.scheduler.Shutdown()
}

// Snapshot returns the cached overview for a tournament, if one has been
// computed since it was created.
func (r *StandingsRefresher) Snapshot(tournamentID int) (DashboardSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.snapshots[tournamentID]
	return snap, ok
}

func (r *StandingsRefresher) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), r.interval)
	defer cancel()

	tournaments, err := r.tournamentRepo.List(ctx)
	if err != nil {
		r.logger.Error("standings refresh: failed to list tournaments", slog.Any("error", err))
		return
	}

	fresh := make(map[int]DashboardSnapshot, len(tournaments))
	for _, t := range tournaments {
		standings, err := r.standings.GetStandings(ctx, t.ID)
		if err != nil {
			r.logger.Warn("standings refresh failed for tournament",
				slog.Int("tournament_id", t.ID), slog.Any("error", err))
			continue
		}
		mvp, err := r.standings.GetMVP(ctx, t.ID)
		if err != nil {
			r.logger.Warn("mvp refresh failed for tournament",
				slog.Int("tournament_id", t.ID), slog.Any("error", err))
		}
		fresh[t.ID] = DashboardSnapshot{
			TournamentID: t.ID,
			Standings:    standings,
			MVP:          mvp,
			RefreshedAt:  time.Now().UTC(),
		}
	}

	// Replace wholesale so archived tournaments drop out of the cache.
	r.mu.Lock()
	r.snapshots = fresh
	r.mu.Unlock()
}
