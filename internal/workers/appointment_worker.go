package workers

import (
	"context"
	"time"

	"estate_backend/internal/logger"
	"estate_backend/internal/repositories"

	"gorm.io/gorm"
)

// AppointmentWorker expires viewing requests whose slot passed without a
// decision and prunes stale refresh tokens.
type AppointmentWorker struct {
	db               *gorm.DB
	appointmentRepo  repositories.AppointmentRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

func NewAppointmentWorker(
	db *gorm.DB,
	appointmentRepo repositories.AppointmentRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *AppointmentWorker {
	return &AppointmentWorker{
		db:               db,
		appointmentRepo:  appointmentRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (w *AppointmentWorker) Start(ctx context.Context) {
	go w.expirePastAppointments(ctx)
	go w.pruneRefreshTokens(ctx)
}

func (w *AppointmentWorker) expirePastAppointments(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("appointment worker stopped")
			return
		case <-ticker.C:
			n, err := w.appointmentRepo.ExpirePastPending(w.db, time.Now())
			logger.WorkerLog("appointment", "expire_past_pending", err)
			if err == nil && n > 0 {
				logger.Info("expired pending appointments", "count", n)
			}
		}
	}
}

func (w *AppointmentWorker) pruneRefreshTokens(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("refresh token pruning stopped")
			return
		case <-ticker.C:
			n, err := w.refreshTokenRepo.DeleteExpired(w.db)
			logger.WorkerLog("appointment", "prune_refresh_tokens", err)
			if err == nil && n > 0 {
				logger.Info("pruned expired refresh tokens", "count", n)
			}
		}
	}
}
