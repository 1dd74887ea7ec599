package service

import (
	"context"
	"log"
	"time"
)

// TokenPurger deletes refresh tokens that can no longer be used
type TokenPurger interface {
	PurgeRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type WorkerService struct {
	tokens   TokenPurger
	interval time.Duration
	now      func() time.Time
}

func NewWorkerService(tokens TokenPurger, interval time.Duration) *WorkerService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &WorkerService{
		tokens:   tokens,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs the purge loop until ctx is cancelled
func (w *WorkerService) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Background worker started - purging refresh tokens every %s", w.interval)

	w.purgeTokens(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("Background worker stopped")
			return
		case <-ticker.C:
			w.purgeTokens(ctx)
		}
	}
}

func (w *WorkerService) purgeTokens(ctx context.Context) {
	purged, err := w.tokens.PurgeRefreshTokens(ctx, w.now())
	if err != nil {
		log.Printf("Error purging refresh tokens: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Purged %d expired or revoked refresh tokens", purged)
	}
}
