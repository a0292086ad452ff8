package services

import (
	"context"
	"fmt"
	"log"

	"campus-inventory/internal/adapters/persistence/repositories"
	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/clock"
)

// ArchiveService removes returned loans past the retention window
type ArchiveService struct {
	loanRepo      repositories.LoanRepository
	clock         clock.Clock
	metrics       *Metrics
	retentionDays int
}

// NewArchiveService creates a new archive service
func NewArchiveService(loanRepo repositories.LoanRepository, clk clock.Clock, metrics *Metrics, retentionDays int) *ArchiveService {
	return &ArchiveService{
		loanRepo:      loanRepo,
		clock:         clk,
		metrics:       metrics,
		retentionDays: retentionDays,
	}
}

// PurgeReturned soft deletes loans returned before the retention cutoff.
// A non-positive retention disables purging.
func (s *ArchiveService) PurgeReturned(ctx context.Context) (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}

	now := s.clock.Now()
	cutoff := domain.Date(now, now.Location()).AddDate(0, 0, -s.retentionDays)

	purged, err := s.loanRepo.PurgeReturnedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: purge returned loans: %w", domain.ErrStoreUnavailable, err)
	}

	s.metrics.LoansPurged.Add(float64(purged))
	if purged > 0 {
		log.Printf("🗑️ Archived %d loans returned before %s", purged, cutoff.Format("2006-01-02"))
	}
	return purged, nil
}
