package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/adapters/persistence/repositories"
	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/clock"

	"github.com/google/uuid"
)

// RunReport summarizes one reminder run
type RunReport struct {
	RunID        uuid.UUID                   `json:"run_id"`
	StartedAt    time.Time                   `json:"started_at"`
	Candidates   int                         `json:"candidates"`
	NewlyOverdue int                         `json:"newly_overdue"`
	Sent         map[domain.ReminderKind]int `json:"sent"`
	Failed       map[domain.ReminderKind]int `json:"failed"`
}

func newRunReport(now time.Time) *RunReport {
	return &RunReport{
		RunID:     uuid.New(),
		StartedAt: now,
		Sent:      make(map[domain.ReminderKind]int),
		Failed:    make(map[domain.ReminderKind]int),
	}
}

// TotalSent is the number of reminders delivered
func (r *RunReport) TotalSent() int {
	total := 0
	for _, n := range r.Sent {
		total += n
	}
	return total
}

// TotalFailed is the number of reminders that failed
func (r *RunReport) TotalFailed() int {
	total := 0
	for _, n := range r.Failed {
		total += n
	}
	return total
}

// ReminderService marks overdue loans and dispatches borrower reminders
type ReminderService struct {
	loanRepo repositories.LoanRepository
	logRepo  repositories.NotificationLogRepository
	mailer   Mailer
	policy   *ReminderPolicy
	clock    clock.Clock
	metrics  *Metrics
	appName  string

	// runs must not overlap: the notified_at read-modify-write is not atomic
	mu sync.Mutex
}

// NewReminderService creates a new reminder service
func NewReminderService(
	loanRepo repositories.LoanRepository,
	logRepo repositories.NotificationLogRepository,
	mailer Mailer,
	clk clock.Clock,
	metrics *Metrics,
	appName string,
) *ReminderService {
	return &ReminderService{
		loanRepo: loanRepo,
		logRepo:  logRepo,
		mailer:   mailer,
		policy:   NewReminderPolicy(),
		clock:    clk,
		metrics:  metrics,
		appName:  appName,
	}
}

// Run performs one reminder pass. A failed send is logged and retried on the
// next run; a store failure aborts the run. If ctx ends mid-batch the partial
// report is returned with ctx's error.
func (s *ReminderService) Run(ctx context.Context) (*RunReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	report := newRunReport(now)
	tomorrow := domain.Date(now, now.Location()).AddDate(0, 0, 1)

	loans, err := s.loanRepo.ListReminderCandidates(ctx, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("%w: load reminder candidates: %w", domain.ErrStoreUnavailable, err)
	}
	report.Candidates = len(loans)

	due := s.policy.Compute(now, loans)

	if len(due.NewlyOverdue) > 0 {
		ids := make([]uint, len(due.NewlyOverdue))
		for i, loan := range due.NewlyOverdue {
			ids[i] = loan.ID
		}
		marked, err := s.loanRepo.MarkOverdue(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("%w: mark loans overdue: %w", domain.ErrStoreUnavailable, err)
		}
		report.NewlyOverdue = int(marked)
		s.metrics.LoansMarkedOverdue.Add(float64(marked))
		log.Printf("⏰ Marked %d loans overdue", marked)
	}

	for _, kind := range domain.ReminderKinds {
		for _, loan := range due.For(kind) {
			if err := ctx.Err(); err != nil {
				log.Printf("⚠️ Reminder run %s stopped early: %v (sent=%d failed=%d)",
					report.RunID, err, report.TotalSent(), report.TotalFailed())
				return report, err
			}
			s.dispatch(ctx, report, kind, loan, now)
		}
	}

	if due.Total() > 0 || report.NewlyOverdue > 0 {
		log.Printf("📬 Reminder run %s: candidates=%d overdue=%d/%d today=%d/%d soon=%d/%d failed=%d",
			report.RunID, report.Candidates,
			report.Sent[domain.ReminderOverdue], len(due.Overdue),
			report.Sent[domain.ReminderDueToday], len(due.DueToday),
			report.Sent[domain.ReminderDueSoon], len(due.DueSoon),
			report.TotalFailed(),
		)
	}

	return report, nil
}

// dispatch sends one reminder and records the outcome
func (s *ReminderService) dispatch(ctx context.Context, report *RunReport, kind domain.ReminderKind, loan *models.Loan, now time.Time) {
	entry := &models.NotificationLog{
		RunID:     report.RunID,
		LoanID:    loan.ID,
		Kind:      kind,
		Recipient: loan.BorrowerEmail,
	}

	data := newReminderData(loan, now)
	data.AppName = s.appName

	if err := s.mailer.Send(ctx, loan.BorrowerEmail, kind, data); err != nil {
		report.Failed[kind]++
		s.metrics.RemindersFailed.WithLabelValues(string(kind)).Inc()
		log.Printf("❌ %s reminder for loan #%d to %s failed: %v", kind, loan.ID, loan.BorrowerEmail, err)

		entry.Status = domain.DispatchFailed
		entry.Error = err.Error()
		s.record(ctx, entry)
		return
	}

	loan.SetNotifiedAt(kind, now)
	if err := s.loanRepo.MarkNotified(ctx, loan.ID, kind, now); err != nil {
		log.Printf("⚠️ %s reminder for loan #%d sent but timestamp not saved: %v", kind, loan.ID, err)
	}

	report.Sent[kind]++
	s.metrics.RemindersSent.WithLabelValues(string(kind)).Inc()

	entry.Status = domain.DispatchSent
	s.record(ctx, entry)
}

func (s *ReminderService) record(ctx context.Context, entry *models.NotificationLog) {
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to write notification log for loan #%d: %v", entry.LoanID, err)
	}
}

// History returns the dispatch log of a loan
func (s *ReminderService) History(ctx context.Context, loanID uint) ([]*models.NotificationLog, error) {
	return s.logRepo.ListByLoan(ctx, loanID)
}
