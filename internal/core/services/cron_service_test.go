package services

import (
	"context"
	"testing"
	"time"

	"campus-inventory/internal/config"
	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/clock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func schedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		ReminderCron:  "0 * * * *",
		ArchiveCron:   "30 2 * * *",
		JobTimeout:    time.Minute,
		RetentionDays: 180,
		Location:      ict,
	}
}

func TestCronService_StartRejectsBadSchedule(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	cfg := schedulerConfig()
	cfg.ReminderCron = "every hour"
	err := NewCronService(cfg, nil, nil, metrics, false).Start()
	assert.ErrorContains(t, err, "REMINDER_CRON")

	cfg = schedulerConfig()
	cfg.ArchiveCron = "61 * * * *"
	err = NewCronService(cfg, nil, nil, metrics, false).Start()
	assert.ErrorContains(t, err, "ARCHIVE_CRON")
}

func TestCronService_StartAndStop(t *testing.T) {
	service := NewCronService(schedulerConfig(), nil, nil, NewMetrics(prometheus.NewRegistry()), true)

	require.NoError(t, service.Start())
	assert.Len(t, service.cron.Entries(), 2)
	service.Stop()
}

func TestCronService_JobsRecordOutcome(t *testing.T) {
	f := newReminderFixture(newLoan(1, domain.LoanBorrowed, 0))
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	archiveLoans := newFakeLoans()
	archiveLoans.markErr = errStoreDown
	archive := NewArchiveService(archiveLoans, clock.NewFixed(policyNow), f.metrics, 30)

	service := NewCronService(schedulerConfig(), f.service, archive, f.metrics, false)
	service.RunReminders()
	service.RunArchive()

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.JobRuns.WithLabelValues("reminders", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.JobRuns.WithLabelValues("archive", "error")))
	assert.NotNil(t, f.loans.get(1).DueTodayNotifiedAt)
}

func TestCronService_JobTimeoutApplies(t *testing.T) {
	f := newReminderFixture(newLoan(1, domain.LoanOverdue, -1), newLoan(2, domain.LoanOverdue, -1))
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(context.DeadlineExceeded)

	cfg := schedulerConfig()
	cfg.JobTimeout = 20 * time.Millisecond
	service := NewCronService(cfg, f.service, nil, f.metrics, false)
	service.RunReminders()

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.JobRuns.WithLabelValues("reminders", "error")))
	f.mailer.AssertNumberOfCalls(t, "Send", 1)
}
