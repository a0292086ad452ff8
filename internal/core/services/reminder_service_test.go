package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/config"
	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/clock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reminderFixture struct {
	loans   *fakeLoans
	logs    *fakeNotificationLogs
	mailer  *mockMailer
	clock   *clock.Fixed
	metrics *Metrics
	service *ReminderService
}

func newReminderFixture(loans ...*models.Loan) *reminderFixture {
	f := &reminderFixture{
		loans:   newFakeLoans(loans...),
		logs:    &fakeNotificationLogs{},
		mailer:  &mockMailer{},
		clock:   clock.NewFixed(policyNow),
		metrics: NewMetrics(prometheus.NewRegistry()),
	}
	f.service = NewReminderService(f.loans, f.logs, f.mailer, f.clock, f.metrics, "Campus Inventory")
	return f
}

func TestReminderService_SendsAndStamps(t *testing.T) {
	f := newReminderFixture(
		newLoan(1, domain.LoanBorrowed, -1),
		newLoan(2, domain.LoanBorrowed, 0),
		newLoan(3, domain.LoanBorrowed, 1),
		newLoan(4, domain.LoanBorrowed, 5),
	)
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	report, err := f.service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Candidates)
	assert.Equal(t, 1, report.NewlyOverdue)
	assert.Equal(t, 3, report.TotalSent())
	assert.Zero(t, report.TotalFailed())

	overdue := f.loans.get(1)
	assert.Equal(t, domain.LoanOverdue, overdue.Status)
	require.NotNil(t, overdue.OverdueNotifiedAt)
	assert.True(t, overdue.OverdueNotifiedAt.Equal(policyNow))
	assert.NotNil(t, f.loans.get(2).DueTodayNotifiedAt)
	assert.NotNil(t, f.loans.get(3).DueSoonNotifiedAt)
	assert.Nil(t, f.loans.get(4).DueSoonNotifiedAt)

	f.mailer.AssertCalled(t, "Send", mock.Anything, "b1@campus.local", domain.ReminderOverdue,
		mock.MatchedBy(func(d ReminderData) bool { return d.DaysOverdue == 1 && d.AppName == "Campus Inventory" }))
	f.mailer.AssertCalled(t, "Send", mock.Anything, "b2@campus.local", domain.ReminderDueToday, mock.Anything)
	f.mailer.AssertCalled(t, "Send", mock.Anything, "b3@campus.local", domain.ReminderDueSoon, mock.Anything)

	require.Len(t, f.logs.entries, 3)
	for _, entry := range f.logs.entries {
		assert.Equal(t, domain.DispatchSent, entry.Status)
		assert.Equal(t, report.RunID, entry.RunID)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LoansMarkedOverdue))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RemindersSent.WithLabelValues(string(domain.ReminderDueSoon))))
}

func TestReminderService_FailureIsIsolated(t *testing.T) {
	f := newReminderFixture(
		newLoan(1, domain.LoanOverdue, -2),
		newLoan(2, domain.LoanOverdue, -2),
		newLoan(3, domain.LoanBorrowed, 0),
	)
	f.mailer.On("Send", mock.Anything, "b1@campus.local", mock.Anything, mock.Anything).Return(errors.New("550 mailbox unavailable"))
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	report, err := f.service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed[domain.ReminderOverdue])
	assert.Equal(t, 1, report.Sent[domain.ReminderOverdue])
	assert.Equal(t, 1, report.Sent[domain.ReminderDueToday])

	assert.Nil(t, f.loans.get(1).OverdueNotifiedAt)
	assert.NotNil(t, f.loans.get(2).OverdueNotifiedAt)
	assert.NotNil(t, f.loans.get(3).DueTodayNotifiedAt)

	history, err := f.service.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.DispatchFailed, history[0].Status)
	assert.Contains(t, history[0].Error, "550")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RemindersFailed.WithLabelValues(string(domain.ReminderOverdue))))

	// the failed reminder is retried on the next run, nothing else is resent
	f.clock.Advance(time.Hour)
	report, err = f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalSent())
	assert.Equal(t, 1, report.Failed[domain.ReminderOverdue])
	f.mailer.AssertNumberOfCalls(t, "Send", 4)
}

func TestReminderService_IdempotentAcrossRuns(t *testing.T) {
	f := newReminderFixture(
		newLoan(1, domain.LoanBorrowed, -1),
		newLoan(2, domain.LoanBorrowed, 0),
		newLoan(3, domain.LoanBorrowed, 1),
	)
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Run(context.Background())
	require.NoError(t, err)
	f.mailer.AssertNumberOfCalls(t, "Send", 3)

	f.clock.Advance(3 * time.Hour)
	report, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.TotalSent())
	assert.Zero(t, report.NewlyOverdue)
	f.mailer.AssertNumberOfCalls(t, "Send", 3)

	// next day: overdue repeats, yesterday's due-today loan turns overdue
	// and the due-soon loan is now due today
	f.clock.Advance(24 * time.Hour)
	report, err = f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Sent[domain.ReminderOverdue])
	assert.Equal(t, 1, report.NewlyOverdue)
	assert.Equal(t, 1, report.Sent[domain.ReminderDueToday])
	assert.Zero(t, report.Sent[domain.ReminderDueSoon])
	f.mailer.AssertCalled(t, "Send", mock.Anything, "b3@campus.local", domain.ReminderDueToday, mock.Anything)
}

func TestReminderService_StoreUnavailable(t *testing.T) {
	f := newReminderFixture(newLoan(1, domain.LoanBorrowed, 0))
	f.loans.listErr = errStoreDown

	report, err := f.service.Run(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, errStoreDown)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_MarkOverdueFailureAbortsRun(t *testing.T) {
	f := newReminderFixture(newLoan(1, domain.LoanBorrowed, -1))
	f.loans.markErr = errStoreDown

	_, err := f.service.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_CancelledContextReturnsPartialReport(t *testing.T) {
	f := newReminderFixture(
		newLoan(1, domain.LoanOverdue, -1),
		newLoan(2, domain.LoanBorrowed, 0),
	)
	ctx, cancel := context.WithCancel(context.Background())
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil)

	report, err := f.service.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.TotalSent())
	assert.NotNil(t, f.loans.get(1).OverdueNotifiedAt)
	assert.Nil(t, f.loans.get(2).DueTodayNotifiedAt)
}

func TestReminderService_DisabledMailLeavesLoansUnnotified(t *testing.T) {
	mailer, err := NewMailService(config.MailConfig{AppName: "Campus Inventory"})
	require.NoError(t, err)

	loans := newFakeLoans(newLoan(1, domain.LoanBorrowed, 0))
	logs := &fakeNotificationLogs{}
	service := NewReminderService(loans, logs, mailer, clock.NewFixed(policyNow), NewMetrics(prometheus.NewRegistry()), "Campus Inventory")

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed[domain.ReminderDueToday])
	assert.Nil(t, loans.get(1).DueTodayNotifiedAt)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, domain.ErrMailDisabled.Error(), logs.entries[0].Error)
}
