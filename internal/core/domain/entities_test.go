package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	bkk := time.FixedZone("ICT", 7*3600)

	// 20:00 UTC is already the next day in ICT
	utc := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, bkk), Date(utc, bkk))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Date(utc, time.UTC))
}

func TestDateOnly(t *testing.T) {
	nyc := time.FixedZone("EST", -5*3600)

	// a DATE read back as UTC midnight must not slide to the previous day
	stored := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, nyc), DateOnly(stored, nyc))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, nyc), Date(stored, nyc))
}

func TestLoanStatus_IsOpen(t *testing.T) {
	assert.True(t, LoanBorrowed.IsOpen())
	assert.True(t, LoanOverdue.IsOpen())
	assert.False(t, LoanReturned.IsOpen())
}

func TestIdentity_IsActive(t *testing.T) {
	assert.True(t, (&Identity{}).IsActive())
	assert.True(t, (&Identity{Status: StatusActive}).IsActive())
	assert.False(t, (&Identity{Status: StatusInactive}).IsActive())
}

func TestIdentityKind_Valid(t *testing.T) {
	assert.True(t, IdentityStudent.Valid())
	assert.True(t, IdentityUser.Valid())
	assert.False(t, IdentityKind("admin").Valid())
}
