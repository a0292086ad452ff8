package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("connection refused")

// lookupCounter counts store calls per lookup name
type lookupCounter struct {
	mu    sync.Mutex
	calls []string
}

func (c *lookupCounter) hit(name string) {
	c.mu.Lock()
	c.calls = append(c.calls, name)
	c.mu.Unlock()
}

type fakeStudents struct {
	*lookupCounter
	rows []*models.Student
	err  error
}

func (f *fakeStudents) GetByStudentCode(_ context.Context, code string) (*models.Student, error) {
	f.hit("students.student_id")
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.rows {
		if s.StudentCode == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStudents) GetByCode(_ context.Context, code string) (*models.Student, error) {
	f.hit("students.code")
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.rows {
		if s.Code != "" && s.Code == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEmployees struct {
	*lookupCounter
	rows []*models.Employee
	err  error
}

func (f *fakeEmployees) GetByEmployeeCode(_ context.Context, code string) (*models.Employee, error) {
	f.hit("employees.employee_id")
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.rows {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployees) GetByCode(_ context.Context, code string) (*models.Employee, error) {
	f.hit("employees.code")
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.rows {
		if e.Code != "" && e.Code == code {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeUsers struct {
	*lookupCounter
	rows []*models.User
	err  error
}

func (f *fakeUsers) GetByIDNumber(_ context.Context, idNumber string) (*models.User, error) {
	f.hit("users.id_number")
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.rows {
		if u.IDNumber == idNumber {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) GetByCode(_ context.Context, code string) (*models.User, error) {
	f.hit("users.code")
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.rows {
		if u.Code != "" && u.Code == code {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// borrowerStore bundles the three borrower fakes behind one counter
type borrowerStore struct {
	counter   *lookupCounter
	students  *fakeStudents
	employees *fakeEmployees
	users     *fakeUsers
}

func newBorrowerStore() *borrowerStore {
	c := &lookupCounter{}
	return &borrowerStore{
		counter:   c,
		students:  &fakeStudents{lookupCounter: c},
		employees: &fakeEmployees{lookupCounter: c},
		users:     &fakeUsers{lookupCounter: c},
	}
}

func (b *borrowerStore) resolver() *IdentityResolver {
	return NewIdentityResolver(b.students, b.employees, b.users)
}

type fakeItems struct {
	mu     sync.Mutex
	rows   map[uint]*models.Item
	nextID uint
}

func newFakeItems(items ...*models.Item) *fakeItems {
	f := &fakeItems{rows: make(map[uint]*models.Item)}
	for _, it := range items {
		f.nextID++
		if it.ID == 0 {
			it.ID = f.nextID
		}
		f.rows[it.ID] = it
	}
	return f
}

func (f *fakeItems) Create(_ context.Context, item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item.ID = f.nextID
	f.rows[item.ID] = item
	return nil
}

func (f *fakeItems) GetByID(_ context.Context, id uint) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it, ok := f.rows[id]; ok {
		copied := *it
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeItems) ExistsByCode(_ context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.rows {
		if it.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeItems) List(_ context.Context, search string, offset, limit int) ([]*models.Item, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Item
	for _, it := range f.rows {
		if search == "" || strings.Contains(it.Name, search) || strings.Contains(it.Code, search) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeItems) Reserve(_ context.Context, id uint, qty int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.rows[id]
	if !ok || it.Available < qty {
		return false, nil
	}
	it.Available -= qty
	return true, nil
}

func (f *fakeItems) Release(_ context.Context, id uint, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it, ok := f.rows[id]; ok {
		it.Available += qty
		if it.Available > it.Quantity {
			it.Available = it.Quantity
		}
	}
	return nil
}

func (f *fakeItems) available(id uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id].Available
}

type fakeLoans struct {
	mu         sync.Mutex
	rows       map[uint]*models.Loan
	nextID     uint
	listErr    error
	createErr  error
	markErr    error
	notified   []domain.ReminderKind
	markedDone int
}

func newFakeLoans(loans ...*models.Loan) *fakeLoans {
	f := &fakeLoans{rows: make(map[uint]*models.Loan)}
	for _, l := range loans {
		f.nextID++
		if l.ID == 0 {
			l.ID = f.nextID
		}
		f.rows[l.ID] = l
	}
	return f
}

func (f *fakeLoans) Create(_ context.Context, loan *models.Loan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	loan.ID = f.nextID
	f.rows[loan.ID] = loan
	return nil
}

func (f *fakeLoans) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.rows[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLoans) List(_ context.Context, status domain.LoanStatus, offset, limit int) ([]*models.Loan, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Loan
	for _, l := range f.rows {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

// ListReminderCandidates hands out copies so state only changes through Mark*
func (f *fakeLoans) ListReminderCandidates(_ context.Context, dueOnOrBefore time.Time) ([]*models.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	limit := dueOnOrBefore.Format("2006-01-02")
	var out []*models.Loan
	for _, l := range f.rows {
		if l.Status.IsOpen() && l.ExpectedReturnDate.Format("2006-01-02") <= limit {
			copied := *l
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLoans) MarkOverdue(_ context.Context, ids []uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return 0, f.markErr
	}
	var n int64
	for _, id := range ids {
		if l, ok := f.rows[id]; ok && l.Status == domain.LoanBorrowed {
			l.Status = domain.LoanOverdue
			n++
		}
	}
	return n, nil
}

func (f *fakeLoans) MarkNotified(_ context.Context, id uint, kind domain.ReminderKind, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.rows[id]; ok {
		l.SetNotifiedAt(kind, at)
		f.notified = append(f.notified, kind)
	}
	return nil
}

func (f *fakeLoans) MarkReturned(_ context.Context, id uint, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.rows[id]
	if !ok || !l.Status.IsOpen() {
		return false, nil
	}
	l.Status = domain.LoanReturned
	l.ReturnedAt = &at
	f.markedDone++
	return true, nil
}

func (f *fakeLoans) PurgeReturnedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return 0, f.markErr
	}
	var n int64
	for id, l := range f.rows {
		if l.Status == domain.LoanReturned && l.ReturnedAt != nil && l.ReturnedAt.Before(cutoff) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeLoans) get(id uint) *models.Loan {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

type fakeNotificationLogs struct {
	mu      sync.Mutex
	entries []*models.NotificationLog
}

func (f *fakeNotificationLogs) Create(_ context.Context, entry *models.NotificationLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeNotificationLogs) ListByLoan(_ context.Context, loanID uint) ([]*models.NotificationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.NotificationLog
	for _, e := range f.entries {
		if e.LoanID == loanID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAdmins struct {
	rows []*models.Admin
}

func (f *fakeAdmins) Create(_ context.Context, admin *models.Admin) error {
	admin.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, admin)
	return nil
}

func (f *fakeAdmins) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	for _, a := range f.rows {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdmins) Count(_ context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to string, kind domain.ReminderKind, data ReminderData) error {
	args := m.Called(ctx, to, kind, data)
	return args.Error(0)
}
