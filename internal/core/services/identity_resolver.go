package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/adapters/persistence/repositories"
	"campus-inventory/internal/core/domain"

	"gorm.io/gorm"
)

// Structured scan payload fields
const (
	payloadType       = "type"
	payloadStudentID  = "student_id"
	payloadEmployeeID = "employee_id"
	payloadIDNumber   = "id_number"
)

// IdentityResolver turns a decoded QR payload into a borrower identity.
// It only reads from the store and is safe for concurrent use.
type IdentityResolver struct {
	students  repositories.StudentRepository
	employees repositories.EmployeeRepository
	users     repositories.UserRepository
}

// NewIdentityResolver creates a new identity resolver
func NewIdentityResolver(
	students repositories.StudentRepository,
	employees repositories.EmployeeRepository,
	users repositories.UserRepository,
) *IdentityResolver {
	return &IdentityResolver{
		students:  students,
		employees: employees,
		users:     users,
	}
}

// identityMatcher is one lookup step. find returns (nil, nil) on a miss.
type identityMatcher struct {
	key  string
	find func(ctx context.Context) (*domain.Identity, error)
}

// Resolve returns the identity behind scanPayload, or domain.ErrIdentityNotFound.
// Matchers run in a fixed order and the first hit wins:
//  1. typed lookup named by the payload's "type"
//  2. student_id, employee_id, id_number fields, when present
//  3. the whole payload as an opaque code: students, employees, users
//
// A payload that is not a JSON object only goes through step 3.
func (r *IdentityResolver) Resolve(ctx context.Context, scanPayload string) (*domain.Identity, error) {
	payload := strings.TrimSpace(scanPayload)
	if payload == "" {
		return nil, domain.ErrIdentityNotFound
	}

	seen := make(map[string]bool)
	for _, m := range r.matchers(payload) {
		if seen[m.key] {
			continue
		}
		seen[m.key] = true

		identity, err := m.find(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		if identity != nil {
			return identity, nil
		}
	}

	return nil, domain.ErrIdentityNotFound
}

// matchers builds the ordered lookup plan for a payload
func (r *IdentityResolver) matchers(payload string) []identityMatcher {
	var plan []identityMatcher

	if fields, ok := parseScanPayload(payload); ok {
		studentCode := fields[payloadStudentID]
		employeeCode := fields[payloadEmployeeID]
		idNumber := fields[payloadIDNumber]

		switch strings.ToLower(fields[payloadType]) {
		case string(domain.IdentityStudent):
			if studentCode != "" {
				plan = append(plan, r.studentBy(payloadStudentID, studentCode, r.students.GetByStudentCode))
			}
		case string(domain.IdentityEmployee):
			if employeeCode != "" {
				plan = append(plan, r.employeeBy(payloadEmployeeID, employeeCode, r.employees.GetByEmployeeCode))
			}
		}

		if studentCode != "" {
			plan = append(plan, r.studentBy(payloadStudentID, studentCode, r.students.GetByStudentCode))
		}
		if employeeCode != "" {
			plan = append(plan, r.employeeBy(payloadEmployeeID, employeeCode, r.employees.GetByEmployeeCode))
		}
		if idNumber != "" {
			plan = append(plan, r.userBy(payloadIDNumber, idNumber, r.users.GetByIDNumber))
		}
	}

	return append(plan,
		r.studentBy("code", payload, r.students.GetByCode),
		r.employeeBy("code", payload, r.employees.GetByCode),
		r.userBy("code", payload, r.users.GetByCode),
	)
}

func (r *IdentityResolver) studentBy(field, value string, get func(context.Context, string) (*models.Student, error)) identityMatcher {
	return identityMatcher{
		key: "students." + field + "=" + value,
		find: func(ctx context.Context) (*domain.Identity, error) {
			student, err := get(ctx, value)
			if err != nil {
				return nil, ignoreNotFound(err)
			}
			return student.ToIdentity(), nil
		},
	}
}

func (r *IdentityResolver) employeeBy(field, value string, get func(context.Context, string) (*models.Employee, error)) identityMatcher {
	return identityMatcher{
		key: "employees." + field + "=" + value,
		find: func(ctx context.Context) (*domain.Identity, error) {
			employee, err := get(ctx, value)
			if err != nil {
				return nil, ignoreNotFound(err)
			}
			return employee.ToIdentity(), nil
		},
	}
}

func (r *IdentityResolver) userBy(field, value string, get func(context.Context, string) (*models.User, error)) identityMatcher {
	return identityMatcher{
		key: "users." + field + "=" + value,
		find: func(ctx context.Context) (*domain.Identity, error) {
			user, err := get(ctx, value)
			if err != nil {
				return nil, ignoreNotFound(err)
			}
			return user.ToIdentity(), nil
		},
	}
}

// parseScanPayload decodes a JSON object payload into trimmed string fields.
// String and number values are kept; anything else is dropped. ok is false
// when the payload is not a JSON object.
func parseScanPayload(payload string) (map[string]string, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil || raw == nil {
		return nil, false
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				fields[key] = s
			}
			continue
		}

		var n json.Number
		if err := json.Unmarshal(value, &n); err == nil {
			fields[key] = n.String()
		}
	}

	return fields, true
}

// ignoreNotFound turns a missing record into a plain miss
func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
