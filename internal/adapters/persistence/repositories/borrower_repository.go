package repositories

import (
	"context"

	"campus-inventory/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// studentRepository implements StudentRepository interface
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// GetByStudentCode gets a student by student code (students.student_id)
func (r *studentRepository) GetByStudentCode(ctx context.Context, studentCode string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("student_id = ?", studentCode).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByCode gets a student by the opaque QR code
func (r *studentRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// employeeRepository implements EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByEmployeeCode gets an employee by employee code (employees.employee_id)
func (r *employeeRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeCode).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByCode gets an employee by the opaque QR code
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByIDNumber gets a user by id number
func (r *userRepository) GetByIDNumber(ctx context.Context, idNumber string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id_number = ?", idNumber).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByCode gets a user by the opaque QR code
func (r *userRepository) GetByCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
