package config

import (
	"errors"
	"log"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/core/domain"

	"gorm.io/gorm"
)

// SeedDemoData seeds sample borrowers and items for local development
func SeedDemoData(db *gorm.DB) error {
	if err := seedStudents(db); err != nil {
		return err
	}
	if err := seedEmployees(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedItems(db); err != nil {
		return err
	}

	log.Println("✅ Demo data seeded successfully")
	return nil
}

func seedStudents(db *gorm.DB) error {
	students := []models.Student{
		{StudentCode: "6401234", Code: "QR-STU-6401234", Name: "Somchai Jaidee", Email: "somchai@student.campus.local", Contact: "0812345678", Status: domain.StatusActive},
		{StudentCode: "6405678", Code: "QR-STU-6405678", Name: "Anong Srisuk", Email: "anong@student.campus.local", Status: domain.StatusActive},
	}

	for _, st := range students {
		var existing models.Student
		err := db.Where("student_id = ?", st.StudentCode).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&st).Error; err != nil {
				return err
			}
			log.Printf("   Created student: %s", st.StudentCode)
		} else if err != nil {
			return err
		}
	}
	return nil
}

func seedEmployees(db *gorm.DB) error {
	employees := []models.Employee{
		{EmployeeCode: "EMP-001", Code: "QR-EMP-001", Name: "Dr. Wichai Kaewmanee", Email: "wichai@campus.local", Status: domain.StatusActive},
	}

	for _, emp := range employees {
		var existing models.Employee
		err := db.Where("employee_id = ?", emp.EmployeeCode).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&emp).Error; err != nil {
				return err
			}
			log.Printf("   Created employee: %s", emp.EmployeeCode)
		} else if err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	users := []models.User{
		{IDNumber: "1100700123456", Code: "QR-USR-0001", Name: "Guest Lecturer", Email: "guest@example.com", Status: domain.StatusActive},
	}

	for _, u := range users {
		var existing models.User
		err := db.Where("id_number = ?", u.IDNumber).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&u).Error; err != nil {
				return err
			}
			log.Printf("   Created user: %s", u.IDNumber)
		} else if err != nil {
			return err
		}
	}
	return nil
}

func seedItems(db *gorm.DB) error {
	items := []models.Item{
		{Code: "PRJ-01", Name: "Epson projector", Category: "av", Quantity: 4, Available: 4},
		{Code: "LAP-01", Name: "Laptop 14\"", Category: "computer", Quantity: 10, Available: 10},
		{Code: "MIC-01", Name: "Wireless microphone", Category: "av", Quantity: 6, Available: 6},
	}

	for _, it := range items {
		var existing models.Item
		err := db.Where("code = ?", it.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&it).Error; err != nil {
				return err
			}
			log.Printf("   Created item: %s", it.Code)
		} else if err != nil {
			return err
		}
	}
	return nil
}
