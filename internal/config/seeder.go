package config

import (
	"context"
	"errors"
	"log"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/adapters/persistence/repositories"
	"campus-inventory/internal/pkg/password"
)

// ErrWeakAdminPassword is returned when ADMIN_PASSWORD is missing or too short
var ErrWeakAdminPassword = errors.New("ADMIN_PASSWORD must be at least 8 characters")

// Seeder handles database seeding
type Seeder struct {
	admins repositories.AdminRepository
	cfg    AdminConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(admins repositories.AdminRepository, cfg AdminConfig) *Seeder {
	return &Seeder{admins: admins, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdmin(ctx); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdmin creates the first admin account from ADMIN_* settings.
// Nothing happens once any admin exists.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if !password.ValidatePassword(s.cfg.Password) {
		return ErrWeakAdminPassword
	}

	hashedPassword, err := password.Hash(s.cfg.Password)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Username: s.cfg.Username,
		Email:    s.cfg.Email,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
