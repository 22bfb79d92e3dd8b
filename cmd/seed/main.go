package main

import (
	"strings"

	"github.com/yashsaxena18/curesight-server/config"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	"github.com/yashsaxena18/curesight-server/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the schema, roles, and the initial admin account. Safe to run
// repeatedly: existing rows are left untouched.
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrate(db); err != nil {
		logrus.Fatalf("Failed to migrate schema: %v", err)
	}
	logrus.Info("Schema migrated")

	if err := seedRoles(db); err != nil {
		logrus.Fatalf("Failed to seed roles: %v", err)
	}
	logrus.Info("Roles seeded")

	if err := seedAdmin(db, cfg.Seed); err != nil {
		logrus.Fatalf("Failed to seed admin: %v", err)
	}

	logrus.Info("Seeding complete")
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.AdminProfile{},
		&entity.DoctorSchedule{},
		&entity.Appointment{},
		&entity.PrescriptionItem{},
		&entity.Message{},
		&entity.DailyHealthLog{},
		&entity.HealthRecord{},
		&entity.ScreeningJob{},
		&entity.AuditLog{},
	)
}

func seedRoles(db *gorm.DB) error {
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "Platform administrator"},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor, Description: "Verified medical practitioner"},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient, Description: "Patient account"},
	}

	for _, role := range roles {
		if err := db.Where("id = ?", role.ID).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB, cfg config.SeedConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logrus.Warn("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	email := strings.ToLower(cfg.AdminEmail)

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Infof("Admin %s already exists, skipping", email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := &entity.User{
			Email:    email,
			Password: string(hashed),
			FullName: cfg.AdminName,
			RoleID:   entity.RoleIDAdmin,
			IsActive: true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		profile := &entity.AdminProfile{
			UserID:     admin.ID,
			AdminLevel: 1,
			Permissions: entity.JSON{
				"permissions": []interface{}{
					entity.PermissionVerifyDoctors,
					entity.PermissionViewAuditLogs,
				},
			},
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		logrus.Infof("Admin %s created", email)
		return nil
	})
}
