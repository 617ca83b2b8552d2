package bootstrap

import (
	"log"

	"anoa.com/schoolmanagement/internal/entity"
	"anoa.com/schoolmanagement/pkg/credential"
	"anoa.com/schoolmanagement/pkg/token"
	"gorm.io/gorm"
)

const (
	seedAdminUsername = "admin"
	seedAdminEmail    = "admin@school.local"
	seedAdminPassword = "admin123"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Admin{},
		&entity.Student{},
		&entity.LibraryCard{},
		&entity.TimetableEntry{},
		&entity.FeeStructure{},
	)
}

// SeedAdminUser creates a known admin account for local development.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Admin{}).
		Where("email = ? OR username = ?", seedAdminEmail, seedAdminUsername).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashed, err := credential.HashPassword(seedAdminPassword)
	if err != nil {
		return err
	}

	admin := entity.Admin{
		Username:     seedAdminUsername,
		Email:        seedAdminEmail,
		PasswordHash: hashed,
		Role:         token.RoleAdmin.String(),
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Printf("   Email: %s", seedAdminEmail)
	log.Printf("   Password: %s", seedAdminPassword)
	log.Println("⚠️ Change the seeded admin password before exposing this server")

	return nil
}
