package infra

import (
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cafemanagement/internal/model"
)

// SeedIfEmpty populates baseline rows exactly once, gated on the users table
// being empty. Safe to call on every startup.
func SeedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
		if err != nil {
			return err
		}
		employeeHash, err := bcrypt.GenerateFromPassword([]byte("empleado123"), 12)
		if err != nil {
			return err
		}

		adminEmail := "admin@cafe.local"
		employeeEmail := "empleado@cafe.local"
		users := []model.User{
			{
				Username:       "admin",
				PasswordHash:   string(adminHash),
				Name:           "Administrador",
				Email:          &adminEmail,
				Role:           model.RoleAdmin,
				ApprovalStatus: model.ApprovalApproved,
			},
			{
				Username:       "empleado",
				PasswordHash:   string(employeeHash),
				Name:           "Empleado",
				Email:          &employeeEmail,
				Role:           model.RoleEmployee,
				ApprovalStatus: model.ApprovalApproved,
			},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		products := []model.Product{
			{Name: "Espresso", Category: "Café", Price: decimal.NewFromInt(1500), IsAvailable: true},
			{Name: "Cappuccino", Category: "Café", Price: decimal.NewFromInt(2200), IsAvailable: true},
			{Name: "Croissant", Category: "Pastelería", Price: decimal.NewFromInt(1800), IsAvailable: true},
		}
		return tx.Create(&products).Error
	})
}
