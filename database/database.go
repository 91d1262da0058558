package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Sumanth789856/Get-Updated/config"
	"github.com/Sumanth789856/Get-Updated/models"
)

var DB *gorm.DB

// Connect opens the configured backend (postgres or embedded sqlite)
// behind one GORM handle and migrates the schema. Fails fast: the server
// cannot run without its database.
func Connect(cfg *config.Config, log *zap.Logger) error {
	var dial gorm.Dialector
	switch cfg.DB.Driver {
	case "sqlite":
		dial = sqlite.Open(cfg.DB.Path)
	case "postgres":
		dial = postgres.Open(cfg.DB.DSN())
	default:
		return fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Announcement{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("database ready", zap.String("driver", cfg.DB.Driver))

	return seedDefaults(log)
}

// seedDefaults creates the demo teacher and student accounts on a fresh
// database. Existing usernames are left alone.
func seedDefaults(log *zap.Logger) error {
	seeds := []struct {
		username, email, password, role string
	}{
		{"teacher", "teacher@example.com", "pass", models.RoleTeacher},
		{"student", "student@example.com", "pass", models.RoleStudent},
	}
	for _, s := range seeds {
		var existing models.User
		err := DB.Where("username = ?", s.username).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("seed lookup %s: %w", s.username, err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash: %w", err)
		}
		u := models.User{
			Username: s.username,
			Email:    s.email,
			Password: string(hash),
			Role:     s.role,
		}
		if err := DB.Create(&u).Error; err != nil {
			return fmt.Errorf("seed %s: %w", s.username, err)
		}
		log.Info("seeded default account", zap.String("username", s.username), zap.String("role", s.role))
	}
	return nil
}
