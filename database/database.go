package database

import (
	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"horasextras/models"
)

// Open connects to Postgres, migrates the schema and seeds the fixed data.
// The handle is passed down explicitly; there is no package-level instance.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Seed(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.OvertimeRequest{},
		&models.Notification{},
	)
	return errors.Wrap(err, "migrate schema")
}

// Seed creates the demo accounts and the fixed obra list if they are not
// present yet. Requests and notifications are never seeded; they only come
// from the create/transition operations.
func Seed(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return err
	}
	return seedProjects(db)
}

type seedUser struct {
	name     string
	email    string
	password string
	role     models.Role
}

var demoUsers = []seedUser{
	{"Carlos Silva", "gestor@fortesengenharia.com", "gestor123", models.RoleGestor},
	{"João Santos", "encarregado@fortesengenharia.com", "enc123", models.RoleEncarregado},
	{"Maria Oliveira", "tecnico@fortesengenharia.com", "tec123", models.RoleTecnico},
}

var obras = []string{
	"Obra Centro Comercial",
	"Obra Shopping Norte",
	"Obra Residencial Sul",
	"Obra Industrial Leste",
	"Obra Hospital Central",
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count users")
	}
	if count > 0 {
		return nil
	}

	for _, su := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hash seed password")
		}
		user := models.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return errors.Wrapf(err, "seed user %s", su.email)
		}
	}
	log.WithField("users", len(demoUsers)).Info("demo accounts created")
	return nil
}

func seedProjects(db *gorm.DB) error {
	for _, name := range obras {
		var count int64
		if err := db.Model(&models.Project{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return errors.Wrap(err, "count projects")
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.Project{Name: name}).Error; err != nil {
			return errors.Wrapf(err, "seed project %s", name)
		}
	}
	return nil
}
