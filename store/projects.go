package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"horasextras/models"
)

type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) List() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("id asc").Find(&projects).Error; err != nil {
		return nil, errors.Wrap(err, "list projects")
	}
	return projects, nil
}

func (s *ProjectStore) Exists(name string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Project{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count projects")
	}
	return count > 0, nil
}

func (s *ProjectStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Project{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count projects")
	}
	return count, nil
}
