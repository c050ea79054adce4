package repository

import (
	"github.com/fadilmartias/jobtrack/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

type ListFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// ListApplications returns one page of records matching the filter plus the
// total match count. Search is a case-insensitive substring match over
// company name and job title.
func (r *ApplicationRepository) ListApplications(filter ListFilter) ([]model.Application, int64, error) {
	q := r.db.Model(&model.Application{})
	if filter.Status != "" {
		q = q.Where("details->>'status' = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("company->>'name' ILIKE ? OR job->>'title' ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []model.Application
	err := q.Order("created_at DESC, id").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&apps).Error
	return apps, total, err
}

func (r *ApplicationRepository) GetApplications() ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Order("created_at DESC, id").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) FindApplicationByID(id uuid.UUID) (*model.Application, error) {
	var app model.Application
	err := r.db.First(&app, "id = ?", id).Error
	return &app, err
}

func (r *ApplicationRepository) CreateApplication(app *model.Application) error {
	return r.db.Create(app).Error
}

func (r *ApplicationRepository) UpdateApplication(app *model.Application) error {
	return r.db.Save(app).Error
}

func (r *ApplicationRepository) DeleteApplication(id uuid.UUID) error {
	return r.db.Delete(&model.Application{}, "id = ?", id).Error
}
