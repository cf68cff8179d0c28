package repositories

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"gorm.io/gorm"
)

type applicationRepository struct {
	db *gorm.DB
	*GormRepository[string, models.Application]
}

func NewApplicationRepository(db *gorm.DB) *applicationRepository {
	return &applicationRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.Application](db),
	}
}

func (r *applicationRepository) FindByNameInGroup(name, groupID string) (models.Application, error) {
	var app models.Application
	err := r.db.Where("name = ? AND group_id = ?", name, groupID).First(&app).Error
	return app, err
}

func (r *applicationRepository) ReadWithGroup(id string) (models.Application, error) {
	var app models.Application
	err := r.db.Preload("Group").First(&app, "id = ?", id).Error
	return app, err
}

func (r *applicationRepository) ReadWithDetails(id string) (models.Application, error) {
	var app models.Application
	err := r.db.Preload("Group").Preload("Features", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).First(&app, "id = ?", id).Error
	return app, err
}

func (r *applicationRepository) ListPaged(pageInfo shared.PageInfo, search string, filter dtos.ApplicationFilter) (shared.Paged[models.Application], error) {
	query := r.db.Model(&models.Application{})
	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", pattern, pattern)
	}

	return paginate[models.Application](query, pageInfo, "name ASC", func(db *gorm.DB) *gorm.DB {
		return db.Preload("Group")
	})
}

func (r *applicationRepository) ListByGitlabProjectID(gitlabProjectID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Where("gitlab_project_id = ?", gitlabProjectID).Order("name ASC").Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) Counts(applicationIDs []string) (map[string]dtos.Counts, error) {
	return collectCounts(r.db, applicationIDs,
		relationCount{key: "features", model: &models.Feature{}, column: "application_id"},
		relationCount{key: "testRequests", model: &models.TestRequest{}, column: "application_id"},
	)
}

func (r *applicationRepository) HasFeatures(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Feature{}).Where("application_id = ?", id).Count(&count).Error
	return count > 0, err
}
