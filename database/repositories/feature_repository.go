package repositories

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"gorm.io/gorm"
)

type featureRepository struct {
	db *gorm.DB
	*GormRepository[string, models.Feature]
}

func NewFeatureRepository(db *gorm.DB) *featureRepository {
	return &featureRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.Feature](db),
	}
}

func preloadApplicationChain(db *gorm.DB) *gorm.DB {
	return db.Preload("Application").Preload("Application.Group")
}

func (r *featureRepository) FindByNameInApplication(name, applicationID string) (models.Feature, error) {
	var feature models.Feature
	err := r.db.Where("name = ? AND application_id = ?", name, applicationID).First(&feature).Error
	return feature, err
}

func (r *featureRepository) ReadWithApplication(id string) (models.Feature, error) {
	var feature models.Feature
	err := r.db.Scopes(preloadApplicationChain).First(&feature, "id = ?", id).Error
	return feature, err
}

func (r *featureRepository) ReadWithTestCases(id string) (models.Feature, error) {
	var feature models.Feature
	err := r.db.Scopes(preloadApplicationChain).Preload("TestCases", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).First(&feature, "id = ?", id).Error
	return feature, err
}

func (r *featureRepository) ListPaged(pageInfo shared.PageInfo, search string, filter dtos.FeatureFilter) (shared.Paged[models.Feature], error) {
	query := r.db.Model(&models.Feature{})
	if filter.ApplicationID != nil {
		query = query.Where("application_id = ?", *filter.ApplicationID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", pattern, pattern)
	}

	return paginate[models.Feature](query, pageInfo, "name ASC", preloadApplicationChain)
}

func (r *featureRepository) ListByApplication(applicationID string, status *models.FeatureStatus) ([]models.Feature, error) {
	query := r.db.Where("application_id = ?", applicationID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var features []models.Feature
	err := query.Order("name ASC").Find(&features).Error
	return features, err
}

func (r *featureRepository) Counts(featureIDs []string) (map[string]dtos.Counts, error) {
	return collectCounts(r.db, featureIDs,
		relationCount{key: "testCases", model: &models.TestCase{}, column: "feature_id"},
	)
}

func (r *featureRepository) HasTestCases(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.TestCase{}).Where("feature_id = ?", id).Count(&count).Error
	return count > 0, err
}
