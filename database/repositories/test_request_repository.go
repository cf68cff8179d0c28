package repositories

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"gorm.io/gorm"
)

type testRequestRepository struct {
	db *gorm.DB
	*GormRepository[string, models.TestRequest]
}

func NewTestRequestRepository(db *gorm.DB) *testRequestRepository {
	return &testRequestRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.TestRequest](db),
	}
}

func preloadTestRequestRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Application").
		Preload("Application.Group").
		Preload("Requester").
		Preload("Assignee").
		Preload("GeneratedTestCase")
}

func (r *testRequestRepository) ReadWithDetails(id string) (models.TestRequest, error) {
	var req models.TestRequest
	err := r.db.Scopes(preloadTestRequestRelations).
		Preload("GeneratedTestCase.Feature").
		First(&req, "id = ?", id).Error
	return req, err
}

func (r *testRequestRepository) ListPaged(pageInfo shared.PageInfo, search string, filter dtos.TestRequestFilter) (shared.Paged[models.TestRequest], error) {
	query := r.db.Model(&models.TestRequest{})
	if filter.ApplicationID != nil {
		query = query.Where("application_id = ?", *filter.ApplicationID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	return paginate[models.TestRequest](query, pageInfo, "created_at DESC", preloadTestRequestRelations)
}

func (r *testRequestRepository) ListRecentByRequester(userID string, limit int) ([]models.TestRequest, error) {
	var reqs []models.TestRequest
	err := r.db.Preload("Application").
		Where("requester_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

func (r *testRequestRepository) CountByRequester(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.TestRequest{}).Where("requester_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *testRequestRepository) StepCounts(testCaseIDs []string) (map[string]int64, error) {
	return countBy(r.db, &models.GherkinStep{}, "test_case_id", testCaseIDs)
}
