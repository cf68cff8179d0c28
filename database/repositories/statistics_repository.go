package repositories

import (
	"fmt"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"gorm.io/gorm"
)

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *statisticsRepository {
	return &statisticsRepository{
		db: db,
	}
}

func (r *statisticsRepository) count(model any, query string, args ...any) (int64, error) {
	var count int64
	q := r.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountGroups() (int64, error) {
	return r.count(&models.Group{}, "")
}

func (r *statisticsRepository) CountActiveApplications() (int64, error) {
	return r.count(&models.Application{}, "status = ?", models.ApplicationStatusActive)
}

func (r *statisticsRepository) CountFeatures() (int64, error) {
	return r.count(&models.Feature{}, "")
}

func (r *statisticsRepository) CountTestCases() (int64, error) {
	return r.count(&models.TestCase{}, "")
}

func (r *statisticsRepository) CountTestRequests(status *models.TestRequestStatus) (int64, error) {
	if status != nil {
		return r.count(&models.TestRequest{}, "status = ?", *status)
	}
	return r.count(&models.TestRequest{}, "")
}

func (r *statisticsRepository) CountPipelinesSince(since time.Time) (int64, error) {
	return r.count(&models.GitlabPipeline{}, "executed_at >= ?", since)
}

func (r *statisticsRepository) groupBy(query *gorm.DB, column string) ([]dtos.StatusCount, error) {
	var rows []statusRow
	err := query.Select(column + " AS status, COUNT(*) AS count").Group(column).Order(column + " ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toStatusCounts(rows), nil
}

var testCaseGroupColumns = map[string]struct{}{
	"status":   {},
	"type":     {},
	"priority": {},
}

func (r *statisticsRepository) TestCasesGroupedBy(column string, filter dtos.TestCaseFilter) ([]dtos.StatusCount, error) {
	if _, ok := testCaseGroupColumns[column]; !ok {
		return nil, fmt.Errorf("cannot group test cases by %q", column)
	}
	return r.groupBy(applyTestCaseFilter(r.db.Model(&models.TestCase{}), filter), column)
}

func (r *statisticsRepository) TestRequestsByStatus(applicationID *string) ([]dtos.StatusCount, error) {
	query := r.db.Model(&models.TestRequest{})
	if applicationID != nil {
		query = query.Where("application_id = ?", *applicationID)
	}
	return r.groupBy(query, "status")
}

func (r *statisticsRepository) FeaturesByStatus(applicationID string) ([]dtos.StatusCount, error) {
	return r.groupBy(r.db.Model(&models.Feature{}).Where("application_id = ?", applicationID), "status")
}

func (r *statisticsRepository) PipelinesByStatusSince(since time.Time) ([]dtos.StatusCount, error) {
	return r.groupBy(r.db.Model(&models.GitlabPipeline{}).Where("executed_at >= ?", since), "status")
}

func (r *statisticsRepository) ResultsByStatusSince(since time.Time) ([]dtos.StatusCount, error) {
	return r.groupBy(r.db.Model(&models.TestCasePipelineResult{}).Where("created_at >= ?", since), "status")
}

func (r *statisticsRepository) RecentTestCases(limit int) ([]models.TestCase, error) {
	var testCases []models.TestCase
	err := r.db.Preload("Feature").Preload("Feature.Application").
		Order("updated_at DESC").
		Limit(limit).
		Find(&testCases).Error
	return testCases, err
}

func (r *statisticsRepository) RecentTestRequests(limit int) ([]models.TestRequest, error) {
	var reqs []models.TestRequest
	err := r.db.Preload("Application").Preload("Requester").
		Order("updated_at DESC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

func (r *statisticsRepository) RecentPipelines(limit int, since *time.Time) ([]models.GitlabPipeline, error) {
	query := r.db.Model(&models.GitlabPipeline{})
	if since != nil {
		query = query.Where("executed_at >= ?", *since)
	}
	var pipelines []models.GitlabPipeline
	err := query.Order("executed_at DESC").Limit(limit).Find(&pipelines).Error
	return pipelines, err
}
