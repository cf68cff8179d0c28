// Copyright (C) 2025 timbastin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package repositories

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pipelineRepository struct {
	db *gorm.DB
	*GormRepository[string, models.GitlabPipeline]
}

func NewPipelineRepository(db *gorm.DB) *pipelineRepository {
	return &pipelineRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.GitlabPipeline](db),
	}
}

func (r *pipelineRepository) FindByProjectAndPipeline(tx *gorm.DB, gitlabProjectID, gitlabPipelineID string) (models.GitlabPipeline, error) {
	var pipeline models.GitlabPipeline
	err := r.GetDB(tx).Where("gitlab_project_id = ? AND gitlab_pipeline_id = ?", gitlabProjectID, gitlabPipelineID).First(&pipeline).Error
	return pipeline, err
}

func (r *pipelineRepository) CreateIfAbsent(tx *gorm.DB, pipeline *models.GitlabPipeline) error {
	return r.GetDB(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gitlab_project_id"}, {Name: "gitlab_pipeline_id"}},
		DoNothing: true,
	}).Create(pipeline).Error
}

func (r *pipelineRepository) UpsertResult(tx *gorm.DB, result *models.TestCasePipelineResult, updateColumns []string) error {
	return r.GetDB(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "test_case_id"}, {Name: "pipeline_id"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(result).Error
}

func (r *pipelineRepository) HasFailedResults(tx *gorm.DB, pipelineID string) (bool, error) {
	var count int64
	err := r.GetDB(tx).Model(&models.TestCasePipelineResult{}).
		Where("pipeline_id = ? AND status = ?", pipelineID, models.TestResultStatusFailed).
		Count(&count).Error
	return count > 0, err
}

func (r *pipelineRepository) ReadWithResults(id string) (models.GitlabPipeline, error) {
	var pipeline models.GitlabPipeline
	err := r.db.Preload("TestCaseResults", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).
		Preload("TestCaseResults.TestCase").
		Preload("TestCaseResults.TestCase.Feature").
		Preload("TestCaseResults.TestCase.Feature.Application").
		First(&pipeline, "id = ?", id).Error
	return pipeline, err
}

func (r *pipelineRepository) ListResults(pipelineID string) ([]models.TestCasePipelineResult, error) {
	var results []models.TestCasePipelineResult
	err := r.db.Preload("TestCase").Preload("TestCase.Feature").
		Where("pipeline_id = ?", pipelineID).
		Order("created_at ASC").
		Find(&results).Error
	return results, err
}

func (r *pipelineRepository) ListPaged(pageInfo shared.PageInfo, filter dtos.PipelineFilter) (shared.Paged[models.GitlabPipeline], error) {
	query := r.db.Model(&models.GitlabPipeline{})
	if filter.GitlabProjectID != nil {
		query = query.Where("gitlab_project_id = ?", *filter.GitlabProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Branch != nil {
		query = query.Where("LOWER(branch) LIKE ?", likePattern(*filter.Branch))
	}

	return paginate[models.GitlabPipeline](query, pageInfo, "executed_at DESC")
}

func (r *pipelineRepository) Counts(pipelineIDs []string) (map[string]dtos.Counts, error) {
	return collectCounts(r.db, pipelineIDs,
		relationCount{key: "testCaseResults", model: &models.TestCasePipelineResult{}, column: "pipeline_id"},
	)
}

func (r *pipelineRepository) LatestResults(testCaseIDs []string) (map[string]models.TestCasePipelineResult, error) {
	res := make(map[string]models.TestCasePipelineResult, len(testCaseIDs))
	if len(testCaseIDs) == 0 {
		return res, nil
	}

	newest := r.db.Model(&models.TestCasePipelineResult{}).
		Select("test_case_id, MAX(created_at)").
		Where("test_case_id IN ?", testCaseIDs).
		Group("test_case_id")

	var results []models.TestCasePipelineResult
	err := r.db.Preload("Pipeline").
		Where("(test_case_id, created_at) IN (?)", newest).
		Order("created_at DESC").Order("id DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	// two results of one test case may share the timestamp, the first one wins
	for _, result := range results {
		if _, ok := res[result.TestCaseID]; !ok {
			res[result.TestCaseID] = result
		}
	}
	return res, nil
}

func (r *pipelineRepository) ListResultsByTestCase(testCaseID string, limit int) ([]models.TestCasePipelineResult, error) {
	var results []models.TestCasePipelineResult
	err := r.db.Preload("Pipeline").
		Where("test_case_id = ?", testCaseID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
