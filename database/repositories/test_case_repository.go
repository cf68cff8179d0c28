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
)

type testCaseRepository struct {
	db *gorm.DB
	*GormRepository[string, models.TestCase]
}

func NewTestCaseRepository(db *gorm.DB) *testCaseRepository {
	return &testCaseRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.TestCase](db),
	}
}

func preloadFeatureChain(db *gorm.DB) *gorm.DB {
	return db.Preload("Feature").Preload("Feature.Application").Preload("Feature.Application.Group")
}

func preloadOrderedSteps(db *gorm.DB) *gorm.DB {
	return db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC").Order("created_at ASC")
	}).Preload("Steps.SubSteps", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC").Order("created_at ASC")
	})
}

func (r *testCaseRepository) ReadWithDetails(id string) (models.TestCase, error) {
	var testCase models.TestCase
	err := r.db.Scopes(preloadFeatureChain, preloadOrderedSteps).First(&testCase, "id = ?", id).Error
	return testCase, err
}

func (r *testCaseRepository) ReadWithFeature(id string) (models.TestCase, error) {
	var testCase models.TestCase
	err := r.db.Scopes(preloadFeatureChain).First(&testCase, "id = ?", id).Error
	return testCase, err
}

func (r *testCaseRepository) FindByID(tx *gorm.DB, id string) (models.TestCase, error) {
	var testCase models.TestCase
	err := r.GetDB(tx).First(&testCase, "id = ?", id).Error
	return testCase, err
}

func (r *testCaseRepository) FindByScenarioName(tx *gorm.DB, scenarioName string) (models.TestCase, error) {
	var testCase models.TestCase
	err := r.GetDB(tx).Where("LOWER(scenario_name) = LOWER(?)", scenarioName).Order("created_at ASC").First(&testCase).Error
	return testCase, err
}

func applyTestCaseFilter(query *gorm.DB, filter dtos.TestCaseFilter) *gorm.DB {
	if filter.FeatureID != nil {
		query = query.Where("feature_id = ?", *filter.FeatureID)
	}
	if filter.ApplicationID != nil {
		query = query.Where("feature_id IN (SELECT id FROM features WHERE application_id = ?)", *filter.ApplicationID)
	}
	if filter.GroupID != nil {
		query = query.Where("feature_id IN (SELECT features.id FROM features JOIN applications ON applications.id = features.application_id WHERE applications.group_id = ?)", *filter.GroupID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	return query
}

func (r *testCaseRepository) ListPaged(pageInfo shared.PageInfo, search string, filter dtos.TestCaseFilter) (shared.Paged[models.TestCase], error) {
	query := applyTestCaseFilter(r.db.Model(&models.TestCase{}), filter)
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ? OR LOWER(COALESCE(scenario_name, '')) LIKE ?", pattern, pattern, pattern)
	}

	return paginate[models.TestCase](query, pageInfo, "updated_at DESC", preloadFeatureChain)
}

func (r *testCaseRepository) ListByFeature(featureID string, status *models.TestCaseStatus, testCaseType *models.TestCaseType) ([]models.TestCase, error) {
	query := r.db.Where("feature_id = ?", featureID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if testCaseType != nil {
		query = query.Where("type = ?", *testCaseType)
	}
	var testCases []models.TestCase
	err := query.Order("name ASC").Find(&testCases).Error
	return testCases, err
}

func (r *testCaseRepository) Counts(testCaseIDs []string) (map[string]dtos.Counts, error) {
	return collectCounts(r.db, testCaseIDs,
		relationCount{key: "steps", model: &models.GherkinStep{}, column: "test_case_id"},
		relationCount{key: "pipelineResults", model: &models.TestCasePipelineResult{}, column: "test_case_id"},
	)
}

func (r *testCaseRepository) ListSteps(testCaseID string) ([]models.GherkinStep, error) {
	var steps []models.GherkinStep
	err := r.db.Preload("SubSteps", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC").Order("created_at ASC")
	}).Where("test_case_id = ?", testCaseID).Order("sort_order ASC").Order("created_at ASC").Find(&steps).Error
	return steps, err
}

func (r *testCaseRepository) ReplaceSteps(tx *gorm.DB, testCaseID string, steps []models.GherkinStep) error {
	db := r.GetDB(tx)
	if err := db.Where("step_id IN (?)", db.Model(&models.GherkinStep{}).Select("id").Where("test_case_id = ?", testCaseID)).Delete(&models.GherkinSubStep{}).Error; err != nil {
		return err
	}
	if err := db.Where("test_case_id = ?", testCaseID).Delete(&models.GherkinStep{}).Error; err != nil {
		return err
	}
	if len(steps) == 0 {
		return nil
	}
	for i := range steps {
		steps[i].TestCaseID = testCaseID
	}
	// sub steps are inserted through the association
	return db.Create(&steps).Error
}
