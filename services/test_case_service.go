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

package services

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
)

type testCaseService struct {
	testCaseRepository shared.TestCaseRepository
	featureRepository  shared.FeatureRepository
}

func NewTestCaseService(testCaseRepository shared.TestCaseRepository, featureRepository shared.FeatureRepository) *testCaseService {
	return &testCaseService{
		testCaseRepository: testCaseRepository,
		featureRepository:  featureRepository,
	}
}

func (s *testCaseService) Create(req dtos.TestCaseCreateRequest) (models.TestCase, error) {
	if _, err := s.featureRepository.Read(req.FeatureID); err != nil {
		return models.TestCase{}, shared.StorageErrorOr(err, "feature not found")
	}

	testCase := transformer.TestCaseCreateRequestToModel(req)
	// steps and sub steps are inserted through the association
	testCase.Steps = transformer.StepInputsToModels("", req.Steps)

	if err := s.testCaseRepository.Create(nil, &testCase); err != nil {
		return models.TestCase{}, shared.NewStorageError(err)
	}

	created, err := s.testCaseRepository.ReadWithDetails(testCase.ID)
	if err != nil {
		return models.TestCase{}, shared.NewStorageError(err)
	}
	return created, nil
}

func (s *testCaseService) Update(id string, req dtos.TestCasePatchRequest) (models.TestCase, error) {
	testCase, err := s.testCaseRepository.Read(id)
	if err != nil {
		return models.TestCase{}, shared.StorageErrorOr(err, "test case not found")
	}

	if req.FeatureID != nil && *req.FeatureID != testCase.FeatureID {
		if _, err := s.featureRepository.Read(*req.FeatureID); err != nil {
			return models.TestCase{}, shared.StorageErrorOr(err, "feature not found")
		}
	}

	if transformer.ApplyTestCasePatchRequestToModel(req, &testCase) {
		if err := s.testCaseRepository.Save(nil, &testCase); err != nil {
			return models.TestCase{}, shared.NewStorageError(err)
		}
	}

	updated, err := s.testCaseRepository.ReadWithDetails(testCase.ID)
	if err != nil {
		return models.TestCase{}, shared.NewStorageError(err)
	}
	return updated, nil
}

func (s *testCaseService) Delete(id string) error {
	if err := s.testCaseRepository.Delete(nil, id); err != nil {
		return shared.StorageErrorOr(err, "test case not found")
	}
	return nil
}

// UpdateSteps replaces all steps of the test case in one transaction.
func (s *testCaseService) UpdateSteps(id string, inputs []dtos.StepInput) ([]models.GherkinStep, error) {
	if _, err := s.testCaseRepository.Read(id); err != nil {
		return nil, shared.StorageErrorOr(err, "test case not found")
	}

	steps := transformer.StepInputsToModels(id, inputs)
	err := s.testCaseRepository.Transaction(func(tx shared.DB) error {
		return s.testCaseRepository.ReplaceSteps(tx, id, steps)
	})
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	saved, err := s.testCaseRepository.ListSteps(id)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}
	return saved, nil
}
