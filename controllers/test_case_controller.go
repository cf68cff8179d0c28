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

package controllers

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
)

const recentTestCaseResults = 10

type TestCaseController struct {
	testCaseService    shared.TestCaseService
	testCaseRepository shared.TestCaseRepository
	pipelineRepository shared.PipelineRepository
}

func NewTestCaseController(testCaseService shared.TestCaseService, testCaseRepository shared.TestCaseRepository, pipelineRepository shared.PipelineRepository) *TestCaseController {
	return &TestCaseController{
		testCaseService:    testCaseService,
		testCaseRepository: testCaseRepository,
		pipelineRepository: pipelineRepository,
	}
}

func (c *TestCaseController) List(ctx shared.Context) error {
	status, err := enumQuery[models.TestCaseStatus](ctx, "status")
	if err != nil {
		return err
	}
	testCaseType, err := enumQuery[models.TestCaseType](ctx, "type")
	if err != nil {
		return err
	}
	priority, err := enumQuery[models.TestCasePriority](ctx, "priority")
	if err != nil {
		return err
	}

	paged, err := c.testCaseRepository.ListPaged(shared.GetPageInfo(ctx), shared.GetSearch(ctx), dtos.TestCaseFilter{
		FeatureID:     shared.GetOptionalQuery(ctx, "featureId"),
		ApplicationID: shared.GetOptionalQuery(ctx, "applicationId"),
		Status:        status,
		Type:          testCaseType,
		Priority:      priority,
	})
	if err != nil {
		return shared.NewStorageError(err)
	}

	data, err := testCasesWithLatestResult(paged.Data, c.testCaseRepository, c.pipelineRepository)
	if err != nil {
		return err
	}
	return shared.PagedResponse(ctx, shared.NewPaged(paged.PageInfo, paged.Total, data))
}

func (c *TestCaseController) Read(ctx shared.Context) error {
	id := shared.GetParam(ctx, "id")
	testCase, err := c.testCaseRepository.ReadWithDetails(id)
	if err != nil {
		return shared.StorageErrorOr(err, "test case not found")
	}

	results, err := c.pipelineRepository.ListResultsByTestCase(id, recentTestCaseResults)
	if err != nil {
		return shared.NewStorageError(err)
	}
	testCase.PipelineResults = results

	return shared.OK(ctx, transformer.TestCaseModelToDTO(testCase, nil))
}

func (c *TestCaseController) Create(ctx shared.Context) error {
	var req dtos.TestCaseCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	testCase, err := c.testCaseService.Create(req)
	if err != nil {
		return err
	}
	counts, err := countsOf(c.testCaseRepository.Counts, testCase.ID)
	if err != nil {
		return err
	}
	return shared.Created(ctx, transformer.TestCaseModelToDTO(testCase, counts))
}

func (c *TestCaseController) Update(ctx shared.Context) error {
	var req dtos.TestCasePatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	testCase, err := c.testCaseService.Update(shared.GetParam(ctx, "id"), req)
	if err != nil {
		return err
	}
	counts, err := countsOf(c.testCaseRepository.Counts, testCase.ID)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.TestCaseModelToDTO(testCase, counts))
}

func (c *TestCaseController) Delete(ctx shared.Context) error {
	if err := c.testCaseService.Delete(shared.GetParam(ctx, "id")); err != nil {
		return err
	}
	return shared.SuccessMessage(ctx, "test case deleted")
}

func (c *TestCaseController) Steps(ctx shared.Context) error {
	id := shared.GetParam(ctx, "id")
	if _, err := c.testCaseRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "test case not found")
	}

	steps, err := c.testCaseRepository.ListSteps(id)
	if err != nil {
		return shared.NewStorageError(err)
	}
	return shared.OK(ctx, transformer.StepsModelToDTO(steps))
}

func (c *TestCaseController) UpdateSteps(ctx shared.Context) error {
	var req dtos.UpdateStepsRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	steps, err := c.testCaseService.UpdateSteps(shared.GetParam(ctx, "id"), req.Steps)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.StepsModelToDTO(steps))
}

func (c *TestCaseController) Results(ctx shared.Context) error {
	id := shared.GetParam(ctx, "id")
	if _, err := c.testCaseRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "test case not found")
	}

	limit := shared.GetBoundedInt(ctx, "limit", recentTestCaseResults, 1, shared.MaxPageSize)
	results, err := c.pipelineRepository.ListResultsByTestCase(id, limit)
	if err != nil {
		return shared.NewStorageError(err)
	}
	return shared.OK(ctx, utils.Map(results, transformer.PipelineResultModelToDTO))
}
