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

type PipelineController struct {
	pipelineService    shared.PipelineService
	pipelineRepository shared.PipelineRepository
}

func NewPipelineController(pipelineService shared.PipelineService, pipelineRepository shared.PipelineRepository) *PipelineController {
	return &PipelineController{
		pipelineService:    pipelineService,
		pipelineRepository: pipelineRepository,
	}
}

func (c *PipelineController) List(ctx shared.Context) error {
	status, err := enumQuery[models.PipelineStatus](ctx, "status")
	if err != nil {
		return err
	}

	paged, err := c.pipelineRepository.ListPaged(shared.GetPageInfo(ctx), dtos.PipelineFilter{
		GitlabProjectID: shared.GetOptionalQuery(ctx, "gitlabProjectId"),
		Status:          status,
		Branch:          shared.GetOptionalQuery(ctx, "branch"),
	})
	if err != nil {
		return shared.NewStorageError(err)
	}

	counts, err := c.pipelineRepository.Counts(utils.Map(paged.Data, func(p models.GitlabPipeline) string { return p.ID }))
	if err != nil {
		return shared.NewStorageError(err)
	}

	return shared.PagedResponse(ctx, paged.Map(func(pipeline models.GitlabPipeline) any {
		return transformer.PipelineModelToDTO(pipeline, counts[pipeline.ID])
	}))
}

func (c *PipelineController) Read(ctx shared.Context) error {
	pipeline, err := c.pipelineRepository.ReadWithResults(shared.GetParam(ctx, "id"))
	if err != nil {
		return shared.StorageErrorOr(err, "pipeline not found")
	}
	return shared.OK(ctx, transformer.PipelineModelToDTO(pipeline, nil))
}

func (c *PipelineController) Results(ctx shared.Context) error {
	id := shared.GetParam(ctx, "id")
	if _, err := c.pipelineRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "pipeline not found")
	}

	results, err := c.pipelineRepository.ListResults(id)
	if err != nil {
		return shared.NewStorageError(err)
	}
	return shared.OK(ctx, dtos.PipelineResultsDTO{
		Results: utils.Map(results, transformer.PipelineResultModelToDTO),
		Summary: transformer.SummarizeResults(results),
	})
}

// Register is called by the ci with the results of a pipeline run
func (c *PipelineController) Register(ctx shared.Context) error {
	var req dtos.RegisterPipelineRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	pipeline, err := c.pipelineService.RegisterResults(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.PipelineModelToDTO(pipeline, nil))
}

func (c *PipelineController) Sync(ctx shared.Context) error {
	projectID := shared.GetOptionalQuery(ctx, "projectId")
	if projectID == nil {
		return shared.NewValidationError("projectId is required", nil)
	}

	synced, err := c.pipelineService.SyncProject(ctx.Request().Context(), *projectID)
	if err != nil {
		return err
	}
	return shared.OK(ctx, dtos.SyncPipelinesResponse{ProjectID: *projectID, Synced: synced})
}
