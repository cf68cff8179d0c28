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

package gitlabint

import (
	"context"
	"fmt"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/utils"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

type gitlabClient struct {
	*gitlab.Client
}

var _ shared.GitlabClientFacade = gitlabClient{}

func (client gitlabClient) ListProjectPipelines(ctx context.Context, projectID string, limit int) ([]shared.GitlabPipelineInfo, error) {
	pipelines, _, err := client.Pipelines.ListProjectPipelines(projectID, &gitlab.ListProjectPipelinesOptions{
		ListOptions: gitlab.ListOptions{PerPage: limit, Page: 1},
		OrderBy:     utils.Ptr("id"),
		Sort:        utils.Ptr("desc"),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("could not list pipelines of project %s: %w", projectID, err)
	}

	result := make([]shared.GitlabPipelineInfo, 0, len(pipelines))
	for _, p := range pipelines {
		if p == nil {
			continue
		}
		result = append(result, pipelineInfoToShared(p))
	}
	return result, nil
}

func pipelineInfoToShared(p *gitlab.PipelineInfo) shared.GitlabPipelineInfo {
	info := shared.GitlabPipelineInfo{
		ID:     fmt.Sprintf("%d", p.ID),
		Ref:    p.Ref,
		Status: ConvertPipelineStatus(p.Status),
		WebURL: p.WebURL,
	}
	if p.CreatedAt != nil {
		info.CreatedAt = *p.CreatedAt
	}
	return info
}

// ConvertPipelineStatus maps a gitlab pipeline state onto the dashboard pipeline status.
// Every state gitlab reports before the pipeline starts is treated as pending.
func ConvertPipelineStatus(state string) models.PipelineStatus {
	switch state {
	case "success":
		return models.PipelineStatusPassed
	case "failed":
		return models.PipelineStatusFailed
	case "canceled", "canceling":
		return models.PipelineStatusCanceled
	case "skipped":
		return models.PipelineStatusSkipped
	case "running":
		return models.PipelineStatusRunning
	default:
		return models.PipelineStatusPending
	}
}
