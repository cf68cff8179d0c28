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

package dtos

import (
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
)

type OverviewDTO struct {
	TotalGroups       int64 `json:"totalGroups"`
	TotalApplications int64 `json:"totalApplications"`
	TotalFeatures     int64 `json:"totalFeatures"`
	TotalTestCases    int64 `json:"totalTestCases"`
	TotalRequests     int64 `json:"totalRequests"`
	PendingRequests   int64 `json:"pendingRequests"`
	RecentPipelines   int64 `json:"recentPipelines"`
}

type DashboardStatsDTO struct {
	Overview          OverviewDTO   `json:"overview"`
	TestCasesByStatus []StatusCount `json:"testCasesByStatus"`
	RequestsByStatus  []StatusCount `json:"requestsByStatus"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type TestCaseStatsDTO struct {
	ByStatus   []StatusCount   `json:"byStatus"`
	ByType     []TypeCount     `json:"byType"`
	ByPriority []PriorityCount `json:"byPriority"`
}

type PipelineStatsDTO struct {
	PipelinesByStatus   []StatusCount `json:"pipelinesByStatus"`
	TestResultsByStatus []StatusCount `json:"testResultsByStatus"`
	RecentPipelines     []PipelineDTO `json:"recentPipelines"`
}

type ActivityTestCaseDTO struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Status    models.TestCaseStatus `json:"status"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Feature   *FeatureRefDTO        `json:"feature,omitempty"`
}

type ActivityRequestDTO struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Status      models.TestRequestStatus `json:"status"`
	UpdatedAt   time.Time                `json:"updatedAt"`
	Application *ApplicationRefDTO       `json:"application,omitempty"`
	Requester   *UserRefDTO              `json:"requester,omitempty"`
}

type ActivityDTO struct {
	TestCases []ActivityTestCaseDTO `json:"testCases"`
	Requests  []ActivityRequestDTO  `json:"requests"`
	Pipelines []PipelineRefDTO      `json:"pipelines"`
}
