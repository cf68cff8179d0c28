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

package transformer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/utils"
	"gorm.io/datatypes"
)

func rawToJSON(raw json.RawMessage) datatypes.JSON {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return datatypes.JSON(trimmed)
}

func jsonToRaw(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 {
		return nil
	}
	return json.RawMessage(j)
}

func TestRequestModelToDTO(req models.TestRequest) dtos.TestRequestDTO {
	authUsers := []string(req.AuthUsers)
	if authUsers == nil {
		authUsers = []string{}
	}
	dto := dtos.TestRequestDTO{
		ID:                  req.ID,
		Title:               req.Title,
		Description:         req.Description,
		Status:              req.Status,
		Type:                req.Type,
		Environment:         req.Environment,
		HasAuth:             req.HasAuth,
		AuthType:            req.AuthType,
		AuthUsers:           authUsers,
		FrontPlan:           jsonToRaw(req.FrontPlan),
		APIPlan:             jsonToRaw(req.APIPlan),
		ApplicationID:       req.ApplicationID,
		RequesterID:         req.RequesterID,
		AssigneeID:          req.AssigneeID,
		AzureWorkItemID:     req.AzureWorkItemID,
		AzureWorkItemURL:    req.AzureWorkItemURL,
		AdditionalNotes:     req.AdditionalNotes,
		GeneratedTestCaseID: req.GeneratedTestCaseID,
		CreatedAt:           req.CreatedAt,
		UpdatedAt:           req.UpdatedAt,
	}
	if req.Application.ID != "" {
		dto.Application = utils.Ptr(ApplicationModelToRefDTO(req.Application))
	}
	if req.Requester.ID != "" {
		dto.Requester = utils.Ptr(UserModelToRefDTO(req.Requester))
	}
	if req.Assignee != nil && req.Assignee.ID != "" {
		dto.Assignee = utils.Ptr(UserModelToRefDTO(*req.Assignee))
	}
	if req.GeneratedTestCase != nil && req.GeneratedTestCase.ID != "" {
		dto.GeneratedTestCase = utils.Ptr(TestCaseModelToRefDTO(*req.GeneratedTestCase))
	}
	return dto
}

func TestRequestModelToRefDTO(req models.TestRequest) dtos.TestRequestRefDTO {
	dto := dtos.TestRequestRefDTO{
		ID:        req.ID,
		Title:     req.Title,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	}
	if req.Application.ID != "" {
		dto.Application = &dtos.ApplicationRefDTO{ID: req.Application.ID, Name: req.Application.Name}
	}
	return dto
}

func TestRequestCreateRequestToModel(req dtos.TestRequestCreateRequest, requesterID string) models.TestRequest {
	requestType := req.Type
	if requestType == "" {
		requestType = models.TestRequestTypeFront
	}
	authUsers := req.AuthUsers
	if authUsers == nil {
		authUsers = []string{}
	}
	return models.TestRequest{
		Title:            req.Title,
		Description:      req.Description,
		Status:           models.TestRequestStatusNew,
		Type:             requestType,
		Environment:      req.Environment,
		HasAuth:          req.HasAuth,
		AuthType:         req.AuthType,
		AuthUsers:        datatypes.JSONSlice[string](authUsers),
		FrontPlan:        rawToJSON(req.FrontPlan),
		APIPlan:          rawToJSON(req.APIPlan),
		ApplicationID:    req.ApplicationID,
		RequesterID:      requesterID,
		AzureWorkItemID:  req.AzureWorkItemID,
		AzureWorkItemURL: req.AzureWorkItemURL,
		AdditionalNotes:  req.AdditionalNotes,
	}
}

// ApplyTestRequestPatchRequestToModel ignores an empty title or description.
// An empty assignee or generated test case id clears the reference.
func ApplyTestRequestPatchRequestToModel(req dtos.TestRequestPatchRequest, model *models.TestRequest) bool {
	updated := false
	if req.Title != nil && *req.Title != "" {
		model.Title = *req.Title
		updated = true
	}
	if req.Description != nil && *req.Description != "" {
		model.Description = *req.Description
		updated = true
	}
	if req.Status != nil {
		model.Status = *req.Status
		updated = true
	}
	if req.Type != nil {
		model.Type = *req.Type
		updated = true
	}
	if req.Environment != nil {
		model.Environment = utils.EmptyThenNil(*req.Environment)
		updated = true
	}
	if req.HasAuth != nil {
		model.HasAuth = *req.HasAuth
		updated = true
	}
	if req.AuthType != nil {
		model.AuthType = utils.EmptyThenNil(*req.AuthType)
		updated = true
	}
	if req.AuthUsers != nil {
		users := *req.AuthUsers
		if users == nil {
			users = []string{}
		}
		model.AuthUsers = datatypes.JSONSlice[string](users)
		updated = true
	}
	if len(req.FrontPlan) > 0 {
		model.FrontPlan = rawToJSON(req.FrontPlan)
		updated = true
	}
	if len(req.APIPlan) > 0 {
		model.APIPlan = rawToJSON(req.APIPlan)
		updated = true
	}
	if req.AssigneeID != nil {
		model.AssigneeID = utils.EmptyThenNil(*req.AssigneeID)
		model.Assignee = nil
		updated = true
	}
	if req.AzureWorkItemID != nil {
		model.AzureWorkItemID = utils.EmptyThenNil(*req.AzureWorkItemID)
		updated = true
	}
	if req.AzureWorkItemURL != nil {
		model.AzureWorkItemURL = utils.EmptyThenNil(*req.AzureWorkItemURL)
		updated = true
	}
	if req.AdditionalNotes != nil {
		model.AdditionalNotes = utils.EmptyThenNil(*req.AdditionalNotes)
		updated = true
	}
	if req.GeneratedTestCaseID != nil {
		model.GeneratedTestCaseID = utils.EmptyThenNil(*req.GeneratedTestCaseID)
		model.GeneratedTestCase = nil
		updated = true
	}
	return updated
}

// AppendNote adds a timestamped entry to the additional notes, separated by a blank line.
func AppendNote(existing *string, note string, at time.Time) *string {
	entry := fmt.Sprintf("[%s] %s", at.UTC().Format(time.RFC3339), note)
	if existing == nil || *existing == "" {
		return &entry
	}
	combined := *existing + "\n\n" + entry
	return &combined
}
