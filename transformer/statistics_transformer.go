package transformer

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/utils"
)

func StatusCountsToTypeCounts(counts []dtos.StatusCount) []dtos.TypeCount {
	return utils.Map(counts, func(c dtos.StatusCount) dtos.TypeCount {
		return dtos.TypeCount{Type: c.Status, Count: c.Count}
	})
}

func StatusCountsToPriorityCounts(counts []dtos.StatusCount) []dtos.PriorityCount {
	return utils.Map(counts, func(c dtos.StatusCount) dtos.PriorityCount {
		return dtos.PriorityCount{Priority: c.Status, Count: c.Count}
	})
}

func TestCaseModelToActivityDTO(tc models.TestCase) dtos.ActivityTestCaseDTO {
	dto := dtos.ActivityTestCaseDTO{
		ID:        tc.ID,
		Name:      tc.Name,
		Status:    tc.Status,
		UpdatedAt: tc.UpdatedAt,
	}
	if tc.Feature.ID != "" {
		dto.Feature = utils.Ptr(FeatureModelToRefDTO(tc.Feature))
	}
	return dto
}

func TestRequestModelToActivityDTO(req models.TestRequest) dtos.ActivityRequestDTO {
	dto := dtos.ActivityRequestDTO{
		ID:        req.ID,
		Title:     req.Title,
		Status:    req.Status,
		UpdatedAt: req.UpdatedAt,
	}
	if req.Application.ID != "" {
		dto.Application = utils.Ptr(ApplicationModelToRefDTO(req.Application))
	}
	if req.Requester.ID != "" {
		dto.Requester = utils.Ptr(UserModelToRefDTO(req.Requester))
	}
	return dto
}
