package transformer

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/utils"
)

func PipelineModelToDTO(pipeline models.GitlabPipeline, counts dtos.Counts) dtos.PipelineDTO {
	dto := dtos.PipelineDTO{
		ID:               pipeline.ID,
		GitlabProjectID:  pipeline.GitlabProjectID,
		GitlabPipelineID: pipeline.GitlabPipelineID,
		Branch:           pipeline.Branch,
		Status:           pipeline.Status,
		WebURL:           pipeline.WebURL,
		ExecutedAt:       pipeline.ExecutedAt,
		CreatedAt:        pipeline.CreatedAt,
		Count:            counts,
	}
	if pipeline.TestCaseResults != nil {
		dto.TestCaseResults = utils.Map(pipeline.TestCaseResults, PipelineResultModelToDTO)
	}
	return dto
}

func PipelineModelToRefDTO(pipeline models.GitlabPipeline) dtos.PipelineRefDTO {
	return dtos.PipelineRefDTO{
		ID:               pipeline.ID,
		GitlabProjectID:  pipeline.GitlabProjectID,
		GitlabPipelineID: pipeline.GitlabPipelineID,
		Branch:           pipeline.Branch,
		Status:           pipeline.Status,
		WebURL:           pipeline.WebURL,
		ExecutedAt:       pipeline.ExecutedAt,
	}
}

func PipelineResultModelToDTO(result models.TestCasePipelineResult) dtos.PipelineResultDTO {
	dto := dtos.PipelineResultDTO{
		ID:         result.ID,
		Status:     result.Status,
		Details:    result.Details,
		LogURL:     result.LogURL,
		Duration:   result.Duration,
		TestCaseID: result.TestCaseID,
		PipelineID: result.PipelineID,
		CreatedAt:  result.CreatedAt,
	}
	if result.TestCase.ID != "" {
		dto.TestCase = utils.Ptr(TestCaseModelToRefDTO(result.TestCase))
	}
	if result.Pipeline.ID != "" {
		dto.Pipeline = utils.Ptr(PipelineModelToRefDTO(result.Pipeline))
	}
	return dto
}

func SummarizeResults(results []models.TestCasePipelineResult) dtos.PipelineSummaryDTO {
	summary := dtos.PipelineSummaryDTO{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case models.TestResultStatusPassed:
			summary.Passed++
		case models.TestResultStatusFailed:
			summary.Failed++
		case models.TestResultStatusSkipped:
			summary.Skipped++
		case models.TestResultStatusNotExecuted:
			summary.NotExecuted++
		}
	}
	return summary
}
