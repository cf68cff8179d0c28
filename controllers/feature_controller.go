package controllers

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
)

type FeatureController struct {
	featureService     shared.FeatureService
	featureRepository  shared.FeatureRepository
	testCaseRepository shared.TestCaseRepository
	pipelineRepository shared.PipelineRepository
}

func NewFeatureController(featureService shared.FeatureService, featureRepository shared.FeatureRepository, testCaseRepository shared.TestCaseRepository, pipelineRepository shared.PipelineRepository) *FeatureController {
	return &FeatureController{
		featureService:     featureService,
		featureRepository:  featureRepository,
		testCaseRepository: testCaseRepository,
		pipelineRepository: pipelineRepository,
	}
}

func (c *FeatureController) List(ctx shared.Context) error {
	status, err := enumQuery[models.FeatureStatus](ctx, "status")
	if err != nil {
		return err
	}

	paged, err := c.featureRepository.ListPaged(shared.GetPageInfo(ctx), shared.GetSearch(ctx), dtos.FeatureFilter{
		ApplicationID: shared.GetOptionalQuery(ctx, "applicationId"),
		Status:        status,
	})
	if err != nil {
		return shared.NewStorageError(err)
	}

	counts, err := c.featureRepository.Counts(utils.Map(paged.Data, func(f models.Feature) string { return f.ID }))
	if err != nil {
		return shared.NewStorageError(err)
	}

	return shared.PagedResponse(ctx, paged.Map(func(feature models.Feature) any {
		return transformer.FeatureModelToDTO(feature, counts[feature.ID])
	}))
}

func (c *FeatureController) Read(ctx shared.Context) error {
	feature, err := c.featureRepository.ReadWithTestCases(shared.GetParam(ctx, "id"))
	if err != nil {
		return shared.StorageErrorOr(err, "feature not found")
	}

	counts, err := c.testCaseRepository.Counts(utils.Map(feature.TestCases, func(tc models.TestCase) string { return tc.ID }))
	if err != nil {
		return shared.NewStorageError(err)
	}

	dto := transformer.FeatureModelToDTO(feature, nil)
	for i := range dto.TestCases {
		dto.TestCases[i].Count = counts[dto.TestCases[i].ID]
	}
	return shared.OK(ctx, dto)
}

func (c *FeatureController) Create(ctx shared.Context) error {
	var req dtos.FeatureCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	feature, err := c.featureService.Create(req)
	if err != nil {
		return err
	}
	counts, err := countsOf(c.featureRepository.Counts, feature.ID)
	if err != nil {
		return err
	}
	return shared.Created(ctx, transformer.FeatureModelToDTO(feature, counts))
}

func (c *FeatureController) Update(ctx shared.Context) error {
	var req dtos.FeaturePatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	feature, err := c.featureService.Update(shared.GetParam(ctx, "id"), req)
	if err != nil {
		return err
	}
	counts, err := countsOf(c.featureRepository.Counts, feature.ID)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.FeatureModelToDTO(feature, counts))
}

func (c *FeatureController) Delete(ctx shared.Context) error {
	if err := c.featureService.Delete(shared.GetParam(ctx, "id")); err != nil {
		return err
	}
	return shared.SuccessMessage(ctx, "feature deleted")
}

// TestCases lists the test cases of the feature, each with its latest pipeline result
func (c *FeatureController) TestCases(ctx shared.Context) error {
	id := shared.GetParam(ctx, "id")
	status, err := enumQuery[models.TestCaseStatus](ctx, "status")
	if err != nil {
		return err
	}
	testCaseType, err := enumQuery[models.TestCaseType](ctx, "type")
	if err != nil {
		return err
	}
	if _, err := c.featureRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "feature not found")
	}

	testCases, err := c.testCaseRepository.ListByFeature(id, status, testCaseType)
	if err != nil {
		return shared.NewStorageError(err)
	}

	dtoList, err := testCasesWithLatestResult(testCases, c.testCaseRepository, c.pipelineRepository)
	if err != nil {
		return err
	}
	return shared.OK(ctx, dtoList)
}

func testCasesWithLatestResult(testCases []models.TestCase, testCaseRepository shared.TestCaseRepository, pipelineRepository shared.PipelineRepository) ([]dtos.TestCaseDTO, error) {
	ids := utils.Map(testCases, func(tc models.TestCase) string { return tc.ID })
	counts, err := testCaseRepository.Counts(ids)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}
	latest, err := pipelineRepository.LatestResults(ids)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	return utils.Map(testCases, func(tc models.TestCase) dtos.TestCaseDTO {
		tc.PipelineResults = []models.TestCasePipelineResult{}
		if result, ok := latest[tc.ID]; ok {
			tc.PipelineResults = append(tc.PipelineResults, result)
		}
		return transformer.TestCaseModelToDTO(tc, counts[tc.ID])
	}), nil
}
