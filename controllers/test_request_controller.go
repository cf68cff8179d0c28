package controllers

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
)

type TestRequestController struct {
	testRequestService    shared.TestRequestService
	testRequestRepository shared.TestRequestRepository
}

func NewTestRequestController(testRequestService shared.TestRequestService, testRequestRepository shared.TestRequestRepository) *TestRequestController {
	return &TestRequestController{
		testRequestService:    testRequestService,
		testRequestRepository: testRequestRepository,
	}
}

func (c *TestRequestController) list(ctx shared.Context, filter dtos.TestRequestFilter) error {
	paged, err := c.testRequestRepository.ListPaged(shared.GetPageInfo(ctx), shared.GetSearch(ctx), filter)
	if err != nil {
		return shared.NewStorageError(err)
	}
	return shared.PagedResponse(ctx, paged.Map(func(req models.TestRequest) any {
		return transformer.TestRequestModelToDTO(req)
	}))
}

func (c *TestRequestController) List(ctx shared.Context) error {
	status, err := enumQuery[models.TestRequestStatus](ctx, "status")
	if err != nil {
		return err
	}
	return c.list(ctx, dtos.TestRequestFilter{
		ApplicationID: shared.GetOptionalQuery(ctx, "applicationId"),
		Status:        status,
		RequesterID:   shared.GetOptionalQuery(ctx, "requesterId"),
	})
}

func (c *TestRequestController) My(ctx shared.Context) error {
	status, err := enumQuery[models.TestRequestStatus](ctx, "status")
	if err != nil {
		return err
	}
	userID := shared.GetSession(ctx).ID
	return c.list(ctx, dtos.TestRequestFilter{
		Status:      status,
		RequesterID: &userID,
	})
}

func (c *TestRequestController) Read(ctx shared.Context) error {
	request, err := c.testRequestRepository.ReadWithDetails(shared.GetParam(ctx, "id"))
	if err != nil {
		return shared.StorageErrorOr(err, "test request not found")
	}

	dto := transformer.TestRequestModelToDTO(request)
	if dto.GeneratedTestCase != nil {
		counts, err := c.testRequestRepository.StepCounts([]string{dto.GeneratedTestCase.ID})
		if err != nil {
			return shared.NewStorageError(err)
		}
		dto.GeneratedTestCase.Count = dtos.Counts{"steps": counts[dto.GeneratedTestCase.ID]}
	}
	return shared.OK(ctx, dto)
}

func (c *TestRequestController) Create(ctx shared.Context) error {
	var req dtos.TestRequestCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	request, err := c.testRequestService.Create(ctx.Request().Context(), shared.GetSession(ctx), req)
	if err != nil {
		return err
	}
	return shared.Created(ctx, transformer.TestRequestModelToDTO(request))
}

func (c *TestRequestController) Update(ctx shared.Context) error {
	var req dtos.TestRequestPatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	request, err := c.testRequestService.Update(shared.GetParam(ctx, "id"), req)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.TestRequestModelToDTO(request))
}

func (c *TestRequestController) UpdateStatus(ctx shared.Context) error {
	var req dtos.TestRequestStatusRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	request, err := c.testRequestService.UpdateStatus(ctx.Request().Context(), shared.GetParam(ctx, "id"), req)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.TestRequestModelToDTO(request))
}

func (c *TestRequestController) Delete(ctx shared.Context) error {
	if err := c.testRequestService.Delete(shared.GetParam(ctx, "id")); err != nil {
		return err
	}
	return shared.SuccessMessage(ctx, "test request deleted")
}
