package controllers

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
)

type GroupController struct {
	groupService           shared.GroupService
	groupRepository        shared.GroupRepository
	applicationRepository  shared.ApplicationRepository
	subscriptionRepository shared.GroupSubscriptionRepository
}

func NewGroupController(groupService shared.GroupService, groupRepository shared.GroupRepository, applicationRepository shared.ApplicationRepository, subscriptionRepository shared.GroupSubscriptionRepository) *GroupController {
	return &GroupController{
		groupService:           groupService,
		groupRepository:        groupRepository,
		applicationRepository:  applicationRepository,
		subscriptionRepository: subscriptionRepository,
	}
}

func (c *GroupController) List(ctx shared.Context) error {
	paged, err := c.groupRepository.ListPaged(shared.GetPageInfo(ctx), shared.GetSearch(ctx))
	if err != nil {
		return shared.NewStorageError(err)
	}

	counts, err := c.groupRepository.Counts(utils.Map(paged.Data, func(g models.Group) string { return g.ID }))
	if err != nil {
		return shared.NewStorageError(err)
	}

	return shared.PagedResponse(ctx, paged.Map(func(group models.Group) any {
		return transformer.GroupModelToDTO(group, counts[group.ID])
	}))
}

func (c *GroupController) Read(ctx shared.Context) error {
	group, err := c.groupRepository.ReadWithDetails(shared.GetParam(ctx, "id"))
	if err != nil {
		return shared.StorageErrorOr(err, "group not found")
	}

	counts, err := c.applicationRepository.Counts(utils.Map(group.Applications, func(a models.Application) string { return a.ID }))
	if err != nil {
		return shared.NewStorageError(err)
	}

	dto := transformer.GroupModelToDTO(group, nil)
	for i := range dto.Applications {
		dto.Applications[i].Count = dtos.Counts{"features": counts[dto.Applications[i].ID]["features"]}
	}
	return shared.OK(ctx, dto)
}

func (c *GroupController) Create(ctx shared.Context) error {
	var req dtos.GroupCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	group, err := c.groupService.Create(req)
	if err != nil {
		return err
	}
	counts, err := countsOf(c.groupRepository.Counts, group.ID)
	if err != nil {
		return err
	}
	return shared.Created(ctx, transformer.GroupModelToDTO(group, counts))
}

func (c *GroupController) Update(ctx shared.Context) error {
	var req dtos.GroupPatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	group, err := c.groupService.Update(shared.GetParam(ctx, "id"), req)
	if err != nil {
		return err
	}
	counts, err := countsOf(c.groupRepository.Counts, group.ID)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.GroupModelToDTO(group, counts))
}

func (c *GroupController) Delete(ctx shared.Context) error {
	if err := c.groupService.Delete(shared.GetParam(ctx, "id")); err != nil {
		return err
	}
	return shared.SuccessMessage(ctx, "group deleted")
}

func (c *GroupController) Subscribers(ctx shared.Context) error {
	id := shared.GetParam(ctx, "id")
	if _, err := c.groupRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "group not found")
	}

	subscriptions, err := c.subscriptionRepository.ListByGroup(id)
	if err != nil {
		return shared.NewStorageError(err)
	}
	return shared.OK(ctx, utils.Map(subscriptions, func(s models.GroupSubscription) dtos.UserDTO {
		return transformer.UserModelToDTO(s.User)
	}))
}
