package controllers

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
)

const recentUserRequests = 10

type UserController struct {
	userService            shared.UserService
	userRepository         shared.UserRepository
	subscriptionRepository shared.GroupSubscriptionRepository
	testRequestRepository  shared.TestRequestRepository
}

func NewUserController(userService shared.UserService, userRepository shared.UserRepository, subscriptionRepository shared.GroupSubscriptionRepository, testRequestRepository shared.TestRequestRepository) *UserController {
	return &UserController{
		userService:            userService,
		userRepository:         userRepository,
		subscriptionRepository: subscriptionRepository,
		testRequestRepository:  testRequestRepository,
	}
}

func (c *UserController) List(ctx shared.Context) error {
	role, err := enumQuery[models.UserRole](ctx, "role")
	if err != nil {
		return err
	}
	status, err := enumQuery[models.UserStatus](ctx, "status")
	if err != nil {
		return err
	}

	paged, err := c.userRepository.ListPaged(shared.GetPageInfo(ctx), shared.GetSearch(ctx), dtos.UserFilter{Role: role, Status: status})
	if err != nil {
		return shared.NewStorageError(err)
	}
	return shared.PagedResponse(ctx, paged.Map(func(user models.User) any {
		return transformer.UserModelToDTO(user)
	}))
}

func (c *UserController) Read(ctx shared.Context) error {
	id := shared.GetParam(ctx, "id")
	user, err := c.userRepository.ReadWithSubscriptions(id)
	if err != nil {
		return shared.StorageErrorOr(err, "user not found")
	}
	requests, err := c.testRequestRepository.ListRecentByRequester(id, recentUserRequests)
	if err != nil {
		return shared.NewStorageError(err)
	}

	dto := transformer.UserModelToDTO(user)
	dto.TestRequests = utils.Map(requests, transformer.TestRequestModelToRefDTO)
	return shared.OK(ctx, dto)
}

func (c *UserController) Create(ctx shared.Context) error {
	var req dtos.UserCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	user, err := c.userService.Create(req)
	if err != nil {
		return err
	}
	return shared.Created(ctx, transformer.UserModelToDTO(user))
}

func (c *UserController) Update(ctx shared.Context) error {
	var req dtos.UserPatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	user, err := c.userService.Update(shared.GetParam(ctx, "id"), req)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.UserModelToDTO(user))
}

func (c *UserController) Delete(ctx shared.Context) error {
	if err := c.userService.Delete(shared.GetParam(ctx, "id")); err != nil {
		return err
	}
	return shared.SuccessMessage(ctx, "user deleted")
}

func (c *UserController) Subscriptions(ctx shared.Context) error {
	subscriptions, err := c.subscriptionRepository.ListByUser(shared.GetSession(ctx).ID)
	if err != nil {
		return shared.NewStorageError(err)
	}
	return shared.OK(ctx, utils.Map(subscriptions, transformer.SubscriptionModelToDTO))
}

func (c *UserController) Subscribe(ctx shared.Context) error {
	subscription, err := c.userService.Subscribe(shared.GetSession(ctx).ID, shared.GetParam(ctx, "groupId"))
	if err != nil {
		return err
	}
	return shared.Created(ctx, transformer.SubscriptionModelToDTO(subscription))
}

func (c *UserController) Unsubscribe(ctx shared.Context) error {
	if err := c.userService.Unsubscribe(shared.GetSession(ctx).ID, shared.GetParam(ctx, "groupId")); err != nil {
		return err
	}
	return shared.SuccessMessage(ctx, "unsubscribed")
}
