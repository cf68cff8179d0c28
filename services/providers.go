package services

import (
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/storage"
	"go.uber.org/fx"
)

// Module provides all service-layer constructors
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewAuthService, fx.As(new(shared.AuthService)))),
	fx.Provide(fx.Annotate(NewUserService, fx.As(new(shared.UserService)))),
	fx.Provide(fx.Annotate(NewGroupService, fx.As(new(shared.GroupService)))),
	fx.Provide(fx.Annotate(NewApplicationService, fx.As(new(shared.ApplicationService)))),
	fx.Provide(fx.Annotate(NewFeatureService, fx.As(new(shared.FeatureService)))),
	fx.Provide(fx.Annotate(NewTestCaseService, fx.As(new(shared.TestCaseService)))),
	fx.Provide(fx.Annotate(NewTestRequestService, fx.As(new(shared.TestRequestService)))),
	fx.Provide(fx.Annotate(NewPipelineService, fx.As(new(shared.PipelineService)))),
	fx.Provide(fx.Annotate(NewStatisticsService, fx.As(new(shared.StatisticsService)))),
	fx.Provide(fx.Annotate(NewIntegrationService, fx.As(new(shared.IntegrationService)))),
	fx.Provide(fx.Annotate(NewNotificationService, fx.As(new(shared.NotificationService)))),
	fx.Provide(fx.Annotate(NewNotificationDispatcher, fx.As(new(shared.NotificationDispatcher)))),
	fx.Provide(fx.Annotate(NewSMTPMailer, fx.As(new(shared.Mailer)))),
	fx.Provide(fx.Annotate(storage.NewUploadStorage, fx.As(new(shared.FileStorage)))),
	fx.Provide(fx.Annotate(NewUploadService, fx.As(new(shared.UploadService)))),
	fx.Provide(fx.Annotate(NewSeedService, fx.As(new(shared.SeedService)))),
)
