package controllers

import (
	"go.uber.org/fx"
)

// ControllerModule provides all HTTP controller constructors
var ControllerModule = fx.Options(
	fx.Provide(NewHealthController),
	fx.Provide(NewAuthController),
	fx.Provide(NewUserController),

	// catalog
	fx.Provide(NewGroupController),
	fx.Provide(NewApplicationController),
	fx.Provide(NewFeatureController),
	fx.Provide(NewTestCaseController),

	fx.Provide(NewTestRequestController),
	fx.Provide(NewPipelineController),
	fx.Provide(NewStatisticsController),
	fx.Provide(NewIntegrationController),
	fx.Provide(NewUploadController),
)
