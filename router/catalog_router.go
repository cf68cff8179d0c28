package router

import (
	"github.com/l3montree-dev/dashcase/controllers"
	"github.com/labstack/echo/v4"
)

// CatalogRouter registers the group, application, feature and test case hierarchy.
type CatalogRouter struct {
	*echo.Group
}

func NewCatalogRouter(
	sessionRouter SessionRouter,
	groupController *controllers.GroupController,
	applicationController *controllers.ApplicationController,
	featureController *controllers.FeatureController,
	testCaseController *controllers.TestCaseController,
) CatalogRouter {
	groupRouter := sessionRouter.Group.Group("/groups")
	groupRouter.GET("/", groupController.List)
	groupRouter.POST("/", groupController.Create)
	groupRouter.GET("/:id/", groupController.Read)
	groupRouter.PUT("/:id/", groupController.Update)
	groupRouter.DELETE("/:id/", groupController.Delete)
	groupRouter.GET("/:id/subscribers/", groupController.Subscribers)

	applicationRouter := sessionRouter.Group.Group("/applications")
	applicationRouter.GET("/", applicationController.List)
	applicationRouter.POST("/", applicationController.Create)
	applicationRouter.GET("/:id/", applicationController.Read)
	applicationRouter.PUT("/:id/", applicationController.Update)
	applicationRouter.DELETE("/:id/", applicationController.Delete)
	applicationRouter.GET("/:id/features/", applicationController.Features)
	applicationRouter.GET("/:id/stats/", applicationController.Stats)

	featureRouter := sessionRouter.Group.Group("/features")
	featureRouter.GET("/", featureController.List)
	featureRouter.POST("/", featureController.Create)
	featureRouter.GET("/:id/", featureController.Read)
	featureRouter.PUT("/:id/", featureController.Update)
	featureRouter.DELETE("/:id/", featureController.Delete)
	featureRouter.GET("/:id/test-cases/", featureController.TestCases)

	testCaseRouter := sessionRouter.Group.Group("/test-cases")
	testCaseRouter.GET("/", testCaseController.List)
	testCaseRouter.POST("/", testCaseController.Create)
	testCaseRouter.GET("/:id/", testCaseController.Read)
	testCaseRouter.PUT("/:id/", testCaseController.Update)
	testCaseRouter.DELETE("/:id/", testCaseController.Delete)
	testCaseRouter.GET("/:id/steps/", testCaseController.Steps)
	testCaseRouter.PUT("/:id/steps/", testCaseController.UpdateSteps)
	testCaseRouter.GET("/:id/results/", testCaseController.Results)

	return CatalogRouter{
		Group: sessionRouter.Group,
	}
}
