package router

import (
	"github.com/l3montree-dev/dashcase/controllers"
	"github.com/labstack/echo/v4"
)

type TestRequestRouter struct {
	*echo.Group
}

func NewTestRequestRouter(sessionRouter SessionRouter, testRequestController *controllers.TestRequestController) TestRequestRouter {
	testRequestRouter := sessionRouter.Group.Group("/test-requests")
	testRequestRouter.GET("/", testRequestController.List)
	testRequestRouter.GET("/my/", testRequestController.My)
	testRequestRouter.POST("/", testRequestController.Create)
	testRequestRouter.GET("/:id/", testRequestController.Read)
	testRequestRouter.PUT("/:id/", testRequestController.Update)
	testRequestRouter.PATCH("/:id/status/", testRequestController.UpdateStatus)
	testRequestRouter.DELETE("/:id/", testRequestController.Delete)

	return TestRequestRouter{
		Group: testRequestRouter,
	}
}
