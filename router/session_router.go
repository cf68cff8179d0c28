package router

import (
	"github.com/l3montree-dev/dashcase/controllers"
	"github.com/l3montree-dev/dashcase/middlewares"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
)

// SessionRouter holds every route which requires a valid bearer token.
type SessionRouter struct {
	*echo.Group
	adminAccess shared.RBACMiddleware
}

func NewSessionRouter(
	apiV1Router APIV1Router,
	authService shared.AuthService,
	rbac shared.AccessControl,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	integrationController *controllers.IntegrationController,
	uploadController *controllers.UploadController,
) SessionRouter {
	sessionRouter := apiV1Router.Group.Group("", middlewares.SessionMiddleware(authService))
	adminAccess := middlewares.AccessControlFactory(rbac)

	sessionRouter.GET("/auth/me/", authController.Me)
	sessionRouter.POST("/auth/change-password/", authController.ChangePassword)

	userRouter := sessionRouter.Group("/users")
	userRouter.GET("/subscriptions/", userController.Subscriptions)
	userRouter.POST("/subscriptions/:groupId/", userController.Subscribe)
	userRouter.DELETE("/subscriptions/:groupId/", userController.Unsubscribe)
	userRouter.GET("/", userController.List, adminAccess(shared.ObjectUser, shared.ActionRead))
	userRouter.POST("/", userController.Create, adminAccess(shared.ObjectUser, shared.ActionCreate))
	userRouter.GET("/:id/", userController.Read, adminAccess(shared.ObjectUser, shared.ActionRead))
	userRouter.PUT("/:id/", userController.Update, adminAccess(shared.ObjectUser, shared.ActionUpdate))
	userRouter.DELETE("/:id/", userController.Delete, adminAccess(shared.ObjectUser, shared.ActionDelete))

	integrationRouter := sessionRouter.Group("/integrations")
	integrationRouter.GET("/", integrationController.List, adminAccess(shared.ObjectIntegration, shared.ActionRead))
	integrationRouter.GET("/:type/", integrationController.Read, adminAccess(shared.ObjectIntegration, shared.ActionRead))
	integrationRouter.PUT("/:type/", integrationController.Upsert, adminAccess(shared.ObjectIntegration, shared.ActionUpdate))
	integrationRouter.DELETE("/:type/", integrationController.Delete, adminAccess(shared.ObjectIntegration, shared.ActionDelete))

	sessionRouter.GET("/notifications/", integrationController.Notifications, adminAccess(shared.ObjectNotification, shared.ActionRead))

	sessionRouter.POST("/uploads/test-request-images/", uploadController.TestRequestImage)

	return SessionRouter{
		Group:       sessionRouter,
		adminAccess: adminAccess,
	}
}
