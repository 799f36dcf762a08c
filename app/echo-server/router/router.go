package router

import (
	"dealsHub/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupPublicRoutes(e *echo.Echo, handler *rest.PublicHandler) {
	e.GET("/", handler.Home)
	e.GET("/category/:slug", handler.CategoryPage)
	e.GET("/api/deals", handler.APIDeals)
	e.GET("/add-sample-deals", handler.AddSampleDeals)
	e.GET("/health", handler.Health)
}

func SetupAuthRoutes(e *echo.Echo, handler *rest.AuthHandler, adminOnly echo.MiddlewareFunc) {
	e.GET("/admin/login", handler.LoginForm)
	e.POST("/admin/login", handler.Login)
	e.GET("/admin/logout", handler.Logout)
	e.GET("/admin", handler.Status, adminOnly)
}

func SetupDashboardRoutes(e *echo.Echo, handler *rest.DealHandler, adminOnly echo.MiddlewareFunc) {
	e.GET("/admin/dashboard", handler.Dashboard, adminOnly)
	e.POST("/admin/dashboard", handler.DashboardSubmit, adminOnly)
}

func SetupCategoryRoutes(e *echo.Echo, handler *rest.CategoryHandler, adminOnly echo.MiddlewareFunc) {
	categories := e.Group("/admin/categories", adminOnly)

	categories.GET("", handler.GetAllCategories)
	categories.POST("/add", handler.CreateCategory)
	categories.POST("/edit/:id", handler.UpdateCategory)
	categories.POST("/delete/:id", handler.DeleteCategory)
}

func SetupProductRoutes(e *echo.Echo, handler *rest.DealHandler, adminOnly echo.MiddlewareFunc) {
	products := e.Group("/admin/products", adminOnly)

	products.GET("", handler.GetAllDeals)
	products.POST("/add", handler.CreateDeal)
	products.POST("/edit/:id", handler.UpdateDeal)
	products.POST("/delete/:id", handler.DeleteDeal)
}

func SetupFeaturedRoutes(e *echo.Echo, handler *rest.FeaturedHandler, adminOnly echo.MiddlewareFunc) {
	featured := e.Group("/admin/deals-of-the-day", adminOnly)

	featured.GET("", handler.GetAllFeatured)
	featured.POST("/add", handler.CreateFeatured)
	featured.POST("/delete/:id", handler.DeleteFeatured)
}
