package router

import (
	"github.com/Sandeep-S-M/FarmConn/internal/middleware"
	"github.com/Sandeep-S-M/FarmConn/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.GET("/email-verification/:code", handler.VerifyEmail)

	users.POST("/logout", handler.Logout, authRequired)
	users.POST("/refresh", handler.RefreshToken, authRequired)
	users.PUT("/profile", handler.UpdateProfile, authRequired)
	users.GET("/profiles/:username", handler.GetProfile, authRequired)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc) {
	products := api.Group("/products")

	// marketplace browsing is public
	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)

	products.GET("/mine", handler.GetMyProducts, authRequired, middleware.NurseryOnly())
	products.POST("", handler.CreateProduct, authRequired, middleware.NurseryOnly())
	products.PUT("/:id", handler.UpdateProduct, authRequired, middleware.NurseryOnly())
}

func SetupOrderRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.POST("", handler.PlaceOrder)
	orders.GET("/mine", handler.ListMine)
	orders.GET("/incoming", handler.ListIncoming, middleware.NurseryOnly())
	orders.GET("/:id", handler.GetOrderByID)
	orders.PUT("/:id/decision", handler.DecideOrder, middleware.NurseryOnly())
}

func SetupMessageRoutes(api *echo.Group, handler *rest.MessagesHandler, authRequired echo.MiddlewareFunc) {
	messages := api.Group("/messages", authRequired)

	messages.POST("", handler.Send)
	messages.GET("", handler.List)
}

func SetupForumRoutes(api *echo.Group, handler *rest.PostsHandler, authRequired echo.MiddlewareFunc) {
	forum := api.Group("/forum")

	forum.GET("/posts", handler.List)
	forum.POST("/posts", handler.Create, authRequired)
}

func SetupSearchRoutes(api *echo.Group, handler *rest.SearchHandler) {
	api.GET("/search", handler.Search)
}
