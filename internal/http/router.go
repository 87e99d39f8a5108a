package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iyhunko/antique-store-api/internal/config"
	"github.com/iyhunko/antique-store-api/internal/http/controller"
	"github.com/iyhunko/antique-store-api/internal/http/middleware"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/iyhunko/antique-store-api/docs"
)

// InitRouter registers middleware and routes on server.
func InitRouter(conf *config.Config, server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController) *gin.Engine {
	server.Use(middleware.Logger())
	server.Use(middleware.Recovery())
	server.Use(middleware.CORS(conf.CORS.AllowedOrigins...))

	server.GET("/ping", ctr.Ping)
	server.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	products := server.Group("/api/v1/products")
	{
		products.GET("", productCtr.ListProducts)
		products.POST("", productCtr.CreateProduct)
		products.DELETE("", productCtr.DeleteProductByName)
		products.GET("/:id", productCtr.GetProduct)
		products.PUT("/:id", productCtr.UpdateProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	return server
}
