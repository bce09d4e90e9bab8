package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/memodb-io/assetd/docs"
	"github.com/memodb-io/assetd/internal/config"
	"github.com/memodb-io/assetd/internal/middleware"
	"github.com/memodb-io/assetd/internal/modules/handler"
	"github.com/memodb-io/assetd/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config       *config.Config
	Log          *zap.Logger
	AssetHandler *handler.AssetHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.APIAuth(d.Config))

		// ping endpoint
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		asset := v1.Group("/asset")
		{
			asset.POST("", d.AssetHandler.AddAsset)
			asset.GET("", d.AssetHandler.ListAssetsByType)
			asset.GET("/scoped", d.AssetHandler.ListAssetsByScopeAndType)
			asset.DELETE("/scoped", d.AssetHandler.DeleteScopedAssets)

			asset.POST("/delete_batch", d.AssetHandler.DeleteAssets)
			asset.POST("/gc", d.AssetHandler.GCAssets)

			asset.GET("/:asset_id", d.AssetHandler.GetAsset)
			asset.PUT("/:asset_id", d.AssetHandler.UpdateAsset)
			asset.PUT("/:asset_id/scope", d.AssetHandler.TransferAssetScope)
			asset.DELETE("/:asset_id", d.AssetHandler.DeleteAsset)
		}
	}
	return r
}
