package main

//	@title			assetd API
//	@version		1.0
//	@description	Asset lifecycle and scoped garbage collection service.
//	@schemes		http https
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				API Bearer token (e.g., "Bearer xxxx")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/memodb-io/assetd/internal/bootstrap"
	"github.com/memodb-io/assetd/internal/config"
	"github.com/memodb-io/assetd/internal/infra/queue"
	"github.com/memodb-io/assetd/internal/modules/handler"
	"github.com/memodb-io/assetd/internal/router"
	"github.com/samber/do"
	"go.uber.org/zap"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)

	// init gin
	gin.SetMode(cfg.App.Env)

	assetHandler := do.MustInvoke[*handler.AssetHandler](inj)

	engine := router.NewRouter(router.RouterDeps{
		Config:       cfg,
		Log:          log,
		AssetHandler: assetHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr, "backend", cfg.Database.Backend)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}

	if pub, err := do.Invoke[queue.Publisher](inj); err == nil {
		_ = pub.Close()
	}
	log.Sugar().Info("server exited")
}
