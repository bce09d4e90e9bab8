package bootstrap

import (
	"github.com/memodb-io/assetd/internal/config"
	"github.com/memodb-io/assetd/internal/infra/db"
	"github.com/memodb-io/assetd/internal/infra/logger"
	"github.com/memodb-io/assetd/internal/infra/queue"
	"github.com/memodb-io/assetd/internal/modules/handler"
	"github.com/memodb-io/assetd/internal/modules/model"
	"github.com/memodb-io/assetd/internal/modules/repo"
	"github.com/memodb-io/assetd/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB (only dialed for the postgres backend)
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(&model.Asset{})
		}
		return d, nil
	})

	// MQ publisher; with no broker configured, events are dropped
	do.Provide(inj, func(i *do.Injector) (queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return queue.NewNopPublisher(), nil
		}
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		return queue.NewAMQPPublisher(conn, cfg.RabbitMQ.Exchange, do.MustInvoke[*zap.Logger](i))
	})

	// Repo: storage backend is selected here, per configuration
	do.Provide(inj, func(i *do.Injector) (repo.AssetRepo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Database.Backend == "memory" {
			do.MustInvoke[*zap.Logger](i).Sugar().
				Warn("using ephemeral in-memory asset storage; nothing will survive a restart")
			return repo.NewMemoryAssetRepo(), nil
		}
		return repo.NewAssetRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AssetService, error) {
		return service.NewAssetService(
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[queue.Publisher](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.GCService, error) {
		return service.NewGCService(
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[queue.Publisher](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AssetHandler, error) {
		return handler.NewAssetHandler(
			do.MustInvoke[service.AssetService](i),
			do.MustInvoke[service.GCService](i),
		), nil
	})

	return inj
}
