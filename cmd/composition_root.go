package cmd

import (
	"log/slog"

	"ferremas/internal/adapters/out/kafka"
	"ferremas/internal/adapters/out/postgres"
	"ferremas/internal/adapters/out/rediscache"
	"ferremas/internal/core/application/usecases/commands"
	"ferremas/internal/core/application/usecases/queries"
	"ferremas/internal/core/domain/services"
	"ferremas/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into application handlers. All handlers
// share the same unit of work factory, message publisher and snapshot cache.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  *kafka.OrderEventPublisher
	cache      *rediscache.OrderSnapshotCache
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher: kafka.NewOrderEventPublisher(
			[]string{config.KafkaHost}, config.KafkaOrderChangedTopic),
		cache: rediscache.NewOrderSnapshotCache(
			config.RedisHost, config.RedisPassword, config.RedisDB),
		logger: logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateExecuteOrderActionCommandHandler() commands.ExecuteOrderActionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewExecuteOrderActionCommandHandler(
		f, services.NewTransitionPolicy(), c.publisher, c.cache, c.logger)
}

func (c *CompositionRoot) CreateResolvePaymentCommandHandler() commands.ResolvePaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolvePaymentCommandHandler(f, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateListOrdersByRoleViewQueryHandler() queries.ListOrdersByRoleViewQueryHandler {
	return queries.NewListOrdersByRoleViewQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateListOrdersByRoleViewQueryHandler(), c.logger)
}

// Close releases the outbound adapter connections.
func (c *CompositionRoot) Close() error {
	if err := c.publisher.Close(); err != nil {
		return err
	}
	return c.cache.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
