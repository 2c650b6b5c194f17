package cmd

import (
	"log/slog"

	httpadapter "cleanmatex/internal/adapters/in/http"
	"cleanmatex/internal/adapters/out/kafka"
	"cleanmatex/internal/adapters/out/postgres"
	"cleanmatex/internal/adapters/out/postgres/pricingrepo"
	"cleanmatex/internal/adapters/out/postgres/settingsrepo"
	"cleanmatex/internal/adapters/out/postgres/taskrepo"
	redisadapter "cleanmatex/internal/adapters/out/redis"
	"cleanmatex/internal/core/application/events"
	"cleanmatex/internal/core/application/usecases/commands"
	"cleanmatex/internal/core/application/usecases/queries"
	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	settings   ports.TenantSettingsProvider
	pricing    ports.PricingProvider
	tax        ports.TaxProvider
	taxCache   ports.TaxRateCache
	tasks      ports.AssemblyTaskService
	publisher  *kafka.OrderEventPublisher
	dispatcher *events.Dispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, redisClient *goredis.Client, logger *slog.Logger) CompositionRoot {
	tasks := taskrepo.NewGormAssemblyTaskService(gormDB)
	publisher := kafka.NewOrderEventPublisher([]string{configs.KafkaHost}, configs.KafkaOrderChangedTopic)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		settings:   settingsrepo.NewGormTenantSettingsProvider(gormDB),
		pricing:    pricingrepo.NewGormPricingProvider(gormDB),
		tax:        pricingrepo.NewGormTaxProvider(gormDB),
		taxCache:   redisadapter.NewTaxRateCache(redisClient, 0),
		tasks:      tasks,
		publisher:  publisher,
		dispatcher: events.NewDispatcher(logger, events.NewAssemblyTaskHook(tasks), events.NewPublishHook(publisher)),
		logger:     logger,
	}
}

// Close releases resources held by outbound adapters.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.settings, c.pricing, c.tax, c.taxCache)
}

func (c *CompositionRoot) CreateChangeStatusCommandHandler() commands.ChangeStatusCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeStatusCommandHandler(f, c.settings, c.tasks, c.dispatcher)
}

func (c *CompositionRoot) CreateBulkChangeStatusCommandHandler() commands.BulkChangeStatusCommandHandler {
	return commands.NewBulkChangeStatusCommandHandler(c.CreateChangeStatusCommandHandler())
}

func (c *CompositionRoot) CreateUpdatePieceCommandHandler() commands.UpdatePieceCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePieceCommandHandler(f, c.settings)
}

func (c *CompositionRoot) CreateBatchUpdatePiecesCommandHandler() commands.BatchUpdatePiecesCommandHandler {
	return commands.NewBatchUpdatePiecesCommandHandler(c.CreateUpdatePieceCommandHandler())
}

func (c *CompositionRoot) CreateDeletePieceCommandHandler() commands.DeletePieceCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeletePieceCommandHandler(f, c.settings)
}

func (c *CompositionRoot) CreateSyncQuantityReadyCommandHandler() commands.SyncQuantityReadyCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncQuantityReadyCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkItemCompleteCommandHandler() commands.MarkItemCompleteCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkItemCompleteCommandHandler(f, c.settings, c.tasks, c.dispatcher)
}

func (c *CompositionRoot) CreateSplitOrderByPiecesCommandHandler() commands.SplitOrderByPiecesCommandHandler {
	var f commands.SplitUoWFactory = FuncSplitUoWFactory(func() commands.SplitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSplitOrderByPiecesCommandHandler(f)
}

func (c *CompositionRoot) CreateSplitOrderItemsCommandHandler() commands.SplitOrderItemsCommandHandler {
	var f commands.SplitUoWFactory = FuncSplitUoWFactory(func() commands.SplitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSplitOrderItemsCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateIssueCommandHandler() commands.CreateIssueCommandHandler {
	var f commands.IssueUoWFactory = FuncIssueUoWFactory(func() commands.IssueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateIssueCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveIssueCommandHandler() commands.ResolveIssueCommandHandler {
	var f commands.IssueUoWFactory = FuncIssueUoWFactory(func() commands.IssueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveIssueCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderStateQueryHandler() queries.GetOrderStateQueryHandler {
	// A unit of work that never begins a transaction reads on the base
	// connection.
	uow := c.uowFactory.Create()
	return queries.NewGetOrderStateQueryHandler(
		uow.OrderRepository(),
		uow.IssueRepository(),
		uow.TransitionValidator(),
		c.settings,
		c.tasks,
	)
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() queries.GetOverdueOrdersQueryHandler {
	return queries.NewGetOverdueOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	uow := c.uowFactory.Create()
	return jobs.NewJobManager(uow.OrderRepository(), c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.ServerParams{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		ChangeStatus:     c.CreateChangeStatusCommandHandler(),
		BulkChangeStatus: c.CreateBulkChangeStatusCommandHandler(),
		SplitByPieces:    c.CreateSplitOrderByPiecesCommandHandler(),
		SplitItems:       c.CreateSplitOrderItemsCommandHandler(),
		UpdatePiece:      c.CreateUpdatePieceCommandHandler(),
		BatchUpdate:      c.CreateBatchUpdatePiecesCommandHandler(),
		DeletePiece:      c.CreateDeletePieceCommandHandler(),
		SyncReady:        c.CreateSyncQuantityReadyCommandHandler(),
		MarkItemComplete: c.CreateMarkItemCompleteCommandHandler(),
		CreateIssue:      c.CreateCreateIssueCommandHandler(),
		ResolveIssue:     c.CreateResolveIssueCommandHandler(),
		GetOrderState:    c.CreateGetOrderStateQueryHandler(),
		GetOverdueOrders: c.CreateGetOverdueOrdersQueryHandler(),
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncSplitUoWFactory func() commands.SplitUoW

func (f FuncSplitUoWFactory) Create() commands.SplitUoW {
	return f()
}

type FuncIssueUoWFactory func() commands.IssueUoW

func (f FuncIssueUoWFactory) Create() commands.IssueUoW {
	return f()
}
