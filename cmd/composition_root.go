package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/eventlog"
	"logistics/internal/adapters/out/kafka"
	"logistics/internal/adapters/out/memory"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/security"
	"logistics/internal/core/application/access"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"
	"logistics/internal/telemetry"
)

// CompositionRoot owns the adapters and builds every handler from them.
type CompositionRoot struct {
	cfg     Config
	logger  *slog.Logger
	metrics *telemetry.OperationMetrics

	uowFactory ports.UnitOfWorkFactory
	reader     queries.OrderReader
	hasher     *security.BcryptHasher
	tokens     *security.JWTTokens
	publisher  ports.EventPublisher

	closers []func() error
}

// NewCompositionRoot opens the configured store and event publisher. Close releases them.
func NewCompositionRoot(
	ctx context.Context,
	cfg Config,
	metrics *telemetry.OperationMetrics,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	root := &CompositionRoot{cfg: cfg, logger: logger, metrics: metrics}

	var err error
	if root.hasher, err = security.NewBcryptHasher(cfg.BcryptCost); err != nil {
		return nil, err
	}
	if root.tokens, err = security.NewJWTTokens(cfg.JWTSecret, security.WithTTL(cfg.JWTTTL)); err != nil {
		return nil, err
	}

	if err = root.openStorage(ctx); err != nil {
		return nil, err
	}

	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		producer, err := kafka.NewProducer(brokers, cfg.KafkaOrderChangedTopic)
		if err != nil {
			_ = root.Close()
			return nil, err
		}
		root.publisher = producer
		root.closers = append(root.closers, producer.Close)
	} else {
		logger.Warn("KAFKA_HOST is not set, order events go to the log")
		root.publisher = eventlog.NewPublisher(logger)
	}

	return root, nil
}

func (c *CompositionRoot) openStorage(ctx context.Context) error {
	switch c.cfg.Storage {
	case StorageMemory:
		c.logger.Warn("using in-memory storage, state is lost on exit")
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.reader = memory.NewOrderReader(store)
		return nil

	case StoragePostgres:
		dsn := postgres.DSN(c.cfg.DBHost, c.cfg.DBPort, c.cfg.DBUser, c.cfg.DBPassword, c.cfg.DBName, c.cfg.DBSslMode)
		db, err := postgres.Open(ctx, dsn)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		c.closers = append(c.closers, sqlDB.Close)
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		c.reader = orderrepo.NewGormOrderReader(db)
		return nil

	default:
		return fmt.Errorf("unknown storage %q", c.cfg.Storage)
	}
}

// Close releases the adapters in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) commandOptions() []commands.HandlerOption {
	return []commands.HandlerOption{commands.WithStoreTimeout(c.cfg.StoreTimeout)}
}

func (c *CompositionRoot) queryOptions() []queries.HandlerOption {
	return []queries.HandlerOption{queries.WithStoreTimeout(c.cfg.StoreTimeout)}
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) assignmentUoWs() commands.AssignmentUoWFactory {
	return commands.AssignmentUoWFactoryFunc(func() commands.AssignmentUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) riderUoWs() commands.RiderUoWFactory {
	return commands.RiderUoWFactoryFunc(func() commands.RiderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) accountUoWs() commands.AccountUoWFactory {
	return commands.AccountUoWFactoryFunc(func() commands.AccountUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) outboxUoWs() commands.OutboxUoWFactory {
	return commands.OutboxUoWFactoryFunc(func() commands.OutboxUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWs(), c.commandOptions()...)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWs(), c.commandOptions()...)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.assignmentUoWs(), c.commandOptions()...)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.assignmentUoWs(), c.commandOptions()...)
}

func (c *CompositionRoot) CreateSetRiderAvailabilityCommandHandler() commands.SetRiderAvailabilityCommandHandler {
	return commands.NewSetRiderAvailabilityCommandHandler(c.riderUoWs(), c.commandOptions()...)
}

func (c *CompositionRoot) CreateReconcileRidersCommandHandler() commands.ReconcileRidersCommandHandler {
	return commands.NewReconcileRidersCommandHandler(c.assignmentUoWs(), c.commandOptions()...)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWs(), c.publisher, c.commandOptions()...)
}

func (c *CompositionRoot) CreateRegisterCustomerCommandHandler() commands.RegisterCustomerCommandHandler {
	return commands.NewRegisterCustomerCommandHandler(c.accountUoWs(), c.hasher, c.commandOptions()...)
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	return commands.NewRegisterRiderCommandHandler(c.accountUoWs(), c.hasher, c.commandOptions()...)
}

func (c *CompositionRoot) CreateRegisterThirdPartyCommandHandler() commands.RegisterThirdPartyCommandHandler {
	return commands.NewRegisterThirdPartyCommandHandler(c.accountUoWs(), c.hasher, c.commandOptions()...)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.accountUoWs(), c.hasher, c.tokens, c.commandOptions()...)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader, c.queryOptions()...)
}

func (c *CompositionRoot) CreateCountOrdersQueryHandler() queries.CountOrdersQueryHandler {
	return queries.NewCountOrdersQueryHandler(c.reader, c.queryOptions()...)
}

func (c *CompositionRoot) CreateGetCompanyOrderQueryHandler() queries.GetCompanyOrderQueryHandler {
	return queries.NewGetCompanyOrderQueryHandler(c.reader, c.queryOptions()...)
}

func (c *CompositionRoot) CreateGate() *access.Gate {
	return access.NewGate(access.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		AcceptOrder:          c.CreateAcceptOrderCommandHandler(),
		UpdateOrderStatus:    c.CreateUpdateOrderStatusCommandHandler(),
		CancelOrder:          c.CreateCancelOrderCommandHandler(),
		SetRiderAvailability: c.CreateSetRiderAvailabilityCommandHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		CountOrders:          c.CreateCountOrdersQueryHandler(),
		GetCompanyOrder:      c.CreateGetCompanyOrderQueryHandler(),
	})
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(c.CreateGate(), httpadapter.Accounts{
		RegisterCustomer:   c.CreateRegisterCustomerCommandHandler(),
		RegisterRider:      c.CreateRegisterRiderCommandHandler(),
		RegisterThirdParty: c.CreateRegisterThirdPartyCommandHandler(),
		Login:              c.CreateLoginCommandHandler(),
	})
}

// TokenVerifier checks the bearer tokens this root issues.
func (c *CompositionRoot) TokenVerifier() ports.TokenVerifier {
	return c.tokens
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOutboxRelayJob(
			c.CreateRelayOutboxCommandHandler(), c.metrics, c.cfg.OutboxRelaySchedule, commands.DefaultRelayBatchSize, c.logger,
		),
		jobs.NewRiderReconciliationJob(
			c.CreateReconcileRidersCommandHandler(), c.metrics, c.cfg.RiderReconcileSchedule, c.logger,
		),
	)
}
