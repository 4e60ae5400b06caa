package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/auth"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use-case handlers. Handlers are
// cheap value types, so each Create method builds a fresh one.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.AssignmentEventPublisher
	tokens     auth.TokenService
	logger     *slog.Logger
}

// NewCompositionRoot builds the application graph. The publisher may be
// nil when Kafka is not configured; assignment events are then skipped.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher *kafka.AssignmentPublisher,
	logger *slog.Logger,
) CompositionRoot {
	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		tokens:     auth.NewTokenService(config.JWTSecret),
		logger:     logger,
	}
	if publisher != nil {
		root.publisher = publisher
	}

	return root
}

// TokenService returns the JWT service shared by the HTTP layer.
func (c *CompositionRoot) TokenService() auth.TokenService {
	return c.tokens
}

// Logger returns the root logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateRegisterPartnerCommandHandler() commands.RegisterPartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateJoinAsPartnerCommandHandler() commands.JoinAsPartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewJoinAsPartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateReviewPartnerApplicationCommandHandler() commands.ReviewPartnerApplicationCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewPartnerApplicationCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdatePartnerCommandHandler() commands.UpdatePartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateDeletePartnerCommandHandler() commands.DeletePartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeletePartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateFlipShiftStatusCommandHandler() commands.FlipShiftStatusCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFlipShiftStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateComputePartnerDashboardCommandHandler() commands.ComputePartnerDashboardCommandHandler {
	var f commands.DashboardUoWFactory = FuncDashboardUoWFactory(func() commands.DashboardUoW {
		return c.uowFactory.Create()
	})
	return commands.NewComputePartnerDashboardCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateEvaluateMetricsCommandHandler() commands.EvaluateMetricsCommandHandler {
	var f commands.MetricsUoWFactory = FuncMetricsUoWFactory(func() commands.MetricsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEvaluateMetricsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartnerOrdersQueryHandler() queries.GetPartnerOrdersQueryHandler {
	return queries.NewGetPartnerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllPartnersQueryHandler() queries.GetAllPartnersQueryHandler {
	return queries.NewGetAllPartnersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignmentsQueryHandler() queries.GetAssignmentsQueryHandler {
	return queries.NewGetAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignmentMetricsQueryHandler() queries.GetAssignmentMetricsQueryHandler {
	return queries.NewGetAssignmentMetricsQueryHandler(
		c.gormDB, c.uowFactory.Create().AssignmentRepository())
}

func (c *CompositionRoot) CreateGetDashboardSummaryQueryHandler() queries.GetDashboardSummaryQueryHandler {
	return queries.NewGetDashboardSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartnerCredentialsQueryHandler() queries.GetPartnerCredentialsQueryHandler {
	return queries.NewGetPartnerCredentialsQueryHandler(c.gormDB)
}

// FuncPartnerUoWFactory adapts a plain function to commands.PartnerUoWFactory.
type FuncPartnerUoWFactory func() commands.PartnerUoW

// Create invokes the wrapped function.
func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

// FuncOrderUoWFactory adapts a plain function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create invokes the wrapped function.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncAssignmentUoWFactory adapts a plain function to commands.AssignmentUoWFactory.
type FuncAssignmentUoWFactory func() commands.AssignmentUoW

// Create invokes the wrapped function.
func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

// FuncMetricsUoWFactory adapts a plain function to commands.MetricsUoWFactory.
type FuncMetricsUoWFactory func() commands.MetricsUoW

// Create invokes the wrapped function.
func (f FuncMetricsUoWFactory) Create() commands.MetricsUoW {
	return f()
}

// FuncDashboardUoWFactory adapts a plain function to commands.DashboardUoWFactory.
type FuncDashboardUoWFactory func() commands.DashboardUoW

// Create invokes the wrapped function.
func (f FuncDashboardUoWFactory) Create() commands.DashboardUoW {
	return f()
}
