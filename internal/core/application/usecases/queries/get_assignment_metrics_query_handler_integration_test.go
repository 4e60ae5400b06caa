package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/metricsrepo"
	"dispatch/internal/adapters/out/postgres/partnerrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for repositories used outside a
// unit of work.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// GetAssignmentMetricsQueryHandlerTestSuite verifies the metrics view
// against a real PostgreSQL database: the stored document, the recent
// successful matches, and the partner availability breakdown.
type GetAssignmentMetricsQueryHandlerTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	handler     queries.GetAssignmentMetricsQueryHandler
	partnerRepo *partnerrepo.GormPartnerRepository
	ledger      *assignmentrepo.GormAssignmentRepository
	metricsRepo *metricsrepo.GormMetricsRepository
}

func (suite *GetAssignmentMetricsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&partnerrepo.PartnerDTO{},
		&assignmentrepo.AssignmentDTO{},
		&metricsrepo.MetricsDTO{},
	)
	suite.Require().NoError(err)

	suite.partnerRepo = partnerrepo.NewGormPartnerRepository(db, &mockAggregateTracker{})
	suite.ledger = assignmentrepo.NewGormAssignmentRepository(db, &mockAggregateTracker{})
	suite.metricsRepo = metricsrepo.NewGormMetricsRepository(db)
	suite.handler = queries.NewGetAssignmentMetricsQueryHandler(db, suite.ledger)
}

func (suite *GetAssignmentMetricsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE partners, assignments, assignment_metrics").Error
	suite.Require().NoError(err)
}

func (suite *GetAssignmentMetricsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetAssignmentMetricsQueryHandlerTestSuite) createTestPartner(
	name string, status partner.Status, load int,
) *partner.Partner {
	shift, err := partner.ParseShiftSlot("09:00 - 21:00")
	suite.Require().NoError(err)

	p, err := partner.RestorePartner(
		kernel.NewUUID(),
		name,
		fmt.Sprintf("%s@example.com", name),
		"hash",
		partner.RolePartner,
		"+15550100",
		status,
		load,
		[]string{"Downtown"},
		shift,
		partner.Metrics{Rating: 4.5},
	)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.partnerRepo.Add(context.Background(), p))
	return p
}

func (suite *GetAssignmentMetricsQueryHandlerTestSuite) TestHandle_ReturnsStoredDocument() {
	ctx := context.Background()

	err := suite.metricsRepo.Replace(ctx, assignment.Metrics{
		TotalAssigned:      8,
		SuccessRate:        0.75,
		AverageTimeSeconds: 1800,
		FailureReasons: []assignment.FailureReason{
			{Reason: assignment.ReasonPartnerNotAvailable, Count: 2},
		},
	})
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, queries.NewGetAssignmentMetricsQuery())
	suite.Require().NoError(err)

	suite.Equal(8, response.Metrics.TotalAssigned)
	suite.InDelta(0.75, response.Metrics.SuccessRate, 1e-9)
	suite.InDelta(1800, response.Metrics.AverageTimeSeconds, 1e-9)
	suite.Require().Len(response.Metrics.FailureReasons, 1)
	suite.Equal(assignment.ReasonPartnerNotAvailable, response.Metrics.FailureReasons[0].Reason)
	suite.False(response.EvaluatedAt.IsZero())
}

// The active-assignments slice carries only successful matches of the last
// 24 hours: failures and older successes stay out.
func (suite *GetAssignmentMetricsQueryHandlerTestSuite) TestHandle_ActiveAssignmentsLast24h() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	partnerID := kernel.NewUUID()

	recentSuccess, err := assignment.NewSuccessfulAssignment(kernel.NewUUID(), orderID, partnerID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.Add(ctx, recentSuccess))

	recentFailure, err := assignment.NewFailedAssignment(
		kernel.NewUUID(), kernel.NewUUID(), assignment.ReasonPartnerNotAvailable)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.Add(ctx, recentFailure))

	oldSuccess, err := assignment.RestoreAssignment(
		kernel.NewUUID(), kernel.NewUUID(), &partnerID,
		time.Now().UTC().Add(-48*time.Hour), assignment.StatusSuccess, "",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.Add(ctx, oldSuccess))

	response, err := suite.handler.Handle(ctx, queries.NewGetAssignmentMetricsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(response.ActiveAssignments, 1)
	suite.True(response.ActiveAssignments[0].ID().IsEqual(recentSuccess.ID()))
	suite.True(response.ActiveAssignments[0].IsSuccess())
}

func (suite *GetAssignmentMetricsQueryHandlerTestSuite) TestHandle_PartnerBreakdown() {
	ctx := context.Background()

	suite.createTestPartner("available", partner.Active, 1)
	suite.createTestPartner("busy", partner.Active, 3)
	suite.createTestPartner("offline", partner.Inactive, 0)
	suite.createTestPartner("applicant", partner.Pending, 0)

	response, err := suite.handler.Handle(ctx, queries.NewGetAssignmentMetricsQuery())
	suite.Require().NoError(err)

	suite.Equal(2, response.ActivePartners)
	suite.Equal(1, response.AvailablePartners)
	suite.Equal(1, response.BusyPartners)
	suite.Equal(1, response.OfflinePartners)
}

func (suite *GetAssignmentMetricsQueryHandlerTestSuite) TestHandle_EmptyDatabase() {
	ctx := context.Background()

	response, err := suite.handler.Handle(ctx, queries.NewGetAssignmentMetricsQuery())
	suite.Require().NoError(err)

	suite.Equal(0, response.Metrics.TotalAssigned)
	suite.True(response.EvaluatedAt.IsZero())
	suite.Empty(response.ActiveAssignments)
	suite.Equal(0, response.ActivePartners)
	suite.Equal(0, response.OfflinePartners)
}

func TestGetAssignmentMetricsQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetAssignmentMetricsQueryHandlerTestSuite))
}
