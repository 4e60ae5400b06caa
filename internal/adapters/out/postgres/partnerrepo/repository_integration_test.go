package partnerrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/partnerrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// PartnerRepositoryIntegrationTestSuite verifies partner persistence and the
// eligibility query against a real PostgreSQL container.
type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *partnerrepo.GormPartnerRepository
	tracker    *MockAggregateTracker
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&partnerrepo.PartnerDTO{}))
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE partners").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = partnerrepo.NewGormPartnerRepository(suite.db, suite.tracker)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// createTestPartner restores an approved partner with explicit status, load,
// area, and shift slot, and stores it through the repository.
func (suite *PartnerRepositoryIntegrationTestSuite) createTestPartner(
	name string, status partner.Status, load int, area string, slot string,
) *partner.Partner {
	shift, err := partner.ParseShiftSlot(slot)
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
		[]string{area},
		shift,
		partner.Metrics{Rating: 4.5},
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", p.ID(), p).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
	return p
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	stored := suite.createTestPartner("alice", partner.Active, 2, "Downtown", "09:00 - 21:00")

	loaded, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(stored))
	suite.Equal("alice", loaded.Name())
	suite.Equal(partner.Active, loaded.Status())
	suite.Equal(2, loaded.CurrentLoad())
	suite.Equal([]string{"Downtown"}, loaded.Areas())
	suite.Equal("09:00 - 21:00", loaded.Shift().String())
	suite.InDelta(4.5, loaded.PartnerMetrics().Rating, 1e-9)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetByEmail() {
	ctx := context.Background()
	suite.createTestPartner("bob", partner.Inactive, 0, "Midtown", "06:00 - 14:00")

	loaded, err := suite.repository.GetByEmail(ctx, "bob@example.com")
	suite.Require().NoError(err)
	suite.Equal("bob", loaded.Name())

	_, err = suite.repository.GetByEmail(ctx, "nobody@example.com")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_PersistsChanges() {
	ctx := context.Background()
	p := suite.createTestPartner("carol", partner.Inactive, 0, "Downtown", "09:00 - 21:00")

	suite.Require().NoError(p.ClockIn())
	suite.Require().NoError(p.TakeOrder())

	suite.tracker.On("TrackAggregate", p.ID(), p).Once()
	suite.Require().NoError(suite.repository.Update(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(partner.Active, loaded.Status())
	suite.Equal(1, loaded.CurrentLoad())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestDelete_RemovesPartner() {
	ctx := context.Background()
	p := suite.createTestPartner("dave", partner.Active, 0, "Downtown", "09:00 - 21:00")

	suite.Require().NoError(suite.repository.Delete(ctx, p.ID()))

	_, err := suite.repository.Get(ctx, p.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetAllSchedulable() {
	ctx := context.Background()
	suite.createTestPartner("active", partner.Active, 0, "Downtown", "09:00 - 21:00")
	suite.createTestPartner("resting", partner.Inactive, 0, "Downtown", "09:00 - 21:00")
	suite.createTestPartner("applicant", partner.Pending, 0, "Downtown", "09:00 - 21:00")
	suite.createTestPartner("fresh", partner.New, 0, "Downtown", "09:00 - 21:00")

	schedulable, err := suite.repository.GetAllSchedulable(ctx)
	suite.Require().NoError(err)

	suite.Len(schedulable, 2)
	for _, p := range schedulable {
		suite.True(p.Status().IsSchedulable())
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetEligible_FiltersCandidates() {
	ctx := context.Background()

	eligible := suite.createTestPartner("eligible", partner.Active, 1, "Downtown", "09:00 - 21:00")
	offShiftButApproved := suite.createTestPartner("resting", partner.Inactive, 0, "Downtown", "09:00 - 21:00")
	suite.createTestPartner("atcapacity", partner.Active, 3, "Downtown", "09:00 - 21:00")
	suite.createTestPartner("wrongarea", partner.Active, 0, "Harbor", "09:00 - 21:00")
	suite.createTestPartner("offhours", partner.Active, 0, "Downtown", "14:00 - 22:00")
	suite.createTestPartner("unapproved", partner.Pending, 0, "Downtown", "09:00 - 21:00")

	probe, err := kernel.NewTimeOfDay("12:00")
	suite.Require().NoError(err)

	candidates, err := suite.repository.GetEligible(ctx, "Downtown", probe)
	suite.Require().NoError(err)

	suite.Len(candidates, 2)
	ids := map[string]bool{}
	for _, c := range candidates {
		ids[c.ID().String()] = true
	}
	suite.True(ids[eligible.ID().String()])
	suite.True(ids[offShiftButApproved.ID().String()])
}

// The shift comparison runs on "HH:mm" strings, so a window wrapping past
// midnight has end < start and matches no probe, even one inside the
// partner's actual working hours.
func (suite *PartnerRepositoryIntegrationTestSuite) TestGetEligible_MidnightWrapShiftMatchesNothing() {
	ctx := context.Background()
	suite.createTestPartner("nightowl", partner.Active, 0, "Downtown", "20:00 - 04:00")

	for _, probeValue := range []string{"22:00", "02:00", "20:00"} {
		probe, err := kernel.NewTimeOfDay(probeValue)
		suite.Require().NoError(err)

		candidates, err := suite.repository.GetEligible(ctx, "Downtown", probe)
		suite.Require().NoError(err)
		suite.Empty(candidates, "probe %s", probeValue)
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetEligible_ShiftBoundsInclusive() {
	ctx := context.Background()
	suite.createTestPartner("bounds", partner.Active, 0, "Downtown", "09:00 - 21:00")

	for probeValue, want := range map[string]int{
		"09:00": 1,
		"21:00": 1,
		"08:59": 0,
		"21:01": 0,
	} {
		probe, err := kernel.NewTimeOfDay(probeValue)
		suite.Require().NoError(err)

		candidates, err := suite.repository.GetEligible(ctx, "Downtown", probe)
		suite.Require().NoError(err)
		suite.Len(candidates, want, "probe %s", probeValue)
	}
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}
