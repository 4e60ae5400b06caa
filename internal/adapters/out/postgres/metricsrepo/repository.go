// Package metricsrepo persists the single global assignment-metrics
// document. The table holds one row; every evaluation run replaces it.
package metricsrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/assignment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// metricsRowID is the fixed primary key of the single metrics row.
const metricsRowID = 1

// MetricsDTO represents the stored metrics document. FailureReasons is a
// JSONB array preserving the first-seen bucket order.
type MetricsDTO struct {
	ID                 int       `gorm:"primaryKey"`
	TotalAssigned      int       `gorm:"type:int;not null"`
	SuccessRate        float64   `gorm:"type:double precision;not null"`
	AverageTimeSeconds float64   `gorm:"type:double precision;not null"`
	FailureReasons     []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "assignment_metrics".
func (MetricsDTO) TableName() string {
	return "assignment_metrics"
}

// GormMetricsRepository implements MetricsRepository using GORM.
type GormMetricsRepository struct {
	db *gorm.DB
}

// NewGormMetricsRepository creates a new GORM metrics repository.
func NewGormMetricsRepository(db *gorm.DB) *GormMetricsRepository {
	return &GormMetricsRepository{db: db}
}

// Replace stores the freshly computed metrics, overwriting the previous
// document via upsert on the fixed row.
func (r *GormMetricsRepository) Replace(ctx context.Context, metrics assignment.Metrics) error {
	reasons := metrics.FailureReasons
	if reasons == nil {
		reasons = []assignment.FailureReason{}
	}

	reasonsJSON, err := json.Marshal(reasons)
	if err != nil {
		return err
	}

	dto := MetricsDTO{
		ID:                 metricsRowID,
		TotalAssigned:      metrics.TotalAssigned,
		SuccessRate:        metrics.SuccessRate,
		AverageTimeSeconds: metrics.AverageTimeSeconds,
		FailureReasons:     reasonsJSON,
		UpdatedAt:          time.Now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// GetLatest retrieves the most recently stored metrics. Before the first
// evaluation run it returns zero metrics and no error.
func (r *GormMetricsRepository) GetLatest(ctx context.Context) (assignment.Metrics, error) {
	var dto MetricsDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", metricsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return assignment.Metrics{}, nil
	}
	if err != nil {
		return assignment.Metrics{}, err
	}

	metrics := assignment.Metrics{
		TotalAssigned:      dto.TotalAssigned,
		SuccessRate:        dto.SuccessRate,
		AverageTimeSeconds: dto.AverageTimeSeconds,
	}

	if len(dto.FailureReasons) > 0 {
		if err = json.Unmarshal(dto.FailureReasons, &metrics.FailureReasons); err != nil {
			return assignment.Metrics{}, err
		}
	}

	return metrics, nil
}
