package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedulo-api/internal/models"
)

// InstituteConfigRepository reads the institute scheduling configuration.
type InstituteConfigRepository struct {
	db *sqlx.DB
}

// NewInstituteConfigRepository constructs the repository.
func NewInstituteConfigRepository(db *sqlx.DB) *InstituteConfigRepository {
	return &InstituteConfigRepository{db: db}
}

// Get returns the most recently updated configuration, or nil when none has been stored.
func (r *InstituteConfigRepository) Get(ctx context.Context) (*models.InstituteConfig, error) {
	const query = `SELECT id, working_days, periods_per_day, period_duration_minutes, breaks, lab_allowed_start_periods,
       max_consecutive_periods, institute_start_time, updated_at
FROM institute_configs ORDER BY updated_at DESC LIMIT 1`
	var cfg models.InstituteConfig
	if err := r.db.GetContext(ctx, &cfg, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get institute config: %w", err)
	}
	return &cfg, nil
}
