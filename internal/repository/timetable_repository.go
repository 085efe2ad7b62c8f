package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedulo-api/internal/models"
)

// TimetableRepository persists generated timetables.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a timetable repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// ReplaceAll stores the records of one generation run atomically. Each record replaces any
// previous timetable with the same kind and reference id.
func (r *TimetableRepository) ReplaceAll(ctx context.Context, records []models.TimetableRecord) (err error) {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin timetable transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const deleteQuery = `DELETE FROM timetables WHERE kind = $1 AND reference_id = $2`
	const insertQuery = `INSERT INTO timetables (id, kind, reference_id, reference_name, periods, generated_at)
VALUES (:id, :kind, :reference_id, :reference_name, :periods, :generated_at)`

	now := time.Now().UTC()
	for i := range records {
		record := &records[i]
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if record.GeneratedAt.IsZero() {
			record.GeneratedAt = now
		}
		if len(record.Periods) == 0 {
			record.Periods = []byte("[]")
		}
		if _, err = tx.ExecContext(ctx, deleteQuery, record.Kind, record.ReferenceID); err != nil {
			return fmt.Errorf("delete timetable %s/%s: %w", record.Kind, record.ReferenceID, err)
		}
		if _, err = sqlx.NamedExecContext(ctx, tx, insertQuery, record); err != nil {
			return fmt.Errorf("insert timetable %s/%s: %w", record.Kind, record.ReferenceID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit timetables: %w", err)
	}
	return nil
}

// FindByReference returns the stored timetable for a class or faculty member, or nil when absent.
func (r *TimetableRepository) FindByReference(ctx context.Context, kind models.TimetableKind, referenceID string) (*models.TimetableRecord, error) {
	const query = `SELECT id, kind, reference_id, reference_name, periods, generated_at FROM timetables WHERE kind = $1 AND reference_id = $2`
	var record models.TimetableRecord
	if err := r.db.GetContext(ctx, &record, query, kind, referenceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find timetable: %w", err)
	}
	return &record, nil
}

// List returns every stored timetable, classes first.
func (r *TimetableRepository) List(ctx context.Context) ([]models.TimetableRecord, error) {
	const query = `SELECT id, kind, reference_id, reference_name, periods, generated_at FROM timetables ORDER BY kind, reference_name, reference_id`
	var records []models.TimetableRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}
	return records, nil
}
