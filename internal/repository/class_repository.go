package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedulo-api/internal/models"
)

// ClassRepository reads classes and the subjects assigned to them.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns every class ordered by name.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, name, size, created_at, updated_at FROM classes ORDER BY name, id`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListAssignments returns the subjects of every class in a stable order.
func (r *ClassRepository) ListAssignments(ctx context.Context) ([]models.ClassSubjectAssignment, error) {
	const query = `
SELECT cs.class_id, cs.subject_id, s.name AS subject_name, s.code AS subject_code, s.kind,
       s.sessions_per_week, s.lab_length, cs.faculty_ids
FROM class_subjects cs
JOIN subjects s ON s.id = cs.subject_id
ORDER BY cs.class_id, cs.position, s.code`
	var assignments []models.ClassSubjectAssignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list class subjects: %w", err)
	}
	return assignments, nil
}
