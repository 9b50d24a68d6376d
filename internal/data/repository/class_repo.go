package repository

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ClassRepository interface {
	Create(ctx context.Context, class *entity.Class) error
	CreateBatch(ctx context.Context, classes []*entity.Class) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Class, error)
	FindAll(ctx context.Context) ([]*entity.Class, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Class, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ConfirmedCounts resolves current_participants for a set of classes
	// from confirmed bookings; the stored column is never trusted.
	ConfirmedCounts(ctx context.Context, classIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type classRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClassRepository(db database.PgxIface, log *zap.Logger) ClassRepository {
	return &classRepository{
		db:  db,
		log: log.With(zap.String("repository", "class")),
	}
}

const classColumns = `id, name, date, start_time, max_participants, created_at`

func (r *classRepository) Create(ctx context.Context, class *entity.Class) error {
	query := `
		INSERT INTO classes (id, name, date, start_time, max_participants, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		class.ID,
		class.Name,
		class.Date,
		class.StartTime,
		class.MaxParticipants,
		class.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create class",
			zap.Error(err),
			zap.String("name", class.Name),
			zap.Time("date", class.Date),
		)
		return fmt.Errorf("create class %s: %w", class.Name, err)
	}

	return nil
}

func (r *classRepository) CreateBatch(ctx context.Context, classes []*entity.Class) error {
	if len(classes) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch class insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO classes (id, name, date, start_time, max_participants, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, class := range classes {
		if _, err := tx.Exec(ctx, query,
			class.ID,
			class.Name,
			class.Date,
			class.StartTime,
			class.MaxParticipants,
			class.CreatedAt,
		); err != nil {
			r.log.Error("Failed to insert class in batch",
				zap.Error(err),
				zap.String("name", class.Name),
				zap.Time("date", class.Date),
			)
			return fmt.Errorf("batch insert class %s on %s: %w", class.Name, class.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch class insert: %w", err)
	}

	r.log.Info("Classes created", zap.Int("count", len(classes)))
	return nil
}

func (r *classRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`

	class, err := scanClass(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find class by ID",
			zap.Error(err),
			zap.String("class_id", id.String()),
		)
		return nil, fmt.Errorf("find class by ID %s: %w", id.String(), err)
	}

	return class, nil
}

func (r *classRepository) FindAll(ctx context.Context) ([]*entity.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes ORDER BY date, start_time`
	return r.queryClasses(ctx, query)
}

func (r *classRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE date >= $1 AND date <= $2 ORDER BY date, start_time`
	return r.queryClasses(ctx, query, from, to)
}

func (r *classRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM classes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete class",
			zap.Error(err),
			zap.String("class_id", id.String()),
		)
		return fmt.Errorf("delete class %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("class %s not found", id.String())
	}

	r.log.Info("Class deleted", zap.String("class_id", id.String()))
	return nil
}

func (r *classRepository) ConfirmedCounts(ctx context.Context, classIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(classIDs))
	if len(classIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT class_id, COUNT(*)
		FROM bookings
		WHERE class_id = ANY($1) AND status = 'confirmed'
		GROUP BY class_id
	`

	rows, err := r.db.Query(ctx, query, classIDs)
	if err != nil {
		r.log.Error("Failed to count confirmed bookings per class", zap.Error(err))
		return nil, fmt.Errorf("count confirmed bookings per class: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var classID uuid.UUID
		var count int
		if err := rows.Scan(&classID, &count); err != nil {
			r.log.Error("Failed to scan class count row", zap.Error(err))
			return nil, fmt.Errorf("scan class count row: %w", err)
		}
		counts[classID] = count
	}

	return counts, nil
}

func (r *classRepository) queryClasses(ctx context.Context, query string, args ...any) ([]*entity.Class, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query classes", zap.Error(err))
		return nil, fmt.Errorf("query classes: %w", err)
	}
	defer rows.Close()

	var classes []*entity.Class
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			r.log.Error("Failed to scan class row", zap.Error(err))
			return nil, fmt.Errorf("scan class row: %w", err)
		}
		classes = append(classes, class)
	}

	return classes, nil
}

func scanClass(row pgx.Row) (*entity.Class, error) {
	var class entity.Class
	err := row.Scan(
		&class.ID,
		&class.Name,
		&class.Date,
		&class.StartTime,
		&class.MaxParticipants,
		&class.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &class, nil
}
