package repository

import (
	"context"
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TemplateClassRepository interface {
	Create(ctx context.Context, template *entity.TemplateClass) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TemplateClass, error)
	FindAll(ctx context.Context) ([]*entity.TemplateClass, error)
	FindAllActive(ctx context.Context) ([]*entity.TemplateClass, error)
	Update(ctx context.Context, template *entity.TemplateClass) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type templateClassRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTemplateClassRepository(db database.PgxIface, log *zap.Logger) TemplateClassRepository {
	return &templateClassRepository{
		db:  db,
		log: log.With(zap.String("repository", "template_class")),
	}
}

const templateColumns = `id, name, weekday, start_time, max_participants, is_active, created_at`

func (r *templateClassRepository) Create(ctx context.Context, template *entity.TemplateClass) error {
	query := `
		INSERT INTO template_classes (id, name, weekday, start_time, max_participants, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		template.ID,
		template.Name,
		template.Weekday,
		template.StartTime,
		template.MaxParticipants,
		template.IsActive,
		template.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create template class",
			zap.Error(err),
			zap.String("name", template.Name),
			zap.Int("weekday", template.Weekday),
		)
		return fmt.Errorf("create template class %s: %w", template.Name, err)
	}

	return nil
}

func (r *templateClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TemplateClass, error) {
	query := `SELECT ` + templateColumns + ` FROM template_classes WHERE id = $1`

	template, err := scanTemplate(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find template class by ID",
			zap.Error(err),
			zap.String("template_id", id.String()),
		)
		return nil, fmt.Errorf("find template class by ID %s: %w", id.String(), err)
	}

	return template, nil
}

func (r *templateClassRepository) FindAll(ctx context.Context) ([]*entity.TemplateClass, error) {
	query := `SELECT ` + templateColumns + ` FROM template_classes ORDER BY weekday, start_time`
	return r.queryTemplates(ctx, query)
}

func (r *templateClassRepository) FindAllActive(ctx context.Context) ([]*entity.TemplateClass, error) {
	query := `SELECT ` + templateColumns + ` FROM template_classes WHERE is_active ORDER BY weekday, start_time`
	return r.queryTemplates(ctx, query)
}

func (r *templateClassRepository) Update(ctx context.Context, template *entity.TemplateClass) error {
	query := `
		UPDATE template_classes
		SET name = $2, weekday = $3, start_time = $4, max_participants = $5, is_active = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		template.ID,
		template.Name,
		template.Weekday,
		template.StartTime,
		template.MaxParticipants,
		template.IsActive,
	)

	if err != nil {
		r.log.Error("Failed to update template class",
			zap.Error(err),
			zap.String("template_id", template.ID.String()),
		)
		return fmt.Errorf("update template class %s: %w", template.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("template class %s not found", template.ID.String())
	}

	return nil
}

func (r *templateClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM template_classes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete template class",
			zap.Error(err),
			zap.String("template_id", id.String()),
		)
		return fmt.Errorf("delete template class %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("template class %s not found", id.String())
	}

	r.log.Info("Template class deleted", zap.String("template_id", id.String()))
	return nil
}

func (r *templateClassRepository) queryTemplates(ctx context.Context, query string) ([]*entity.TemplateClass, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to query template classes", zap.Error(err))
		return nil, fmt.Errorf("query template classes: %w", err)
	}
	defer rows.Close()

	var templates []*entity.TemplateClass
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			r.log.Error("Failed to scan template class row", zap.Error(err))
			return nil, fmt.Errorf("scan template class row: %w", err)
		}
		templates = append(templates, template)
	}

	return templates, nil
}

func scanTemplate(row pgx.Row) (*entity.TemplateClass, error) {
	var template entity.TemplateClass
	err := row.Scan(
		&template.ID,
		&template.Name,
		&template.Weekday,
		&template.StartTime,
		&template.MaxParticipants,
		&template.IsActive,
		&template.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &template, nil
}
