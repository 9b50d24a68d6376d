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

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error)
	Update(ctx context.Context, sub *entity.Subscription) error
	UpdateRemaining(ctx context.Context, id uuid.UUID, remaining int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type subscriptionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubscriptionRepository(db database.PgxIface, log *zap.Logger) SubscriptionRepository {
	return &subscriptionRepository{
		db:  db,
		log: log.With(zap.String("repository", "subscription")),
	}
}

const subscriptionColumns = `id, user_id, model, start_date, end_date, package_total, remaining_classes, price, payment_status, note, created_at`

func (r *subscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, model, start_date, end_date, package_total,
		                           remaining_classes, price, payment_status, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		sub.ID,
		sub.UserID,
		sub.Model,
		sub.StartDate,
		sub.EndDate,
		sub.PackageTotal,
		sub.RemainingClasses,
		sub.Price,
		sub.PaymentStatus,
		sub.Note,
		sub.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create subscription",
			zap.Error(err),
			zap.String("user_id", sub.UserID.String()),
			zap.String("model", string(sub.Model)),
		)
		return fmt.Errorf("create subscription for user %s: %w", sub.UserID.String(), err)
	}

	return nil
}

func (r *subscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	sub, err := scanSubscription(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find subscription by ID",
			zap.Error(err),
			zap.String("subscription_id", id.String()),
		)
		return nil, fmt.Errorf("find subscription by ID %s: %w", id.String(), err)
	}

	return sub, nil
}

func (r *subscriptionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find subscriptions by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find subscriptions by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var subs []*entity.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			r.log.Error("Failed to scan subscription row", zap.Error(err))
			return nil, fmt.Errorf("scan subscription row: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *entity.Subscription) error {
	query := `
		UPDATE subscriptions
		SET model = $2, start_date = $3, end_date = $4, package_total = $5,
		    remaining_classes = $6, price = $7, payment_status = $8, note = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		sub.ID,
		sub.Model,
		sub.StartDate,
		sub.EndDate,
		sub.PackageTotal,
		sub.RemainingClasses,
		sub.Price,
		sub.PaymentStatus,
		sub.Note,
	)

	if err != nil {
		r.log.Error("Failed to update subscription",
			zap.Error(err),
			zap.String("subscription_id", sub.ID.String()),
		)
		return fmt.Errorf("update subscription %s: %w", sub.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s not found", sub.ID.String())
	}

	return nil
}

// UpdateRemaining refreshes the cached remaining-classes counter. The cache
// is best-effort; quota decisions always recount from bookings.
func (r *subscriptionRepository) UpdateRemaining(ctx context.Context, id uuid.UUID, remaining int) error {
	query := `UPDATE subscriptions SET remaining_classes = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, remaining)
	if err != nil {
		r.log.Error("Failed to update remaining classes",
			zap.Error(err),
			zap.String("subscription_id", id.String()),
			zap.Int("remaining", remaining),
		)
		return fmt.Errorf("update remaining classes for subscription %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s not found", id.String())
	}

	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM subscriptions WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete subscription",
			zap.Error(err),
			zap.String("subscription_id", id.String()),
		)
		return fmt.Errorf("delete subscription %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s not found", id.String())
	}

	r.log.Info("Subscription deleted", zap.String("subscription_id", id.String()))
	return nil
}

func scanSubscription(row pgx.Row) (*entity.Subscription, error) {
	var sub entity.Subscription
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Model,
		&sub.StartDate,
		&sub.EndDate,
		&sub.PackageTotal,
		&sub.RemainingClasses,
		&sub.Price,
		&sub.PaymentStatus,
		&sub.Note,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
