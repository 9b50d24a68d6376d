package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

// PackageCharge describes the package subscription a booking consumes a
// class from, so the insert can re-verify capacity at commit time.
type PackageCharge struct {
	SubscriptionID uuid.UUID
	PackageTotal   int
	PremiumOnly    bool
}

type BookingRepository interface {
	// Create inserts a booking; a duplicate (user, class) pair surfaces
	// as ErrDuplicateBooking, never as a raw constraint error.
	Create(ctx context.Context, booking *entity.Booking) error

	// CreateCharged inserts a booking that consumes a package class. The
	// subscription row is locked, matching confirmed bookings recounted
	// under the lock, and the cached counter refreshed in the same
	// transaction; ErrPackageExhausted when the recount finds no capacity.
	CreateCharged(ctx context.Context, booking *entity.Booking, charge PackageCharge) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserWithClass(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ListForReport returns the attendance rows for the admin export.
	ListForReport(ctx context.Context, from, to time.Time) ([]*ReportRow, error)
}

// ReportRow is one line of the admin attendance export.
type ReportRow struct {
	BookingID uuid.UUID
	UserName  string
	UserPhone string
	ClassName string
	Date      time.Time
	StartTime string
	Status    entity.BookingStatus
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const insertBookingQuery = `
	INSERT INTO bookings (id, user_id, class_id, status, created_at)
	VALUES ($1, $2, $3, $4, $5)
`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	_, err := r.db.Exec(ctx, insertBookingQuery,
		booking.ID,
		booking.UserID,
		booking.ClassID,
		booking.Status,
		booking.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBooking
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("class_id", booking.ClassID.String()),
		)
		return fmt.Errorf("create booking for user %s: %w", booking.UserID.String(), err)
	}

	return nil
}

func (r *bookingRepository) CreateCharged(ctx context.Context, booking *entity.Booking, charge PackageCharge) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin charged booking: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the subscription row so two requests cannot both take the last
	// remaining class.
	var subID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM subscriptions WHERE id = $1 FOR UPDATE`,
		charge.SubscriptionID,
	).Scan(&subID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("subscription %s not found", charge.SubscriptionID.String())
		}
		return fmt.Errorf("lock subscription %s: %w", charge.SubscriptionID.String(), err)
	}

	used, err := r.countChargedInTx(ctx, tx, booking.UserID, charge)
	if err != nil {
		return err
	}

	if used >= charge.PackageTotal {
		return ErrPackageExhausted
	}

	if _, err := tx.Exec(ctx, insertBookingQuery,
		booking.ID,
		booking.UserID,
		booking.ClassID,
		booking.Status,
		booking.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("create charged booking for user %s: %w", booking.UserID.String(), err)
	}

	remaining := charge.PackageTotal - used - 1
	if _, err := tx.Exec(ctx,
		`UPDATE subscriptions SET remaining_classes = $2 WHERE id = $1`,
		charge.SubscriptionID, remaining,
	); err != nil {
		return fmt.Errorf("refresh remaining classes for subscription %s: %w", charge.SubscriptionID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit charged booking: %w", err)
	}

	r.log.Info("Package class charged",
		zap.String("subscription_id", charge.SubscriptionID.String()),
		zap.Int("remaining", remaining),
	)
	return nil
}

// countChargedInTx recounts confirmed bookings matching the package's
// window and premium filter inside the open transaction.
func (r *bookingRepository) countChargedInTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, charge PackageCharge) (int, error) {
	nameFilter := `c.name NOT ILIKE '%cadillac%'`
	if charge.PremiumOnly {
		nameFilter = `c.name ILIKE '%cadillac%'`
	}

	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN classes c ON c.id = b.class_id
		JOIN subscriptions s ON s.id = $2
		WHERE b.user_id = $1
		  AND b.status = 'confirmed'
		  AND c.date >= s.start_date
		  AND c.date <= s.end_date
		  AND ` + nameFilter

	var used int
	if err := tx.QueryRow(ctx, query, userID, charge.SubscriptionID).Scan(&used); err != nil {
		return 0, fmt.Errorf("recount package usage for subscription %s: %w", charge.SubscriptionID.String(), err)
	}
	return used, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.class_id, b.status, b.created_at,
		       c.id, c.name, c.date, c.start_time, c.max_participants, c.created_at
		FROM bookings b
		JOIN classes c ON c.id = b.class_id
		WHERE b.id = $1
	`

	booking, err := scanBookingWithClass(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserWithClass(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.class_id, b.status, b.created_at,
		       c.id, c.name, c.date, c.start_time, c.max_participants, c.created_at
		FROM bookings b
		JOIN classes c ON c.id = b.class_id
		WHERE b.user_id = $1
		ORDER BY c.date, c.start_time
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBookingWithClass(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) ListForReport(ctx context.Context, from, to time.Time) ([]*ReportRow, error) {
	query := `
		SELECT b.id, u.name, u.phone, c.name, c.date, c.start_time, b.status
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN classes c ON c.id = b.class_id
		WHERE c.date >= $1 AND c.date <= $2
		ORDER BY c.date, c.start_time, u.name
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to list bookings for report", zap.Error(err))
		return nil, fmt.Errorf("list bookings for report: %w", err)
	}
	defer rows.Close()

	var report []*ReportRow
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(
			&row.BookingID,
			&row.UserName,
			&row.UserPhone,
			&row.ClassName,
			&row.Date,
			&row.StartTime,
			&row.Status,
		); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		report = append(report, &row)
	}

	return report, nil
}

func scanBookingWithClass(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	var class entity.Class
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ClassID,
		&booking.Status,
		&booking.CreatedAt,
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
	booking.Class = &class
	return &booking, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
