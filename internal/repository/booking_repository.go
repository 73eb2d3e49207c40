package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Singh-Prajwal/rental/internal/domain"
)

// ErrVersionConflict is returned when a version-guarded write matched the
// row by id but not by expected version.
var ErrVersionConflict = errors.New("version conflict")

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, expectedVersion int64) (*domain.Booking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (id, property_id, guest_id, check_in_date, check_out_date, status, version)
        VALUES ($1,$2,$3,$4,$5,$6,0)
        RETURNING version, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		booking.ID,
		booking.PropertyID,
		booking.GuestID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Status,
	).Scan(&booking.Version, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const query = `
        SELECT id, property_id, guest_id, check_in_date, check_out_date, status, version, created_at, updated_at
        FROM bookings WHERE id=$1`
	var booking domain.Booking
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.PropertyID,
		&booking.GuestID,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.Status,
		&booking.Version,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus persists a new status only if the stored version matches
// expectedVersion, incrementing the version in the same statement. A miss
// against an existing row is ErrVersionConflict; a missing row is
// pgx.ErrNoRows.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, expectedVersion int64) (*domain.Booking, error) {
	const query = `
        UPDATE bookings SET status=$1, version=version+1, updated_at=NOW()
        WHERE id=$2 AND version=$3
        RETURNING id, property_id, guest_id, check_in_date, check_out_date, status, version, created_at, updated_at`
	var booking domain.Booking
	err := r.pool.QueryRow(ctx, query, status, id, expectedVersion).Scan(
		&booking.ID,
		&booking.PropertyID,
		&booking.GuestID,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.Status,
		&booking.Version,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.classifyMiss(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) classifyMiss(ctx context.Context, id string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrVersionConflict
	}
	return pgx.ErrNoRows
}
