package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Singh-Prajwal/rental/internal/domain"
)

// TicketRepository encapsulates support ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) error
	GetByID(ctx context.Context, id string) (*domain.SupportTicket, error)
	List(ctx context.Context, limit, offset int) ([]domain.SupportTicket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, expectedVersion int64) (*domain.SupportTicket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, booking_id, property_id, issue, status, active_visit_id, version, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	const query = `
        INSERT INTO support_tickets (id, booking_id, property_id, issue, status, version)
        VALUES ($1,$2,$3,$4,$5,0)
        RETURNING version, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ID,
		ticket.BookingID,
		ticket.PropertyID,
		ticket.Issue,
		ticket.Status,
	).Scan(&ticket.Version, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM support_tickets WHERE id=$1`
	return scanTicketRow(r.pool.QueryRow(ctx, query, id))
}

// List returns tickets newest-created-first.
func (r *ticketRepository) List(ctx context.Context, limit, offset int) ([]domain.SupportTicket, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + ticketColumns + ` FROM support_tickets ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// UpdateStatus persists a new status under the optimistic version guard.
// active_visit_id is deliberately untouched here; a closed ticket keeps
// its last visit reference as history.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, expectedVersion int64) (*domain.SupportTicket, error) {
	const query = `
        UPDATE support_tickets SET status=$1, version=version+1, updated_at=NOW()
        WHERE id=$2 AND version=$3
        RETURNING ` + ticketColumns
	ticket, err := scanTicketRow(r.pool.QueryRow(ctx, query, status, id, expectedVersion))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, classifyTicketMiss(ctx, r.pool, id)
	}
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicketRow(row rowScanner) (*domain.SupportTicket, error) {
	var ticket domain.SupportTicket
	if err := row.Scan(
		&ticket.ID,
		&ticket.BookingID,
		&ticket.PropertyID,
		&ticket.Issue,
		&ticket.Status,
		&ticket.ActiveVisitID,
		&ticket.Version,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.SupportTicket, error) {
	var result []domain.SupportTicket
	for rows.Next() {
		ticket, err := scanTicketRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func classifyTicketMiss(ctx context.Context, q rowQuerier, id string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM support_tickets WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrVersionConflict
	}
	return pgx.ErrNoRows
}
