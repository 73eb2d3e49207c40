package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Singh-Prajwal/rental/internal/domain"
)

// VisitRepository encapsulates technician visit persistence. Visit rows are
// written only through ScheduleVisit, which couples them to the owning
// ticket inside one transaction.
type VisitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TechnicianVisit, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TechnicianVisit, error)
	ScheduleVisit(ctx context.Context, visit *domain.TechnicianVisit, newStatus domain.TicketStatus, expectedVersion int64) (*domain.SupportTicket, error)
}

type visitRepository struct {
	pool *pgxpool.Pool
}

// NewVisitRepository instantiates repository.
func NewVisitRepository(pool *pgxpool.Pool) VisitRepository {
	return &visitRepository{pool: pool}
}

const visitColumns = `id, ticket_id, technician_name, scheduled_at, notes, created_at`

func (r *visitRepository) GetByID(ctx context.Context, id string) (*domain.TechnicianVisit, error) {
	const query = `SELECT ` + visitColumns + ` FROM technician_visits WHERE id=$1`
	var visit domain.TechnicianVisit
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&visit.ID,
		&visit.TicketID,
		&visit.TechnicianName,
		&visit.ScheduledAt,
		&visit.Notes,
		&visit.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TechnicianVisit, error) {
	const query = `SELECT ` + visitColumns + ` FROM technician_visits WHERE ticket_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TechnicianVisit
	for rows.Next() {
		var visit domain.TechnicianVisit
		if err := rows.Scan(
			&visit.ID,
			&visit.TicketID,
			&visit.TechnicianName,
			&visit.ScheduledAt,
			&visit.Notes,
			&visit.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, visit)
	}
	return result, rows.Err()
}

// ScheduleVisit inserts the visit row and updates the owning ticket's
// active_visit_id, status and version inside a single transaction; both
// writes commit or neither does. The ticket update carries the optimistic
// version guard, so a concurrent close or transition aborts the whole
// operation with ErrVersionConflict.
func (r *visitRepository) ScheduleVisit(ctx context.Context, visit *domain.TechnicianVisit, newStatus domain.TicketStatus, expectedVersion int64) (*domain.SupportTicket, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const insertVisit = `
        INSERT INTO technician_visits (id, ticket_id, technician_name, scheduled_at, notes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`
	if err = tx.QueryRow(ctx, insertVisit,
		visit.ID,
		visit.TicketID,
		visit.TechnicianName,
		visit.ScheduledAt,
		visit.Notes,
	).Scan(&visit.CreatedAt); err != nil {
		return nil, err
	}

	const updateTicket = `
        UPDATE support_tickets SET status=$1, active_visit_id=$2, version=version+1, updated_at=NOW()
        WHERE id=$3 AND version=$4
        RETURNING ` + ticketColumns
	var ticket *domain.SupportTicket
	ticket, err = scanTicketRow(tx.QueryRow(ctx, updateTicket, newStatus, visit.ID, visit.TicketID, expectedVersion))
	if errors.Is(err, pgx.ErrNoRows) {
		err = classifyTicketMiss(ctx, tx, visit.TicketID)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ticket, nil
}
