package order

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

type LunchSelectionRepository interface {
	Upsert(ctx context.Context, s LunchSelection, tx *sql.Tx) error
	FindManyByOrderID(ctx context.Context, orderID string, tx *sql.Tx) ([]LunchSelection, error)
}

type lunchSelectionRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewLunchSelectionRepository(logger *logrus.Logger, db *sql.DB) LunchSelectionRepository {
	return &lunchSelectionRepository{
		logger: logger,
		db:     db,
	}
}

// Upsert implements LunchSelectionRepository. The attendee email is unique
// per order, so a repeat submission replaces the earlier choice instead of
// duplicating it.
func (r *lunchSelectionRepository) Upsert(ctx context.Context, s LunchSelection, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		INSERT INTO lunch_selection (order_id, attendee_name, attendee_email, entree, dietary_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (order_id, attendee_email)
		DO UPDATE SET
			attendee_name = EXCLUDED.attendee_name,
			entree = EXCLUDED.entree,
			dietary_note = EXCLUDED.dietary_note,
			updated_at = EXCLUDED.updated_at
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving lunch selection's properties")
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, s.OrderID, s.AttendeeName, s.AttendeeEmail, s.Entree, s.DietaryNote, s.UpdatedAt); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving lunch selection's properties")
	}

	return nil
}

// FindManyByOrderID implements LunchSelectionRepository.
func (r *lunchSelectionRepository) FindManyByOrderID(ctx context.Context, orderID string, tx *sql.Tx) ([]LunchSelection, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT id, order_id, attendee_name, attendee_email, entree, dietary_note, created_at, updated_at
		FROM lunch_selection
		WHERE
			order_id = $1
		ORDER BY created_at ASC
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of lunch selection's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, orderID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of lunch selection's properties")
	}
	defer rows.Close()

	selections := make([]LunchSelection, 0)
	for rows.Next() {
		var data LunchSelection
		err := rows.Scan(
			&data.ID, &data.OrderID, &data.AttendeeName, &data.AttendeeEmail,
			&data.Entree, &data.DietaryNote, &data.CreatedAt, &data.UpdatedAt,
		)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of lunch selection's properties")
		}
		selections = append(selections, data)
	}

	return selections, nil
}
