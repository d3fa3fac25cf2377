package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

type OrderRepository interface {
	FindByID(ctx context.Context, ID string, tx *sql.Tx) (Order, error)
	FindMany(ctx context.Context, filterStatus string, offset, limit int64, tx *sql.Tx) ([]Order, error)
	Count(ctx context.Context, filterStatus string, tx *sql.Tx) (int64, error)
	UpdateStatus(ctx context.Context, ID string, newStatus Status, dispatchReference *string, tx *sql.Tx) error
}

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type orderRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewOrderRepository(logger *logrus.Logger, db *sql.DB) OrderRepository {
	return &orderRepository{
		logger: logger,
		db:     db,
	}
}

const orderColumns = `
	id, customer_id, customer_name, customer_email, customer_phone, status,
	event_name, event_date, event_time, headcount,
	delivery, promotion_code,
	subtotal, discount, tax, delivery_fee, total,
	dispatch_reference,
	created_at, updated_at
`

func (r *orderRepository) scanOrder(row interface{ Scan(...interface{}) error }) (Order, error) {
	var data Order
	var customerID sql.NullInt64
	var delivery []byte
	var promotionCode sql.NullString
	var dispatchReference sql.NullString

	err := row.Scan(
		&data.ID, &customerID, &data.CustomerName, &data.CustomerEmail, &data.CustomerPhone, &data.Status,
		&data.EventName, &data.EventDate, &data.EventTime, &data.Headcount,
		&delivery, &promotionCode,
		&data.Subtotal, &data.Discount, &data.Tax, &data.DeliveryFee, &data.Total,
		&dispatchReference,
		&data.CreatedAt, &data.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}

	if customerID.Valid {
		data.CustomerID = &customerID.Int64
	}
	if len(delivery) > 0 {
		data.Delivery = &DeliveryInfo{}
		if err := json.Unmarshal(delivery, data.Delivery); err != nil {
			return Order{}, err
		}
	}
	if promotionCode.Valid {
		data.PromotionCode = &promotionCode.String
	}
	if dispatchReference.Valid {
		data.DispatchReference = &dispatchReference.String
	}

	return data, nil
}

// FindByID implements OrderRepository.
func (r *orderRepository) FindByID(ctx context.Context, ID string, tx *sql.Tx) (Order, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := fmt.Sprintf(`
		SELECT %s FROM catering_order WHERE id = $1
	`, orderColumns)

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Order{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting order's properties")
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, ID)

	data, err := r.scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, errors.New(http.StatusNotFound, status.NOT_FOUND, "order is not found")
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return Order{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting order's properties")
	}

	return data, nil
}

// FindMany implements OrderRepository.
func (r *orderRepository) FindMany(ctx context.Context, filterStatus string, offset, limit int64, tx *sql.Tx) ([]Order, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := fmt.Sprintf(`
		SELECT %s FROM catering_order
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, orderColumns)

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of orders")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, filterStatus, offset, limit)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of orders")
	}
	defer rows.Close()

	bunchOfOrders := make([]Order, 0)
	for rows.Next() {
		data, err := r.scanOrder(rows)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of orders")
		}

		bunchOfOrders = append(bunchOfOrders, data)
	}

	return bunchOfOrders, nil
}

// Count implements OrderRepository.
func (r *orderRepository) Count(ctx context.Context, filterStatus string, tx *sql.Tx) (int64, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT COUNT(id) FROM catering_order WHERE ($1 = '' OR status = $1)
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while counting orders")
	}
	defer stmt.Close()

	var total int64
	if err := stmt.QueryRowContext(ctx, filterStatus).Scan(&total); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while counting orders")
	}

	return total, nil
}

// UpdateStatus implements OrderRepository. The dispatch reference is written
// in the same statement so a booked delivery is never recorded without its
// status move.
func (r *orderRepository) UpdateStatus(ctx context.Context, ID string, newStatus Status, dispatchReference *string, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		UPDATE catering_order
		SET status = $2, dispatch_reference = COALESCE($3, dispatch_reference), updated_at = NOW()
		WHERE id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating order's status")
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, ID, newStatus, dispatchReference); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating order's status")
	}

	return nil
}
