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
	BeginTx(ctx context.Context) (*sql.Tx, error)
	CommitTx(ctx context.Context, tx *sql.Tx) error
	Rollback(ctx context.Context, tx *sql.Tx) error

	Save(ctx context.Context, o Order, tx *sql.Tx) error
	FindByID(ctx context.Context, ID string, tx *sql.Tx) (Order, error)
	FindByTransactionID(ctx context.Context, transactionID string, tx *sql.Tx) (Order, error)
	FindManyByCustomerID(ctx context.Context, customerID int64, offset, limit int64, tx *sql.Tx) ([]Order, error)
	CountByCustomerID(ctx context.Context, customerID int64, tx *sql.Tx) (int64, error)
	Update(ctx context.Context, ID string, o Order, tx *sql.Tx) error
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

// BeginTx implements OrderRepository.
func (r *orderRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred trying to begin transaction")
	}

	return tx, nil
}

// CommitTx implements OrderRepository.
func (r *orderRepository) CommitTx(ctx context.Context, tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred trying to commit transaction")
	}

	return nil
}

// Rollback implements OrderRepository.
func (r *orderRepository) Rollback(ctx context.Context, tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred trying to rollback transaction")
	}

	return nil
}

// jsonColumn renders an optional sub-object as a nullable JSONB value.
func jsonColumn[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	buff, _ := json.Marshal(v)
	return buff
}

const orderColumns = `
	id, customer_id, customer_name, customer_email, customer_phone, status,
	event_name, event_date, event_time, headcount,
	breakfast, snacks, delivery, promotion_code,
	subtotal, discount, tax, delivery_fee, total,
	transaction_id, share_token, share_token_expires_at, dispatch_reference,
	created_at, updated_at
`

func (r *orderRepository) scanOrder(row interface{ Scan(...interface{}) error }) (Order, error) {
	var data Order
	var customerID sql.NullInt64
	var breakfast, snacks, delivery []byte
	var promotionCode, transactionID, shareToken, dispatchReference sql.NullString
	var shareTokenExpiresAt sql.NullTime

	err := row.Scan(
		&data.ID, &customerID, &data.CustomerName, &data.CustomerEmail, &data.CustomerPhone, &data.Status,
		&data.EventName, &data.EventDate, &data.EventTime, &data.Headcount,
		&breakfast, &snacks, &delivery, &promotionCode,
		&data.Subtotal, &data.Discount, &data.Tax, &data.DeliveryFee, &data.Total,
		&transactionID, &shareToken, &shareTokenExpiresAt, &dispatchReference,
		&data.CreatedAt, &data.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}

	if customerID.Valid {
		data.CustomerID = &customerID.Int64
	}
	if len(breakfast) > 0 {
		json.Unmarshal(breakfast, &data.Breakfast)
	}
	if len(snacks) > 0 {
		json.Unmarshal(snacks, &data.Snacks)
	}
	if len(delivery) > 0 {
		json.Unmarshal(delivery, &data.Delivery)
	}
	if promotionCode.Valid {
		data.PromotionCode = &promotionCode.String
	}
	if transactionID.Valid {
		data.TransactionID = &transactionID.String
	}
	if shareToken.Valid {
		data.ShareToken = &shareToken.String
	}
	if shareTokenExpiresAt.Valid {
		data.ShareTokenExpiresAt = &shareTokenExpiresAt.Time
	}
	if dispatchReference.Valid {
		data.DispatchReference = &dispatchReference.String
	}

	return data, nil
}

// Save implements OrderRepository.
func (r *orderRepository) Save(ctx context.Context, o Order, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := fmt.Sprintf(`
		INSERT INTO catering_order (%s)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
	`, orderColumns)

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving order's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		o.ID, o.CustomerID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Status,
		o.EventName, o.EventDate, o.EventTime, o.Headcount,
		jsonColumn(o.Breakfast), jsonColumn(o.Snacks), jsonColumn(o.Delivery), o.PromotionCode,
		o.Subtotal, o.Discount, o.Tax, o.DeliveryFee, o.Total,
		o.TransactionID, o.ShareToken, o.ShareTokenExpiresAt, o.DispatchReference,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving order's properties")
	}

	return nil
}

// FindByID implements OrderRepository.
func (r *orderRepository) FindByID(ctx context.Context, ID string, tx *sql.Tx) (Order, error) {
	return r.findOneBy(ctx, "id", ID, tx)
}

// FindByTransactionID implements OrderRepository.
func (r *orderRepository) FindByTransactionID(ctx context.Context, transactionID string, tx *sql.Tx) (Order, error) {
	return r.findOneBy(ctx, "transaction_id", transactionID, tx)
}

func (r *orderRepository) findOneBy(ctx context.Context, column, value string, tx *sql.Tx) (Order, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM catering_order
		WHERE
			%s = $1
		LIMIT 1
	`, orderColumns, column)

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Order{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting order's properties")
	}
	defer stmt.Close()

	data, err := r.scanOrder(stmt.QueryRowContext(ctx, value))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, errors.New(http.StatusNotFound, status.NOT_FOUND, "order is not found")
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return Order{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting order's properties")
	}

	return data, nil
}

// FindManyByCustomerID implements OrderRepository.
func (r *orderRepository) FindManyByCustomerID(ctx context.Context, customerID int64, offset, limit int64, tx *sql.Tx) ([]Order, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM catering_order
		WHERE
			customer_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, orderColumns)

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of order's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, customerID, offset, limit)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of order's properties")
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		data, err := r.scanOrder(rows)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of order's properties")
		}
		orders = append(orders, data)
	}

	return orders, nil
}

// CountByCustomerID implements OrderRepository.
func (r *orderRepository) CountByCustomerID(ctx context.Context, customerID int64, tx *sql.Tx) (int64, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT COUNT(id)
		FROM catering_order
		WHERE
			customer_id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while counting order's properties")
	}
	defer stmt.Close()

	var total int64
	if err := stmt.QueryRowContext(ctx, customerID).Scan(&total); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while counting order's properties")
	}

	return total, nil
}

// Update implements OrderRepository. The whole row is written in a single
// statement so the share token pair and the money fields can never be
// observed half-updated.
func (r *orderRepository) Update(ctx context.Context, ID string, o Order, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		UPDATE catering_order
		SET
			customer_name = $2, customer_email = $3, customer_phone = $4, status = $5,
			event_name = $6, event_date = $7, event_time = $8, headcount = $9,
			breakfast = $10, snacks = $11, delivery = $12, promotion_code = $13,
			subtotal = $14, discount = $15, tax = $16, delivery_fee = $17, total = $18,
			transaction_id = $19, share_token = $20, share_token_expires_at = $21,
			dispatch_reference = $22, updated_at = $23
		WHERE
			id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating order's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Status,
		o.EventName, o.EventDate, o.EventTime, o.Headcount,
		jsonColumn(o.Breakfast), jsonColumn(o.Snacks), jsonColumn(o.Delivery), o.PromotionCode,
		o.Subtotal, o.Discount, o.Tax, o.DeliveryFee, o.Total,
		o.TransactionID, o.ShareToken, o.ShareTokenExpiresAt,
		o.DispatchReference, o.UpdatedAt,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating order's properties")
	}

	return nil
}
