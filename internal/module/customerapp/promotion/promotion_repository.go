package promotion

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

type PromotionRepository interface {
	FindByCode(ctx context.Context, code string, tx *sql.Tx) (Promotion, error)
	IncrementUsage(ctx context.Context, ID int64, tx *sql.Tx) error
}

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type promotionRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewPromotionRepository(logger *logrus.Logger, db *sql.DB) PromotionRepository {
	return &promotionRepository{
		logger: logger,
		db:     db,
	}
}

// FindByCode implements PromotionRepository.
func (r *promotionRepository) FindByCode(ctx context.Context, code string, tx *sql.Tx) (Promotion, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT
			id, code, type, value, status, valid_from, valid_until,
			usage_limit, usage_count, created_at, updated_at
		FROM promotion
		WHERE
			code = $1
		LIMIT 1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Promotion{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting promotion's properties")
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, code)

	var data Promotion
	var usageLimit sql.NullInt64

	err = row.Scan(
		&data.ID, &data.Code, &data.Type, &data.Value, &data.Status, &data.ValidFrom, &data.ValidUntil,
		&usageLimit, &data.UsageCount, &data.CreatedAt, &data.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Promotion{}, errors.New(http.StatusBadRequest, status.PROMOTION_INVALID, "promotion code is not recognized")
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return Promotion{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting promotion's properties")
	}

	if usageLimit.Valid {
		data.UsageLimit = &usageLimit.Int64
	}

	return data, nil
}

// IncrementUsage implements PromotionRepository.
func (r *promotionRepository) IncrementUsage(ctx context.Context, ID int64, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		UPDATE promotion
		SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating promotion's usage")
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, ID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating promotion's usage")
	}

	return nil
}
