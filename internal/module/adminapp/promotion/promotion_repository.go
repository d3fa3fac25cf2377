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
	Save(ctx context.Context, p Promotion, tx *sql.Tx) (int64, error)
	FindByID(ctx context.Context, ID int64, tx *sql.Tx) (Promotion, error)
	FindMany(ctx context.Context, filterStatus string, tx *sql.Tx) ([]Promotion, error)
	Update(ctx context.Context, ID int64, p Promotion, tx *sql.Tx) error
	Delete(ctx context.Context, ID int64, tx *sql.Tx) error
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

func (r *promotionRepository) scanPromotion(row interface{ Scan(...interface{}) error }) (Promotion, error) {
	var data Promotion
	var usageLimit sql.NullInt64

	err := row.Scan(
		&data.ID, &data.Code, &data.Type, &data.Value, &data.Status, &data.ValidFrom, &data.ValidUntil,
		&usageLimit, &data.UsageCount, &data.CreatedAt, &data.UpdatedAt,
	)
	if err != nil {
		return Promotion{}, err
	}

	if usageLimit.Valid {
		data.UsageLimit = &usageLimit.Int64
	}

	return data, nil
}

// Save implements PromotionRepository.
func (r *promotionRepository) Save(ctx context.Context, p Promotion, tx *sql.Tx) (int64, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		INSERT INTO promotion (
			code, type, value, status, valid_from, valid_until,
			usage_limit, usage_count, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving promotion's properties")
	}
	defer stmt.Close()

	var ID int64
	err = stmt.QueryRowContext(ctx,
		p.Code, p.Type, p.Value, p.Status, p.ValidFrom, p.ValidUntil,
		p.UsageLimit, p.UsageCount, p.CreatedAt, p.UpdatedAt,
	).Scan(&ID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving promotion's properties")
	}

	return ID, nil
}

// FindByID implements PromotionRepository.
func (r *promotionRepository) FindByID(ctx context.Context, ID int64, tx *sql.Tx) (Promotion, error) {
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
			id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Promotion{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting promotion's properties")
	}
	defer stmt.Close()

	data, err := r.scanPromotion(stmt.QueryRowContext(ctx, ID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Promotion{}, errors.New(http.StatusNotFound, status.NOT_FOUND, "promotion is not found")
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return Promotion{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting promotion's properties")
	}

	return data, nil
}

// FindMany implements PromotionRepository.
func (r *promotionRepository) FindMany(ctx context.Context, filterStatus string, tx *sql.Tx) ([]Promotion, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT
			id, code, type, value, status, valid_from, valid_until,
			usage_limit, usage_count, created_at, updated_at
		FROM promotion
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of promotions")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, filterStatus)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of promotions")
	}
	defer rows.Close()

	bunchOfPromotions := make([]Promotion, 0)
	for rows.Next() {
		data, err := r.scanPromotion(rows)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting list of promotions")
		}

		bunchOfPromotions = append(bunchOfPromotions, data)
	}

	return bunchOfPromotions, nil
}

// Update implements PromotionRepository.
func (r *promotionRepository) Update(ctx context.Context, ID int64, p Promotion, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		UPDATE promotion
		SET
			code = $2, type = $3, value = $4, status = $5,
			valid_from = $6, valid_until = $7, usage_limit = $8, updated_at = $9
		WHERE id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating promotion's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		ID, p.Code, p.Type, p.Value, p.Status,
		p.ValidFrom, p.ValidUntil, p.UsageLimit, p.UpdatedAt,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating promotion's properties")
	}

	return nil
}

// Delete implements PromotionRepository.
func (r *promotionRepository) Delete(ctx context.Context, ID int64, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		DELETE FROM promotion WHERE id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while deleting promotion's properties")
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, ID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while deleting promotion's properties")
	}

	return nil
}
