package menu

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

type PackageRepository interface {
	Save(ctx context.Context, p CateringPackage, tx *sql.Tx) (int64, error)
	FindByID(ctx context.Context, ID int64, tx *sql.Tx) (CateringPackage, error)
	FindMany(ctx context.Context, category string, tx *sql.Tx) ([]CateringPackage, error)
	Update(ctx context.Context, ID int64, p CateringPackage, tx *sql.Tx) error
	Delete(ctx context.Context, ID int64, tx *sql.Tx) error
}

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type packageRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewPackageRepository(logger *logrus.Logger, db *sql.DB) PackageRepository {
	return &packageRepository{
		logger: logger,
		db:     db,
	}
}

// Save implements PackageRepository.
func (r *packageRepository) Save(ctx context.Context, p CateringPackage, tx *sql.Tx) (int64, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		INSERT INTO catering_package (category, code, name, description, price_per_person, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving package's properties")
	}
	defer stmt.Close()

	var id int64
	err = stmt.QueryRowContext(ctx, p.Category, p.Code, p.Name, p.Description, p.PricePerPerson, p.Active, p.CreatedAt, p.UpdatedAt).Scan(&id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving package's properties")
	}

	return id, nil
}

// FindByID implements PackageRepository.
func (r *packageRepository) FindByID(ctx context.Context, ID int64, tx *sql.Tx) (CateringPackage, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT id, category, code, name, description, price_per_person, active, created_at, updated_at
		FROM catering_package
		WHERE
			id = $1
		LIMIT 1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return CateringPackage{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting package's properties")
	}
	defer stmt.Close()

	var data CateringPackage
	err = stmt.QueryRowContext(ctx, ID).Scan(
		&data.ID, &data.Category, &data.Code, &data.Name, &data.Description,
		&data.PricePerPerson, &data.Active, &data.CreatedAt, &data.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return CateringPackage{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("package with id '%d' is not found", ID))
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return CateringPackage{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting package's properties")
	}

	return data, nil
}

// FindMany implements PackageRepository. An empty category returns every
// package.
func (r *packageRepository) FindMany(ctx context.Context, category string, tx *sql.Tx) ([]CateringPackage, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT id, category, code, name, description, price_per_person, active, created_at, updated_at
		FROM catering_package
		WHERE
			($1 = '' OR category = $1)
		ORDER BY category, code
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of package's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, category)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of package's properties")
	}
	defer rows.Close()

	packages := make([]CateringPackage, 0)
	for rows.Next() {
		var data CateringPackage
		err := rows.Scan(
			&data.ID, &data.Category, &data.Code, &data.Name, &data.Description,
			&data.PricePerPerson, &data.Active, &data.CreatedAt, &data.UpdatedAt,
		)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of package's properties")
		}
		packages = append(packages, data)
	}

	return packages, nil
}

// Update implements PackageRepository.
func (r *packageRepository) Update(ctx context.Context, ID int64, p CateringPackage, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		UPDATE catering_package
		SET category = $2, code = $3, name = $4, description = $5, price_per_person = $6, active = $7, updated_at = $8
		WHERE id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating package's properties")
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, ID, p.Category, p.Code, p.Name, p.Description, p.PricePerPerson, p.Active, p.UpdatedAt); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating package's properties")
	}

	return nil
}

// Delete implements PackageRepository.
func (r *packageRepository) Delete(ctx context.Context, ID int64, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		DELETE FROM catering_package
		WHERE id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while deleting package's properties")
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, ID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while deleting package's properties")
	}

	return nil
}
