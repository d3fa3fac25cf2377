package menu

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type PackageUseCase interface {
	CreatePackage(ctx context.Context, req CreatePackageRequest) (PackageResponse, error)
	GetPackage(ctx context.Context, ID int64) (PackageResponse, error)
	ListPackages(ctx context.Context, category string) (ListPackagesResponse, error)
	UpdatePackage(ctx context.Context, ID int64, req UpdatePackageRequest) (PackageResponse, error)
	DeletePackage(ctx context.Context, ID int64) error
}

type packageUseCase struct {
	logger            *logrus.Logger
	timeout           time.Duration
	packageRepository PackageRepository
}

type PackageUseCaseProperty struct {
	Logger            *logrus.Logger
	Timeout           time.Duration
	PackageRepository PackageRepository
}

func NewPackageUseCase(props PackageUseCaseProperty) PackageUseCase {
	return &packageUseCase{
		logger:            props.Logger,
		timeout:           props.Timeout,
		packageRepository: props.PackageRepository,
	}
}

// CreatePackage implements PackageUseCase.
func (u *packageUseCase) CreatePackage(ctx context.Context, req CreatePackageRequest) (PackageResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	now := time.Now()

	p := CateringPackage{
		Category:       req.Category,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		PricePerPerson: req.PricePerPerson,
		Active:         req.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ID, err := u.packageRepository.Save(ctx, p, nil)
	if err != nil {
		return PackageResponse{}, err
	}
	p.ID = ID

	resp := PackageResponse{}
	resp.PopulateFromEntity(p)

	return resp, nil
}

// GetPackage implements PackageUseCase.
func (u *packageUseCase) GetPackage(ctx context.Context, ID int64) (PackageResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.packageRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return PackageResponse{}, err
	}

	resp := PackageResponse{}
	resp.PopulateFromEntity(p)

	return resp, nil
}

// ListPackages implements PackageUseCase.
func (u *packageUseCase) ListPackages(ctx context.Context, category string) (ListPackagesResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	bunchOfPackages, err := u.packageRepository.FindMany(ctx, category, nil)
	if err != nil {
		return ListPackagesResponse{}, err
	}

	packages := make([]PackageResponse, 0, len(bunchOfPackages))
	for _, p := range bunchOfPackages {
		resp := PackageResponse{}
		resp.PopulateFromEntity(p)
		packages = append(packages, resp)
	}

	return ListPackagesResponse{Packages: packages}, nil
}

// UpdatePackage implements PackageUseCase.
func (u *packageUseCase) UpdatePackage(ctx context.Context, ID int64, req UpdatePackageRequest) (PackageResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.packageRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return PackageResponse{}, err
	}

	p.Category = req.Category
	p.Code = req.Code
	p.Name = req.Name
	p.Description = req.Description
	p.PricePerPerson = req.PricePerPerson
	p.Active = req.Active
	p.UpdatedAt = time.Now()

	if err := u.packageRepository.Update(ctx, ID, p, nil); err != nil {
		return PackageResponse{}, err
	}

	resp := PackageResponse{}
	resp.PopulateFromEntity(p)

	return resp, nil
}

// DeletePackage implements PackageUseCase.
func (u *packageUseCase) DeletePackage(ctx context.Context, ID int64) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.packageRepository.FindByID(ctx, ID, nil); err != nil {
		return err
	}

	return u.packageRepository.Delete(ctx, ID, nil)
}
