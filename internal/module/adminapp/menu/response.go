package menu

import "time"

type PackageResponse struct {
	ID             int64     `json:"id"`
	Category       string    `json:"category"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PricePerPerson float64   `json:"price_per_person"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r *PackageResponse) PopulateFromEntity(p CateringPackage) {
	r.ID = p.ID
	r.Category = p.Category
	r.Code = p.Code
	r.Name = p.Name
	r.Description = p.Description
	r.PricePerPerson = p.PricePerPerson
	r.Active = p.Active
	r.CreatedAt = p.CreatedAt
	r.UpdatedAt = p.UpdatedAt
}

type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}
