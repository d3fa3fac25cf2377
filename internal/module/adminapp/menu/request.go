package menu

type CreatePackageRequest struct {
	Category       string  `json:"category" validate:"oneof=breakfast lunch snack"`
	Code           string  `json:"code" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	PricePerPerson float64 `json:"price_per_person" validate:"required,gt=0"`
	Active         bool    `json:"active"`
}

type UpdatePackageRequest struct {
	Category       string  `json:"category" validate:"oneof=breakfast lunch snack"`
	Code           string  `json:"code" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	PricePerPerson float64 `json:"price_per_person" validate:"required,gt=0"`
	Active         bool    `json:"active"`
}
