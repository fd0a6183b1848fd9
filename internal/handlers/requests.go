package handlers

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"parfumerie/internal/repository"
)

type customerRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

func (req *customerRequest) Validate() error {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required),
		validation.Field(&req.LastName, validation.Required),
		validation.Field(&req.Email, is.Email),
	)
}

func (req customerRequest) fields() repository.CustomerFields {
	return repository.CustomerFields{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      strings.TrimSpace(req.Phone),
		Street:     strings.TrimSpace(req.Street),
		PostalCode: strings.TrimSpace(req.PostalCode),
		City:       strings.TrimSpace(req.City),
	}
}

type fragranceRequest struct {
	Name        string `json:"name"`
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func (req *fragranceRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Code, validation.Required, validation.Min(1)),
	)
}

func (req fragranceRequest) fields() repository.FragranceFields {
	return repository.FragranceFields{
		Name:        req.Name,
		Code:        req.Code,
		Description: strings.TrimSpace(req.Description),
	}
}

type compositionLineRequest struct {
	FragranceID uint    `json:"fragrance_id"`
	Amount      float64 `json:"amount"`
}

// Validate has a value receiver so slices of lines are validated element by
// element inside compositionCreateRequest.
func (line compositionLineRequest) Validate() error {
	return validation.ValidateStruct(
		&line,
		validation.Field(&line.FragranceID, validation.Required, validation.Min(uint(1))),
		validation.Field(&line.Amount, validation.Required, validation.Min(0.0)),
	)
}

type compositionCreateRequest struct {
	CustomerID  uint                     `json:"customer_id"`
	Name        string                   `json:"name"`
	TotalAmount float64                  `json:"total_amount"`
	Details     []compositionLineRequest `json:"details"`
}

func (req *compositionCreateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CustomerID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TotalAmount, validation.Required, validation.Min(0.0)),
		validation.Field(&req.Details),
	)
}

func (req compositionCreateRequest) input() repository.NewComposition {
	details := make([]repository.NewDetail, 0, len(req.Details))
	for _, line := range req.Details {
		details = append(details, repository.NewDetail{FragranceID: line.FragranceID, Amount: line.Amount})
	}
	return repository.NewComposition{
		CustomerID:  req.CustomerID,
		Name:        strings.TrimSpace(req.Name),
		TotalAmount: req.TotalAmount,
		Details:     details,
	}
}

type compositionUpdateRequest struct {
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
}

func (req *compositionUpdateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TotalAmount, validation.Required, validation.Min(0.0)),
	)
}

type detailAmountRequest struct {
	Amount float64 `json:"amount"`
}

func (req *detailAmountRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.Min(0.0)),
	)
}
