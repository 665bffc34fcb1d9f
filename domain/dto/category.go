package dto

import (
	"github.com/google/uuid"
)

// === Requests ===

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Color       string `json:"color" validate:"omitempty,max=50"`
}

type UpdateCategoryRequest struct {
	Name        Optional[string] `json:"name" validate:"omitempty,min=2,max=100"`
	Description Optional[string] `json:"description" validate:"omitempty,max=500"`
	Color       Optional[string] `json:"color" validate:"omitempty,max=50"`
}

// === Responses ===

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
}
