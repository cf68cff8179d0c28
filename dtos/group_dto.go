package dtos

import "time"

type GroupRefDTO struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	Applications []ApplicationDTO `json:"applications,omitempty"`
}

type GroupDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Applications  []ApplicationDTO  `json:"applications,omitempty"`
	Subscriptions []SubscriptionDTO `json:"subscriptions,omitempty"`
	Count         Counts            `json:"_count,omitempty"`
}

type GroupCreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type GroupPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}
