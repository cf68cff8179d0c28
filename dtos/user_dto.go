// Copyright (C) 2025 timbastin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dtos

import (
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`

	Subscriptions []SubscriptionDTO   `json:"subscriptions,omitempty"`
	TestRequests  []TestRequestRefDTO `json:"testRequests,omitempty"`
}

type UserRefDTO struct {
	ID        string          `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role,omitempty"`
}

type SubscriptionDTO struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	Group     *GroupRefDTO `json:"group,omitempty"`
	User      *UserRefDTO  `json:"user,omitempty"`
}

type UserCreateRequest struct {
	Email     string            `json:"email" validate:"required,email"`
	Password  string            `json:"password" validate:"required,min=6"`
	FirstName string            `json:"firstName" validate:"required"`
	LastName  string            `json:"lastName" validate:"required"`
	Role      models.UserRole   `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	Status    models.UserStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UserPatchRequest struct {
	Email     *string            `json:"email" validate:"omitempty,email"`
	Password  *string            `json:"password" validate:"omitempty,min=6"`
	FirstName *string            `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string            `json:"lastName" validate:"omitempty,min=1"`
	Role      *models.UserRole   `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	Status    *models.UserStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UserFilter struct {
	Role   *models.UserRole
	Status *models.UserStatus
}
