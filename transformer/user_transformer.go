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

package transformer

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/utils"
)

func UserModelToDTO(user models.User) dtos.UserDTO {
	var subscriptions []dtos.SubscriptionDTO
	if user.Subscriptions != nil {
		subscriptions = utils.Map(user.Subscriptions, SubscriptionModelToDTO)
	}
	return dtos.UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          user.Role,
		Status:        user.Status,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		Subscriptions: subscriptions,
	}
}

func UserModelToRefDTO(user models.User) dtos.UserRefDTO {
	return dtos.UserRefDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

func SubscriptionModelToDTO(subscription models.GroupSubscription) dtos.SubscriptionDTO {
	dto := dtos.SubscriptionDTO{
		ID:        subscription.ID,
		CreatedAt: subscription.CreatedAt,
	}
	if subscription.Group.ID != "" {
		dto.Group = utils.Ptr(GroupModelToRefDTO(subscription.Group))
	}
	if subscription.User.ID != "" {
		user := UserModelToRefDTO(subscription.User)
		user.Role = subscription.User.Role
		dto.User = &user
	}
	return dto
}

func UserCreateRequestToModel(req dtos.UserCreateRequest, passwordHash string) models.User {
	role := req.Role
	if role == "" {
		role = models.UserRoleUser
	}
	status := req.Status
	if status == "" {
		status = models.UserStatusActive
	}
	return models.User{
		Email:        models.NormalizeEmail(req.Email),
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Status:       status,
	}
}

// ApplyUserPatchRequestToModel applies everything except the password, which needs hashing first.
func ApplyUserPatchRequestToModel(req dtos.UserPatchRequest, user *models.User) bool {
	updated := false
	if req.Email != nil {
		user.Email = models.NormalizeEmail(*req.Email)
		updated = true
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
		updated = true
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
		updated = true
	}
	if req.Role != nil {
		user.Role = *req.Role
		updated = true
	}
	if req.Status != nil {
		user.Status = *req.Status
		updated = true
	}
	return updated
}
