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

package repositories

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
	*GormRepository[string, models.User]
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.User](db),
	}
}

func preloadSubscriptionGroups(db *gorm.DB) *gorm.DB {
	return db.Preload("Subscriptions", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Preload("Subscriptions.Group")
}

func (r *userRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	return user, err
}

func (r *userRepository) ReadWithSubscriptions(id string) (models.User, error) {
	var user models.User
	err := r.db.Scopes(preloadSubscriptionGroups).First(&user, "id = ?", id).Error
	return user, err
}

func (r *userRepository) ListPaged(pageInfo shared.PageInfo, search string, filter dtos.UserFilter) (shared.Paged[models.User], error) {
	query := r.db.Model(&models.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
	}

	return paginate[models.User](query, pageInfo, "created_at DESC", preloadSubscriptionGroups)
}

func (r *userRepository) ListActiveAdmins() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ? AND status = ?", models.UserRoleAdmin, models.UserStatusActive).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
