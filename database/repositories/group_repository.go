package repositories

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
	*GormRepository[string, models.Group]
}

func NewGroupRepository(db *gorm.DB) *groupRepository {
	return &groupRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.Group](db),
	}
}

func (r *groupRepository) FindByName(name string) (models.Group, error) {
	var group models.Group
	err := r.db.Where("name = ?", name).First(&group).Error
	return group, err
}

func (r *groupRepository) ReadWithDetails(id string) (models.Group, error) {
	var group models.Group
	err := r.db.Preload("Applications", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).Preload("Subscriptions", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Preload("Subscriptions.User").First(&group, "id = ?", id).Error
	return group, err
}

func (r *groupRepository) ListPaged(pageInfo shared.PageInfo, search string) (shared.Paged[models.Group], error) {
	query := r.db.Model(&models.Group{})
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", pattern, pattern)
	}

	return paginate[models.Group](query, pageInfo, "name ASC", func(db *gorm.DB) *gorm.DB {
		return db.Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.ApplicationStatusActive).Order("name ASC")
		})
	})
}

func (r *groupRepository) Counts(groupIDs []string) (map[string]dtos.Counts, error) {
	return collectCounts(r.db, groupIDs,
		relationCount{key: "applications", model: &models.Application{}, column: "group_id"},
		relationCount{key: "subscriptions", model: &models.GroupSubscription{}, column: "group_id"},
	)
}

func (r *groupRepository) HasApplications(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Where("group_id = ?", id).Count(&count).Error
	return count > 0, err
}
