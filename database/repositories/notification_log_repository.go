package repositories

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"gorm.io/gorm"
)

type notificationLogRepository struct {
	db *gorm.DB
	*GormRepository[string, models.NotificationLog]
}

func NewNotificationLogRepository(db *gorm.DB) *notificationLogRepository {
	return &notificationLogRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.NotificationLog](db),
	}
}

func (r *notificationLogRepository) ListPaged(pageInfo shared.PageInfo, filter dtos.NotificationLogFilter) (shared.Paged[models.NotificationLog], error) {
	query := r.db.Model(&models.NotificationLog{})
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return paginate[models.NotificationLog](query, pageInfo, "created_at DESC")
}
