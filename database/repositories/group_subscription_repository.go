package repositories

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"gorm.io/gorm"
)

type groupSubscriptionRepository struct {
	db *gorm.DB
	*GormRepository[string, models.GroupSubscription]
}

func NewGroupSubscriptionRepository(db *gorm.DB) *groupSubscriptionRepository {
	return &groupSubscriptionRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.GroupSubscription](db),
	}
}

func (r *groupSubscriptionRepository) FindByUserAndGroup(userID, groupID string) (models.GroupSubscription, error) {
	var subscription models.GroupSubscription
	err := r.db.Where("user_id = ? AND group_id = ?", userID, groupID).First(&subscription).Error
	return subscription, err
}

func (r *groupSubscriptionRepository) ListByUser(userID string) ([]models.GroupSubscription, error) {
	var subscriptions []models.GroupSubscription
	err := r.db.Preload("Group").Preload("Group.Applications", func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", models.ApplicationStatusActive).Order("name ASC")
	}).Where("user_id = ?", userID).Order("created_at ASC").Find(&subscriptions).Error
	return subscriptions, err
}

func (r *groupSubscriptionRepository) ListByGroup(groupID string) ([]models.GroupSubscription, error) {
	var subscriptions []models.GroupSubscription
	err := r.db.Preload("User").Where("group_id = ?", groupID).Order("created_at ASC").Find(&subscriptions).Error
	return subscriptions, err
}

func (r *groupSubscriptionRepository) ListActiveSubscriberEmails(groupID string) ([]string, error) {
	var emails []string
	err := r.db.Model(&models.GroupSubscription{}).
		Joins("JOIN users ON users.id = group_subscriptions.user_id").
		Where("group_subscriptions.group_id = ? AND users.status = ?", groupID, models.UserStatusActive).
		Order("group_subscriptions.created_at ASC").
		Pluck("users.email", &emails).Error
	return emails, err
}
