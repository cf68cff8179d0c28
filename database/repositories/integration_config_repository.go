package repositories

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type integrationConfigRepository struct {
	db *gorm.DB
	*GormRepository[string, models.IntegrationConfig]
}

func NewIntegrationConfigRepository(db *gorm.DB) *integrationConfigRepository {
	return &integrationConfigRepository{
		db:             db,
		GormRepository: newGormRepository[string, models.IntegrationConfig](db),
	}
}

func (r *integrationConfigRepository) FindByType(integrationType models.IntegrationType) (models.IntegrationConfig, error) {
	var config models.IntegrationConfig
	err := r.db.Where("type = ?", integrationType).First(&config).Error
	return config, err
}

func (r *integrationConfigRepository) UpsertByType(config *models.IntegrationConfig) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"config", "is_active", "updated_at"}),
	}).Create(config).Error
	if err != nil {
		return err
	}
	// the id of an updated row is the one stored before
	stored, err := r.FindByType(config.Type)
	if err != nil {
		return err
	}
	*config = stored
	return nil
}

func (r *integrationConfigRepository) DeleteByType(integrationType models.IntegrationType) error {
	res := r.db.Where("type = ?", integrationType).Delete(&models.IntegrationConfig{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
