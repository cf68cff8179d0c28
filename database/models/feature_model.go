package models

type FeatureStatus string

const (
	FeatureStatusPlanned       FeatureStatus = "PLANNED"
	FeatureStatusInDevelopment FeatureStatus = "IN_DEVELOPMENT"
	FeatureStatusProductive    FeatureStatus = "PRODUCTIVE"
)

func (s FeatureStatus) IsValid() bool {
	switch s {
	case FeatureStatusPlanned, FeatureStatusInDevelopment, FeatureStatusProductive:
		return true
	}
	return false
}

type Feature struct {
	Model
	Name            string        `json:"name" gorm:"type:text;not null;uniqueIndex:idx_feature_name_application"`
	Description     *string       `json:"description" gorm:"type:text"`
	FeatureFilePath *string       `json:"featureFilePath" gorm:"type:text"`
	Status          FeatureStatus `json:"status" gorm:"type:text;not null;default:'PLANNED'"`
	ApplicationID   string        `json:"applicationId" gorm:"type:text;not null;uniqueIndex:idx_feature_name_application;index"`
	Application     Application   `json:"application" gorm:"foreignKey:ApplicationID;references:ID"`
	TestCases       []TestCase    `json:"testCases,omitempty" gorm:"foreignKey:FeatureID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (Feature) TableName() string {
	return "features"
}
