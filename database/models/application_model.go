package models

type ApplicationStatus string

const (
	ApplicationStatusActive       ApplicationStatus = "ACTIVE"
	ApplicationStatusDiscontinued ApplicationStatus = "DISCONTINUED"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusActive, ApplicationStatusDiscontinued:
		return true
	}
	return false
}

type Application struct {
	Model
	Name        string            `json:"name" gorm:"type:text;not null;uniqueIndex:idx_application_name_group"`
	Description *string           `json:"description" gorm:"type:text"`
	Status      ApplicationStatus `json:"status" gorm:"type:text;not null;default:'ACTIVE'"`
	GroupID     string            `json:"groupId" gorm:"type:text;not null;uniqueIndex:idx_application_name_group;index"`
	Group       Group             `json:"group" gorm:"foreignKey:GroupID;references:ID"`

	// correlation with external systems
	GitlabProjectID  *string `json:"gitlabProjectId" gorm:"type:text;index"`
	GitlabProjectURL *string `json:"gitlabProjectUrl" gorm:"type:text"`
	AssetID          *string `json:"assetId" gorm:"type:text"`
	BappID           *string `json:"bappId" gorm:"type:text"`
	AvailabilityURL  *string `json:"availabilityUrl" gorm:"type:text"`

	Features     []Feature     `json:"features,omitempty" gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE;"`
	TestRequests []TestRequest `json:"testRequests,omitempty" gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (Application) TableName() string {
	return "applications"
}
