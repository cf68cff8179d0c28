package models

type Group struct {
	Model
	Name          string              `json:"name" gorm:"type:text;uniqueIndex;not null"`
	Description   *string             `json:"description" gorm:"type:text"`
	Applications  []Application       `json:"applications,omitempty" gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE;"`
	Subscriptions []GroupSubscription `json:"subscriptions,omitempty" gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (Group) TableName() string {
	return "groups"
}

type GroupSubscription struct {
	Model
	UserID  string `json:"userId" gorm:"type:text;not null;uniqueIndex:idx_subscription_user_group"`
	GroupID string `json:"groupId" gorm:"type:text;not null;uniqueIndex:idx_subscription_user_group;index"`
	User    User   `json:"user" gorm:"foreignKey:UserID;references:ID"`
	Group   Group  `json:"group" gorm:"foreignKey:GroupID;references:ID"`
}

func (GroupSubscription) TableName() string {
	return "group_subscriptions"
}
