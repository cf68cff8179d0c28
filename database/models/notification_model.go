package models

import (
	databasetypes "github.com/l3montree-dev/dashcase/database/types"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypeRequestNew          NotificationType = "request_new"
	NotificationTypeRequestStatusChange NotificationType = "request_status_change"
	NotificationTypePipelineFailed      NotificationType = "pipeline_failed"
)

type NotificationStatus string

const (
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSkipped NotificationStatus = "skipped"
)

func (s NotificationStatus) IsValid() bool {
	switch s {
	case NotificationStatusSent, NotificationStatusFailed, NotificationStatusPending, NotificationStatusSkipped:
		return true
	}
	return false
}

type NotificationLog struct {
	AppendOnlyModel
	Type       NotificationType            `json:"type" gorm:"type:text;not null;index"`
	Recipients datatypes.JSONSlice[string] `json:"recipients" gorm:"type:jsonb;not null"`
	Subject    string                      `json:"subject" gorm:"type:text;not null"`
	Body       string                      `json:"body" gorm:"type:text;not null"`
	Status     NotificationStatus          `json:"status" gorm:"type:text;not null;index"`
	Error      *string                     `json:"error" gorm:"type:text"`
	Metadata   databasetypes.JSONB         `json:"metadata" gorm:"type:jsonb"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
