package models

import (
	"gorm.io/datatypes"
)

type TestRequestStatus string

const (
	TestRequestStatusNew         TestRequestStatus = "NEW"
	TestRequestStatusInAnalysis  TestRequestStatus = "IN_ANALYSIS"
	TestRequestStatusApproved    TestRequestStatus = "APPROVED"
	TestRequestStatusRejected    TestRequestStatus = "REJECTED"
	TestRequestStatusImplemented TestRequestStatus = "IMPLEMENTED"
)

func (s TestRequestStatus) IsValid() bool {
	switch s {
	case TestRequestStatusNew, TestRequestStatusInAnalysis, TestRequestStatusApproved, TestRequestStatusRejected, TestRequestStatusImplemented:
		return true
	}
	return false
}

// Label is the human readable form used in notification mails
func (s TestRequestStatus) Label() string {
	switch s {
	case TestRequestStatusNew:
		return "New"
	case TestRequestStatusInAnalysis:
		return "In analysis"
	case TestRequestStatusApproved:
		return "Approved"
	case TestRequestStatusRejected:
		return "Rejected"
	case TestRequestStatusImplemented:
		return "Implemented"
	}
	return string(s)
}

type TestRequestType string

const (
	TestRequestTypeFront TestRequestType = "FRONT"
	TestRequestTypeAPI   TestRequestType = "API"
)

func (t TestRequestType) IsValid() bool {
	switch t {
	case TestRequestTypeFront, TestRequestTypeAPI:
		return true
	}
	return false
}

type TestRequest struct {
	Model
	Title       string            `json:"title" gorm:"type:text;not null"`
	Description string            `json:"description" gorm:"type:text;not null"`
	Status      TestRequestStatus `json:"status" gorm:"type:text;not null;default:'NEW';index"`
	Type        TestRequestType   `json:"type" gorm:"type:text;not null;default:'FRONT'"`

	Environment *string                     `json:"environment" gorm:"type:text"`
	HasAuth     bool                        `json:"hasAuth" gorm:"not null;default:false"`
	AuthType    *string                     `json:"authType" gorm:"type:text"`
	AuthUsers   datatypes.JSONSlice[string] `json:"authUsers" gorm:"type:jsonb"`
	FrontPlan   datatypes.JSON              `json:"frontPlan" gorm:"type:jsonb"`
	APIPlan     datatypes.JSON              `json:"apiPlan" gorm:"column:api_plan;type:jsonb"`

	ApplicationID string      `json:"applicationId" gorm:"type:text;not null;index"`
	Application   Application `json:"application" gorm:"foreignKey:ApplicationID;references:ID"`
	RequesterID   string      `json:"requesterId" gorm:"type:text;not null;index"`
	Requester     User        `json:"requester" gorm:"foreignKey:RequesterID;references:ID;constraint:OnDelete:RESTRICT;"`
	AssigneeID    *string     `json:"assigneeId" gorm:"type:text"`
	Assignee      *User       `json:"assignee" gorm:"foreignKey:AssigneeID;references:ID;constraint:OnDelete:SET NULL;"`

	AzureWorkItemID  *string `json:"azureWorkItemId" gorm:"type:text"`
	AzureWorkItemURL *string `json:"azureWorkItemUrl" gorm:"type:text"`
	AdditionalNotes  *string `json:"additionalNotes" gorm:"type:text"`

	GeneratedTestCaseID *string   `json:"generatedTestCaseId" gorm:"type:text;uniqueIndex"`
	GeneratedTestCase   *TestCase `json:"generatedTestCase" gorm:"foreignKey:GeneratedTestCaseID;references:ID;constraint:OnDelete:SET NULL;"`
}

func (TestRequest) TableName() string {
	return "test_requests"
}
