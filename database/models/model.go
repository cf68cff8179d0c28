package models

import (
	"time"

	"github.com/lucsky/cuid"
	"gorm.io/gorm"
)

// NewID returns a collision resistant, roughly sortable identifier
func NewID() string {
	return cuid.New()
}

type Model struct {
	ID        string    `gorm:"primarykey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}

func (m Model) GetID() string {
	return m.ID
}

// AppendOnlyModel is used by records which are never updated after creation
type AppendOnlyModel struct {
	ID        string    `gorm:"primarykey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *AppendOnlyModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}

func (m AppendOnlyModel) GetID() string {
	return m.ID
}
