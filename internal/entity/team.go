package entity

import (
	"time"

	"gorm.io/gorm"
)

// Team is a tracked team used for news scraping and name matching.
type Team struct {
	ID           uint           `gorm:"primaryKey"`
	Sport        string         `gorm:"type:varchar(20);not null"`
	Name         string         `gorm:"not null"`
	Abbreviation string         `gorm:"type:varchar(10)"`
	EspnID       string         `gorm:"type:varchar(20)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Team model.
func (Team) TableName() string {
	return "teams"
}
