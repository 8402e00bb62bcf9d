package storage

import "time"

// ArrestLogModel is the GORM model for the arrest_logs table
type ArrestLogModel struct {
	Counters             map[string]int `gorm:"serializer:json;not null"`
	CreatedAt            time.Time
	Events               []ArrestEventModel `gorm:"foreignKey:LogID"`
	ID                   string             `gorm:"primaryKey"`
	Outcome              string             `gorm:"not null;default:'';check:outcome IN ('','Incomplete','ROSC','Deceased')"`
	StartedAt            time.Time          `gorm:"not null;index:idx_started_at"`
	TotalDurationSeconds float64            `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (ArrestLogModel) TableName() string { return "arrest_logs" }

// ArrestEventModel is the GORM model for the arrest_events table
type ArrestEventModel struct {
	Category         string    `gorm:"not null"`
	ID               string    `gorm:"primaryKey"`
	LogID            string    `gorm:"not null;index:idx_log_position"`
	Message          string    `gorm:"not null"`
	Position         int       `gorm:"not null;index:idx_log_position"`
	SessionStartedAt time.Time `gorm:"not null"`
	TimestampSeconds float64   `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ArrestEventModel) TableName() string { return "arrest_events" }
