package model

import "time"

// Log is an activity-log row. LogType is C/U/D for create/update/delete;
// OldData and NewData hold serialized before/after snapshots.
type Log struct {
	LogID          int64  `gorm:"primaryKey;autoIncrement"`
	LogName        string `gorm:"size:20;not null"`
	LogDescription string `gorm:"type:text;default:''"`
	LogType        string `gorm:"size:1;not null"`
	OldData        string `gorm:"type:text;default:''"`
	NewData        string `gorm:"type:text;default:''"`
	CreatedAt      time.Time
	CreatedBy      int64 `gorm:"not null"`
}

func (Log) TableName() string { return "logs" }
