package entity

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Doctor holds the clinician identity plus a set of free-text working-hour
// ranges ("09:00-12:00"). The ranges feed the AM/PM filter endpoints only;
// slot-grid availability is computed from appointments, not from this field.
type Doctor struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Specialty      string         `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"type:text;not null" json:"-"`
	Phone          string         `gorm:"type:varchar(20)" json:"phone"`
	AvailableTimes datatypes.JSON `gorm:"type:jsonb" json:"available_times"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// AvailableTimeRanges decodes the JSON column into its string ranges.
// Unparseable content yields an empty set rather than an error.
func (d *Doctor) AvailableTimeRanges() []string {
	if len(d.AvailableTimes) == 0 {
		return nil
	}
	var ranges []string
	if err := json.Unmarshal(d.AvailableTimes, &ranges); err != nil {
		return nil
	}
	return ranges
}
