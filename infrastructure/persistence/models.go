package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a []string stored as a JSON array.
type StringList []string

// Scan implements sql.Scanner.
func (s *StringList) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	return json.Unmarshal(data, s)
}

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// RunModel is a row of lift run history.
type RunModel struct {
	ID         string     `gorm:"column:id;primaryKey"`
	Source     string     `gorm:"column:source;index"`
	Target     string     `gorm:"column:target;index"`
	Chains     StringList `gorm:"column:chains;type:text"`
	InputRows  int        `gorm:"column:input_rows"`
	Lifted     int        `gorm:"column:lifted"`
	Unlifted   int        `gorm:"column:unlifted"`
	Status     string     `gorm:"column:status;index"`
	Error      string     `gorm:"column:error"`
	StartedAt  time.Time  `gorm:"column:started_at;index"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
}

// TableName returns the table name.
func (RunModel) TableName() string { return "lift_runs" }

// ChainFileModel records an installed chain file.
type ChainFileModel struct {
	Name        string    `gorm:"column:name;primaryKey"`
	Size        int64     `gorm:"column:size"`
	Checksum    string    `gorm:"column:checksum"`
	Source      string    `gorm:"column:source"`
	InstalledAt time.Time `gorm:"column:installed_at"`
}

// TableName returns the table name.
func (ChainFileModel) TableName() string { return "chain_files" }
