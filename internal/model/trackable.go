package model

import "time"

// Trackable is implemented by every persisted entity. It exposes the
// auto-incremented primary key and the audit timestamps so that generic
// code (repository, strict import) can work without reflection.
type Trackable interface {
	GetRecordID() int
	SetRecordID(id int)
	GetAddedAt() *time.Time
	SetAddedAt(t time.Time)
	SetUpdatedAt(t time.Time)
}

// Named is implemented by entities that carry a display name (itemname).
// The strict import skips rows whose display name is blank.
type Named interface {
	DisplayName() string
}

// Tracking carries the primary key and audit timestamps shared by all
// entities. Embed it anonymously; GORM flattens the columns into the
// owning table.
type Tracking struct {
	RecordID int        `gorm:"column:recordid;primaryKey;autoIncrement" json:"recordid"`
	AddedAt  *time.Time `gorm:"column:addedat" json:"addedat"`
	// autoUpdateTime is off: the services stamp updatedat themselves so
	// imports can carry the timestamps from the file.
	UpdatedAt *time.Time `gorm:"column:updatedat;autoUpdateTime:false" json:"updatedat"`
}

func (t *Tracking) GetRecordID() int       { return t.RecordID }
func (t *Tracking) SetRecordID(id int)     { t.RecordID = id }
func (t *Tracking) GetAddedAt() *time.Time { return t.AddedAt }

func (t *Tracking) SetAddedAt(at time.Time) { t.AddedAt = &at }

func (t *Tracking) SetUpdatedAt(at time.Time) { t.UpdatedAt = &at }

// Touch stamps UpdatedAt and backfills AddedAt when the record has never
// been persisted through the normal create path (spreadsheet imports).
func (t *Tracking) Touch(now time.Time) {
	t.UpdatedAt = &now
	if t.AddedAt == nil {
		t.AddedAt = &now
	}
}
