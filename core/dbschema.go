package core

import (
	"time"
)

// DocumentRecord is one stored document.
// Collection is the parent collection path, indexed so that a collection snapshot is a single scan.
type DocumentRecord struct {
	Path       string    `json:"path" gorm:"primaryKey;type:text"`
	Collection string    `json:"collection" gorm:"type:text;index"`
	Payload    string    `json:"payload" gorm:"type:json;not null"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate      time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

func (DocumentRecord) TableName() string {
	return "documents"
}

func (r DocumentRecord) ToDocument() Document {
	return Document{
		Path:  r.Path,
		Data:  []byte(r.Payload),
		CDate: r.CDate,
		MDate: r.MDate,
	}
}
