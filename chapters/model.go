package chapters

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Zone string

const (
	ZoneLondon  Zone = "London"
	ZoneSouth   Zone = "South"
	ZoneNorth   Zone = "North"
	ZoneCentral Zone = "Central"
)

func (z Zone) Valid() bool {
	switch z {
	case ZoneLondon, ZoneSouth, ZoneNorth, ZoneCentral:
		return true
	default:
		return false
	}
}

// Chapter is a row of the chapters table.
type Chapter struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name             string    `gorm:"not null"`
	Zone             Zone
	Email            string
	CreatedDate      time.Time `gorm:"not null;index"`
	IsDeleted        bool      `gorm:"not null;default:false"`
	LastModifiedDate *time.Time
}

func (Chapter) TableName() string {
	return "chapters"
}

func (c *Chapter) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedDate.IsZero() {
		c.CreatedDate = time.Now().UTC()
	}

	return nil
}

// ChapterRead is the API representation of a chapter.
type ChapterRead struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Zone             Zone       `json:"zone"`
	CreatedDate      time.Time  `json:"created_date"`
	LastModifiedDate *time.Time `json:"last_modified_date"`
	IsDeleted        bool       `json:"is_deleted"`
}

// NewChapterRead fails for rows whose zone is not one of the known zones.
func NewChapterRead(c Chapter) (ChapterRead, error) {
	if !c.Zone.Valid() {
		return ChapterRead{}, fmt.Errorf("chapter %s has unknown zone '%s'", c.ID, c.Zone)
	}

	return ChapterRead{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Zone:             c.Zone,
		CreatedDate:      c.CreatedDate,
		LastModifiedDate: c.LastModifiedDate,
		IsDeleted:        c.IsDeleted,
	}, nil
}
