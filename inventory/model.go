package inventory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name      string    `gorm:"not null"`
	IsDeleted bool      `gorm:"not null;default:false"`
}

func (Category) TableName() string {
	return "category"
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	c.ID = ensureID(c.ID)
	return nil
}

type Location struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name      string    `gorm:"not null"`
	IsDeleted bool      `gorm:"not null;default:false"`
}

func (Location) TableName() string {
	return "location"
}

func (l *Location) BeforeCreate(*gorm.DB) error {
	l.ID = ensureID(l.ID)
	return nil
}

type Item struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name             string    `gorm:"not null"`
	Description      *string
	Quantity         int        `gorm:"not null"`
	CategoryID       *uuid.UUID `gorm:"type:varchar(36)"`
	LocationID       *uuid.UUID `gorm:"type:varchar(36)"`
	IsDeleted        bool       `gorm:"not null;default:false"`
	CreatedDate      time.Time  `gorm:"not null"`
	LastModifiedDate *time.Time
}

func (Item) TableName() string {
	return "inventory_item"
}

func (i *Item) BeforeCreate(*gorm.DB) error {
	i.ID = ensureID(i.ID)
	if i.CreatedDate.IsZero() {
		i.CreatedDate = time.Now().UTC()
	}

	return nil
}

func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}

	return id
}

type CategoryRead struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func NewCategoryRead(c Category) (CategoryRead, error) {
	return CategoryRead{ID: c.ID, Name: c.Name}, nil
}

type LocationRead struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func NewLocationRead(l Location) (LocationRead, error) {
	return LocationRead{ID: l.ID, Name: l.Name}, nil
}

type ItemRead struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Quantity    int        `json:"quantity"`
	CategoryID  *uuid.UUID `json:"category_id"`
	LocationID  *uuid.UUID `json:"location_id"`
}

func NewItemRead(i Item) (ItemRead, error) {
	return ItemRead{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Quantity:    i.Quantity,
		CategoryID:  i.CategoryID,
		LocationID:  i.LocationID,
	}, nil
}
