package domain

import (
	"strings"
	"time"
)

type Type string

const (
	TypeAntiGravityToys   Type = "ANTI_GRAVITY_TOYS"
	TypeCosmicFood        Type = "COSMIC_FOOD"
	TypeSpaceAccessories  Type = "SPACE_ACCESSORIES"
	TypeIntergalacticPets Type = "INTERGALACTIC_PETS"
)

// Types lists every category type in declaration order.
var Types = []Type{
	TypeAntiGravityToys,
	TypeCosmicFood,
	TypeSpaceAccessories,
	TypeIntergalacticPets,
}

// ParseType accepts a type token case-insensitively.
func ParseType(raw string) (Type, bool) {
	value := Type(strings.ToUpper(strings.TrimSpace(raw)))
	for _, t := range Types {
		if t == value {
			return t, true
		}
	}
	return "", false
}

type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Type        Type      `json:"type" gorm:"type:varchar(50);not null;uniqueIndex:ux_categories_type"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}

func (Category) TableName() string { return "categories" }
