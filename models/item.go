package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ConditionNew    = "new"
	ConditionUsed   = "used"
	ConditionRefurb = "refurb"

	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusCompleted = "completed"
)

var ConditionChoices = []string{ConditionNew, ConditionUsed, ConditionRefurb}
var StatusChoices = []string{StatusAvailable, StatusReserved, StatusCompleted}

type Category struct {
	gorm.Model
	Name string `json:"name" gorm:"type:VARCHAR(100);uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"type:VARCHAR(120);uniqueIndex;not null"`
}

// Item is a giveaway/trade listing. Slug is derived from the title on
// create and globally unique. Deletes are hard: there is no undelete
// surface, and a soft-deleted row would keep holding the slug.
type Item struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title" gorm:"type:VARCHAR(200);not null"`
	Slug        string    `json:"slug" gorm:"type:VARCHAR(220);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:TEXT"`
	OwnerID     uint      `json:"owner_id" gorm:"not null;index"`
	CategoryID  *uint     `json:"category_id" gorm:"index"`
	Location    string    `json:"location" gorm:"type:VARCHAR(150)"`
	Condition   string    `json:"condition" gorm:"type:VARCHAR(10);default:used"`
	Status      string    `json:"status" gorm:"type:VARCHAR(12);default:available;index"`
	IsFree      bool      `json:"is_free" gorm:"default:true"`
	Views       int64     `json:"views" gorm:"default:0"`

	Owner    User        `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Category *Category   `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Images   []ItemImage `json:"images" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

type ItemImage struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ItemID     uint      `json:"-" gorm:"not null;index"`
	URL        string    `json:"url" gorm:"type:VARCHAR(255);not null"`
	IsPrimary  bool      `json:"is_primary" gorm:"default:false"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func ValidCondition(c string) bool {
	for _, v := range ConditionChoices {
		if v == c {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool {
	for _, v := range StatusChoices {
		if v == s {
			return true
		}
	}
	return false
}
