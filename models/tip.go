package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TipCategory struct {
	gorm.Model
	Name        string `json:"name" gorm:"type:VARCHAR(100);uniqueIndex;not null"`
	Slug        string `json:"slug" gorm:"type:VARCHAR(100);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:TEXT"`
	Icon        string `json:"icon" gorm:"type:VARCHAR(50)"`
}

// RecyclingTip is a community tip post. Tags is a JSON string array.
// Deletes are hard, same as items: a soft-deleted tip would pin its slug
// and leave orphaned favorites behind.
type RecyclingTip struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Title      string         `json:"title" gorm:"type:VARCHAR(200);not null"`
	Slug       string         `json:"slug" gorm:"type:VARCHAR(200);uniqueIndex;not null"`
	Content    string         `json:"content" gorm:"type:TEXT;not null"`
	Tags       datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	CategoryID uint           `json:"category_id" gorm:"not null;index"`
	AuthorID   uint           `json:"author_id" gorm:"not null;index"`
	Image      string         `json:"image" gorm:"type:VARCHAR(255)"`
	IsFeatured bool           `json:"is_featured" gorm:"default:false"`
	Views      int64          `json:"views" gorm:"default:0"`

	Category TipCategory `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Author   User        `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// FavoriteTip keys at most one favorite per (user, tip).
type FavoriteTip struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_tip"`
	TipID  uint `json:"tip_id" gorm:"not null;uniqueIndex:idx_user_tip"`

	User User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tip  RecyclingTip `json:"tip" gorm:"foreignKey:TipID;constraint:OnDelete:CASCADE"`
}
