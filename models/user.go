package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"type:VARCHAR(150);uniqueIndex;not null"`
	Email     string `json:"email" gorm:"type:VARCHAR(254);uniqueIndex;not null"`
	Password  string `json:"-"`
	FirstName string `json:"first_name" gorm:"type:VARCHAR(30)"`
	LastName  string `json:"last_name" gorm:"type:VARCHAR(30)"`
	Role      string `json:"role" gorm:"type:VARCHAR(20);default:user"`
	GoogleID  *string `json:"-" gorm:"uniqueIndex"`

	Profile UserProfile `json:"profile" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserProfile is the 1-1 profile row created together with the user.
type UserProfile struct {
	gorm.Model
	UserID   uint   `json:"-" gorm:"uniqueIndex;not null"`
	Bio      string `json:"bio" gorm:"type:TEXT"`
	Location string `json:"location" gorm:"type:VARCHAR(150)"`
	Phone    string `json:"phone" gorm:"type:VARCHAR(20)"`
	Avatar   string `json:"avatar" gorm:"type:VARCHAR(255)"`
}
