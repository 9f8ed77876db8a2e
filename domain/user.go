package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleFarmer  = "farmer"
	RoleNursery = "nursery"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"column:username;size:64;uniqueIndex;not null" json:"username"`
	Email      string `gorm:"column:email;size:120;uniqueIndex;not null" json:"email"`
	Password   string `gorm:"column:password_hash;size:128;not null" json:"-"`
	Role       string `gorm:"column:role;size:20;default:farmer" json:"role"`
	IsVerified bool   `gorm:"column:is_verified;default:false" json:"is_verified"`

	// Common profile fields
	Bio      string `gorm:"column:bio;size:500" json:"bio"`
	Location string `gorm:"column:location;size:128" json:"location"`

	// Nursery specific fields
	NurseryName    string `gorm:"column:nursery_name;size:128" json:"nursery_name,omitempty"`
	OwnerName      string `gorm:"column:owner_name;size:128" json:"owner_name,omitempty"`
	ContactDetails string `gorm:"column:contact_details;size:256" json:"contact_details,omitempty"`
	PaymentMethods string `gorm:"column:payment_methods;size:256" json:"payment_methods,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
