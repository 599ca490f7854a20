package models

import (
	"time"
)

// User represents an account in the lab
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Post         string    `json:"post" gorm:"size:100"`
	PasswordHash string    `json:"-" gorm:"not null"` // Password hash is not exposed in JSON
	IsAdmin      bool      `json:"isAdmin" gorm:"not null"`
	IsDirector   bool      `json:"isDirector" gorm:"not null"`
	IsOperator   bool      `json:"isOperator" gorm:"not null"` // may conduct experiments
	IsActive     bool      `json:"isActive" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
