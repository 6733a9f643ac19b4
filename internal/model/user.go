package model

import (
	"time"
)

// Role values accepted for User.Role.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
)

// ApprovalStatus is the account approval gate applied to every user
// before they may authenticate.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Decided reports whether the status is terminal. Once an account has been
// approved or rejected the workflow exposes no further transition.
func (s ApprovalStatus) Decided() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// User stores system users with role-based access.
// Role: "employee" | "admin" | "manager"
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	// Email is the login identity; nullable so legacy accounts without one
	// still load, but unique whenever present.
	Email          *string `gorm:"uniqueIndex"`
	Phone          *string
	Role           string         `gorm:"type:varchar(20);not null;default:'employee'"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	HireDate       *time.Time
	LastLogin      *time.Time
	// ProfilePicture holds only the stored file path; the blob itself lives
	// in the file store.
	ProfilePicture *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
