package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// User is a cached directory user. ID is the opaque upstream identifier and
// is immutable once assigned. CreatedAt is the sort/cursor key for listing.
type User struct {
	ID                string
	DisplayName       string
	UserPrincipalName string
	MailNickname      string
	CreatedAt         time.Time
	IsDeleted         bool
}

// CreateUserRequest holds parameters for creating a new directory user.
type CreateUserRequest struct {
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	MailNickname      string `json:"mailNickname"`
}

// Validate checks that all required fields are present and non-empty.
func (r CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName, validation.Required),
		validation.Field(&r.UserPrincipalName, validation.Required),
		validation.Field(&r.MailNickname, validation.Required),
	)
	if err != nil {
		return ErrValidation("invalid user: %v", err)
	}
	return nil
}

// UpdateUserRequest holds the mutable fields for a user update. All fields
// are required, matching the upstream contract.
type UpdateUserRequest struct {
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	MailNickname      string `json:"mailNickname"`
}

// Validate checks that all required fields are present and non-empty.
func (r UpdateUserRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName, validation.Required),
		validation.Field(&r.UserPrincipalName, validation.Required),
		validation.Field(&r.MailNickname, validation.Required),
	)
	if err != nil {
		return ErrValidation("invalid user: %v", err)
	}
	return nil
}
