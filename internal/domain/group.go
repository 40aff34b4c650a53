package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Group is a cached directory group. Same invariants as User.
type Group struct {
	ID           string
	DisplayName  string
	Description  string
	MailNickname string
	CreatedAt    time.Time
	IsDeleted    bool
}

// CreateGroupRequest holds parameters for creating a new directory group.
type CreateGroupRequest struct {
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	MailNickname string `json:"mailNickname"`
}

// Validate checks that all required fields are present and non-empty.
func (r CreateGroupRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.MailNickname, validation.Required),
	)
	if err != nil {
		return ErrValidation("invalid group: %v", err)
	}
	return nil
}

// UpdateGroupRequest holds the mutable fields for a group update.
type UpdateGroupRequest struct {
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	MailNickname string `json:"mailNickname"`
}

// Validate checks that all required fields are present and non-empty.
func (r UpdateGroupRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.MailNickname, validation.Required),
	)
	if err != nil {
		return ErrValidation("invalid group: %v", err)
	}
	return nil
}
