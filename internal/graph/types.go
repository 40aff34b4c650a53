package graph

import (
	"time"

	"tenant-api/internal/domain"
)

// Wire representations of the upstream REST payloads.

type userResource struct {
	ID                string    `json:"id"`
	DisplayName       string    `json:"displayName"`
	UserPrincipalName string    `json:"userPrincipalName"`
	MailNickname      string    `json:"mailNickname"`
	CreatedDateTime   time.Time `json:"createdDateTime"`
}

type groupResource struct {
	ID              string    `json:"id"`
	DisplayName     string    `json:"displayName"`
	Description     string    `json:"description"`
	MailNickname    string    `json:"mailNickname"`
	CreatedDateTime time.Time `json:"createdDateTime"`
}

type passwordProfile struct {
	ForceChangePasswordNextSignIn bool   `json:"forceChangePasswordNextSignIn"`
	Password                      string `json:"password"`
}

type createUserPayload struct {
	AccountEnabled    bool            `json:"accountEnabled"`
	DisplayName       string          `json:"displayName"`
	UserPrincipalName string          `json:"userPrincipalName"`
	MailNickname      string          `json:"mailNickname"`
	PasswordProfile   passwordProfile `json:"passwordProfile"`
}

type updateUserPayload struct {
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	MailNickname      string `json:"mailNickname"`
}

type createGroupPayload struct {
	DisplayName     string   `json:"displayName"`
	Description     string   `json:"description"`
	MailNickname    string   `json:"mailNickname"`
	MailEnabled     bool     `json:"mailEnabled"`
	GroupTypes      []string `json:"groupTypes"`
	SecurityEnabled bool     `json:"securityEnabled"`
}

type updateGroupPayload struct {
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	MailNickname string `json:"mailNickname"`
}

type userCollection struct {
	Value    []userResource `json:"value"`
	NextLink string         `json:"@odata.nextLink"`
}

type groupCollection struct {
	Value    []groupResource `json:"value"`
	NextLink string          `json:"@odata.nextLink"`
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func userToDomain(u userResource) domain.User {
	created := u.CreatedDateTime
	if created.IsZero() {
		// The provider omits createdDateTime for some tenants.
		created = time.Now().UTC()
	}
	return domain.User{
		ID:                u.ID,
		DisplayName:       u.DisplayName,
		UserPrincipalName: u.UserPrincipalName,
		MailNickname:      u.MailNickname,
		CreatedAt:         created.UTC(),
	}
}

func groupToDomain(g groupResource) domain.Group {
	created := g.CreatedDateTime
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return domain.Group{
		ID:           g.ID,
		DisplayName:  g.DisplayName,
		Description:  g.Description,
		MailNickname: g.MailNickname,
		CreatedAt:    created.UTC(),
	}
}
