package http

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordLength = 72

// Column widths of users.login_id and users.username.
const (
	maxLoginIDLength = 20
	maxNameLength    = 100
)

type signupRequest struct {
	LoginID      string   `json:"loginId"`
	Password     string   `json:"password"`
	Name         string   `json:"name"`
	Disabilities []string `json:"disabilities"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LoginID, validation.Required, validation.Length(1, maxLoginIDLength)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, maxPasswordLength)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.Disabilities, validation.NotNil),
	)
}

type signinRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

func (r signinRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LoginID, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type updateNameRequest struct {
	Name string `json:"name"`
}

func (r updateNameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, maxNameLength)),
	)
}

// An empty list is valid and clears every tag; only a missing field is not.
type updateDisabilitiesRequest struct {
	Disabilities []string `json:"disabilities"`
}

func (r updateDisabilitiesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Disabilities, validation.NotNil),
	)
}

type signupResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type profileResponse struct {
	Name         string   `json:"name"`
	UserID       string   `json:"userId"`
	Disabilities []string `json:"disabilities"`
}

type updateNameResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

type updateDisabilitiesResponse struct {
	Message      string   `json:"message"`
	Disabilities []string `json:"disabilities"`
}

type logEntryResponse struct {
	ImagePath  string `json:"imagePath"`
	ImageCloth string `json:"imageCloth"`
}

type logsResponse struct {
	Logs []logEntryResponse `json:"logs"`
}

type reformGuideResponse struct {
	Message string `json:"message"`
	Cloth   string `json:"cloth"`
}
