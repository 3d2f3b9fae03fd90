package domain

import "time"

// UserType identifies which account family an operation targets.
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeTeacher UserType = "teacher"
	UserTypeAdmin   UserType = "admin"
)

// Session represents the authenticated user for the lifetime of the process.
// Writes are always full replacements, never field-level mutation.
type Session struct {
	UserID      string
	Role        UserType
	Token       string
	Name        string
	Email       string
	PhoneNumber string
	ExpiresAt   time.Time
}

// CredentialsDraft holds in-progress login input.
type CredentialsDraft struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfileDraft holds in-progress registration input. PhoneNumber is always
// the concatenation of CountryCode and the national number; use the setters
// so the invariant holds whenever either part changes.
type ProfileDraft struct {
	Name            string
	Email           string
	Password        string
	CountryCode     string
	nationalNumber  string
	PhoneNumber     string
	Country         string
	CityOrTown      string
	ProfilePhotoURL string
}

// SetCountryCode updates the country code and recomputes PhoneNumber.
func (d *ProfileDraft) SetCountryCode(code string) {
	d.CountryCode = code
	d.PhoneNumber = d.CountryCode + d.nationalNumber
}

// SetNationalNumber updates the national part and recomputes PhoneNumber.
func (d *ProfileDraft) SetNationalNumber(number string) {
	d.nationalNumber = number
	d.PhoneNumber = d.CountryCode + d.nationalNumber
}

// SetPhoneNumber installs a full number directly, bypassing the
// country-code split. Used when the caller already holds a complete
// E.164 number.
func (d *ProfileDraft) SetPhoneNumber(number string) {
	d.CountryCode = ""
	d.nationalNumber = number
	d.PhoneNumber = number
}

// HasPhoneNumber reports whether the draft carries more than a bare
// country-code placeholder.
func (d *ProfileDraft) HasPhoneNumber() bool {
	return d.PhoneNumber != "" && d.PhoneNumber != d.CountryCode
}

// PendingVerification is created when the backend signals that OTP
// verification is required, and discarded on success or when the user
// goes back to change the destination.
type PendingVerification struct {
	UserID       string
	UserType     UserType
	Destination  string // phone number or email address
	PendingLogin *CredentialsDraft
}

// User is the server-side account object as returned by the backend.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Country         string `json:"country"`
	CityOrTown      string `json:"cityOrTown"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
	Approved        bool   `json:"approved"`
	PhoneVerified   bool   `json:"phoneVerified"`
}

// AuthResult is the outcome of a completed authentication round trip.
type AuthResult struct {
	User  *User
	Role  UserType
	Token string
}

// LoginChallenge carries the verification branch of a login response.
// It is a control-flow signal, not a failure.
type LoginChallenge struct {
	UserID      string
	UserType    UserType
	PhoneNumber string
}

// SendResult is the outcome of a send-code request.
type SendResult struct {
	CooldownSeconds int
}

// OTPStatus mirrors the backend's verification status endpoint.
type OTPStatus struct {
	HasActiveOTP    bool `json:"hasActiveOTP"`
	CanResend       bool `json:"canResend"`
	CooldownSeconds int  `json:"cooldownSeconds"`
}

// Post is a tutoring listing.
type Post struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"ownerId"`
	OwnerType   string  `json:"ownerType"`
	Title       string  `json:"title"`
	Subject     string  `json:"subject"`
	Description string  `json:"description"`
	HourlyRate  float64 `json:"hourlyRate"`
	Location    string  `json:"location"`
	Approved    bool    `json:"approved"`
}

// PostDraft carries the editable fields of a post.
type PostDraft struct {
	Title       string  `json:"title"`
	Subject     string  `json:"subject"`
	Description string  `json:"description"`
	HourlyRate  float64 `json:"hourlyRate"`
	Location    string  `json:"location"`
}

// PageRequest selects one page of an admin table.
type PageRequest struct {
	Page   int
	Limit  int
	Search string
}

// UserPage is one page of account rows.
type UserPage struct {
	Items []User `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// PostPage is one page of listings.
type PostPage struct {
	Items []Post `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// AnalyticsSummary is the admin dashboard aggregate.
type AnalyticsSummary struct {
	TotalStudents   int              `json:"totalStudents"`
	TotalTeachers   int              `json:"totalTeachers"`
	PendingTeachers int              `json:"pendingTeachers"`
	TotalPosts      int              `json:"totalPosts"`
	SignupsByDay    []AnalyticsPoint `json:"signupsByDay"`
}

// AnalyticsPoint is one bucket of a dashboard series.
type AnalyticsPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// UploadResult is the media host's response to a successful upload.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
