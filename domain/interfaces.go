package domain

import (
	"context"
	"io"
)

// AuthAPI covers the login and registration endpoints for one user type.
type AuthAPI interface {
	// Login returns either a completed result or a verification challenge.
	// Exactly one of the two is non-nil on success.
	Login(ctx context.Context, userType UserType, email, password string) (*AuthResult, *LoginChallenge, error)
	// Register returns a challenge when the backend requires OTP
	// verification, or a completed result on the legacy direct path.
	Register(ctx context.Context, userType UserType, draft *ProfileDraft) (*AuthResult, *LoginChallenge, error)
	// CompleteRegistration finalizes an account whose destination was
	// just verified and returns the profile plus a token.
	CompleteRegistration(ctx context.Context, userType UserType, userID string) (*AuthResult, error)
}

// VerificationAPI covers the OTP endpoints for a (userId, userType,
// destination) tuple.
type VerificationAPI interface {
	SendCode(ctx context.Context, userID string, userType UserType, destination string) (*SendResult, error)
	VerifyCode(ctx context.Context, userID string, userType UserType, destination, code string) error
	Status(ctx context.Context, userID string, userType UserType, destination string) (*OTPStatus, error)
}

// PasswordAPI covers the password reset flow.
type PasswordAPI interface {
	ForgotPassword(ctx context.Context, email string, userType UserType) (*SendResult, error)
	ResetPassword(ctx context.Context, email string, userType UserType, code, newPassword string) error
}

// PostAPI covers listing CRUD.
type PostAPI interface {
	CreatePost(ctx context.Context, draft *PostDraft) (*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	ListPosts(ctx context.Context, req PageRequest) (*PostPage, error)
	UpdatePost(ctx context.Context, id string, draft *PostDraft) (*Post, error)
	DeletePost(ctx context.Context, id string) error
}

// AdminAPI covers the back-office tables and workflows.
type AdminAPI interface {
	ListStudents(ctx context.Context, req PageRequest) (*UserPage, error)
	ListTeachers(ctx context.Context, req PageRequest) (*UserPage, error)
	ApproveTeacher(ctx context.Context, teacherID string) error
	Analytics(ctx context.Context) (*AnalyticsSummary, error)
}

// MediaAPI uploads images to the third-party media host by way of the
// backend. Implementations must run the client-local size and type gate
// before issuing any network call.
type MediaAPI interface {
	UploadImage(ctx context.Context, filename string, r io.Reader, size int64, folder string) (*UploadResult, error)
}

// SessionStore holds the process-wide session.
type SessionStore interface {
	Set(s *Session)
	Current() (*Session, bool)
	Clear()
}
