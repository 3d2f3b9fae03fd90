package mocks

import (
	"context"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// MockVerificationAPI implements domain.VerificationAPI for testing.
type MockVerificationAPI struct {
	SendCodeFunc   func(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.SendResult, error)
	VerifyCodeFunc func(ctx context.Context, userID string, userType domain.UserType, destination, code string) error
	StatusFunc     func(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.OTPStatus, error)

	SendCodeCalls   int
	VerifyCodeCalls []MockVerifyCall
}

// MockVerifyCall records the arguments of one VerifyCode invocation.
type MockVerifyCall struct {
	UserID      string
	UserType    domain.UserType
	Destination string
	Code        string
}

// NewMockVerificationAPI creates a new MockVerificationAPI with default
// behaviors.
func NewMockVerificationAPI() *MockVerificationAPI {
	return &MockVerificationAPI{}
}

// SendCode records the call and delegates to SendCodeFunc.
func (m *MockVerificationAPI) SendCode(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.SendResult, error) {
	m.SendCodeCalls++
	if m.SendCodeFunc != nil {
		return m.SendCodeFunc(ctx, userID, userType, destination)
	}
	return &domain.SendResult{CooldownSeconds: 60}, nil
}

// VerifyCode records the call and delegates to VerifyCodeFunc.
func (m *MockVerificationAPI) VerifyCode(ctx context.Context, userID string, userType domain.UserType, destination, code string) error {
	m.VerifyCodeCalls = append(m.VerifyCodeCalls, MockVerifyCall{
		UserID:      userID,
		UserType:    userType,
		Destination: destination,
		Code:        code,
	})
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, userID, userType, destination, code)
	}
	// Default behavior: accept "123456" as the valid code.
	if code == "123456" {
		return nil
	}
	return domain.ErrOTPInvalid
}

// Status delegates to StatusFunc.
func (m *MockVerificationAPI) Status(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.OTPStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, userID, userType, destination)
	}
	return &domain.OTPStatus{HasActiveOTP: true, CanResend: true}, nil
}

// Compile-time interface compliance verification
var _ domain.VerificationAPI = (*MockVerificationAPI)(nil)
