package mocks

import (
	"context"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// MockAuthAPI implements domain.AuthAPI for testing.
type MockAuthAPI struct {
	LoginFunc                func(ctx context.Context, userType domain.UserType, email, password string) (*domain.AuthResult, *domain.LoginChallenge, error)
	RegisterFunc             func(ctx context.Context, userType domain.UserType, draft *domain.ProfileDraft) (*domain.AuthResult, *domain.LoginChallenge, error)
	CompleteRegistrationFunc func(ctx context.Context, userType domain.UserType, userID string) (*domain.AuthResult, error)

	LoginCalls                []MockLoginCall
	RegisterCalls             int
	CompleteRegistrationCalls []string
}

// MockLoginCall records the arguments of one Login invocation.
type MockLoginCall struct {
	UserType domain.UserType
	Email    string
	Password string
}

// NewMockAuthAPI creates a new MockAuthAPI with default behaviors.
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{}
}

// Login records the call and delegates to LoginFunc.
func (m *MockAuthAPI) Login(ctx context.Context, userType domain.UserType, email, password string) (*domain.AuthResult, *domain.LoginChallenge, error) {
	m.LoginCalls = append(m.LoginCalls, MockLoginCall{UserType: userType, Email: email, Password: password})
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, userType, email, password)
	}
	// Default behavior: succeed with a minimal account.
	return &domain.AuthResult{
		User:  &domain.User{ID: "U1", Email: email},
		Role:  userType,
		Token: "test-token",
	}, nil, nil
}

// Register records the call and delegates to RegisterFunc.
func (m *MockAuthAPI) Register(ctx context.Context, userType domain.UserType, draft *domain.ProfileDraft) (*domain.AuthResult, *domain.LoginChallenge, error) {
	m.RegisterCalls++
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, userType, draft)
	}
	return &domain.AuthResult{
		User:  &domain.User{ID: "U1", Name: draft.Name, Email: draft.Email, PhoneNumber: draft.PhoneNumber},
		Role:  userType,
		Token: "test-token",
	}, nil, nil
}

// CompleteRegistration records the call and delegates.
func (m *MockAuthAPI) CompleteRegistration(ctx context.Context, userType domain.UserType, userID string) (*domain.AuthResult, error) {
	m.CompleteRegistrationCalls = append(m.CompleteRegistrationCalls, userID)
	if m.CompleteRegistrationFunc != nil {
		return m.CompleteRegistrationFunc(ctx, userType, userID)
	}
	return &domain.AuthResult{
		User:  &domain.User{ID: userID},
		Role:  userType,
		Token: "test-token",
	}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthAPI = (*MockAuthAPI)(nil)
