package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// authResponse is the backend's success envelope for the auth endpoints.
// Exactly one of Student/Teacher/Admin is populated, keyed by user type.
type authResponse struct {
	Success                 bool         `json:"success"`
	Message                 string       `json:"message"`
	RequiresOTPVerification bool         `json:"requiresOTPVerification"`
	StudentID               string       `json:"studentId"`
	TeacherID               string       `json:"teacherId"`
	Student                 *domain.User `json:"student"`
	Teacher                 *domain.User `json:"teacher"`
	Admin                   *domain.User `json:"admin"`
	Token                   string       `json:"token"`
}

func (r *authResponse) userFor(userType domain.UserType) *domain.User {
	switch userType {
	case domain.UserTypeStudent:
		return r.Student
	case domain.UserTypeTeacher:
		return r.Teacher
	case domain.UserTypeAdmin:
		return r.Admin
	}
	return nil
}

func (r *authResponse) idFor(userType domain.UserType) string {
	switch userType {
	case domain.UserTypeStudent:
		return r.StudentID
	case domain.UserTypeTeacher:
		return r.TeacherID
	}
	return ""
}

// Login implements domain.AuthAPI. A 403 carrying
// requiresOTPVerification is translated into a LoginChallenge instead
// of an error; any other rejection surfaces as *APIError.
func (c *Client) Login(ctx context.Context, userType domain.UserType, email, password string) (*domain.AuthResult, *domain.LoginChallenge, error) {
	req := map[string]string{"email": email, "password": password}
	var resp authResponse
	err := c.doJSON(ctx, "POST", fmt.Sprintf("/auth/%s/login", userType), req, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.RequiresOTPVerification {
			return nil, &domain.LoginChallenge{
				UserID:      apiErr.UserID,
				UserType:    domain.UserType(apiErr.UserType),
				PhoneNumber: apiErr.PhoneNumber,
			}, nil
		}
		return nil, nil, err
	}

	user := resp.userFor(userType)
	if user == nil || resp.Token == "" {
		return nil, nil, fmt.Errorf("malformed login response for %s", userType)
	}
	return &domain.AuthResult{User: user, Role: userType, Token: resp.Token}, nil, nil
}

// Register implements domain.AuthAPI. When the backend requires OTP
// verification the result is a challenge and no token is issued; on the
// legacy direct path the account is live immediately.
func (c *Client) Register(ctx context.Context, userType domain.UserType, draft *domain.ProfileDraft) (*domain.AuthResult, *domain.LoginChallenge, error) {
	req := map[string]any{
		"name":            draft.Name,
		"email":           draft.Email,
		"password":        draft.Password,
		"phoneNumber":     draft.PhoneNumber,
		"country":         draft.Country,
		"cityOrTown":      draft.CityOrTown,
		"profilePhotoUrl": draft.ProfilePhotoURL,
	}
	var resp authResponse
	if err := c.doJSON(ctx, "POST", fmt.Sprintf("/auth/%s/register", userType), req, &resp); err != nil {
		return nil, nil, err
	}

	if resp.RequiresOTPVerification {
		challenge := &domain.LoginChallenge{
			UserID:      resp.idFor(userType),
			UserType:    userType,
			PhoneNumber: draft.PhoneNumber,
		}
		if u := resp.userFor(userType); u != nil && u.PhoneNumber != "" {
			challenge.PhoneNumber = u.PhoneNumber
		}
		return nil, challenge, nil
	}

	user := resp.userFor(userType)
	if user == nil || resp.Token == "" {
		return nil, nil, fmt.Errorf("malformed register response for %s", userType)
	}
	return &domain.AuthResult{User: user, Role: userType, Token: resp.Token}, nil, nil
}

// CompleteRegistration implements domain.AuthAPI. It finalizes an
// account whose destination was just verified.
func (c *Client) CompleteRegistration(ctx context.Context, userType domain.UserType, userID string) (*domain.AuthResult, error) {
	req := map[string]string{string(userType) + "Id": userID}
	var resp authResponse
	if err := c.doJSON(ctx, "POST", fmt.Sprintf("/auth/%s/complete-registration", userType), req, &resp); err != nil {
		return nil, err
	}

	user := resp.userFor(userType)
	if user == nil || resp.Token == "" {
		return nil, fmt.Errorf("malformed complete-registration response for %s", userType)
	}
	return &domain.AuthResult{User: user, Role: userType, Token: resp.Token}, nil
}

var _ domain.AuthAPI = (*Client)(nil)
