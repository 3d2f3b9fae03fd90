package api

import (
	"context"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// ForgotPassword implements domain.PasswordAPI. The throttle message
// follows the same "wait N seconds" contract as the OTP send endpoint.
func (c *Client) ForgotPassword(ctx context.Context, email string, userType domain.UserType) (*domain.SendResult, error) {
	req := map[string]string{"email": email, "userType": string(userType)}
	var resp sendCodeResponse
	if err := c.doJSON(ctx, "POST", "/auth/forgot-password", req, &resp); err != nil {
		return nil, err
	}
	return &domain.SendResult{CooldownSeconds: resp.CooldownSeconds}, nil
}

// ResetPassword implements domain.PasswordAPI.
func (c *Client) ResetPassword(ctx context.Context, email string, userType domain.UserType, code, newPassword string) error {
	req := map[string]string{
		"email":       email,
		"userType":    string(userType),
		"otpCode":     code,
		"newPassword": newPassword,
	}
	return c.doJSON(ctx, "POST", "/auth/reset-password", req, nil)
}

var _ domain.PasswordAPI = (*Client)(nil)
