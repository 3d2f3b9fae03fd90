package api

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strconv"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// cooldownPattern extracts the remaining wait from the backend's
// free-text throttle message ("please wait 42 seconds before ..."). The
// structured cooldownSeconds field is preferred when present; this
// regexp is a best-effort fallback and the message format is not
// contractually guaranteed.
var cooldownPattern = regexp.MustCompile(`wait (\d+) seconds`)

// ParseCooldown pulls a remaining-cooldown value out of a server error
// message. Returns false when the message carries none.
func ParseCooldown(message string) (int, bool) {
	m := cooldownPattern.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return seconds, true
}

// CooldownFromError extracts a cooldown from a server rejection, using
// the structured field first and the message text as fallback.
func CooldownFromError(err error) (int, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}
	if apiErr.CooldownSeconds > 0 {
		return apiErr.CooldownSeconds, true
	}
	return ParseCooldown(apiErr.Message)
}

type sendCodeResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	CooldownSeconds int    `json:"cooldownSeconds"`
}

// SendCode implements domain.VerificationAPI.
func (c *Client) SendCode(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.SendResult, error) {
	req := map[string]string{
		"userId":      userID,
		"userType":    string(userType),
		"phoneNumber": destination,
	}
	var resp sendCodeResponse
	if err := c.doJSON(ctx, "POST", "/otp/send", req, &resp); err != nil {
		return nil, err
	}
	return &domain.SendResult{CooldownSeconds: resp.CooldownSeconds}, nil
}

// VerifyCode implements domain.VerificationAPI.
func (c *Client) VerifyCode(ctx context.Context, userID string, userType domain.UserType, destination, code string) error {
	req := map[string]string{
		"userId":      userID,
		"userType":    string(userType),
		"phoneNumber": destination,
		"otpCode":     code,
	}
	return c.doJSON(ctx, "POST", "/otp/verify", req, nil)
}

// Status implements domain.VerificationAPI.
func (c *Client) Status(ctx context.Context, userID string, userType domain.UserType, destination string) (*domain.OTPStatus, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("userType", string(userType))
	q.Set("phoneNumber", destination)

	var status domain.OTPStatus
	if err := c.doJSON(ctx, "GET", "/otp/status?"+q.Encode(), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

var _ domain.VerificationAPI = (*Client)(nil)
