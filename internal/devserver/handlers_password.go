package devserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

const purposeReset = "reset"

// ForgotPasswordRequest represents a reset-code request.
type ForgotPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	UserType string `json:"userType" binding:"required"`
}

// ResetPasswordRequest represents a password reset submission.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	UserType    string `json:"userType" binding:"required"`
	OTPCode     string `json:"otpCode" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (s *Server) handleForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	account, err := s.store.FindAccountByEmail(req.UserType, req.Email)
	if err != nil {
		// Do not leak which emails exist.
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	ctx := c.Request.Context()
	canResend, wait, err := s.otp.CanResend(ctx, purposeReset, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send reset code"})
		return
	}
	if !canResend {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success":         false,
			"message":         fmt.Sprintf("please wait %d seconds before requesting a new code", wait),
			"cooldownSeconds": wait,
		})
		return
	}

	code, err := s.otp.Generate(ctx, purposeReset, req.Email, account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send reset code"})
		return
	}
	if err := s.notifier.SendCode(req.Email, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to deliver reset code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"cooldownSeconds": int(s.otp.config.ResendWindow.Seconds()),
	})
}

func (s *Server) handleResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	account, err := s.store.FindAccountByEmail(req.UserType, req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired code"})
		return
	}

	err = s.otp.Verify(c.Request.Context(), purposeReset, req.Email, account.ID, req.OTPCode)
	switch {
	case errors.Is(err, domain.ErrOTPMaxAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Maximum attempts exceeded"})
		return
	case errors.Is(err, domain.ErrOTPNotFound), errors.Is(err, domain.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired code"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Password reset failed"})
		return
	}

	hash, err := s.passwords.Hash(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Password reset failed"})
		return
	}
	if err := s.store.UpdatePassword(account.ID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Password reset failed"})
		return
	}

	log.Printf("PASSWORD_RESET: user_id=%s user_type=%s", account.ID, req.UserType)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
