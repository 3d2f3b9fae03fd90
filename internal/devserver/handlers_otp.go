package devserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

const purposeVerify = "verify"

// OTPSendRequest represents a send-code request.
type OTPSendRequest struct {
	UserID      string `json:"userId" binding:"required"`
	UserType    string `json:"userType" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// OTPVerifyRequest represents a verify-code request.
type OTPVerifyRequest struct {
	UserID      string `json:"userId" binding:"required"`
	UserType    string `json:"userType" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	OTPCode     string `json:"otpCode" binding:"required,len=6"`
}

// accountForOTP validates that the tuple names a real account owning
// the destination.
func (s *Server) accountForOTP(c *gin.Context, userType, userID, phoneNumber string) (*Account, bool) {
	account, err := s.store.FindAccountByID(userType, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return nil, false
	}
	if account.PhoneNumber != phoneNumber {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number does not match user"})
		return nil, false
	}
	return account, true
}

func (s *Server) handleSendOTP(c *gin.Context) {
	var req OTPSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if _, ok := s.accountForOTP(c, req.UserType, req.UserID, req.PhoneNumber); !ok {
		return
	}

	ctx := c.Request.Context()
	canResend, wait, err := s.otp.CanResend(ctx, purposeVerify, req.PhoneNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send code"})
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

	code, err := s.otp.Generate(ctx, purposeVerify, req.PhoneNumber, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send code"})
		return
	}
	if err := s.notifier.SendCode(req.PhoneNumber, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to deliver code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"cooldownSeconds": int(s.otp.config.ResendWindow.Seconds()),
	})
}

func (s *Server) handleVerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	account, ok := s.accountForOTP(c, req.UserType, req.UserID, req.PhoneNumber)
	if !ok {
		return
	}

	err := s.otp.Verify(c.Request.Context(), purposeVerify, req.PhoneNumber, req.UserID, req.OTPCode)
	switch {
	case errors.Is(err, domain.ErrOTPMaxAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Maximum attempts exceeded"})
		return
	case errors.Is(err, domain.ErrOTPNotFound), errors.Is(err, domain.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired code"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Verification failed"})
		return
	}

	if err := s.store.MarkPhoneVerified(account.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to activate phone number"})
		return
	}

	log.Printf("PHONE_VERIFIED: user_id=%s user_type=%s phone=%s", account.ID, req.UserType, req.PhoneNumber)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleOTPStatus(c *gin.Context) {
	userID := c.Query("userId")
	userType := c.Query("userType")
	phoneNumber := c.Query("phoneNumber")
	if userID == "" || userType == "" || phoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing query parameters"})
		return
	}

	ctx := c.Request.Context()
	hasActive, err := s.otp.HasActiveCode(ctx, purposeVerify, phoneNumber, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check status"})
		return
	}
	canResend, wait, err := s.otp.CanResend(ctx, purposeVerify, phoneNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hasActiveOTP":    hasActive,
		"canResend":       canResend,
		"cooldownSeconds": wait,
	})
}
