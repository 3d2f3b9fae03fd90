package devserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PhoneNumber     string `json:"phoneNumber"`
	Country         string `json:"country"`
	CityOrTown      string `json:"cityOrTown"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
}

func userTypeParam(c *gin.Context) (string, bool) {
	userType := c.Param("userType")
	switch userType {
	case "student", "teacher", "admin":
		return userType, true
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Unknown user type"})
	return "", false
}

func (s *Server) handleLogin(c *gin.Context) {
	userType, ok := userTypeParam(c)
	if !ok {
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	account, err := s.store.FindAccountByEmail(userType, req.Email)
	if err != nil || !s.passwords.Verify(account.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	// Verification gate: not a failure, a control-flow branch the
	// client interprets.
	if userType != "admin" && !account.PhoneVerified {
		c.JSON(http.StatusForbidden, gin.H{
			"success":                 false,
			"message":                 "Phone number not verified",
			"requiresOTPVerification": true,
			"userId":                  account.ID,
			"phoneNumber":             account.PhoneNumber,
			"userType":                userType,
		})
		return
	}

	token, err := s.tokens.Issue(account.ID, userType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		userType:  s.store.toUser(account),
		"token":   token,
	})
}

func (s *Server) handleRegister(c *gin.Context) {
	userType, ok := userTypeParam(c)
	if !ok {
		return
	}
	if userType == "admin" {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin accounts cannot self-register"})
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if msg, ok := missingRegisterField(&req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	account := &Account{
		UserType:        userType,
		Email:           req.Email,
		Name:            req.Name,
		PasswordHash:    hash,
		PhoneNumber:     req.PhoneNumber,
		Country:         req.Country,
		CityOrTown:      req.CityOrTown,
		ProfilePhotoURL: req.ProfilePhotoURL,
	}
	if err := s.store.CreateAccount(account); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An account with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":                 true,
		"requiresOTPVerification": true,
		userType + "Id":           account.ID,
		userType:                  s.store.toUser(account),
	})
}

func missingRegisterField(req *RegisterRequest) (string, bool) {
	switch {
	case req.Name == "":
		return "Name is required", false
	case req.Email == "":
		return "Email is required", false
	case req.Password == "":
		return "Password is required", false
	case req.PhoneNumber == "":
		return "Phone number is required", false
	case req.Country == "":
		return "Country is required", false
	}
	return "", true
}

func (s *Server) handleCompleteRegistration(c *gin.Context) {
	userType, ok := userTypeParam(c)
	if !ok {
		return
	}

	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	userID := req[userType+"Id"]
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing " + userType + "Id"})
		return
	}

	account, err := s.store.FindAccountByID(userType, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if !account.PhoneVerified {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number not verified"})
		return
	}

	if err := s.store.MarkCompleted(account.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to complete registration"})
		return
	}
	account.Completed = true

	token, err := s.tokens.Issue(account.ID, userType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to complete registration"})
		return
	}

	log.Printf("REGISTRATION_COMPLETED: user_id=%s user_type=%s email=%s", account.ID, userType, account.Email)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		userType:  s.store.toUser(account),
		"token":   token,
	})
}
