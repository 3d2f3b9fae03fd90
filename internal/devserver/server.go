package devserver

import (
	"fmt"
	"log"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// Server is the reference implementation of the backend contract the
// SDK consumes. It exists for local development and end-to-end tests;
// the production backend is external to this repository.
type Server struct {
	store     *Store
	otp       *OTPService
	tokens    *TokenService
	passwords *PasswordService
	notifier  Notifier
	media     *MediaService
	enforcer  *casbin.Enforcer
}

// NewServer assembles a server from its services.
func NewServer(store *Store, otp *OTPService, tokens *TokenService, passwords *PasswordService, notifier Notifier, media *MediaService) (*Server, error) {
	enforcer, err := NewEnforcer()
	if err != nil {
		return nil, fmt.Errorf("failed to build enforcer: %w", err)
	}
	return &Server{
		store:     store,
		otp:       otp,
		tokens:    tokens,
		passwords: passwords,
		notifier:  notifier,
		media:     media,
		enforcer:  enforcer,
	}, nil
}

// SeedAdmin creates the back-office account when it does not exist yet.
func (s *Server) SeedAdmin(email, password string) error {
	if _, err := s.store.FindAccountByEmail("admin", email); err == nil {
		return nil
	}
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return err
	}
	account := &Account{
		UserType:      "admin",
		Email:         email,
		Name:          "Administrator",
		PasswordHash:  hash,
		PhoneVerified: true,
		Approved:      true,
		Completed:     true,
	}
	if err := s.store.CreateAccount(account); err != nil {
		return err
	}
	log.Printf("ADMIN_SEEDED: email=%s", email)
	return nil
}

// Router builds the gin engine with every route the contract names.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	auth := r.Group("/auth")
	{
		auth.POST("/:userType/login", s.handleLogin)
		auth.POST("/:userType/register", s.handleRegister)
		auth.POST("/:userType/complete-registration", s.handleCompleteRegistration)
		auth.POST("/forgot-password", s.handleForgotPassword)
		auth.POST("/reset-password", s.handleResetPassword)
	}

	otp := r.Group("/otp")
	{
		otp.POST("/send", s.handleSendOTP)
		otp.POST("/verify", s.handleVerifyOTP)
		otp.GET("/status", s.handleOTPStatus)
	}

	authed := r.Group("/")
	authed.Use(AuthRequired(s.tokens), Authorize(s.enforcer))
	{
		authed.POST("/media/upload", s.handleUpload)

		authed.POST("/posts", s.handleCreatePost)
		authed.GET("/posts", s.handleListPosts)
		authed.GET("/posts/:id", s.handleGetPost)
		authed.PUT("/posts/:id", s.handleUpdatePost)
		authed.DELETE("/posts/:id", s.handleDeletePost)

		admin := authed.Group("/admin")
		{
			admin.GET("/students", s.handleListStudents)
			admin.GET("/teachers", s.handleListTeachers)
			admin.POST("/teachers/:id/approve", s.handleApproveTeacher)
			admin.GET("/analytics", s.handleAnalytics)
		}
	}

	return r
}
