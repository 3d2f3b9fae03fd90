package devserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

func (s *Server) handleListStudents(c *gin.Context) {
	page, err := s.store.ListAccounts("student", pageRequestFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list students"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleListTeachers(c *gin.Context) {
	page, err := s.store.ListAccounts("teacher", pageRequestFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list teachers"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleApproveTeacher(c *gin.Context) {
	teacherID := c.Param("id")
	if err := s.store.ApproveTeacher(teacherID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Teacher not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to approve teacher"})
		return
	}

	log.Printf("TEACHER_APPROVED: teacher_id=%s admin_id=%s", teacherID, c.GetString("user_id"))

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAnalytics(c *gin.Context) {
	students, err := s.store.CountAccounts("student", false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to build analytics"})
		return
	}
	teachers, err := s.store.CountAccounts("teacher", false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to build analytics"})
		return
	}
	pending, err := s.store.CountAccounts("teacher", true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to build analytics"})
		return
	}
	posts, err := s.store.CountPosts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to build analytics"})
		return
	}
	signups, err := s.store.SignupsByDay(7)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to build analytics"})
		return
	}

	c.JSON(http.StatusOK, domain.AnalyticsSummary{
		TotalStudents:   students,
		TotalTeachers:   teachers,
		PendingTeachers: pending,
		TotalPosts:      posts,
		SignupsByDay:    signups,
	})
}
