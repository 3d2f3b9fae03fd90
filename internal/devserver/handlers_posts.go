package devserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// PostRequest represents the editable fields of a listing.
type PostRequest struct {
	Title       string  `json:"title" binding:"required"`
	Subject     string  `json:"subject" binding:"required"`
	Description string  `json:"description"`
	HourlyRate  float64 `json:"hourlyRate"`
	Location    string  `json:"location"`
}

func pageRequestFromQuery(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return domain.PageRequest{Page: page, Limit: limit, Search: c.Query("search")}
}

func (s *Server) handleCreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	record := &PostRecord{
		OwnerID:     c.GetString("user_id"),
		OwnerType:   c.GetString("user_role"),
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		Location:    req.Location,
	}
	if err := s.store.CreatePost(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, toPost(record))
}

func (s *Server) handleListPosts(c *gin.Context) {
	page, err := s.store.ListPosts(pageRequestFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetPost(c *gin.Context) {
	record, err := s.store.FindPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, toPost(record))
}

// postForWrite loads a post and checks the caller may modify it: the
// owner, or an admin.
func (s *Server) postForWrite(c *gin.Context) (*PostRecord, bool) {
	record, err := s.store.FindPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return nil, false
	}
	if record.OwnerID != c.GetString("user_id") && c.GetString("user_role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not the owner of this post"})
		return nil, false
	}
	return record, true
}

func (s *Server) handleUpdatePost(c *gin.Context) {
	record, ok := s.postForWrite(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	record.Title = req.Title
	record.Subject = req.Subject
	record.Description = req.Description
	record.HourlyRate = req.HourlyRate
	record.Location = req.Location
	if err := s.store.UpdatePost(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, toPost(record))
}

func (s *Server) handleDeletePost(c *gin.Context) {
	record, ok := s.postForWrite(c)
	if !ok {
		return
	}
	if err := s.store.DeletePost(record.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
