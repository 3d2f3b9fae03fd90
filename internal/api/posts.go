package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

func pageQuery(req domain.PageRequest) string {
	q := url.Values{}
	if req.Page > 0 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// CreatePost implements domain.PostAPI.
func (c *Client) CreatePost(ctx context.Context, draft *domain.PostDraft) (*domain.Post, error) {
	var post domain.Post
	if err := c.doJSON(ctx, "POST", "/posts", draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPost implements domain.PostAPI.
func (c *Client) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := c.doJSON(ctx, "GET", "/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts implements domain.PostAPI.
func (c *Client) ListPosts(ctx context.Context, req domain.PageRequest) (*domain.PostPage, error) {
	var page domain.PostPage
	if err := c.doJSON(ctx, "GET", "/posts"+pageQuery(req), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePost implements domain.PostAPI.
func (c *Client) UpdatePost(ctx context.Context, id string, draft *domain.PostDraft) (*domain.Post, error) {
	var post domain.Post
	if err := c.doJSON(ctx, "PUT", "/posts/"+url.PathEscape(id), draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost implements domain.PostAPI.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.doJSON(ctx, "DELETE", "/posts/"+url.PathEscape(id), nil, nil)
}

var _ domain.PostAPI = (*Client)(nil)

// ListStudents implements domain.AdminAPI.
func (c *Client) ListStudents(ctx context.Context, req domain.PageRequest) (*domain.UserPage, error) {
	return c.listUsers(ctx, "/admin/students", req)
}

// ListTeachers implements domain.AdminAPI.
func (c *Client) ListTeachers(ctx context.Context, req domain.PageRequest) (*domain.UserPage, error) {
	return c.listUsers(ctx, "/admin/teachers", req)
}

func (c *Client) listUsers(ctx context.Context, path string, req domain.PageRequest) (*domain.UserPage, error) {
	var page domain.UserPage
	if err := c.doJSON(ctx, "GET", path+pageQuery(req), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ApproveTeacher implements domain.AdminAPI.
func (c *Client) ApproveTeacher(ctx context.Context, teacherID string) error {
	path := fmt.Sprintf("/admin/teachers/%s/approve", url.PathEscape(teacherID))
	return c.doJSON(ctx, "POST", path, nil, nil)
}

// Analytics implements domain.AdminAPI.
func (c *Client) Analytics(ctx context.Context) (*domain.AnalyticsSummary, error) {
	var summary domain.AnalyticsSummary
	if err := c.doJSON(ctx, "GET", "/admin/analytics", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

var _ domain.AdminAPI = (*Client)(nil)
