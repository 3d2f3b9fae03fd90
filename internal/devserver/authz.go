package devserver

import (
	"net/http"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
)

// casbinModel matches "role_<type>" subjects against path patterns.
const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// NewEnforcer builds the in-memory policy set guarding authenticated
// routes. The reference server has no policy persistence; the table is
// static.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{"role_admin", "/admin/*", "*"},
		{"role_admin", "/posts", "GET"},
		{"role_admin", "/posts/:id", "*"},
		{"role_student", "/posts", "*"},
		{"role_student", "/posts/:id", "*"},
		{"role_teacher", "/posts", "*"},
		{"role_teacher", "/posts/:id", "*"},
		{"role_student", "/media/upload", "POST"},
		{"role_teacher", "/media/upload", "POST"},
		{"role_admin", "/media/upload", "POST"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// AuthRequired validates the bearer token and stashes the caller's
// identity in the request context.
func AuthRequired(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing bearer token"})
			c.Abort()
			return
		}

		userID, role, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

// Authorize enforces the casbin policy for the matched route.
func Authorize(enforcer *casbin.Enforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Role not found in token"})
			c.Abort()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, err := enforcer.Enforce("role_"+role.(string), path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
