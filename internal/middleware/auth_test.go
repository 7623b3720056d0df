// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func runRoleGuard(t *testing.T, guard gin.HandlerFunc, role string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		c.Set("user_role", role)
	}
	guard(c)
	return c, w
}

func TestAdminRequiredAdmitsAdminOnly(t *testing.T) {
	c, _ := runRoleGuard(t, AdminRequired(), "admin")
	assert.False(t, c.IsAborted())

	c, w := runRoleGuard(t, AdminRequired(), "staff")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = runRoleGuard(t, AdminRequired(), "")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStaffRequiredAdmitsStaffAndAdmin(t *testing.T) {
	c, _ := runRoleGuard(t, StaffRequired(), "admin")
	assert.False(t, c.IsAborted())

	c, _ = runRoleGuard(t, StaffRequired(), "staff")
	assert.False(t, c.IsAborted())

	c, w := runRoleGuard(t, StaffRequired(), "guest")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = runRoleGuard(t, StaffRequired(), "")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
