// internal/middleware/logging_test.go
package middleware

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestExtractResourceType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/admin/orders", "orders"},
		{"/api/v1/admin/books", "books"},
		{"/api/v1/admin/orders/" + uuid.NewString() + "/status", "orders"},
		{"/api/v1/admin/backups/import", "backups"},
		{"/api/v1/books", "books"},
		{"/api/v1/blogs/ponniyin-selvan/comments", "blogs"},
		{"/api/v1/admin/auth/login", "auth"},
		{"/api/v1", "unknown"},
		{"/", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractResourceType(tt.path), "path %s", tt.path)
	}
}

func TestExtractResourceID(t *testing.T) {
	id := uuid.NewString()
	assert.Equal(t, id, extractResourceID("/api/v1/admin/orders/"+id+"/status"))
	assert.Equal(t, "", extractResourceID("/api/v1/admin/orders"))
}
