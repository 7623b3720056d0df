// internal/services/backup_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookloft/bookstore-backend/internal/models"
)

func TestBackupRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewBackupService(db, newTestConfig())
	require.NoError(t, err)

	book := seedPhysicalBook(t, db, "Ponniyin Selvan", "Kalki", 500)
	content := NewContentService(db)
	_, err = content.CreateBlog(&CreateBlogRequest{
		Title:       "Reading Kalki Today",
		Content:     "Long-form content.",
		IsPublished: true,
	})
	require.NoError(t, err)
	_, err = content.UpsertPage("about", &UpsertPageRequest{Title: "About Us", Content: "We sell books."})
	require.NoError(t, err)

	// Orders survive import untouched
	checkout := NewCheckoutService(db, newTestConfig())
	sess, err := checkout.StartSession(book.ID)
	require.NoError(t, err)
	require.NoError(t, sess.SubmitShipping(validDetails(), nil))
	order, err := checkout.PlaceOrder(sess)
	require.NoError(t, err)

	data, err := svc.ExportJSON()
	require.NoError(t, err)

	// Wipe the blog, then restore
	require.NoError(t, db.Where("1 = 1").Unscoped().Delete(&models.Blog{}).Error)

	snapshot, err := svc.Import(data)
	require.NoError(t, err)
	assert.Len(t, snapshot.Books, 1)
	assert.Len(t, snapshot.Blogs, 1)

	var blogs int64
	db.Model(&models.Blog{}).Count(&blogs)
	assert.Equal(t, int64(1), blogs)

	var kept models.Order
	require.NoError(t, db.First(&kept, "id = ?", order.ID).Error)
	assert.Equal(t, order.OrderNumber, kept.OrderNumber)
}

func TestBackupImportRejectsBadPayload(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewBackupService(db, newTestConfig())
	require.NoError(t, err)

	_, err = svc.Import([]byte("not json at all"))
	assert.Error(t, err)

	_, err = svc.Import([]byte(`{"version": 99}`))
	assert.Error(t, err)
}

func TestArchiveOperationsRequireS3(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewBackupService(db, newTestConfig())
	require.NoError(t, err)

	_, err = svc.Archive()
	assert.Error(t, err)

	_, err = svc.ListArchives()
	assert.Error(t, err)

	_, err = svc.RestoreArchive("snapshots/snapshot-20260101-000000.json")
	assert.Error(t, err)
}
