// internal/handlers/backup.go
package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookloft/bookstore-backend/internal/i18n"
	"github.com/bookloft/bookstore-backend/internal/services"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

// Snapshot uploads are small JSON documents; cap the body well above any
// realistic catalog size.
const maxSnapshotSize = 32 << 20

type BackupHandler struct {
	backupService *services.BackupService
}

func NewBackupHandler(backupService *services.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

// GET /admin/backups/export
//
// Streams the snapshot as a JSON download.
func (h *BackupHandler) Export(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	data, err := h.backupService.ExportJSON()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BACKUP_FAILED",
			i18n.T(lang, i18n.KeyBackupFailed), nil)
		return
	}

	filename := fmt.Sprintf("bookstore-snapshot-%s.json", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// POST /admin/backups/import
//
// Replaces the content tables with the uploaded snapshot. Orders and admin
// accounts are never touched.
func (h *BackupHandler) Import(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSnapshotSize))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "snapshot"), err.Error())
		return
	}

	snapshot, err := h.backupService.Import(data)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "snapshot"), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBackupRestored),
		"counts": gin.H{
			"books":        len(snapshot.Books),
			"genres":       len(snapshot.Genres),
			"blogs":        len(snapshot.Blogs),
			"comments":     len(snapshot.Comments),
			"pages":        len(snapshot.Pages),
			"slides":       len(snapshot.Slides),
			"menus":        len(snapshot.Menus),
			"translations": len(snapshot.Trans),
		},
	})
}

// POST /admin/backups/archive
//
// Exports a snapshot and stores it in the configured S3 bucket.
func (h *BackupHandler) Archive(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	key, err := h.backupService.Archive()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BACKUP_FAILED",
			i18n.T(lang, i18n.KeyBackupFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBackupCreated),
		"key":     key,
	})
}

// GET /admin/backups/archive
//
// Lists the snapshots stored in the archive bucket, newest first.
func (h *BackupHandler) ListArchives(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	entries, err := h.backupService.ListArchives()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BACKUP_FAILED",
			i18n.T(lang, i18n.KeyBackupFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"archives": entries})
}

// POST /admin/backups/restore
//
// Downloads an archived snapshot from S3 and imports it.
func (h *BackupHandler) RestoreArchive(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Key string `json:"key" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "key"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	snapshot, err := h.backupService.RestoreArchive(req.Key)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BACKUP_FAILED",
			i18n.T(lang, i18n.KeyBackupFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBackupRestored),
		"counts": gin.H{
			"books": len(snapshot.Books),
			"blogs": len(snapshot.Blogs),
		},
	})
}
