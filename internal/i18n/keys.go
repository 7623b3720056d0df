// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthPasswordChanged    = "auth.password_changed"
	KeyAdminAccessDenied      = "admin.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Books
	KeyBookCreated  = "book.created"
	KeyBookUpdated  = "book.updated"
	KeyBookDeleted  = "book.deleted"
	KeyBookNotFound = "book.not_found"

	// Formats and chapters
	KeyFormatCreated         = "format.created"
	KeyFormatUpdated         = "format.updated"
	KeyFormatDeleted         = "format.deleted"
	KeyFormatNotFound        = "format.not_found"
	KeyFormatNotDownloadable = "format.not_downloadable"
	KeyChapterCreated        = "chapter.created"
	KeyChapterUpdated        = "chapter.updated"
	KeyChapterDeleted        = "chapter.deleted"
	KeyChapterNotFound       = "chapter.not_found"

	// Checkout and orders
	KeyCheckoutNotPurchasable = "checkout.not_purchasable"
	KeyOrderPlaced            = "order.placed"
	KeyOrderNotPlaced         = "order.not_placed"
	KeyOrderNotFound          = "order.not_found"
	KeyOrderStatusUpdated     = "order.status_updated"
	KeyOrderInvalidStatus     = "order.invalid_status"
	KeyOrderNotesUpdated      = "order.notes_updated"

	// Blogs and comments
	KeyBlogCreated      = "blog.created"
	KeyBlogUpdated      = "blog.updated"
	KeyBlogDeleted      = "blog.deleted"
	KeyBlogNotFound     = "blog.not_found"
	KeyCommentSubmitted = "comment.submitted"
	KeyCommentApproved  = "comment.approved"
	KeyCommentDeleted   = "comment.deleted"
	KeyCommentNotFound  = "comment.not_found"

	// Content management
	KeyPageSaved       = "page.saved"
	KeyPageNotFound    = "page.not_found"
	KeySlideSaved      = "slide.saved"
	KeySlideDeleted    = "slide.deleted"
	KeySlideNotFound   = "slide.not_found"
	KeyMenuSaved       = "menu.saved"
	KeyMenuNotFound    = "menu.not_found"
	KeySettingsUpdated = "settings.updated"

	// Translations
	KeyTranslationSaved    = "translation.saved"
	KeyTranslationDeleted  = "translation.deleted"
	KeyTranslationNotFound = "translation.not_found"

	// Backups
	KeyBackupCreated  = "backup.created"
	KeyBackupRestored = "backup.restored"
	KeyBackupFailed   = "backup.failed"
	KeyBackupNotFound = "backup.not_found"
)
