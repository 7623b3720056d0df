// internal/services/backup_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/config"
	"github.com/bookloft/bookstore-backend/internal/models"
)

// BackupService exports and restores the content tables as a JSON snapshot.
// Orders and admin accounts are deliberately excluded from restore: a snapshot
// import must never resurrect or clobber order history.
type BackupService struct {
	db       *gorm.DB
	s3Client *s3.S3
	config   *config.Config
}

// Snapshot is the export document. Field names double as the table names shown
// in the admin download.
type Snapshot struct {
	Version    int                    `json:"version"`
	ExportedAt time.Time              `json:"exported_at"`
	Books      []models.Book          `json:"books"`
	Genres     []models.Genre         `json:"genres"`
	Blogs      []models.Blog          `json:"blogs"`
	Comments   []models.BlogComment   `json:"comments"`
	Pages      []models.PageContent   `json:"pages"`
	Slides     []models.CarouselSlide `json:"slides"`
	Menus      []models.MenuSetting   `json:"menus"`
	Trans      []models.UITranslation `json:"translations"`
	Settings   *models.SiteSettings   `json:"settings,omitempty"`
}

const snapshotVersion = 1

func NewBackupService(db *gorm.DB, cfg *config.Config) (*BackupService, error) {
	svc := &BackupService{db: db, config: cfg}

	if cfg.Backup.AccessKeyID == "" {
		// Local-only backups without S3 archiving
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Backup.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.Backup.AccessKeyID,
			cfg.Backup.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

// Export collects every content table into a single snapshot document.
func (s *BackupService) Export() (*Snapshot, error) {
	snapshot := &Snapshot{
		Version:    snapshotVersion,
		ExportedAt: time.Now().UTC(),
	}

	if err := s.db.Preload("Formats").Preload("Formats.Chapters").Find(&snapshot.Books).Error; err != nil {
		return nil, fmt.Errorf("failed to export books: %w", err)
	}
	if err := s.db.Find(&snapshot.Genres).Error; err != nil {
		return nil, fmt.Errorf("failed to export genres: %w", err)
	}
	if err := s.db.Find(&snapshot.Blogs).Error; err != nil {
		return nil, fmt.Errorf("failed to export blogs: %w", err)
	}
	if err := s.db.Find(&snapshot.Comments).Error; err != nil {
		return nil, fmt.Errorf("failed to export comments: %w", err)
	}
	if err := s.db.Find(&snapshot.Pages).Error; err != nil {
		return nil, fmt.Errorf("failed to export pages: %w", err)
	}
	if err := s.db.Find(&snapshot.Slides).Error; err != nil {
		return nil, fmt.Errorf("failed to export slides: %w", err)
	}
	if err := s.db.Find(&snapshot.Menus).Error; err != nil {
		return nil, fmt.Errorf("failed to export menus: %w", err)
	}
	if err := s.db.Find(&snapshot.Trans).Error; err != nil {
		return nil, fmt.Errorf("failed to export translations: %w", err)
	}

	var settings models.SiteSettings
	if err := s.db.First(&settings).Error; err == nil {
		snapshot.Settings = &settings
	}

	return snapshot, nil
}

// ExportJSON serializes the snapshot for download.
func (s *BackupService) ExportJSON() ([]byte, error) {
	snapshot, err := s.Export()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snapshot, "", "  ")
}

// Import replaces the content tables with the snapshot's rows in one
// transaction. Orders and users are untouched.
func (s *BackupService) Import(data []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	if snapshot.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tables := []interface{}{
			&models.AudiobookChapter{},
			&models.BookFormat{},
			&models.Book{},
			&models.Genre{},
			&models.BlogComment{},
			&models.Blog{},
			&models.PageContent{},
			&models.CarouselSlide{},
			&models.MenuSetting{},
			&models.UITranslation{},
		}
		for _, table := range tables {
			if err := tx.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
				return fmt.Errorf("failed to clear table: %w", err)
			}
		}

		for i := range snapshot.Books {
			if err := tx.Create(&snapshot.Books[i]).Error; err != nil {
				return fmt.Errorf("failed to restore book: %w", err)
			}
		}
		for i := range snapshot.Genres {
			if err := tx.Create(&snapshot.Genres[i]).Error; err != nil {
				return fmt.Errorf("failed to restore genre: %w", err)
			}
		}
		for i := range snapshot.Blogs {
			if err := tx.Create(&snapshot.Blogs[i]).Error; err != nil {
				return fmt.Errorf("failed to restore blog: %w", err)
			}
		}
		for i := range snapshot.Comments {
			if err := tx.Create(&snapshot.Comments[i]).Error; err != nil {
				return fmt.Errorf("failed to restore comment: %w", err)
			}
		}
		for i := range snapshot.Pages {
			if err := tx.Create(&snapshot.Pages[i]).Error; err != nil {
				return fmt.Errorf("failed to restore page: %w", err)
			}
		}
		for i := range snapshot.Slides {
			if err := tx.Create(&snapshot.Slides[i]).Error; err != nil {
				return fmt.Errorf("failed to restore slide: %w", err)
			}
		}
		for i := range snapshot.Menus {
			if err := tx.Create(&snapshot.Menus[i]).Error; err != nil {
				return fmt.Errorf("failed to restore menu: %w", err)
			}
		}
		for i := range snapshot.Trans {
			if err := tx.Create(&snapshot.Trans[i]).Error; err != nil {
				return fmt.Errorf("failed to restore translation: %w", err)
			}
		}
		if snapshot.Settings != nil {
			if err := tx.Where("1 = 1").Unscoped().Delete(&models.SiteSettings{}).Error; err != nil {
				return err
			}
			if err := tx.Create(snapshot.Settings).Error; err != nil {
				return fmt.Errorf("failed to restore settings: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"books": len(snapshot.Books),
		"blogs": len(snapshot.Blogs),
	}).Info("Snapshot imported")

	return &snapshot, nil
}

// Archive exports a snapshot and uploads it to the configured S3 bucket.
// Returns the object key.
func (s *BackupService) Archive() (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("s3 archiving is not configured")
	}

	data, err := s.ExportJSON()
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/snapshot-%s.json", s.config.Backup.Prefix, time.Now().UTC().Format("20060102-150405"))
	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.config.Backup.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	logrus.WithField("key", key).Info("Snapshot archived to S3")
	return key, nil
}

// ArchiveEntry describes one snapshot stored in the archive bucket.
type ArchiveEntry struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ListArchives returns the snapshots stored under the configured S3 prefix,
// newest first.
func (s *BackupService) ListArchives() ([]ArchiveEntry, error) {
	if s.s3Client == nil {
		return nil, fmt.Errorf("s3 archiving is not configured")
	}

	out, err := s.s3Client.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.Backup.S3Bucket),
		Prefix: aws.String(s.config.Backup.Prefix + "/"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}

	entries := make([]ArchiveEntry, 0, len(out.Contents))
	for _, obj := range out.Contents {
		entries = append(entries, ArchiveEntry{
			Key:          aws.StringValue(obj.Key),
			Size:         aws.Int64Value(obj.Size),
			LastModified: aws.TimeValue(obj.LastModified),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastModified.After(entries[j].LastModified)
	})
	return entries, nil
}

// RestoreArchive downloads a snapshot object from S3 and imports it.
func (s *BackupService) RestoreArchive(key string) (*Snapshot, error) {
	if s.s3Client == nil {
		return nil, fmt.Errorf("s3 archiving is not configured")
	}

	out, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.config.Backup.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download snapshot: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return s.Import(data)
}
