// Package media stores uploaded files and records them as attachments.
package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/postform/core/internal/models"
	"gorm.io/gorm"
)

// BlobStore persists raw file bytes and returns a public URL.
type BlobStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Engine validates uploads, stores their bytes and records attachment rows.
type Engine struct {
	db      *gorm.DB
	store   BlobStore
	storage string // "local" | "s3"
}

func NewEngine(db *gorm.DB, store BlobStore, storage string) *Engine {
	return &Engine{db: db, store: store, storage: storage}
}

// Upload reads a multipart file, validates it as an image and persists it.
// The returned attachment is already saved; parenting happens later via
// AttachToPost.
func (e *Engine) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (*models.AttachmentModel, error) {
	if fileHeader == nil || fileHeader.Size == 0 {
		return nil, fmt.Errorf("empty upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	mimeType, err := validateImage(fileHeader.Filename, data)
	if err != nil {
		return nil, err
	}

	fileName := buildFileName(fileHeader.Filename)
	url, err := e.store.Save(ctx, fileName, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	attachment := &models.AttachmentModel{
		Title:    titleFromFilename(fileHeader.Filename),
		FileName: fileName,
		FileURL:  url,
		MimeType: mimeType,
		Status:   "inherit",
		Storage:  e.storage,
		Metadata: map[string]interface{}{
			"original_name": fileHeader.Filename,
			"size":          fileHeader.Size,
		},
	}
	if err := e.db.Create(attachment).Error; err != nil {
		return nil, fmt.Errorf("record attachment: %w", err)
	}
	return attachment, nil
}

// AttachToPost parents an attachment to a post. The post row keeps its own
// featured_image_id pointer, set by the caller.
func (e *Engine) AttachToPost(attachmentID, postID string) error {
	res := e.db.Model(&models.AttachmentModel{}).
		Where("id = ?", attachmentID).
		Update("parent_id", postID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func titleFromFilename(name string) string {
	base := strings.TrimSpace(name)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	if base == "" {
		return "attachment"
	}
	return base
}
