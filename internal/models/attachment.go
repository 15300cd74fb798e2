package models

// AttachmentModel is a media record created for uploaded files. Attachments
// inherit visibility from their parent post, mirroring the "inherit" status
// convention of the content table.
type AttachmentModel struct {
	Base
	ParentID *string                `json:"parent_id" gorm:"index"`
	Title    string                 `json:"title"`
	FileName string                 `json:"file_name" gorm:"not null"`
	FileURL  string                 `json:"file_url"  gorm:"not null"`
	MimeType string                 `json:"mime_type"`
	Status   string                 `json:"status"    gorm:"default:'inherit'"`
	Storage  string                 `json:"storage"   gorm:"default:'local'"` // local | s3
	Metadata map[string]interface{} `json:"metadata"  gorm:"type:longtext;serializer:json"`
}

func (AttachmentModel) TableName() string { return "attachments" }
