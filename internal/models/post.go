package models

// Post statuses. Front-end submissions always land as drafts.
const (
	StatusDraft   = "draft"
	StatusPublish = "publish"
)

// PostModel is a content record. Front-end submissions create these with
// status "draft"; publishing happens elsewhere (admin tooling).
type PostModel struct {
	Base
	Title           string     `json:"title"             gorm:"not null"`
	Content         string     `json:"content"           gorm:"type:longtext"`
	Excerpt         string     `json:"excerpt"           gorm:"type:text"`
	Kind            string     `json:"kind"              gorm:"index;default:'post'"`
	Status          string     `json:"status"            gorm:"index;default:'draft'"`
	AuthorID        string     `json:"author_id"         gorm:"index;not null"`
	Author          *UserModel `json:"author,omitempty"  gorm:"foreignKey:AuthorID"`
	FeaturedImageID *string    `json:"featured_image_id" gorm:"index"`
}

func (PostModel) TableName() string { return "posts" }
