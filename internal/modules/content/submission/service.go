package submission

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/postform/core/internal/config"
	"github.com/postform/core/internal/models"
	"github.com/postform/core/internal/modules/content/kinds"
	"github.com/postform/core/internal/pkg/mail"
	"github.com/postform/core/internal/pkg/sanitize"
	"go.uber.org/zap"
)

// Paragraph block envelope applied to post and page bodies.
const (
	blockEnvelopeOpen  = "<!-- wp:paragraph -->"
	blockEnvelopeClose = "<!-- /wp:paragraph -->"
)

const (
	msgTitleRequired = "Post Title is required"
	msgAttachFailed  = "Post is inserted but featured image is not uploaded"
	msgCreated       = "Post created successfully"
	fieldTitle       = "post_title"
)

// DraftStore persists draft records.
type DraftStore interface {
	CreateDraft(ctx context.Context, draft *models.PostModel) error
	SetFeaturedImage(ctx context.Context, postID, attachmentID string) error
}

// MediaEngine uploads files and parents the resulting attachments.
type MediaEngine interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader) (*models.AttachmentModel, error)
	AttachToPost(attachmentID, postID string) error
}

// Mailer sends the admin notification.
type Mailer interface {
	SendSubmissionNotify(to string, data mail.SubmissionNotifyData) error
}

// Service runs the submission workflow: validate, create the draft, attach
// the featured image, notify the admin.
type Service struct {
	drafts DraftStore
	media  MediaEngine
	mailer Mailer
	site   config.SiteConfig
	log    *zap.Logger
}

func NewService(drafts DraftStore, media MediaEngine, mailer Mailer, site config.SiteConfig, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{drafts: drafts, media: media, mailer: mailer, site: site, log: log}
}

// Handle processes one submission for the given author and returns exactly
// one Result. The draft is never rolled back once created, even when the
// image attach fails afterward.
func (s *Service) Handle(ctx context.Context, input Input, author *models.UserModel) Result {
	title := sanitize.SafeText(input.Title)
	if title == "" {
		return validationResult(FieldError{FieldName: fieldTitle, Message: msgTitleRequired})
	}

	kind := kinds.Normalize(sanitize.SafeText(input.Kind))
	body := sanitize.SafeMultiline(input.Body)
	if kinds.HasBlockEnvelope(kind) {
		body = blockEnvelopeOpen + body + blockEnvelopeClose
	}
	excerpt := sanitize.SafeMultiline(input.Excerpt)
	hasImage := input.Image != nil && input.Image.Size > 0

	draft := &models.PostModel{
		Title:    title,
		Content:  body,
		Excerpt:  excerpt,
		Kind:     kind,
		Status:   models.StatusDraft,
		AuthorID: author.ID,
	}
	if err := s.drafts.CreateDraft(ctx, draft); err != nil {
		return errorResult(err.Error())
	}

	data := map[string]interface{}{"post_id": draft.ID}

	if hasImage {
		attachment, err := s.media.Upload(ctx, input.Image)
		if err != nil {
			s.log.Warn("featured image upload failed", zap.String("post_id", draft.ID), zap.Error(err))
			return errorResult(msgAttachFailed)
		}
		if err := s.media.AttachToPost(attachment.ID, draft.ID); err != nil {
			s.log.Warn("featured image attach failed", zap.String("post_id", draft.ID), zap.Error(err))
			return errorResult(msgAttachFailed)
		}
		if err := s.drafts.SetFeaturedImage(ctx, draft.ID, attachment.ID); err != nil {
			s.log.Warn("featured image link failed", zap.String("post_id", draft.ID), zap.Error(err))
			return errorResult(msgAttachFailed)
		}
		data["attachment_id"] = attachment.ID
	}

	s.notifyAdmin(draft, author)

	return Result{Status: true, Message: msgCreated, Data: data}
}

// notifyAdmin sends the new-submission email. Failures are logged and never
// surfaced to the submitter.
func (s *Service) notifyAdmin(draft *models.PostModel, author *models.UserModel) {
	if s.mailer == nil || s.site.AdminEmail == "" {
		return
	}
	authorName := author.DisplayName
	if authorName == "" {
		authorName = author.Username
	}
	err := s.mailer.SendSubmissionNotify(s.site.AdminEmail, mail.SubmissionNotifyData{
		SiteName:   s.site.Name,
		AuthorName: authorName,
		Title:      draft.Title,
		Excerpt:    draft.Excerpt,
		Kind:       draft.Kind,
		EditURL:    fmt.Sprintf("%s/admin/posts/%s/edit", s.site.URL, draft.ID),
	})
	if err != nil {
		s.log.Warn("admin notification failed", zap.String("post_id", draft.ID), zap.Error(err))
	}
}
