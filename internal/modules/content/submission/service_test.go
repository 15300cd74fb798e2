package submission

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/postform/core/internal/config"
	"github.com/postform/core/internal/models"
	"github.com/postform/core/internal/pkg/mail"
	"github.com/stretchr/testify/require"
)

type fakeDraftStore struct {
	created   []*models.PostModel
	createErr error
	featured  map[string]string
	setErr    error
}

func (f *fakeDraftStore) CreateDraft(_ context.Context, draft *models.PostModel) error {
	if f.createErr != nil {
		return f.createErr
	}
	draft.ID = fmt.Sprintf("draft-%d", len(f.created)+1)
	f.created = append(f.created, draft)
	return nil
}

func (f *fakeDraftStore) SetFeaturedImage(_ context.Context, postID, attachmentID string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.featured == nil {
		f.featured = map[string]string{}
	}
	f.featured[postID] = attachmentID
	return nil
}

type fakeMedia struct {
	uploadErr error
	attachErr error
	attached  map[string]string
}

func (f *fakeMedia) Upload(_ context.Context, _ *multipart.FileHeader) (*models.AttachmentModel, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	a := &models.AttachmentModel{}
	a.ID = "att-1"
	return a, nil
}

func (f *fakeMedia) AttachToPost(attachmentID, postID string) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	if f.attached == nil {
		f.attached = map[string]string{}
	}
	f.attached[attachmentID] = postID
	return nil
}

type fakeMailer struct {
	to   string
	sent []mail.SubmissionNotifyData
	err  error
}

func (f *fakeMailer) SendSubmissionNotify(to string, data mail.SubmissionNotifyData) error {
	f.to = to
	f.sent = append(f.sent, data)
	return f.err
}

func newTestService(drafts *fakeDraftStore, media *fakeMedia, mailer *fakeMailer) *Service {
	site := config.SiteConfig{Name: "Postform", URL: "https://example.com", AdminEmail: "admin@example.com"}
	return NewService(drafts, media, mailer, site, nil)
}

func testAuthor() *models.UserModel {
	u := &models.UserModel{
		Username:    "alice",
		DisplayName: "Alice",
		Roles:       models.StringArray{models.RoleAuthor},
	}
	u.ID = "user-1"
	return u
}

func imageHeader(size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "pic.jpg", Size: size}
}

func TestHandleEmptyTitleFailsValidation(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	svc := newTestService(drafts, &fakeMedia{}, &fakeMailer{})

	// Given a submission whose title is whitespace only
	result := svc.Handle(context.Background(), Input{Title: "   \t "}, testAuthor())

	// Then the workflow fails before any persistence
	req.False(result.Status)
	req.Equal("validation error", result.Message)
	errs, ok := result.Data.([]FieldError)
	req.True(ok)
	req.Len(errs, 1)
	req.Equal("post_title", errs[0].FieldName)
	req.Equal("Post Title is required", errs[0].Message)
	req.Empty(drafts.created)
}

func TestHandleMarkupOnlyTitleFailsValidation(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	svc := newTestService(drafts, &fakeMedia{}, &fakeMailer{})

	result := svc.Handle(context.Background(), Input{Title: "<b></b>"}, testAuthor())

	req.False(result.Status)
	req.Equal("validation error", result.Message)
	req.Empty(drafts.created)
}

func TestHandleDefaultsAndEnvelope(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	mailer := &fakeMailer{}
	svc := newTestService(drafts, &fakeMedia{}, mailer)

	// Given a minimal submission with inline markup in the body
	result := svc.Handle(context.Background(), Input{
		Title: "Hello",
		Body:  "<b>hi</b>",
	}, testAuthor())

	// Then a post draft is created with the paragraph block envelope
	req.True(result.Status)
	req.Equal("Post created successfully", result.Message)
	req.Len(drafts.created, 1)
	draft := drafts.created[0]
	req.Equal("Hello", draft.Title)
	req.Equal("post", draft.Kind)
	req.Equal("draft", draft.Status)
	req.Equal("user-1", draft.AuthorID)
	req.Equal("<!-- wp:paragraph --><b>hi</b><!-- /wp:paragraph -->", draft.Content)
	req.Equal("", draft.Excerpt)

	data, ok := result.Data.(map[string]interface{})
	req.True(ok)
	req.Equal("draft-1", data["post_id"])
	req.NotContains(data, "attachment_id")

	// And the admin was notified
	req.Equal("admin@example.com", mailer.to)
	req.Len(mailer.sent, 1)
	req.Equal("Alice", mailer.sent[0].AuthorName)
	req.Equal("https://example.com/admin/posts/draft-1/edit", mailer.sent[0].EditURL)
}

func TestHandleTitleIsStrippedOfMarkup(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	svc := newTestService(drafts, &fakeMedia{}, &fakeMailer{})

	result := svc.Handle(context.Background(), Input{Title: "<i>My</i>  draft"}, testAuthor())

	req.True(result.Status)
	req.Equal("My draft", drafts.created[0].Title)
}

func TestHandlePageKindGetsEnvelope(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	svc := newTestService(drafts, &fakeMedia{}, &fakeMailer{})

	result := svc.Handle(context.Background(), Input{Title: "About", Kind: "page", Body: "who we are"}, testAuthor())

	req.True(result.Status)
	req.Equal("page", drafts.created[0].Kind)
	req.Equal("<!-- wp:paragraph -->who we are<!-- /wp:paragraph -->", drafts.created[0].Content)
}

func TestHandleUnknownKindStoredUnwrapped(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	svc := newTestService(drafts, &fakeMedia{}, &fakeMailer{})

	// Given a kind outside the catalog
	result := svc.Handle(context.Background(), Input{Title: "T", Kind: "book", Body: "b"}, testAuthor())

	// Then the draft keeps the kind as given and the body stays unwrapped
	req.True(result.Status)
	req.Equal("book", drafts.created[0].Kind)
	req.Equal("b", drafts.created[0].Content)
}

func TestHandleCreationFailureReturnsEngineMessage(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{createErr: errors.New("DB error")}
	media := &fakeMedia{}
	mailer := &fakeMailer{}
	svc := newTestService(drafts, media, mailer)

	result := svc.Handle(context.Background(), Input{Title: "T", Image: imageHeader(10)}, testAuthor())

	req.False(result.Status)
	req.Equal("DB error", result.Message)
	req.Nil(result.Data)
	// No attach or notification after a failed create.
	req.Empty(media.attached)
	req.Empty(mailer.sent)
}

func TestHandleZeroByteImageIsIgnored(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	media := &fakeMedia{uploadErr: errors.New("should not be called")}
	svc := newTestService(drafts, media, &fakeMailer{})

	result := svc.Handle(context.Background(), Input{Title: "T", Image: imageHeader(0)}, testAuthor())

	req.True(result.Status)
	data := result.Data.(map[string]interface{})
	req.NotContains(data, "attachment_id")
}

func TestHandleImageAttachSuccess(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	media := &fakeMedia{}
	svc := newTestService(drafts, media, &fakeMailer{})

	result := svc.Handle(context.Background(), Input{Title: "T", Image: imageHeader(128)}, testAuthor())

	req.True(result.Status)
	data := result.Data.(map[string]interface{})
	req.Equal("draft-1", data["post_id"])
	req.Equal("att-1", data["attachment_id"])
	req.Equal("draft-1", media.attached["att-1"])
	req.Equal("att-1", drafts.featured["draft-1"])
}

func TestHandleImageUploadFailureKeepsDraft(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	media := &fakeMedia{uploadErr: errors.New("disk full")}
	svc := newTestService(drafts, media, &fakeMailer{})

	result := svc.Handle(context.Background(), Input{Title: "T", Image: imageHeader(128)}, testAuthor())

	// The draft survives the failed attach, and the message says so.
	req.False(result.Status)
	req.Equal("Post is inserted but featured image is not uploaded", result.Message)
	req.Len(drafts.created, 1)
}

func TestHandleNotificationFailureDoesNotAffectResult(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := newTestService(drafts, &fakeMedia{}, mailer)

	result := svc.Handle(context.Background(), Input{Title: "T"}, testAuthor())

	req.True(result.Status)
	req.Equal("Post created successfully", result.Message)
}

func TestHandleNoDeduplication(t *testing.T) {
	req := require.New(t)
	drafts := &fakeDraftStore{}
	svc := newTestService(drafts, &fakeMedia{}, &fakeMailer{})

	in := Input{Title: "Same", Body: "same body"}
	first := svc.Handle(context.Background(), in, testAuthor())
	second := svc.Handle(context.Background(), in, testAuthor())

	// Two identical submissions create two distinct drafts.
	req.True(first.Status)
	req.True(second.Status)
	req.Len(drafts.created, 2)
	req.NotEqual(drafts.created[0].ID, drafts.created[1].ID)
}
