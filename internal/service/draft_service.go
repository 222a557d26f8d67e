package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stagefront/internal/cms"
	"github.com/stagefront/internal/db"
	"gorm.io/gorm"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftService persists per-session page drafts in the local store.
// Draft content never reaches the content backend: a draft is deleted
// after the backend accepts the submit, on explicit discard, or by the
// age-based reaper.
type DraftService struct {
	db *gorm.DB
}

// NewDraftService returns a new DraftService instance.
func NewDraftService(gdb *gorm.DB) *DraftService {
	return &DraftService{db: gdb}
}

// Create opens a fresh draft for the new-page screen.
func (s *DraftService) Create() (*db.PageDraft, error) {
	draft := recordFromForm(uuid.NewString(), 0, NewPageForm())
	if err := s.db.Create(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

// CreateForPage opens a draft editing an existing page, resuming a
// prior unfinished draft for the same page when one exists. Seeded
// fields count as touched so a later title edit cannot rewrite the
// slug or meta title of a live page.
func (s *DraftService) CreateForPage(page cms.Page) (*db.PageDraft, error) {
	var existing db.PageDraft
	err := s.db.Where("page_id = ?", page.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	form := formFromPage(page)
	draft := recordFromForm(uuid.NewString(), page.ID, form)
	if err := s.db.Create(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

// Get loads a draft by ID.
func (s *DraftService) Get(id string) (*db.PageDraft, error) {
	var draft db.PageDraft
	if err := s.db.Where("id = ?", id).First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return &draft, nil
}

// ApplyField applies one field edit and persists the updated draft.
func (s *DraftService) ApplyField(id, field, value string) (*db.PageDraft, error) {
	draft, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	form := FormOf(draft)
	if err := form.Apply(field, value); err != nil {
		return nil, err
	}

	writeForm(draft, form)
	if err := s.db.Save(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

// ApplyValues applies a full set of posted fields at once, the
// fallback for plain form posts without per-field updates. The title
// is applied first, and slug or meta title values that merely echo
// what the form was rendered with are skipped so that re-posting an
// untouched derived value does not freeze derivation.
func (s *DraftService) ApplyValues(id string, values map[string]string) (*db.PageDraft, error) {
	draft, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	form := FormOf(draft)
	rendered := form
	if title, ok := values["title"]; ok && title != form.Title {
		form.SetTitle(title)
	}
	for field, value := range values {
		if field == "title" {
			continue
		}
		if skipUnchanged(rendered, field, value) {
			continue
		}
		if err := form.Apply(field, value); err != nil && !errors.Is(err, ErrUnknownField) {
			return nil, err
		}
	}

	writeForm(draft, form)
	if err := s.db.Save(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

// SetFeaturedImage records the reference emitted by the upload control.
func (s *DraftService) SetFeaturedImage(id, ref string) (*db.PageDraft, error) {
	draft, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	form := FormOf(draft)
	form.SetFeaturedImage(ref)
	writeForm(draft, form)
	if err := s.db.Save(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

// Submit sends the draft to the backend, creating or updating the
// page. The draft is discarded only after the backend accepts it; on
// rejection it is preserved unmodified for a manual retry.
func (s *DraftService) Submit(ctx context.Context, api *cms.Client, id string) (cms.Page, error) {
	draft, err := s.Get(id)
	if err != nil {
		return cms.Page{}, err
	}

	input := FormOf(draft).Input()

	var page cms.Page
	if draft.PageID == 0 {
		page, err = api.CreatePage(ctx, input)
	} else {
		page, err = api.UpdatePage(ctx, draft.PageID, input)
	}
	if err != nil {
		return cms.Page{}, err
	}

	// Best effort: a draft row that survives this delete is picked up
	// by the reaper later.
	s.db.Delete(&db.PageDraft{}, "id = ?", id)

	return page, nil
}

// Delete discards a draft without submitting it.
func (s *DraftService) Delete(id string) error {
	result := s.db.Delete(&db.PageDraft{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// ReapStale deletes drafts idle for longer than ttl and reports how
// many rows went away.
func (s *DraftService) ReapStale(ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	result := s.db.Where("updated_at < ?", cutoff).Delete(&db.PageDraft{})
	return result.RowsAffected, result.Error
}

// FormOf rebuilds the in-memory form state from a stored draft row.
func FormOf(draft *db.PageDraft) PageForm {
	return PageForm{
		Title:           draft.Title,
		Slug:            draft.Slug,
		Status:          draft.Status,
		Content:         draft.Content,
		Excerpt:         draft.Excerpt,
		FeaturedImage:   draft.FeaturedImage,
		SectionID:       draft.SectionID,
		TemplateName:    draft.TemplateName,
		RequiresAuth:    draft.RequiresAuth,
		MetaTitle:       draft.MetaTitle,
		MetaDescription: draft.MetaDescription,
		CanonicalURL:    draft.CanonicalURL,
		OGTitle:         draft.OGTitle,
		OGDescription:   draft.OGDescription,
		RobotsTxt:       draft.RobotsTxt,

		SlugTouched:      draft.SlugTouched,
		MetaTitleTouched: draft.MetaTitleTouched,
	}
}

func writeForm(draft *db.PageDraft, form PageForm) {
	draft.Title = form.Title
	draft.Slug = form.Slug
	draft.Status = form.Status
	draft.Content = form.Content
	draft.Excerpt = form.Excerpt
	draft.FeaturedImage = form.FeaturedImage
	draft.SectionID = form.SectionID
	draft.TemplateName = form.TemplateName
	draft.RequiresAuth = form.RequiresAuth
	draft.MetaTitle = form.MetaTitle
	draft.MetaDescription = form.MetaDescription
	draft.CanonicalURL = form.CanonicalURL
	draft.OGTitle = form.OGTitle
	draft.OGDescription = form.OGDescription
	draft.RobotsTxt = form.RobotsTxt

	draft.SlugTouched = form.SlugTouched
	draft.MetaTitleTouched = form.MetaTitleTouched
}

func recordFromForm(id string, pageID uint, form PageForm) *db.PageDraft {
	draft := &db.PageDraft{ID: id, PageID: pageID}
	writeForm(draft, form)
	return draft
}

func formFromPage(page cms.Page) PageForm {
	form := PageForm{
		Title:           page.Title,
		Slug:            page.Slug,
		Status:          page.Status,
		Content:         page.Content,
		Excerpt:         page.Excerpt,
		FeaturedImage:   page.FeaturedImage,
		TemplateName:    page.TemplateName,
		RequiresAuth:    page.RequiresAuth,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		CanonicalURL:    page.CanonicalURL,
		OGTitle:         page.OGTitle,
		OGDescription:   page.OGDescription,
		RobotsTxt:       page.RobotsTxt,

		SlugTouched:      true,
		MetaTitleTouched: page.MetaTitle != "",
	}
	if page.Section != nil {
		form.SectionID = page.Section.ID
	}
	if form.Status == "" {
		form.Status = cms.StatusDraft
	}
	if form.TemplateName == "" {
		form.TemplateName = "default"
	}
	if form.RobotsTxt == "" {
		form.RobotsTxt = "index, follow"
	}
	return form
}

// skipUnchanged reports whether a posted value just echoes the form
// state it was rendered from and therefore is not a deliberate edit.
func skipUnchanged(rendered PageForm, field, value string) bool {
	switch field {
	case "slug":
		return value == rendered.Slug
	case "meta_title":
		return value == rendered.MetaTitle
	}
	return false
}
