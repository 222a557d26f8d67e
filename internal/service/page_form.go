package service

import (
	"errors"
	"strconv"

	"github.com/stagefront/internal/cms"
)

var ErrUnknownField = errors.New("unknown form field")

// PageForm is the working copy of the page editor for one session.
// Slug and meta title follow the title until the user edits them
// directly; the touched flags then freeze derivation permanently,
// even if the user later clears the field back to empty.
type PageForm struct {
	Title           string
	Slug            string
	Status          string
	Content         string
	Excerpt         string
	FeaturedImage   string
	SectionID       uint
	TemplateName    string
	RequiresAuth    bool
	MetaTitle       string
	MetaDescription string
	CanonicalURL    string
	OGTitle         string
	OGDescription   string
	RobotsTxt       string

	SlugTouched      bool
	MetaTitleTouched bool
}

// NewPageForm returns a form seeded with the backend's creation defaults.
func NewPageForm() PageForm {
	return PageForm{
		Status:       cms.StatusDraft,
		TemplateName: "default",
		RobotsTxt:    "index, follow",
	}
}

// SetTitle updates the title and re-derives slug and meta title for
// the fields the user has not touched yet.
func (f *PageForm) SetTitle(v string) {
	f.Title = v
	if !f.SlugTouched {
		f.Slug = Slugify(v)
	}
	if !f.MetaTitleTouched {
		f.MetaTitle = v
	}
}

// SetSlug records a direct slug edit. Any direct edit counts as a
// touch, including one that matches the derived value.
func (f *PageForm) SetSlug(v string) {
	f.Slug = v
	f.SlugTouched = true
}

// SetMetaTitle records a direct meta-title edit.
func (f *PageForm) SetMetaTitle(v string) {
	f.MetaTitle = v
	f.MetaTitleTouched = true
}

// SetFeaturedImage records the reference emitted by the upload
// control, verbatim. An empty reference clears the image.
func (f *PageForm) SetFeaturedImage(ref string) {
	f.FeaturedImage = ref
}

// Apply routes a single field edit by form input name. Values arrive
// as strings straight from the request; the backend stays the source
// of truth for anything beyond basic shape.
func (f *PageForm) Apply(field, value string) error {
	switch field {
	case "title":
		f.SetTitle(value)
	case "slug":
		f.SetSlug(value)
	case "meta_title":
		f.SetMetaTitle(value)
	case "status":
		f.Status = value
	case "content":
		f.Content = value
	case "excerpt":
		f.Excerpt = value
	case "featured_image":
		f.SetFeaturedImage(value)
	case "section_id":
		f.SectionID = parseID(value)
	case "template_name":
		f.TemplateName = value
	case "requires_auth":
		f.RequiresAuth = parseCheckbox(value)
	case "meta_description":
		f.MetaDescription = value
	case "canonical_url":
		f.CanonicalURL = value
	case "og_title":
		f.OGTitle = value
	case "og_description":
		f.OGDescription = value
	case "robots_txt":
		f.RobotsTxt = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Input assembles the backend payload for this form state.
func (f PageForm) Input() cms.PageInput {
	return cms.PageInput{
		Title:           f.Title,
		Slug:            f.Slug,
		Status:          f.Status,
		Content:         f.Content,
		Excerpt:         f.Excerpt,
		FeaturedImage:   f.FeaturedImage,
		SectionID:       f.SectionID,
		TemplateName:    f.TemplateName,
		RequiresAuth:    f.RequiresAuth,
		MetaTitle:       f.MetaTitle,
		MetaDescription: f.MetaDescription,
		CanonicalURL:    f.CanonicalURL,
		OGTitle:         f.OGTitle,
		OGDescription:   f.OGDescription,
		RobotsTxt:       f.RobotsTxt,
	}
}

func parseID(value string) uint {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func parseCheckbox(value string) bool {
	switch value {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
