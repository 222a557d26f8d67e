package service

import (
	"errors"
	"testing"

	"github.com/stagefront/internal/cms"
)

func TestNewPageFormSeedsDefaults(t *testing.T) {
	form := NewPageForm()

	if form.Status != cms.StatusDraft {
		t.Fatalf("expected default status draft, got %q", form.Status)
	}
	if form.TemplateName != "default" {
		t.Fatalf("expected default template, got %q", form.TemplateName)
	}
	if form.RobotsTxt != "index, follow" {
		t.Fatalf("expected default robots directive, got %q", form.RobotsTxt)
	}
	if form.RequiresAuth {
		t.Fatal("expected requires_auth to default to false")
	}
	if form.SlugTouched || form.MetaTitleTouched {
		t.Fatal("fresh form must not have touched flags set")
	}
}

func TestTitleDerivesSlugAndMetaTitle(t *testing.T) {
	form := NewPageForm()

	form.SetTitle("Tour Dates 2026!")
	if form.Slug != "tour-dates-2026" {
		t.Fatalf("expected derived slug, got %q", form.Slug)
	}
	if form.MetaTitle != "Tour Dates 2026!" {
		t.Fatalf("expected meta title to mirror title verbatim, got %q", form.MetaTitle)
	}

	// 每次标题变化都重新派生。
	form.SetTitle("Tour Dates 2027")
	if form.Slug != "tour-dates-2027" || form.MetaTitle != "Tour Dates 2027" {
		t.Fatalf("derivation should track every title change: slug=%q meta=%q", form.Slug, form.MetaTitle)
	}
}

func TestDirectSlugEditFreezesDerivationPermanently(t *testing.T) {
	form := NewPageForm()
	form.SetTitle("First Title")

	form.SetSlug("my-own-slug")
	form.SetTitle("Second Title")
	if form.Slug != "my-own-slug" {
		t.Fatalf("title edits must never overwrite a touched slug, got %q", form.Slug)
	}

	// 清空后也不能恢复派生，触碰标记跟随动作而非取值。
	form.SetSlug("")
	form.SetTitle("Third Title")
	if form.Slug != "" {
		t.Fatalf("derivation must stay frozen after the slug is cleared, got %q", form.Slug)
	}
	if !form.SlugTouched {
		t.Fatal("touched flag must survive clearing the field")
	}
}

func TestSlugEditMatchingDerivedValueStillCountsAsTouch(t *testing.T) {
	form := NewPageForm()
	form.SetTitle("Hello World")

	form.SetSlug("hello-world")
	form.SetTitle("Changed Title")
	if form.Slug != "hello-world" {
		t.Fatalf("a direct edit equal to the derived value still freezes the slug, got %q", form.Slug)
	}
}

func TestMetaTitleFreezesIndependentlyFromSlug(t *testing.T) {
	form := NewPageForm()
	form.SetTitle("Album Release")

	form.SetMetaTitle("Album Release | Official Site")
	form.SetTitle("Album Release Tour")

	if form.MetaTitle != "Album Release | Official Site" {
		t.Fatalf("touched meta title must stay frozen, got %q", form.MetaTitle)
	}
	if form.Slug != "album-release-tour" {
		t.Fatalf("slug derivation must keep running independently, got %q", form.Slug)
	}
}

func TestApplyRoutesFieldsByName(t *testing.T) {
	form := NewPageForm()

	edits := map[string]string{
		"title":            "Press Kit",
		"content":          "# Downloads",
		"excerpt":          "Photos and rider",
		"section_id":       "4",
		"status":           "published",
		"requires_auth":    "on",
		"meta_description": "Press material",
		"canonical_url":    "https://example.com/press",
	}
	for field, value := range edits {
		if err := form.Apply(field, value); err != nil {
			t.Fatalf("Apply(%q) returned error: %v", field, err)
		}
	}

	if form.SectionID != 4 {
		t.Fatalf("expected section_id 4, got %d", form.SectionID)
	}
	if !form.RequiresAuth {
		t.Fatal("expected requires_auth to parse as true")
	}
	if form.Status != cms.StatusPublished {
		t.Fatalf("expected published status, got %q", form.Status)
	}
	if form.Slug != "press-kit" {
		t.Fatalf("Apply(title) must run derivation, got %q", form.Slug)
	}
}

func TestApplyRejectsUnknownField(t *testing.T) {
	form := NewPageForm()
	if err := form.Apply("no_such_field", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestApplyParsesCheckboxAndIDEdgeValues(t *testing.T) {
	form := NewPageForm()

	form.Apply("requires_auth", "")
	if form.RequiresAuth {
		t.Fatal("empty checkbox value must mean false")
	}
	form.Apply("requires_auth", "true")
	if !form.RequiresAuth {
		t.Fatal("'true' must mean checked")
	}

	form.Apply("section_id", "not-a-number")
	if form.SectionID != 0 {
		t.Fatalf("unparseable section_id must fall back to 0, got %d", form.SectionID)
	}
}

func TestInputCarriesFormStateVerbatim(t *testing.T) {
	form := NewPageForm()
	form.SetTitle("Tour")
	form.SetFeaturedImage("/media/uploads/2026/08/stage.jpg")
	form.SectionID = 2
	form.Content = "dates"

	input := form.Input()
	if input.Title != "Tour" || input.Slug != "tour" || input.SectionID != 2 {
		t.Fatalf("input does not mirror form: %+v", input)
	}
	if input.FeaturedImage != "/media/uploads/2026/08/stage.jpg" {
		t.Fatalf("featured image reference must be carried verbatim, got %q", input.FeaturedImage)
	}
	if input.Status != cms.StatusDraft || input.TemplateName != "default" || input.RobotsTxt != "index, follow" {
		t.Fatalf("defaults must reach the payload: %+v", input)
	}
}
