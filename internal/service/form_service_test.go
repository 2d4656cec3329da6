package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ghostform/ghostform/internal/models"
)

func newFormFixture() (*FormService, *memFormRepo, *memSubmissionRepo) {
	formRepo := newMemFormRepo()
	subRepo := newMemSubmissionRepo()
	return NewFormService(formRepo, subRepo), formRepo, subRepo
}

func contactFields() models.FieldList {
	return models.FieldList{
		{ID: "name", Type: "text", Label: "Name", Required: true},
		{ID: "email", Type: "email", Label: "Email", Required: true},
	}
}

func TestFormCreateDerivesSlugFromName(t *testing.T) {
	svc, _, _ := newFormFixture()

	form, err := svc.Create(1, FormInput{Name: "  My Contact   Form  ", Fields: contactFields()})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if form.Slug != "my-contact-form" {
		t.Fatalf("derived slug want my-contact-form, got %s", form.Slug)
	}
}

func TestFormCreateEmptyNameGetsDefaults(t *testing.T) {
	svc, _, _ := newFormFixture()

	form, err := svc.Create(1, FormInput{Name: "   "})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if form.Name != "Untitled Form" {
		t.Fatalf("blank name should default, got %q", form.Name)
	}
	if !strings.HasPrefix(form.Slug, "form-") {
		t.Fatalf("blank name should derive a timestamped slug, got %s", form.Slug)
	}

	// Punctuation-only names still produce a usable slug of their own.
	punct, err := svc.Create(1, FormInput{Name: "?"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if punct.Slug != "?" {
		t.Fatalf("punctuation name keeps its characters, got %s", punct.Slug)
	}
}

func TestFormCreateDefaultsEnabled(t *testing.T) {
	svc, _, _ := newFormFixture()

	form, err := svc.Create(1, FormInput{Name: "Contact", Fields: contactFields()})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !form.Settings.Enabled {
		t.Fatalf("form without an explicit enabled flag should accept submissions")
	}

	disabled, err := svc.Create(1, FormInput{Name: "Off", Settings: FormSettingsInput{Enabled: boolPtr(false)}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if disabled.Settings.Enabled {
		t.Fatalf("explicit enabled=false must stick")
	}
}

func TestFormCreateNormalizesExplicitSlug(t *testing.T) {
	svc, _, _ := newFormFixture()

	form, err := svc.Create(1, FormInput{Name: "Contact", Slug: "  My-Slug  "})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if form.Slug != "my-slug" {
		t.Fatalf("slug should be lowercased and trimmed, got %s", form.Slug)
	}
}

func TestFormCreateSlugConflict(t *testing.T) {
	svc, _, _ := newFormFixture()
	if _, err := svc.Create(1, FormInput{Name: "A", Slug: "taken"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	if _, err := svc.Create(2, FormInput{Name: "B", Slug: "taken"}); !errors.Is(err, ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict, got %v", err)
	}
}

func TestFormCreateValidation(t *testing.T) {
	svc, _, _ := newFormFixture()

	if _, err := svc.Create(1, FormInput{Name: "X", Fields: models.FieldList{{ID: "", Type: "text"}}}); !errors.Is(err, ErrFormInvalid) {
		t.Fatalf("empty field id want ErrFormInvalid, got %v", err)
	}
	if _, err := svc.Create(1, FormInput{Name: "X", Fields: models.FieldList{
		{ID: "a", Type: "text"},
		{ID: "a", Type: "text"},
	}}); !errors.Is(err, ErrFormInvalid) {
		t.Fatalf("duplicate field id want ErrFormInvalid, got %v", err)
	}
	if _, err := svc.Create(1, FormInput{Name: "X", Fields: models.FieldList{{ID: "a", Type: "teapot"}}}); !errors.Is(err, ErrFormInvalid) {
		t.Fatalf("unknown field type want ErrFormInvalid, got %v", err)
	}
	if _, err := svc.Create(1, FormInput{Name: "X", Fields: models.FieldList{{ID: "a", Type: "select"}}}); !errors.Is(err, ErrFormInvalid) {
		t.Fatalf("select without options want ErrFormInvalid, got %v", err)
	}
	if _, err := svc.Create(1, FormInput{Name: "X", Fields: models.FieldList{
		{ID: "a", Type: "select", Options: []string{"one"}},
	}}); err != nil {
		t.Fatalf("select with options should pass, got %v", err)
	}
}

func TestFormGetEnforcesOwnership(t *testing.T) {
	svc, _, _ := newFormFixture()
	form, _ := svc.Create(1, FormInput{Name: "Mine", Slug: "mine"})

	if _, err := svc.Get(1, form.ID); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if _, err := svc.Get(2, form.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign get want ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(1, 999); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("missing form want ErrFormNotFound, got %v", err)
	}
}

func TestFormGetBySlug(t *testing.T) {
	svc, _, _ := newFormFixture()
	_, _ = svc.Create(1, FormInput{Name: "Pub", Slug: "pub"})

	form, err := svc.GetBySlug(context.Background(), "  PUB ")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if form.Slug != "pub" {
		t.Fatalf("wrong form: %s", form.Slug)
	}

	if _, err := svc.GetBySlug(context.Background(), "nope"); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("unknown slug want ErrFormNotFound, got %v", err)
	}
	if _, err := svc.GetBySlug(context.Background(), "  "); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("blank slug want ErrFormNotFound, got %v", err)
	}
}

func TestFormUpdateChangesSlugWithConflictCheck(t *testing.T) {
	svc, _, _ := newFormFixture()
	form, _ := svc.Create(1, FormInput{Name: "A", Slug: "a"})
	_, _ = svc.Create(1, FormInput{Name: "B", Slug: "b"})

	if _, err := svc.Update(context.Background(), 1, form.ID, FormInput{Name: "A", Slug: "b"}); !errors.Is(err, ErrSlugConflict) {
		t.Fatalf("slug collision want ErrSlugConflict, got %v", err)
	}

	updated, err := svc.Update(context.Background(), 1, form.ID, FormInput{Name: "A2", Slug: "a2"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "A2" || updated.Slug != "a2" {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Keeping the same slug is not a conflict.
	if _, err := svc.Update(context.Background(), 1, form.ID, FormInput{Name: "A3", Slug: "a2"}); err != nil {
		t.Fatalf("same-slug update failed: %v", err)
	}

	// Omitting the slug keeps the current one.
	kept, err := svc.Update(context.Background(), 1, form.ID, FormInput{Name: "A4"})
	if err != nil {
		t.Fatalf("slugless update failed: %v", err)
	}
	if kept.Slug != "a2" {
		t.Fatalf("slug should be kept, got %s", kept.Slug)
	}
}

func TestFormUpdateEnforcesOwnership(t *testing.T) {
	svc, _, _ := newFormFixture()
	form, _ := svc.Create(1, FormInput{Name: "A", Slug: "a"})

	if _, err := svc.Update(context.Background(), 2, form.ID, FormInput{Name: "Hijack"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign update want ErrForbidden, got %v", err)
	}
}

func TestFormDeleteRemovesSubmissions(t *testing.T) {
	svc, formRepo, subRepo := newFormFixture()
	form, _ := svc.Create(1, FormInput{Name: "A", Slug: "a"})
	_ = subRepo.Create(&models.Submission{FormID: form.ID, FormSlug: form.Slug, Data: models.JSON{"x": "y"}})

	if err := svc.Delete(context.Background(), 2, form.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign delete want ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1, form.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if f, _ := formRepo.GetByID(form.ID); f != nil {
		t.Fatalf("form should be gone")
	}
	if subs, _ := subRepo.ListByFormID(form.ID); len(subs) != 0 {
		t.Fatalf("submissions should be gone")
	}
}

func TestNormalizeSettingsClampsRateLimit(t *testing.T) {
	got := normalizeSettings(FormSettingsInput{RateLimit: -5, SuccessMessage: "  thanks ", RedirectURL: " /done "})
	if got.RateLimit != 0 {
		t.Fatalf("negative rate limit should clamp to 0, got %d", got.RateLimit)
	}
	if got.SuccessMessage != "thanks" || got.RedirectURL != "/done" {
		t.Fatalf("settings should be trimmed: %+v", got)
	}
	if !got.Enabled {
		t.Fatalf("omitted enabled flag should default to true")
	}
}
