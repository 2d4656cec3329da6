package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ghostform/ghostform/internal/models"
	"github.com/ghostform/ghostform/internal/provider"
	"github.com/ghostform/ghostform/internal/service"

	"github.com/gin-gonic/gin"
)

type stubFormRepo struct {
	forms []*models.Form
}

func (r *stubFormRepo) Create(form *models.Form) error { r.forms = append(r.forms, form); return nil }

func (r *stubFormRepo) GetByID(id uint) (*models.Form, error) {
	for _, f := range r.forms {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

func (r *stubFormRepo) GetBySlug(slug string) (*models.Form, error) {
	for _, f := range r.forms {
		if f.Slug == slug {
			return f, nil
		}
	}
	return nil, nil
}

func (r *stubFormRepo) ListByUserID(userID uint) ([]models.Form, error) { return nil, nil }

func (r *stubFormRepo) Update(form *models.Form) error { return nil }

func (r *stubFormRepo) Delete(id uint) error { return nil }

type stubSubmissionRepo struct {
	stored []*models.Submission
}

func (r *stubSubmissionRepo) Create(submission *models.Submission) error {
	r.stored = append(r.stored, submission)
	return nil
}

func (r *stubSubmissionRepo) ListByFormID(formID uint) ([]models.Submission, error) {
	return nil, nil
}

func (r *stubSubmissionRepo) CountByFormSlugSince(slug string, since time.Time) (int64, error) {
	var count int64
	for _, s := range r.stored {
		if s.FormSlug == slug && s.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *stubSubmissionRepo) DeleteByFormID(formID uint) error { return nil }

func (r *stubSubmissionRepo) DeleteByFormIDs(formIDs []uint) error { return nil }

func newSubmitRouter(t *testing.T, form *models.Form) (*gin.Engine, *stubSubmissionRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	formRepo := &stubFormRepo{}
	if form != nil {
		formRepo.forms = append(formRepo.forms, form)
	}
	subRepo := &stubSubmissionRepo{}
	formService := service.NewFormService(formRepo, subRepo)
	container := &provider.Container{
		FormService:       formService,
		SubmissionService: service.NewSubmissionService(formService, subRepo),
	}
	handler := New(container)

	r := gin.New()
	r.POST("/api/submit/:slug", handler.Submit)
	r.GET("/api/submit/:slug", handler.SubmitRedirect)
	r.GET("/api/forms/:slug", handler.GetFormBySlug)
	return r, subRepo
}

func contactForm(settings models.FormSettings) *models.Form {
	return &models.Form{
		ID:     1,
		UserID: 1,
		Name:   "Contact",
		Slug:   "contact",
		Fields: models.FieldList{
			{ID: "name", Type: "text", Label: "Name", Required: true},
			{ID: "email", Type: "email", Label: "Email"},
		},
		Settings: settings,
	}
}

func TestSubmitJSONSuccess(t *testing.T) {
	r, subRepo := newSubmitRouter(t, contactForm(models.FormSettings{
		Enabled:        true,
		SuccessMessage: "Cheers!",
		RedirectURL:    "/done",
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit/contact", strings.NewReader(`{"name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success     bool   `json:"success"`
		Message     string `json:"message"`
		RedirectURL string `json:"redirectUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success || resp.Message != "Cheers!" || resp.RedirectURL != "/done" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(subRepo.stored) != 1 {
		t.Fatalf("expected one stored submission, got %d", len(subRepo.stored))
	}
}

func TestSubmitFormPostRedirects(t *testing.T) {
	r, _ := newSubmitRouter(t, contactForm(models.FormSettings{
		Enabled:     true,
		RedirectURL: "https://example.com/thanks",
	}))

	body := url.Values{"name": {"Ada"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit/contact", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status want 302 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://example.com/thanks" {
		t.Fatalf("location want thanks page got %s", loc)
	}
}

func TestSubmitFormPostRendersSuccessPage(t *testing.T) {
	r, _ := newSubmitRouter(t, contactForm(models.FormSettings{
		Enabled:        true,
		SuccessMessage: "Thanks <b>Ada</b>",
	}))

	body := url.Values{"name": {"Ada"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit/contact", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("content type want html got %s", ct)
	}
	if !strings.Contains(w.Body.String(), "Thanks &lt;b&gt;Ada&lt;/b&gt;") {
		t.Fatalf("success message should be HTML-escaped: %s", w.Body.String())
	}
}

func TestSubmitFormPostLastValueWins(t *testing.T) {
	r, subRepo := newSubmitRouter(t, contactForm(models.FormSettings{Enabled: true}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit/contact", strings.NewReader("name=first&name=second"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if len(subRepo.stored) != 1 {
		t.Fatalf("expected one stored submission")
	}
	if subRepo.stored[0].Data["name"] != "second" {
		t.Fatalf("repeated key should keep the last value, got %v", subRepo.stored[0].Data["name"])
	}
}

func TestSubmitUnknownSlug(t *testing.T) {
	r, _ := newSubmitRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit/missing", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Form not found") {
		t.Fatalf("body should name the error: %s", w.Body.String())
	}
}

func TestSubmitDisabledForm(t *testing.T) {
	r, _ := newSubmitRouter(t, contactForm(models.FormSettings{Enabled: false}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit/contact", strings.NewReader(`{"name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Form is disabled") {
		t.Fatalf("body should name the error: %s", w.Body.String())
	}
}

func TestSubmitRateLimitedResponse(t *testing.T) {
	form := contactForm(models.FormSettings{Enabled: true, RateLimit: 1})
	r, subRepo := newSubmitRouter(t, form)
	subRepo.stored = append(subRepo.stored, &models.Submission{
		FormID:    form.ID,
		FormSlug:  form.Slug,
		CreatedAt: time.Now().Add(-time.Minute),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit/contact", strings.NewReader(`{"name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status want 429 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Rate limit exceeded") {
		t.Fatalf("body should name the error: %s", w.Body.String())
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	r, subRepo := newSubmitRouter(t, contactForm(models.FormSettings{Enabled: true}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit/contact", strings.NewReader(`{"email":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	var resp struct {
		Msg  string `json:"msg"`
		Data struct {
			Errors map[string]string `json:"errors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Msg != "Validation failed" {
		t.Fatalf("msg want Validation failed got %q", resp.Msg)
	}
	if resp.Data.Errors["name"] != "Name is required" {
		t.Fatalf("name error wrong: %q", resp.Data.Errors["name"])
	}
	if resp.Data.Errors["email"] != "Please enter a valid email address" {
		t.Fatalf("email error wrong: %q", resp.Data.Errors["email"])
	}
	if len(subRepo.stored) != 0 {
		t.Fatalf("rejected submission must not be stored")
	}
}

func TestSubmitMalformedJSONBody(t *testing.T) {
	r, _ := newSubmitRouter(t, contactForm(models.FormSettings{Enabled: true}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit/contact", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
}

func TestSubmitRedirectForBrowsers(t *testing.T) {
	r, _ := newSubmitRouter(t, contactForm(models.FormSettings{Enabled: true}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/submit/contact", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("status want 302 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/form/contact" {
		t.Fatalf("location want /form/contact got %s", loc)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/submit/missing", nil)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("missing slug want 404 got %d", w2.Code)
	}
}

func TestGetFormBySlugPublicView(t *testing.T) {
	r, _ := newSubmitRouter(t, contactForm(models.FormSettings{
		Enabled:        true,
		SuccessMessage: "Cheers!",
		RateLimit:      5,
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/forms/contact", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		Data struct {
			Name           string           `json:"name"`
			Slug           string           `json:"slug"`
			Fields         models.FieldList `json:"fields"`
			SuccessMessage string           `json:"successMessage"`
			Enabled        bool             `json:"enabled"`
			Settings       *json.RawMessage `json:"settings"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Data.Name != "Contact" || resp.Data.Slug != "contact" || !resp.Data.Enabled {
		t.Fatalf("unexpected view: %+v", resp.Data)
	}
	if len(resp.Data.Fields) != 2 {
		t.Fatalf("fields should be served, got %d", len(resp.Data.Fields))
	}
	if resp.Data.Settings != nil {
		t.Fatalf("raw settings must not leak into the public view")
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/forms/missing", nil)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("missing slug want 404 got %d", w2.Code)
	}
}
