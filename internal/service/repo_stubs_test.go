package service

import (
	"sort"
	"time"

	"github.com/ghostform/ghostform/internal/models"
)

// In-memory repository doubles for service tests.

type memUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Update(user *models.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Delete(id uint) error {
	delete(r.users, id)
	return nil
}

type memSessionRepo struct {
	sessions map[string]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *memSessionRepo) Create(session *models.Session) error {
	copied := *session
	r.sessions[session.Token] = &copied
	return nil
}

func (r *memSessionRepo) GetByToken(token string) (*models.Session, error) {
	s, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *memSessionRepo) Delete(token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *memSessionRepo) DeleteByUserID(userID uint) error {
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

type memOTPRepo struct {
	otps   map[uint]*models.OTP
	nextID uint
}

func newMemOTPRepo() *memOTPRepo {
	return &memOTPRepo{otps: make(map[uint]*models.OTP), nextID: 1}
}

func (r *memOTPRepo) Create(otp *models.OTP) error {
	otp.ID = r.nextID
	r.nextID++
	copied := *otp
	r.otps[otp.ID] = &copied
	return nil
}

func (r *memOTPRepo) GetLatest(email, purpose string) (*models.OTP, error) {
	var latest *models.OTP
	for _, o := range r.otps {
		if o.Email != email || o.Purpose != purpose {
			continue
		}
		if latest == nil || o.ID > latest.ID {
			latest = o
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *memOTPRepo) DeleteByID(id uint) error {
	delete(r.otps, id)
	return nil
}

func (r *memOTPRepo) DeleteByEmailAndPurpose(email, purpose string) error {
	for id, o := range r.otps {
		if o.Email == email && o.Purpose == purpose {
			delete(r.otps, id)
		}
	}
	return nil
}

func (r *memOTPRepo) DeleteByEmail(email string) error {
	for id, o := range r.otps {
		if o.Email == email {
			delete(r.otps, id)
		}
	}
	return nil
}

func (r *memOTPRepo) IncrementAttempt(id uint) error {
	if o, ok := r.otps[id]; ok {
		o.AttemptCount++
	}
	return nil
}

type memFormRepo struct {
	forms  map[uint]*models.Form
	nextID uint
}

func newMemFormRepo() *memFormRepo {
	return &memFormRepo{forms: make(map[uint]*models.Form), nextID: 1}
}

func (r *memFormRepo) Create(form *models.Form) error {
	form.ID = r.nextID
	r.nextID++
	copied := *form
	r.forms[form.ID] = &copied
	return nil
}

func (r *memFormRepo) GetByID(id uint) (*models.Form, error) {
	f, ok := r.forms[id]
	if !ok {
		return nil, nil
	}
	copied := *f
	return &copied, nil
}

func (r *memFormRepo) GetBySlug(slug string) (*models.Form, error) {
	for _, f := range r.forms {
		if f.Slug == slug {
			copied := *f
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memFormRepo) ListByUserID(userID uint) ([]models.Form, error) {
	var out []models.Form
	for _, f := range r.forms {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memFormRepo) Update(form *models.Form) error {
	copied := *form
	r.forms[form.ID] = &copied
	return nil
}

func (r *memFormRepo) Delete(id uint) error {
	delete(r.forms, id)
	return nil
}

type memSubmissionRepo struct {
	submissions map[uint]*models.Submission
	nextID      uint
}

func newMemSubmissionRepo() *memSubmissionRepo {
	return &memSubmissionRepo{submissions: make(map[uint]*models.Submission), nextID: 1}
}

func (r *memSubmissionRepo) Create(submission *models.Submission) error {
	submission.ID = r.nextID
	r.nextID++
	copied := *submission
	r.submissions[submission.ID] = &copied
	return nil
}

func (r *memSubmissionRepo) ListByFormID(formID uint) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range r.submissions {
		if s.FormID == formID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memSubmissionRepo) CountByFormSlugSince(slug string, since time.Time) (int64, error) {
	var count int64
	for _, s := range r.submissions {
		if s.FormSlug == slug && s.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *memSubmissionRepo) DeleteByFormID(formID uint) error {
	for id, s := range r.submissions {
		if s.FormID == formID {
			delete(r.submissions, id)
		}
	}
	return nil
}

func (r *memSubmissionRepo) DeleteByFormIDs(formIDs []uint) error {
	for _, formID := range formIDs {
		if err := r.DeleteByFormID(formID); err != nil {
			return err
		}
	}
	return nil
}
