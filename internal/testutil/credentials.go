// Package testutil holds in-memory doubles shared by service tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/student-records-api/internal/domain"
)

type credentialState struct {
	users map[string]domain.User
	otps  []domain.OtpRecord
}

func (s *credentialState) clone() *credentialState {
	c := &credentialState{users: make(map[string]domain.User, len(s.users))}
	for k, v := range s.users {
		c.users[k] = v
	}
	c.otps = append([]domain.OtpRecord(nil), s.otps...)
	return c
}

// CredentialStore is an in-memory domain.CredentialStore.
// Atomic holds a single store-wide lock for the whole callback and restores
// the previous state when the callback fails, like a serializable transaction.
type CredentialStore struct {
	mu    *sync.Mutex
	state **credentialState
	inTx  bool
}

func NewCredentialStore() *CredentialStore {
	st := &credentialState{users: map[string]domain.User{}}
	return &CredentialStore{mu: &sync.Mutex{}, state: &st}
}

func (s *CredentialStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *CredentialStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx domain.CredentialStore) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := (*s.state).clone()
	tx := &CredentialStore{mu: s.mu, state: s.state, inTx: true}
	if err := fn(ctx, tx); err != nil {
		*s.state = snapshot
		return err
	}
	return nil
}

func (s *CredentialStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	defer s.lock()()
	for _, u := range (*s.state).users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *CredentialStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	defer s.lock()()
	u, ok := (*s.state).users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *CredentialStore) InsertUser(_ context.Context, u *domain.User) error {
	defer s.lock()()
	st := *s.state
	for _, existing := range st.users {
		if existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	if _, ok := st.users[u.UserID]; ok {
		return domain.ErrConflict
	}
	st.users[u.UserID] = *u
	return nil
}

func (s *CredentialStore) UpdateUser(_ context.Context, userID string, patch domain.UserPatch, at time.Time) error {
	defer s.lock()()
	st := *s.state
	u, ok := st.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Email != nil {
		for id, other := range st.users {
			if id != userID && other.Email == *patch.Email {
				return domain.ErrConflict
			}
		}
		u.Email = *patch.Email
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = at
	st.users[userID] = u
	return nil
}

func (s *CredentialStore) DeleteUser(_ context.Context, userID string) error {
	defer s.lock()()
	st := *s.state
	if _, ok := st.users[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(st.users, userID)
	return nil
}

func (s *CredentialStore) InsertOtp(_ context.Context, rec *domain.OtpRecord) error {
	defer s.lock()()
	st := *s.state
	st.otps = append(st.otps, *rec)
	return nil
}

func (s *CredentialStore) FindLatestOtp(_ context.Context, email string) (*domain.OtpRecord, error) {
	defer s.lock()()
	var latest *domain.OtpRecord
	for i := range (*s.state).otps {
		rec := (*s.state).otps[i]
		if rec.Email != email {
			continue
		}
		if latest == nil || rec.ExpiresAt.After(latest.ExpiresAt) ||
			(rec.ExpiresAt.Equal(latest.ExpiresAt) && rec.CreatedAt.After(latest.CreatedAt)) {
			latest = &rec
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (s *CredentialStore) DeleteOtpsFor(_ context.Context, email string) error {
	defer s.lock()()
	s.filterOtps(func(r domain.OtpRecord) bool { return r.Email != email })
	return nil
}

func (s *CredentialStore) DeleteOtpsForUser(_ context.Context, userID string) error {
	defer s.lock()()
	s.filterOtps(func(r domain.OtpRecord) bool { return r.UserID == nil || *r.UserID != userID })
	return nil
}

func (s *CredentialStore) filterOtps(keep func(domain.OtpRecord) bool) {
	st := *s.state
	kept := st.otps[:0:0]
	for _, r := range st.otps {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	st.otps = kept
}

// Users returns a snapshot of every stored user.
func (s *CredentialStore) Users() []domain.User {
	defer s.lock()()
	out := make([]domain.User, 0, len((*s.state).users))
	for _, u := range (*s.state).users {
		out = append(out, u)
	}
	return out
}

// Otps returns the stored records for email.
func (s *CredentialStore) Otps(email string) []domain.OtpRecord {
	defer s.lock()()
	var out []domain.OtpRecord
	for _, r := range (*s.state).otps {
		if r.Email == email {
			out = append(out, r)
		}
	}
	return out
}

// Outbox is a Notifier that keeps every code it was asked to deliver.
type Outbox struct {
	mu   sync.Mutex
	sent map[string][]string
	Err  error
}

func NewOutbox() *Outbox {
	return &Outbox{sent: map[string][]string{}}
}

func (o *Outbox) SendOTP(_ context.Context, email, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.sent[email] = append(o.sent[email], code)
	return nil
}

// Last returns the most recent code sent to email, or "".
func (o *Outbox) Last(email string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	codes := o.sent[email]
	if len(codes) == 0 {
		return ""
	}
	return codes[len(codes)-1]
}

func (o *Outbox) Count(email string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sent[email])
}

// ManualClock is a settable clock.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(now time.Time) *ManualClock { return &ManualClock{now: now} }

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
