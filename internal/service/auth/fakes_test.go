package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
	"github.com/Hosi121/Bansho-sub000/internal/mailer"
	"github.com/Hosi121/Bansho-sub000/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUsers struct {
	byID map[string]*models.User
	seq  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return &domain.ConflictError{Message: "User with this email already exists", ResourceType: "user"}
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", f.seq)
	stored := *u
	f.byID[u.ID] = &stored
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFound("User not found")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.NotFound("User not found")
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) error {
	stored, ok := f.byID[u.ID]
	if !ok {
		return domain.NotFound("User not found")
	}
	stored.Name = u.Name
	stored.Avatar = u.Avatar
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	stored, ok := f.byID[id]
	if !ok {
		return domain.NotFound("User not found")
	}
	stored.PasswordHash = hash
	return nil
}

type fakeResets struct {
	tokens []*models.PasswordResetToken
	// staleReads returns tokens as they looked before any use
	staleReads bool
}

func (f *fakeResets) Create(_ context.Context, t *models.PasswordResetToken) error {
	t.ID = fmt.Sprintf("token-%d", len(f.tokens)+1)
	f.tokens = append(f.tokens, t)
	return nil
}

func (f *fakeResets) GetByToken(_ context.Context, token string) (*models.PasswordResetToken, error) {
	for _, t := range f.tokens {
		if t.Token == token {
			if f.staleReads {
				c := *t
				c.UsedAt = nil
				return &c, nil
			}
			return t, nil
		}
	}
	return nil, domain.NotFound("reset token not found")
}

func (f *fakeResets) InvalidateUnused(_ context.Context, userID string) error {
	now := time.Now()
	for _, t := range f.tokens {
		if t.UserID == userID && t.UsedAt == nil {
			t.UsedAt = &now
		}
	}
	return nil
}

func (f *fakeResets) MarkUsed(_ context.Context, id string) error {
	now := time.Now()
	for _, t := range f.tokens {
		if t.ID == id {
			if t.UsedAt != nil {
				return domain.Invalid("Reset token has already been used")
			}
			t.UsedAt = &now
			return nil
		}
	}
	return domain.NotFound("reset token not found")
}

type inlineTx struct{}

func (inlineTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakeIssuer struct{}

func (fakeIssuer) IssueToken(u *models.User) (string, error) {
	return "token-for-" + u.ID, nil
}

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type memoryBlobs struct {
	objects map[string][]byte
	putErr  error
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{objects: map[string][]byte{}}
}

func (b *memoryBlobs) Put(_ context.Context, key string, r io.Reader, _ string) (*storage.Blob, error) {
	if b.putErr != nil {
		return nil, b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b.objects[key] = data
	return &storage.Blob{Key: key, URL: "https://cdn.test/" + key}, nil
}

func (b *memoryBlobs) Delete(_ context.Context, key string) error {
	delete(b.objects, key)
	return nil
}

var errBoom = errors.New("boom")
