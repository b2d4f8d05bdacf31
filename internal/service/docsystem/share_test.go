package docsystem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	docsys "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

func TestCreateShare(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Plan", "")

	share, err := f.shares.CreateShare(ctx, alice, doc.ID, &docsysSvc.CreateShareRequest{Email: " BOB@example.com "})
	require.NoError(t, err)
	assert.Equal(t, bob, share.UserID)
	assert.Equal(t, docsys.PermissionView, share.Permission, "permission defaults to view")
	require.NotNil(t, share.User)
	assert.Equal(t, "Bob", share.User.Name)

	tests := []struct {
		name    string
		caller  string
		req     docsysSvc.CreateShareRequest
		wantErr error
		wantMsg string
	}{
		{"duplicate", alice, docsysSvc.CreateShareRequest{Email: "bob@example.com"}, domain.ErrValidation, "Document already shared with this user"},
		{"self", alice, docsysSvc.CreateShareRequest{Email: "alice@example.com"}, domain.ErrValidation, "Cannot share with yourself"},
		{"unknown user", alice, docsysSvc.CreateShareRequest{Email: "nobody@example.com"}, domain.ErrNotFound, "User not found"},
		{"bad permission", alice, docsysSvc.CreateShareRequest{Email: "carol@example.com", Permission: "admin"}, domain.ErrValidation, ""},
		{"bad email", alice, docsysSvc.CreateShareRequest{Email: "carol"}, domain.ErrValidation, ""},
		{"not owner", bob, docsysSvc.CreateShareRequest{Email: "carol@example.com"}, domain.ErrForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.shares.CreateShare(ctx, tt.caller, doc.ID, &tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestUpdateAndDeleteShare(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Plan", "")
	share, err := f.shares.CreateShare(ctx, alice, doc.ID, &docsysSvc.CreateShareRequest{Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = f.docs.UpdateDocument(ctx, bob, doc.ID, &docsysSvc.UpdateDocumentRequest{Content: ptr("x")})
	require.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.shares.UpdateShare(ctx, alice, doc.ID, share.ID, &docsysSvc.UpdateShareRequest{Permission: docsys.PermissionEdit})
	require.NoError(t, err)
	assert.Equal(t, docsys.PermissionEdit, updated.Permission)

	_, err = f.docs.UpdateDocument(ctx, bob, doc.ID, &docsysSvc.UpdateDocumentRequest{Content: ptr("x")})
	require.NoError(t, err)

	_, err = f.shares.UpdateShare(ctx, alice, doc.ID, share.ID, &docsysSvc.UpdateShareRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.shares.UpdateShare(ctx, alice, doc.ID, "not-a-uuid", &docsysSvc.UpdateShareRequest{Permission: docsys.PermissionView})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.shares.ListShares(ctx, alice, doc.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = f.shares.ListShares(ctx, bob, doc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.shares.DeleteShare(ctx, alice, doc.ID, share.ID))
	_, err = f.docs.GetDocument(ctx, bob, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
