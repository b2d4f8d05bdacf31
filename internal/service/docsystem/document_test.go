package docsystem

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	docsys "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

func ptr[T any](v T) *T { return &v }

func TestCreateDocument(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	folder := f.store.addFolder(alice, "Notes", nil)

	doc, err := f.docs.CreateDocument(ctx, alice, &docsysSvc.CreateDocumentRequest{
		Title:    "  Go memo ",
		Content:  "goroutines are cheap",
		Tags:     []string{"go", " go ", "", "lang"},
		FolderID: &folder.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Go memo", doc.Title)
	assert.Equal(t, []string{"go", "lang"}, doc.Tags)
	assert.Equal(t, 3, doc.WordCount)
	assert.Equal(t, &folder.ID, doc.FolderID)

	stored, err := f.docs.GetDocument(ctx, alice, doc.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "lang"}, stored.Tags)
	assert.Empty(t, stored.EdgesFrom)
}

func TestCreateDocumentValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bobsFolder := f.store.addFolder(bob, "Bob", nil)

	tests := []struct {
		name    string
		req     docsysSvc.CreateDocumentRequest
		wantErr error
	}{
		{"blank title", docsysSvc.CreateDocumentRequest{Title: "   "}, domain.ErrValidation},
		{"long title", docsysSvc.CreateDocumentRequest{Title: strings.Repeat("あ", 201)}, domain.ErrValidation},
		{"long tag", docsysSvc.CreateDocumentRequest{Title: "ok", Tags: []string{strings.Repeat("t", 51)}}, domain.ErrValidation},
		{"foreign folder", docsysSvc.CreateDocumentRequest{Title: "ok", FolderID: &bobsFolder.ID}, domain.ErrNotFound},
		{"malformed folder", docsysSvc.CreateDocumentRequest{Title: "ok", FolderID: ptr("nope")}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.docs.CreateDocument(ctx, alice, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	doc, err := f.docs.CreateDocument(ctx, alice, &docsysSvc.CreateDocumentRequest{Title: strings.Repeat("あ", 200), FolderID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, doc.FolderID, "blank folder id means root")
}

func TestGetDocumentAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Secret", "x")
	f.store.share(doc.ID, bob, docsys.PermissionView)

	_, err := f.docs.GetDocument(ctx, bob, doc.ID)
	assert.NoError(t, err)

	_, err = f.docs.GetDocument(ctx, carol, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "strangers must not learn the document exists")

	_, err = f.docs.GetDocument(ctx, alice, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetDocumentAttachesEdges(t *testing.T) {
	f := newFixture()
	a := f.store.addDoc(alice, "A", "")
	b := f.store.addDoc(alice, "B", "")
	f.store.edges = append(f.store.edges, docsys.Edge{ID: "e1", FromDocumentID: a.ID, ToDocumentID: b.ID, Weight: 0.7})

	got, err := f.docs.GetDocument(context.Background(), alice, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.EdgesFrom)
	require.Len(t, got.EdgesTo, 1)
	assert.Equal(t, a.ID, got.EdgesTo[0].FromDocumentID)
}

func TestUpdateDocument(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Draft", "one")
	folder := f.store.addFolder(alice, "Work", nil)

	got, err := f.docs.UpdateDocument(ctx, alice, doc.ID, &docsysSvc.UpdateDocumentRequest{
		Title:    ptr("Final"),
		Content:  ptr("one two three"),
		Tags:     &[]string{"done"},
		FolderID: httputil.OptionalString{Present: true, Value: &folder.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, 3, got.WordCount)
	assert.Equal(t, []string{"done"}, got.Tags)
	assert.Equal(t, &folder.ID, got.FolderID)

	got, err = f.docs.UpdateDocument(ctx, alice, doc.ID, &docsysSvc.UpdateDocumentRequest{
		FolderID: httputil.OptionalString{Present: true},
	})
	require.NoError(t, err)
	assert.Nil(t, got.FolderID, "null folder moves to root")
	assert.Equal(t, "Final", got.Title, "absent fields are untouched")

	_, err = f.docs.UpdateDocument(ctx, alice, doc.ID, &docsysSvc.UpdateDocumentRequest{Title: ptr(" ")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateDocumentAsShareHolder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Shared", "")
	f.store.share(doc.ID, bob, docsys.PermissionEdit)
	f.store.share(doc.ID, carol, docsys.PermissionView)

	got, err := f.docs.UpdateDocument(ctx, bob, doc.ID, &docsysSvc.UpdateDocumentRequest{Content: ptr("bob was here")})
	require.NoError(t, err)
	assert.Equal(t, "bob was here", got.Content)

	_, err = f.docs.UpdateDocument(ctx, bob, doc.ID, &docsysSvc.UpdateDocumentRequest{Tags: &[]string{"x"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.docs.UpdateDocument(ctx, carol, doc.ID, &docsysSvc.UpdateDocumentRequest{Content: ptr("nope")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteAndPinAreOwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Mine", "")
	f.store.share(doc.ID, bob, docsys.PermissionEdit)

	assert.ErrorIs(t, f.docs.DeleteDocument(ctx, bob, doc.ID), domain.ErrForbidden)
	_, err := f.docs.TogglePin(ctx, bob, doc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	pin, err := f.docs.TogglePin(ctx, alice, doc.ID)
	require.NoError(t, err)
	assert.True(t, pin.IsPinned)
	pin, err = f.docs.TogglePin(ctx, alice, doc.ID)
	require.NoError(t, err)
	assert.False(t, pin.IsPinned)

	require.NoError(t, f.docs.DeleteDocument(ctx, alice, doc.ID))
	_, err = f.docs.GetDocument(ctx, alice, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMoveDocument(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Loose", "")
	folder := f.store.addFolder(alice, "Box", nil)

	got, err := f.docs.MoveDocument(ctx, alice, doc.ID, &docsysSvc.MoveDocumentRequest{FolderID: &folder.ID})
	require.NoError(t, err)
	assert.Equal(t, &folder.ID, got.FolderID)

	_, err = f.docs.MoveDocument(ctx, alice, doc.ID, &docsysSvc.MoveDocumentRequest{FolderID: ptr(uuid.NewString())})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBulkOperations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.store.addDoc(alice, "A", "")
	b := f.store.addDoc(alice, "B", "")
	foreign := f.store.addDoc(bob, "C", "")
	folder := f.store.addFolder(alice, "Box", nil)

	res, err := f.docs.BulkMove(ctx, alice, &docsysSvc.BulkMoveRequest{
		DocumentIDs: []string{a.ID, b.ID, foreign.ID},
		FolderID:    &folder.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "2 documents moved", res.Message)
	assert.Nil(t, f.store.docs[foreign.ID].FolderID)

	res, err = f.docs.BulkDelete(ctx, alice, &docsysSvc.BulkDeleteRequest{DocumentIDs: []string{a.ID}})
	require.NoError(t, err)
	assert.Equal(t, "1 documents deleted", res.Message)

	_, err = f.docs.BulkDelete(ctx, alice, &docsysSvc.BulkDeleteRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.docs.BulkDelete(ctx, alice, &docsysSvc.BulkDeleteRequest{DocumentIDs: []string{"nope"}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
