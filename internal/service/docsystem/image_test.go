package docsystem

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	docsys "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

func TestUploadImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Photos", "")
	f.images.(*imageService).now = func() time.Time { return time.UnixMilli(1700000000123) }

	img, err := f.images.UploadImage(ctx, alice, doc.ID, &docsysSvc.UploadedFile{
		Filename:    "東京 tower.png",
		ContentType: "image/png",
		Size:        4,
		Content:     bytes.NewReader([]byte("\x89PNG")),
	})
	require.NoError(t, err)

	key := "documents/" + doc.ID + "/1700000000123-___tower.png"
	assert.Equal(t, key, img.Pathname)
	assert.Equal(t, "https://cdn.test/"+key, img.URL)
	assert.Equal(t, int64(4), img.Size)
	assert.Contains(t, f.blobs.objects, key)

	list, err := f.images.ListImages(ctx, alice, doc.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.images.DeleteImage(ctx, alice, doc.ID, img.ID))
	assert.Empty(t, f.store.images)
	assert.Equal(t, []string{key}, f.blobs.deleted)
}

func TestUploadImageRejects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Photos", "")
	f.store.share(doc.ID, bob, docsys.PermissionView)

	tests := []struct {
		name    string
		caller  string
		file    *docsysSvc.UploadedFile
		wantErr error
		wantMsg string
	}{
		{"no file", alice, nil, domain.ErrValidation, "No file provided"},
		{"pdf", alice, &docsysSvc.UploadedFile{ContentType: "application/pdf", Content: strings.NewReader("x")},
			domain.ErrValidation, "Unsupported file type: application/pdf"},
		{"too large", alice, &docsysSvc.UploadedFile{ContentType: "image/jpeg", Content: bytes.NewReader(make([]byte, 5<<20+1))},
			domain.ErrValidation, "File size exceeds 5MB limit"},
		{"view share", bob, &docsysSvc.UploadedFile{ContentType: "image/png", Content: strings.NewReader("x")},
			domain.ErrForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.images.UploadImage(ctx, tt.caller, doc.ID, tt.file)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
	assert.Empty(t, f.blobs.objects)
}
