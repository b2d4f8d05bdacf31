package docsystem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	docsys "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/export"
)

type fakePDF struct {
	rendered []export.PDFDocument
	err      error
}

func (p *fakePDF) Render(doc export.PDFDocument) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.rendered = append(p.rendered, doc)
	return []byte("%PDF-1.3"), nil
}

func TestExport(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "My Notes: draft", "body text")
	f.store.share(doc.ID, bob, docsys.PermissionView)
	pdf := &fakePDF{}
	svc := NewExportService(f.authorizer, pdf, discardLogger())

	file, err := svc.Export(ctx, alice, doc.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "My_Notes_draft.md", file.Filename)
	assert.Equal(t, "text/markdown; charset=utf-8", file.ContentType)
	assert.Equal(t, "# My Notes: draft\n\nbody text", string(file.Body))

	file, err = svc.Export(ctx, bob, doc.ID, docsysSvc.ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "My_Notes_draft.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "%PDF-1.3", string(file.Body))
	require.Len(t, pdf.rendered, 1)
	assert.Equal(t, "body text", pdf.rendered[0].Content)
}

func TestExportErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.store.addDoc(alice, "Doc", "")

	svc := NewExportService(f.authorizer, &fakePDF{}, discardLogger())
	_, err := svc.Export(ctx, alice, doc.ID, "docx")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Invalid format. Use markdown or pdf", err.Error())

	_, err = svc.Export(ctx, carol, doc.ID, docsysSvc.ExportMarkdown)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	failing := NewExportService(f.authorizer, &fakePDF{err: errors.New("font missing")}, discardLogger())
	_, err = failing.Export(ctx, alice, doc.ID, docsysSvc.ExportPDF)
	assert.ErrorContains(t, err, "font missing")
}
