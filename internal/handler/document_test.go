package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeDocService implements the calls exercised here; the embedded
// interface panics on anything else
type fakeDocService struct {
	docsysSvc.DocumentService

	created   *docsysSvc.CreateDocumentRequest
	createdBy string
	getErr    error
}

func (f *fakeDocService) CreateDocument(_ context.Context, userID string, req *docsysSvc.CreateDocumentRequest) (*models.Document, error) {
	f.created = req
	f.createdBy = userID
	return &models.Document{ID: testDocID, UserID: userID, Title: req.Title, Content: req.Content}, nil
}

func (f *fakeDocService) GetDocument(_ context.Context, userID, id string) (*models.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.Document{ID: id, UserID: userID, Title: "Notes"}, nil
}

func (f *fakeDocService) DeleteDocument(context.Context, string, string) error {
	return nil
}

func newMux(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	h.Register(mux, func(next http.Handler) http.Handler { return next })
	return mux
}

func serveAs(mux http.Handler, userID string, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httputil.WithUserID(req, userID))
	return rec
}

func TestCreateDocument(t *testing.T) {
	docs := &fakeDocService{}
	mux := newMux(&Handlers{Docs: NewDocumentHandler(docs, discardLogger)})

	req := httptest.NewRequest(http.MethodPost, "/api/documents",
		strings.NewReader(`{"title":"Go","content":"# Go","tags":["lang"]}`))
	rec := serveAs(mux, "alice", req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "alice", docs.createdBy)
	assert.Equal(t, []string{"lang"}, docs.created.Tags)

	var doc models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Go", doc.Title)
}

func TestGetDocument(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		getErr error
		status int
	}{
		{"found", "/api/documents/" + testDocID, nil, http.StatusOK},
		{"malformed id", "/api/documents/not-a-uuid", nil, http.StatusNotFound},
		{"not visible", "/api/documents/" + testDocID, domain.NotFound("Document not found"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newMux(&Handlers{Docs: NewDocumentHandler(&fakeDocService{getErr: tt.getErr}, discardLogger)})
			rec := serveAs(mux, "alice", httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDeleteDocument(t *testing.T) {
	mux := newMux(&Handlers{Docs: NewDocumentHandler(&fakeDocService{}, discardLogger)})
	rec := serveAs(mux, "alice", httptest.NewRequest(http.MethodDelete, "/api/documents/"+testDocID, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Document deleted"}`, rec.Body.String())
}

type fakeImportService struct {
	result   *docsysSvc.ImportResult
	folderID *string
	names    []string
}

func (f *fakeImportService) Import(_ context.Context, _ string, folderID *string, files []docsysSvc.UploadedFile) (*docsysSvc.ImportResult, error) {
	f.folderID = folderID
	for _, file := range files {
		f.names = append(f.names, file.Filename)
	}
	return f.result, nil
}

type fakeExportService struct {
	file *docsysSvc.ExportedFile
	err  error
}

func (f *fakeExportService) Export(context.Context, string, string, docsysSvc.ExportFormat) (*docsysSvc.ExportedFile, error) {
	return f.file, f.err
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImport(t *testing.T) {
	tests := []struct {
		name   string
		result *docsysSvc.ImportResult
		status int
	}{
		{
			name: "some imported",
			result: &docsysSvc.ImportResult{
				Success: []models.DocumentRef{{ID: testDocID, Title: "notes"}},
				Failed:  []docsysSvc.ImportError{},
			},
			status: http.StatusCreated,
		},
		{
			name: "nothing imported",
			result: &docsysSvc.ImportResult{
				Success: []models.DocumentRef{},
				Failed:  []docsysSvc.ImportError{{Filename: "notes.md", Error: "File size exceeds 1MB limit"}},
			},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imports := &fakeImportService{result: tt.result}
			mux := newMux(&Handlers{Import: NewImportHandler(imports, &fakeExportService{}, discardLogger)})

			body, contentType := multipartBody(t,
				map[string]string{"folderId": testDocID},
				map[string]string{"notes.md": "# Notes"})
			req := httptest.NewRequest(http.MethodPost, "/api/documents/import", body)
			req.Header.Set("Content-Type", contentType)
			rec := serveAs(mux, "alice", req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, []string{"notes.md"}, imports.names)
			require.NotNil(t, imports.folderID)
			assert.Equal(t, testDocID, *imports.folderID)

			var result docsysSvc.ImportResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.Equal(t, *tt.result, result)
		})
	}
}

func TestExport(t *testing.T) {
	exports := &fakeExportService{file: &docsysSvc.ExportedFile{
		Filename:    "Notes.md",
		ContentType: "text/markdown; charset=utf-8",
		Body:        []byte("# Notes\n"),
	}}
	mux := newMux(&Handlers{Import: NewImportHandler(&fakeImportService{}, exports, discardLogger)})

	rec := serveAs(mux, "alice",
		httptest.NewRequest(http.MethodGet, "/api/documents/"+testDocID+"/export?format=markdown", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Notes.md")
	assert.Equal(t, "# Notes\n", rec.Body.String())
}

func TestExportInvalidFormat(t *testing.T) {
	exports := &fakeExportService{err: domain.Invalid("Invalid format. Use markdown or pdf")}
	mux := newMux(&Handlers{Import: NewImportHandler(&fakeImportService{}, exports, discardLogger)})

	rec := serveAs(mux, "alice",
		httptest.NewRequest(http.MethodGet, "/api/documents/"+testDocID+"/export?format=docx", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid format. Use markdown or pdf", decodeProblem(t, rec)["detail"])
}
