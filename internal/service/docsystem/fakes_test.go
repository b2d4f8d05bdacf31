package docsystem

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	docsys "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	authsvc "github.com/Hosi121/Bansho-sub000/internal/service/auth"
	"github.com/Hosi121/Bansho-sub000/internal/storage"
)

const (
	alice = "11111111-1111-1111-1111-111111111111"
	bob   = "22222222-2222-2222-2222-222222222222"
	carol = "33333333-3333-3333-3333-333333333333"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore backs every in-memory repository of a test
type memStore struct {
	docs     map[string]*docsys.Document
	folders  map[string]*docsys.Folder
	tags     map[string]*docsys.Tag
	docTags  map[string][]string
	edges    []docsys.Edge
	shares   map[string]*docsys.DocumentShare
	versions []*docsys.DocumentVersion
	images   map[string]*docsys.DocumentImage
	users    map[string]*models.User
}

func newMemStore() *memStore {
	return &memStore{
		docs:    map[string]*docsys.Document{},
		folders: map[string]*docsys.Folder{},
		tags:    map[string]*docsys.Tag{},
		docTags: map[string][]string{},
		shares:  map[string]*docsys.DocumentShare{},
		images:  map[string]*docsys.DocumentImage{},
		users: map[string]*models.User{
			alice: {ID: alice, Email: "alice@example.com", Name: "Alice"},
			bob:   {ID: bob, Email: "bob@example.com", Name: "Bob"},
			carol: {ID: carol, Email: "carol@example.com", Name: "Carol"},
		},
	}
}

func (m *memStore) tagNames(docID string) []string {
	names := []string{}
	for _, id := range m.docTags[docID] {
		if t, ok := m.tags[id]; ok && t.DeletedAt == nil {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (m *memStore) copyDoc(d *docsys.Document) *docsys.Document {
	c := *d
	c.Tags = m.tagNames(d.ID)
	return &c
}

func (m *memStore) liveDocs(userID string) []*docsys.Document {
	var out []*docsys.Document
	for _, d := range m.docs {
		if d.UserID == userID && d.DeletedAt == nil {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func summary(d *docsys.Document) docsys.DocumentSummary {
	return docsys.DocumentSummary{ID: d.ID, Title: d.Title, FolderID: d.FolderID, IsPinned: d.IsPinned, WordCount: d.WordCount, UpdatedAt: d.UpdatedAt}
}

// addDoc stores a live document directly
func (m *memStore) addDoc(userID, title, content string) *docsys.Document {
	d := &docsys.Document{ID: uuid.NewString(), UserID: userID, Title: title, Content: content, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.docs[d.ID] = d
	return d
}

// addFolder stores a live folder directly
func (m *memStore) addFolder(userID, name string, parentID *string) *docsys.Folder {
	f := &docsys.Folder{ID: uuid.NewString(), UserID: userID, Name: name, ParentID: parentID}
	m.folders[f.ID] = f
	return f
}

type memDocs struct {
	docsysRepo.DocumentRepository
	*memStore
}

func (r memDocs) Create(_ context.Context, doc *docsys.Document) error {
	doc.ID = uuid.NewString()
	c := *doc
	r.docs[doc.ID] = &c
	return nil
}

func (r memDocs) GetByID(_ context.Context, id string) (*docsys.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, domain.NotFound("Document not found")
	}
	return r.copyDoc(d), nil
}

func (r memDocs) ListByUser(_ context.Context, userID string) ([]docsys.Document, error) {
	out := []docsys.Document{}
	for _, d := range r.liveDocs(userID) {
		out = append(out, *r.copyDoc(d))
	}
	return out, nil
}

func (r memDocs) ListSummaries(_ context.Context, userID string) ([]docsys.DocumentSummary, error) {
	out := []docsys.DocumentSummary{}
	for _, d := range r.liveDocs(userID) {
		out = append(out, summary(d))
	}
	return out, nil
}

func (r memDocs) ListByFolder(_ context.Context, userID, folderID string) ([]docsys.DocumentSummary, error) {
	out := []docsys.DocumentSummary{}
	for _, d := range r.liveDocs(userID) {
		if d.FolderID != nil && *d.FolderID == folderID {
			out = append(out, summary(d))
		}
	}
	return out, nil
}

func (r memDocs) Update(_ context.Context, doc *docsys.Document) error {
	d, ok := r.docs[doc.ID]
	if !ok {
		return domain.NotFound("Document not found")
	}
	d.Title, d.Content, d.WordCount, d.FolderID = doc.Title, doc.Content, doc.WordCount, doc.FolderID
	d.UpdatedAt = time.Now()
	return nil
}

func (r memDocs) SetPinned(_ context.Context, id string, pinned bool) error {
	r.docs[id].IsPinned = pinned
	return nil
}

func (r memDocs) SoftDelete(_ context.Context, id string) error {
	now := time.Now()
	r.docs[id].DeletedAt = &now
	return nil
}

func (r memDocs) Restore(_ context.Context, id string) error {
	r.docs[id].DeletedAt = nil
	return nil
}

func (r memDocs) HardDelete(_ context.Context, id string) error {
	delete(r.docs, id)
	delete(r.docTags, id)
	return nil
}

func (r memDocs) BulkMove(_ context.Context, userID string, ids []string, folderID *string) (int, error) {
	n := 0
	for _, d := range r.liveDocs(userID) {
		if slices.Contains(ids, d.ID) {
			d.FolderID = folderID
			n++
		}
	}
	return n, nil
}

func (r memDocs) BulkSoftDelete(_ context.Context, userID string, ids []string) (int, error) {
	n := 0
	now := time.Now()
	for _, d := range r.liveDocs(userID) {
		if slices.Contains(ids, d.ID) {
			d.DeletedAt = &now
			n++
		}
	}
	return n, nil
}

func (r memDocs) ListTrash(_ context.Context, userID string) ([]docsys.Document, error) {
	out := []docsys.Document{}
	for _, d := range r.docs {
		if d.UserID == userID && d.DeletedAt != nil {
			out = append(out, *r.copyDoc(d))
		}
	}
	return out, nil
}

func (r memDocs) Search(_ context.Context, userID, query string, limit int) ([]docsys.Document, error) {
	q := strings.ToLower(query)
	out := []docsys.Document{}
	for _, d := range r.liveDocs(userID) {
		hit := strings.Contains(strings.ToLower(d.Title), q) || strings.Contains(strings.ToLower(d.Content), q)
		for _, t := range r.tagNames(d.ID) {
			hit = hit || strings.Contains(strings.ToLower(t), q)
		}
		if hit && len(out) < limit {
			out = append(out, *r.copyDoc(d))
		}
	}
	return out, nil
}

func (r memDocs) SearchTitles(_ context.Context, userID, query string, limit int) ([]docsys.DocumentRef, error) {
	out := []docsys.DocumentRef{}
	for _, d := range r.liveDocs(userID) {
		if strings.Contains(strings.ToLower(d.Title), strings.ToLower(query)) && len(out) < limit {
			out = append(out, docsys.DocumentRef{ID: d.ID, Title: d.Title})
		}
	}
	return out, nil
}

func (r memDocs) FindByTitles(_ context.Context, userID string, titles []string) ([]docsys.DocumentRef, error) {
	out := []docsys.DocumentRef{}
	for _, d := range r.liveDocs(userID) {
		if slices.Contains(titles, d.Title) {
			out = append(out, docsys.DocumentRef{ID: d.ID, Title: d.Title})
		}
	}
	return out, nil
}

func (r memDocs) ListContaining(_ context.Context, userID, excludeID, needle string) ([]docsys.Document, error) {
	out := []docsys.Document{}
	for _, d := range r.liveDocs(userID) {
		if d.ID != excludeID && strings.Contains(strings.ToLower(d.Content), strings.ToLower(needle)) {
			out = append(out, *r.copyDoc(d))
		}
	}
	return out, nil
}

type memFolders struct {
	*memStore
}

func (r memFolders) Create(_ context.Context, f *docsys.Folder) error {
	f.ID = uuid.NewString()
	c := *f
	r.folders[f.ID] = &c
	return nil
}

func (r memFolders) GetByID(_ context.Context, id, userID string) (*docsys.Folder, error) {
	f, ok := r.folders[id]
	if !ok || f.UserID != userID || f.DeletedAt != nil {
		return nil, domain.NotFound("Folder not found")
	}
	c := *f
	return &c, nil
}

func (r memFolders) ListByUser(_ context.Context, userID string) ([]docsys.Folder, error) {
	out := []docsys.Folder{}
	for _, f := range r.folders {
		if f.UserID == userID && f.DeletedAt == nil {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memFolders) ListChildren(ctx context.Context, id, userID string) ([]docsys.Folder, error) {
	all, _ := r.ListByUser(ctx, userID)
	out := []docsys.Folder{}
	for _, f := range all {
		if f.ParentID != nil && *f.ParentID == id {
			out = append(out, f)
		}
	}
	return out, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r memFolders) NameExists(_ context.Context, userID string, parentID *string, name, excludeID string) (bool, error) {
	for _, f := range r.folders {
		if f.UserID == userID && f.DeletedAt == nil && f.Name == name && f.ID != excludeID && sameParent(f.ParentID, parentID) {
			return true, nil
		}
	}
	return false, nil
}

func (r memFolders) Update(_ context.Context, f *docsys.Folder) error {
	stored := r.folders[f.ID]
	stored.Name, stored.ParentID = f.Name, f.ParentID
	return nil
}

func (r memFolders) HasContents(_ context.Context, id string) (bool, error) {
	for _, f := range r.folders {
		if f.ParentID != nil && *f.ParentID == id && f.DeletedAt == nil {
			return true, nil
		}
	}
	for _, d := range r.docs {
		if d.FolderID != nil && *d.FolderID == id && d.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (r memFolders) SoftDelete(_ context.Context, id string) error {
	now := time.Now()
	r.folders[id].DeletedAt = &now
	return nil
}

type memTags struct {
	docsysRepo.TagRepository
	*memStore
}

func (r memTags) Upsert(_ context.Context, userID, name string) (*docsys.Tag, error) {
	for _, t := range r.tags {
		if t.UserID == userID && t.Name == name {
			t.DeletedAt = nil
			c := *t
			return &c, nil
		}
	}
	t := &docsys.Tag{ID: uuid.NewString(), UserID: userID, Name: name}
	r.tags[t.ID] = t
	c := *t
	return &c, nil
}

func (r memTags) SetDocumentTags(_ context.Context, documentID string, tagIDs []string) error {
	r.docTags[documentID] = slices.Clone(tagIDs)
	return nil
}

func (r memTags) ListByUser(_ context.Context, userID string) ([]docsys.Tag, error) {
	out := []docsys.Tag{}
	for _, t := range r.tags {
		if t.UserID == userID && t.DeletedAt == nil {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memTags) GetByID(_ context.Context, id, userID string) (*docsys.Tag, error) {
	t, ok := r.tags[id]
	if !ok || t.UserID != userID || t.DeletedAt != nil {
		return nil, domain.NotFound("Tag not found")
	}
	c := *t
	return &c, nil
}

func (r memTags) ListDocuments(_ context.Context, tagID string) ([]docsys.DocumentSummary, error) {
	out := []docsys.DocumentSummary{}
	for docID, ids := range r.docTags {
		if d, ok := r.docs[docID]; ok && d.DeletedAt == nil && slices.Contains(ids, tagID) {
			out = append(out, summary(d))
		}
	}
	return out, nil
}

func (r memTags) NameExists(_ context.Context, userID, name, excludeID string) (bool, error) {
	for _, t := range r.tags {
		if t.UserID == userID && t.Name == name && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memTags) Rename(_ context.Context, id, name string) error {
	r.tags[id].Name = name
	return nil
}

func (r memTags) SoftDelete(_ context.Context, id string) error {
	now := time.Now()
	r.tags[id].DeletedAt = &now
	for docID, ids := range r.docTags {
		r.docTags[docID] = slices.DeleteFunc(ids, func(s string) bool { return s == id })
	}
	return nil
}

type memEdges struct {
	docsysRepo.EdgeRepository
	*memStore
}

func (r memEdges) ListByUser(_ context.Context, userID string) ([]docsys.Edge, error) {
	out := []docsys.Edge{}
	for _, e := range r.edges {
		from, ok1 := r.docs[e.FromDocumentID]
		to, ok2 := r.docs[e.ToDocumentID]
		if ok1 && ok2 && from.UserID == userID && to.UserID == userID && from.DeletedAt == nil && to.DeletedAt == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memEdges) DeleteByDocument(_ context.Context, documentID string) error {
	r.edges = slices.DeleteFunc(r.edges, func(e docsys.Edge) bool {
		return e.FromDocumentID == documentID || e.ToDocumentID == documentID
	})
	return nil
}

type memShares struct {
	docsysRepo.ShareRepository
	*memStore
}

func (r memShares) Create(_ context.Context, s *docsys.DocumentShare) error {
	for _, existing := range r.shares {
		if existing.DocumentID == s.DocumentID && existing.UserID == s.UserID {
			return &domain.ConflictError{Message: "Document already shared with this user", ResourceType: "share"}
		}
	}
	s.ID = uuid.NewString()
	c := *s
	r.shares[s.ID] = &c
	return nil
}

func (r memShares) GetByID(_ context.Context, documentID, id string) (*docsys.DocumentShare, error) {
	s, ok := r.shares[id]
	if !ok || s.DocumentID != documentID {
		return nil, domain.NotFound("Share not found")
	}
	c := *s
	return &c, nil
}

func (r memShares) GetForUser(_ context.Context, documentID, userID string) (*docsys.DocumentShare, error) {
	for _, s := range r.shares {
		if s.DocumentID == documentID && s.UserID == userID {
			c := *s
			return &c, nil
		}
	}
	return nil, domain.NotFound("Share not found")
}

func (r memShares) ListByDocument(_ context.Context, documentID string) ([]docsys.DocumentShare, error) {
	out := []docsys.DocumentShare{}
	for _, s := range r.shares {
		if s.DocumentID == documentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r memShares) UpdatePermission(_ context.Context, id string, p docsys.Permission) error {
	r.shares[id].Permission = p
	return nil
}

func (r memShares) Delete(_ context.Context, id string) error {
	delete(r.shares, id)
	return nil
}

func (r memShares) DeleteByDocument(_ context.Context, documentID string) error {
	for id, s := range r.shares {
		if s.DocumentID == documentID {
			delete(r.shares, id)
		}
	}
	return nil
}

// share grants userID a permission on docID directly
func (m *memStore) share(docID, userID string, p docsys.Permission) {
	id := uuid.NewString()
	m.shares[id] = &docsys.DocumentShare{ID: id, DocumentID: docID, UserID: userID, Permission: p}
}

type memVersions struct {
	*memStore
}

func (r memVersions) Create(_ context.Context, v *docsys.DocumentVersion) error {
	next := 1
	for _, existing := range r.versions {
		if existing.DocumentID == v.DocumentID && existing.Version >= next {
			next = existing.Version + 1
		}
	}
	v.ID = uuid.NewString()
	v.Version = next
	v.CreatedAt = time.Now()
	c := *v
	r.versions = append(r.versions, &c)
	return nil
}

func (r memVersions) ListByDocument(_ context.Context, documentID string) ([]docsys.DocumentVersion, error) {
	out := []docsys.DocumentVersion{}
	for i := len(r.versions) - 1; i >= 0; i-- {
		if v := r.versions[i]; v.DocumentID == documentID {
			c := *v
			c.Content = ""
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memVersions) GetByID(_ context.Context, documentID, id string) (*docsys.DocumentVersion, error) {
	for _, v := range r.versions {
		if v.ID == id && v.DocumentID == documentID {
			c := *v
			if u, ok := r.users[v.UserID]; ok {
				s := u.Summary()
				c.User = &s
			}
			return &c, nil
		}
	}
	return nil, domain.NotFound("Version not found")
}

func (r memVersions) DeleteByDocument(_ context.Context, documentID string) error {
	r.versions = slices.DeleteFunc(r.versions, func(v *docsys.DocumentVersion) bool { return v.DocumentID == documentID })
	return nil
}

type memImages struct {
	*memStore
}

func (r memImages) Create(_ context.Context, img *docsys.DocumentImage) error {
	img.ID = uuid.NewString()
	c := *img
	r.images[img.ID] = &c
	return nil
}

func (r memImages) GetByID(_ context.Context, documentID, id string) (*docsys.DocumentImage, error) {
	img, ok := r.images[id]
	if !ok || img.DocumentID != documentID {
		return nil, domain.NotFound("Image not found")
	}
	c := *img
	return &c, nil
}

func (r memImages) ListByDocument(_ context.Context, documentID string) ([]docsys.DocumentImage, error) {
	out := []docsys.DocumentImage{}
	for _, img := range r.images {
		if img.DocumentID == documentID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (r memImages) Delete(_ context.Context, id string) error {
	delete(r.images, id)
	return nil
}

func (r memImages) DeleteByDocument(_ context.Context, documentID string) error {
	for id, img := range r.images {
		if img.DocumentID == documentID {
			delete(r.images, id)
		}
	}
	return nil
}

type memUsers struct {
	repositories.UserRepository
	*memStore
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.NotFound("User not found")
}

type inlineTx struct{}

func (inlineTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type memoryBlobs struct {
	objects map[string][]byte
	deleted []string
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{objects: map[string][]byte{}}
}

func (b *memoryBlobs) Put(_ context.Context, key string, r io.Reader, _ string) (*storage.Blob, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b.objects[key] = data
	return &storage.Blob{Key: key, URL: "https://cdn.test/" + key}, nil
}

func (b *memoryBlobs) Delete(_ context.Context, key string) error {
	delete(b.objects, key)
	b.deleted = append(b.deleted, key)
	return nil
}

// fixture wires every service over one memStore
type fixture struct {
	store      *memStore
	blobs      *memoryBlobs
	authorizer docsysSvc.DocumentAuthorizer
	validator  *ResourceValidator
	docs       docsysSvc.DocumentService
	folders    docsysSvc.FolderService
	tags       docsysSvc.TagService
	trash      docsysSvc.TrashService
	shares     docsysSvc.ShareService
	versions   docsysSvc.VersionService
	images     docsysSvc.ImageService
	links      docsysSvc.LinkService
	search     docsysSvc.SearchService
}

func newFixture() *fixture {
	store := newMemStore()
	docRepo := memDocs{memStore: store}
	folderRepo := memFolders{store}
	tagRepo := memTags{memStore: store}
	edgeRepo := memEdges{memStore: store}
	shareRepo := memShares{memStore: store}
	versionRepo := memVersions{store}
	imageRepo := memImages{store}
	logger := discardLogger()

	f := &fixture{
		store:      store,
		blobs:      newMemoryBlobs(),
		authorizer: authsvc.NewShareAuthorizer(docRepo, shareRepo),
		validator:  NewResourceValidator(folderRepo),
	}
	analyzer := NewContentAnalyzer()
	f.docs = NewDocumentService(docRepo, tagRepo, edgeRepo, inlineTx{}, analyzer, f.authorizer, f.validator, logger)
	f.folders = NewFolderService(folderRepo, docRepo, f.validator, logger)
	f.tags = NewTagService(tagRepo, inlineTx{}, logger)
	f.trash = NewTrashService(docRepo, shareRepo, versionRepo, imageRepo, edgeRepo, inlineTx{}, f.blobs, logger)
	f.shares = NewShareService(shareRepo, memUsers{memStore: store}, f.authorizer, logger)
	f.versions = NewVersionService(versionRepo, docRepo, inlineTx{}, analyzer, f.authorizer, logger)
	f.images = NewImageService(imageRepo, f.blobs, f.authorizer, logger)
	f.links = NewLinkService(docRepo, f.authorizer, logger)
	f.search = NewSearchService(docRepo, logger)
	return f
}
