package handler

import "net/http"

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Docs     *DocumentHandler
	Trash    *TrashHandler
	Search   *SearchHandler
	Import   *ImportHandler
	Images   *ImageHandler
	Shares   *ShareHandler
	Versions *VersionHandler
	Folders  *FolderHandler
	Tree     *TreeHandler
	Tags     *TagHandler
	Links    *LinkHandler
	Graph    *GraphHandler
}

// Register mounts the API on mux (Go 1.22+ patterns). limitAuth wraps the
// public auth endpoints.
func (h *Handlers) Register(mux *http.ServeMux, limitAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /health", HealthCheck)

	// Auth
	mux.Handle("POST /api/auth/register", limitAuth(http.HandlerFunc(h.Auth.Register)))
	mux.Handle("POST /api/auth/login", limitAuth(http.HandlerFunc(h.Auth.Login)))
	mux.Handle("POST /api/auth/forgot-password", limitAuth(http.HandlerFunc(h.Auth.ForgotPassword)))
	mux.Handle("POST /api/auth/reset-password", limitAuth(http.HandlerFunc(h.Auth.ResetPassword)))
	mux.HandleFunc("GET /api/auth/me", h.Auth.Me)

	// Users
	mux.HandleFunc("GET /api/users/{id}", h.Users.GetUser)
	mux.HandleFunc("PUT /api/users/{id}", h.Users.UpdateUser)
	mux.HandleFunc("PUT /api/users/{id}/avatar", h.Users.UploadAvatar)
	mux.HandleFunc("PUT /api/users/{id}/password", h.Users.ChangePassword)

	// Documents; literal segments win over {id}
	mux.HandleFunc("GET /api/documents", h.Docs.ListDocuments)
	mux.HandleFunc("POST /api/documents", h.Docs.CreateDocument)
	mux.HandleFunc("GET /api/documents/search", h.Search.Search)
	mux.HandleFunc("GET /api/documents/search/titles", h.Search.SearchTitles)
	mux.HandleFunc("GET /api/documents/trash", h.Trash.ListTrash)
	mux.HandleFunc("POST /api/documents/import", h.Import.Import)
	mux.HandleFunc("POST /api/documents/bulk/move", h.Docs.BulkMove)
	mux.HandleFunc("POST /api/documents/bulk/delete", h.Docs.BulkDelete)
	mux.HandleFunc("GET /api/documents/{id}", h.Docs.GetDocument)
	mux.HandleFunc("PUT /api/documents/{id}", h.Docs.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", h.Docs.DeleteDocument)
	mux.HandleFunc("POST /api/documents/{id}/pin", h.Docs.TogglePin)
	mux.HandleFunc("PUT /api/documents/{id}/move", h.Docs.MoveDocument)
	mux.HandleFunc("POST /api/documents/{id}/restore", h.Trash.Restore)
	mux.HandleFunc("DELETE /api/documents/{id}/permanent", h.Trash.DeletePermanently)
	mux.HandleFunc("GET /api/documents/{id}/export", h.Import.Export)
	mux.HandleFunc("GET /api/documents/{id}/links", h.Links.Links)
	mux.HandleFunc("GET /api/documents/{id}/backlinks", h.Links.Backlinks)

	// Images
	mux.HandleFunc("GET /api/documents/{id}/images", h.Images.ListImages)
	mux.HandleFunc("POST /api/documents/{id}/images", h.Images.UploadImage)
	mux.HandleFunc("DELETE /api/documents/{id}/images", h.Images.DeleteImage)

	// Shares
	mux.HandleFunc("GET /api/documents/{id}/share", h.Shares.ListShares)
	mux.HandleFunc("POST /api/documents/{id}/share", h.Shares.CreateShare)
	mux.HandleFunc("PUT /api/documents/{id}/share", h.Shares.UpdateShare)
	mux.HandleFunc("DELETE /api/documents/{id}/share", h.Shares.DeleteShare)
	mux.HandleFunc("GET /api/shared", h.Shares.SharedWithMe)

	// Versions
	mux.HandleFunc("GET /api/documents/{id}/versions", h.Versions.ListVersions)
	mux.HandleFunc("POST /api/documents/{id}/versions", h.Versions.CreateVersion)
	mux.HandleFunc("GET /api/documents/{id}/versions/{versionId}", h.Versions.GetVersion)
	mux.HandleFunc("POST /api/documents/{id}/versions/{versionId}", h.Versions.RestoreVersion)

	// Folders and tree
	mux.HandleFunc("GET /api/folders", h.Folders.ListFolders)
	mux.HandleFunc("POST /api/folders", h.Folders.CreateFolder)
	mux.HandleFunc("GET /api/folders/tree", h.Tree.GetTree)
	mux.HandleFunc("GET /api/folders/{id}", h.Folders.GetFolder)
	mux.HandleFunc("PUT /api/folders/{id}", h.Folders.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Folders.DeleteFolder)

	// Tags
	mux.HandleFunc("GET /api/tags", h.Tags.ListTags)
	mux.HandleFunc("GET /api/tags/{id}", h.Tags.GetTag)
	mux.HandleFunc("PUT /api/tags/{id}", h.Tags.RenameTag)
	mux.HandleFunc("DELETE /api/tags/{id}", h.Tags.DeleteTag)

	// Wiki links
	mux.HandleFunc("POST /api/wikilinks/complete", h.Links.Complete)
	mux.HandleFunc("POST /api/wikilinks/insert", h.Links.Insert)

	// Graph and AI
	mux.HandleFunc("GET /api/graph", h.Graph.GetGraph)
	mux.HandleFunc("GET /api/relations", h.Graph.ListRelations)
	mux.HandleFunc("POST /api/relations", h.Graph.Relate)
	mux.HandleFunc("POST /api/ask", h.Graph.Ask)
}
