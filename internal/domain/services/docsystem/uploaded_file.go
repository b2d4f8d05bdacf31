package docsystem

import "io"

// UploadedFile is one file part of a multipart request
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
