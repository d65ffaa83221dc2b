package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// IncomingFile is an upload as decoded by the transport layer.
// Every field is untrusted.
type IncomingFile struct {
	Name         string
	DeclaredType string
	Size         int64
	Content      io.Reader
}

// NewIncomingFile wraps an in-memory payload.
func NewIncomingFile(name, declaredType string, data []byte) IncomingFile {
	return IncomingFile{
		Name:         name,
		DeclaredType: declaredType,
		Size:         int64(len(data)),
		Content:      bytes.NewReader(data),
	}
}

// FromMultipart opens a multipart form file. The caller closes the returned
// closer once the upload finished.
func FromMultipart(fh *multipart.FileHeader) (IncomingFile, io.Closer, error) {
	if fh == nil {
		return IncomingFile{}, nil, fmt.Errorf("%w: missing file header", ErrInvalidInput)
	}

	f, err := fh.Open()
	if err != nil {
		return IncomingFile{}, nil, fmt.Errorf("%w: opening form file: %v", ErrInvalidInput, err)
	}

	return IncomingFile{
		Name:         fh.Filename,
		DeclaredType: fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		Content:      f,
	}, f, nil
}
