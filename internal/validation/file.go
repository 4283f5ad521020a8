package validation

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

type FileConstraints struct {
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// ResourceConstraints applies to shared resource uploads. Document and image
// types only, capped at 5MB.
var ResourceConstraints = FileConstraints{
	AllowedExtensions: map[string]bool{
		".pdf":  true,
		".doc":  true,
		".docx": true,
		".txt":  true,
		".png":  true,
		".jpg":  true,
		".jpeg": true,
	},
	MaxSize: 5 << 20, // 5MB
}

var (
	ErrFileTypeNotSupported = errors.New("file type not supported")
	ErrFileTooLarge         = errors.New("file is too large")
)

// ValidateFile checks an upload against the constraints before anything is
// sent to object storage.
func (c FileConstraints) ValidateFile(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !c.AllowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrFileTypeNotSupported, ext)
	}

	if header.Size > c.MaxSize {
		return fmt.Errorf("%w: maximum size supported is %dMB", ErrFileTooLarge, c.MaxSize>>20)
	}

	return nil
}
