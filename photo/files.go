package photo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// Attachment is an encoded photo together with the name of the file it came
// from or will be written to.
type Attachment struct {
	Name      string
	MediaType string
	Data      string
}

// FileError reports a failure reading or writing a photo file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("photo: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

const genericContentType = "application/octet-stream"

// Import reads the file at path and encodes it. The attachment name is the
// file name without its extension.
func Import(fs afero.Fs, path string) (Attachment, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Attachment{}, &FileError{Op: "read", Path: path, Err: err}
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if name == "" {
		return Attachment{}, &FileError{Op: "read", Path: path, Err: fmt.Errorf("file has no name")}
	}

	return Attachment{
		Name:      name,
		MediaType: MediaType(detectContentType(data, ext)),
		Data:      Encode(data),
	}, nil
}

func detectContentType(data []byte, ext string) string {
	contentType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	contentType = strings.TrimSpace(contentType)
	if contentType != genericContentType && contentType != "" {
		return contentType
	}
	if ext = strings.ToLower(strings.TrimPrefix(ext, ".")); ext != "" {
		return "image/" + ext
	}
	return genericContentType
}

// Export decodes the attachment and writes it to <dir>/<name>.<extension>,
// creating dir first. It returns the written path.
func Export(fs afero.Fs, dir string, a Attachment) (string, error) {
	if a.Name == "" || a.Name == "." || a.Name == ".." || strings.ContainsAny(a.Name, `/\`) {
		return "", &FileError{Op: "export", Path: a.Name, Err: fmt.Errorf("invalid file name")}
	}

	ext, err := Extension(a.MediaType)
	if err != nil {
		return "", err
	}
	data, err := Decode(a.Data)
	if err != nil {
		return "", err
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", &FileError{Op: "mkdir", Path: dir, Err: err}
	}

	path := filepath.Join(dir, a.Name+"."+ext)
	if err := afero.WriteFile(fs, path, data, os.FileMode(0o644)); err != nil {
		return "", &FileError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}
