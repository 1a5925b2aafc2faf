package cropyield

import (
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Background is the page background image, read once at startup.
type Background struct {
	Path     string
	Data     []byte
	MIMEType string
}

// LoadBackground reads an image file. Any failure is an AssetLoadError and
// is fatal to startup.
func LoadBackground(path string) (*Background, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}
	if len(data) == 0 {
		return nil, &AssetLoadError{Path: path, Err: errors.New("file is empty")}
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, &AssetLoadError{Path: path, Err: errors.New("not an image: " + mime)}
	}
	return &Background{Path: path, Data: data, MIMEType: mime}, nil
}

// Name returns the file name, used as the resource name.
func (b *Background) Name() string {
	return filepath.Base(b.Path)
}

// DataURI returns the image as an inline data: URI for HTML output.
func (b *Background) DataURI() string {
	return "data:" + b.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(b.Data)
}
