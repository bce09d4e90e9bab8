package dblob

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/url"
	"os"

	"github.com/memodb-io/assetd/internal/modules/model"
)

// materializeBlobURL decodes the stored payload into a temp file and returns
/// its file:// URL. The Go analog of URL.createObjectURL.
func materializeBlobURL(a *model.Asset) (string, error) {
	data, err := base64.StdEncoding.DecodeString(a.Base64)
	if err != nil {
		return "", fmt.Errorf("decode asset payload: %w", err)
	}

	ext := ""
	if exts, err := mime.ExtensionsByType(a.MimeType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}

	f, err := os.CreateTemp("", "dblob-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write blob file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close blob file: %w", err)
	}

	u := url.URL{Scheme: "file", Path: f.Name()}
	return u.String(), nil
}

// RevokeBlobURL releases a handle returned by GetImageAssetAsBlobURL. The Go
// analog of URL.revokeObjectURL; handles not revoked live until the OS
// cleans its temp dir.
func RevokeBlobURL(blobURL string) error {
	u, err := url.Parse(blobURL)
	if err != nil {
		return fmt.Errorf("parse blob url: %w", err)
	}
	if u.Scheme != "file" {
		return fmt.Errorf("not a blob url: %s", blobURL)
	}
	return os.Remove(u.Path)
}
