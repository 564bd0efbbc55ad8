package webroot

import (
	"mime"
	"path/filepath"
	"strings"
)

// extensionTypes pins the types of common web files so the result does not
// depend on which mime.types files the host happens to carry.
var extensionTypes = map[string]string{
	".css":  "text/css",
	".csv":  "text/csv",
	".gif":  "image/gif",
	".htm":  "text/html",
	".html": "text/html",
	".ico":  "image/vnd.microsoft.icon",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".js":   "text/javascript",
	".json": "application/json",
	".md":   "text/markdown",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".py":   "text/x-python",
	".svg":  "image/svg+xml",
	".txt":  "text/plain",
	".wasm": "application/wasm",
	".webp": "image/webp",
	".xml":  "text/xml",
	".zip":  "application/zip",
}

func init() {
	for ext, typ := range extensionTypes {
		if err := mime.AddExtensionType(ext, typ); err != nil {
			panic(err)
		}
	}
}

// typeByExtension returns the media type for name's extension without
// parameters, or "" when the extension is unknown.
func typeByExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	typ, _, _ := strings.Cut(mime.TypeByExtension(ext), ";")
	return strings.TrimSpace(typ)
}
