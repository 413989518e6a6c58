// Package sniff classifies attachment bytes by content signature and maps
// the detected MIME type to a file extension.
package sniff

import (
	"net/http"
	"strings"
)

// specialExts overrides the subtype-derived extension for MIME types whose
// subtype is not a usable extension.
var specialExts = map[string]string{
	"application/java-archive":     "jar",
	"application/x-7z-compressed":  "7z",
	"application/x-tar":            "tar",
	"image/svg+xml":                "svg",
	"application/x-gzip":           "gz",
	"application/gzip":             "gz",
	"text/plain":                   "txt",
	"application/x-rar-compressed": "rar",
}

// subtypeExts are MIME types whose subtype is the extension verbatim.
var subtypeExts = map[string]bool{
	"application/json": true,
	"application/pdf":  true,
	"application/rtf":  true,
	"application/zip":  true,
	"image/bmp":        true,
	"image/gif":        true,
	"image/jpeg":       true,
	"image/png":        true,
	"image/tiff":       true,
	"image/webp":       true,
	"text/csv":         true,
	"text/html":        true,
	"video/mp4":        true,
}

// Detect classifies data by its leading bytes and returns the MIME type
// together with the mapped file extension (without a leading dot).
// Unrecognized content yields an empty extension; callers append nothing
// in that case.
func Detect(data []byte) (mimeType, ext string) {
	mimeType = http.DetectContentType(data)

	// Strip parameters such as "; charset=utf-8".
	mimeType = strings.TrimSpace(strings.Split(mimeType, ";")[0])

	return mimeType, Extension(mimeType)
}

// Extension maps a MIME type to a file extension. Unknown types map to "".
func Extension(mimeType string) string {
	if ext, ok := specialExts[mimeType]; ok {
		return ext
	}
	if subtypeExts[mimeType] {
		if _, sub, ok := strings.Cut(mimeType, "/"); ok {
			return sub
		}
	}
	return ""
}
