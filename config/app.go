package config

import (
	"os"
	"strings"
)

// DebugEnabled reports whether APP_DEBUG=true. When enabled, unexpected
// errors are returned to the client verbatim instead of a generic message.
func DebugEnabled() bool {
	return strings.ToLower(os.Getenv("APP_DEBUG")) == "true"
}

// UploadPath returns the root directory for stored case attachments.
func UploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}
