// Package driveurl converts Google Drive share links into URLs usable as
// image sources.
package driveurl

import "strings"

const (
	viewPrefix = "drive.google.com/file/d/"
	directBase = "https://drive.google.com/uc?export=view&id="
)

// IsDriveLink reports whether url points at Google Drive.
func IsDriveLink(url string) bool {
	return strings.Contains(url, "drive.google.com")
}

// FileID extracts the file ID from a Drive view URL
// (https://drive.google.com/file/d/FILE_ID/view?usp=...) or a direct URL
// carrying an id query parameter. It returns "" when the URL has neither.
func FileID(url string) string {
	idx := strings.Index(url, viewPrefix)
	if idx < 0 {
		if !IsDriveLink(url) {
			return ""
		}

		idIdx := strings.Index(url, "id=")
		if idIdx < 0 {
			return ""
		}

		id := url[idIdx+len("id="):]
		if amp := strings.Index(id, "&"); amp >= 0 {
			id = id[:amp]
		}

		return id
	}

	rest := url[idx+len(viewPrefix):]

	end := strings.Index(rest, "/")
	if end < 0 {
		end = len(rest)
	}

	return rest[:end]
}

// ToDirect converts a Drive view URL to a direct image URL. URLs that carry
// no recognizable file ID are returned unchanged.
func ToDirect(url string) string {
	id := FileID(url)
	if id == "" {
		return url
	}

	return directBase + id
}
