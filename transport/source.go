package transport

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

const fallbackName = "media file"

// Source is the media currently handed to the engine.
type Source struct {
	// Locator is a local path or URL, passed to the engine as is.
	Locator string

	// Name is what the status line shows.
	Name string
}

// NewSource creates a Source named after the last element of its locator.
func NewSource(locator string) Source {
	return Source{
		Locator: locator,
		Name:    DisplayName(locator),
	}
}

// DisplayName returns the file name of a path or the last path segment of a URL.
func DisplayName(locator string) string {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return fallbackName
	}

	if strings.Contains(locator, "://") {
		u, err := url.Parse(locator)
		if err != nil {
			return fallbackName
		}

		name := path.Base(u.Path)
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
		if name == "" || name == "/" || name == "." {
			return fallbackName
		}
		return name
	}

	name := filepath.Base(locator)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallbackName
	}
	return name
}

func (s Source) String() string {
	return s.Name
}
