package util

import (
	"errors"
	"path"
	"strings"
)

var ErrInvalidKey = errors.New("invalid media key")

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// CleanMediaKey normalises a slash-separated media key such as
// "projects/calendar-1.png". Absolute keys, traversal and empty segments are rejected.
func CleanMediaKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		clean, err := SanitizeFileName(seg)
		if err != nil || clean == "." {
			return "", ErrInvalidKey
		}
		segments[i] = clean
	}
	return path.Join(segments...), nil
}
