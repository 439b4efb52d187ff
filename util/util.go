package util

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

var (
	unsafeChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// TitleToFilename converts a video title to a safe MIDI filename:
// characters invalid in filenames are stripped and whitespace collapses
// to underscores.
func TitleToFilename(title string) string {
	sanitized := unsafeChars.ReplaceAllString(title, "")
	sanitized = whitespace.ReplaceAllString(strings.TrimSpace(sanitized), "_")
	if sanitized == "" {
		sanitized = "output"
	}
	return sanitized + ".mid"
}

// WriteFileAtomic writes data to a uniquely named temp file next to
// path and renames it into place, so a failed write never leaves a
// truncated file behind.
func WriteFileAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func Min[A constraints.Ordered](a A, b A) A {
	if a < b {
		return a
	}
	return b
}

func Max[A constraints.Ordered](a A, b A) A {
	if a > b {
		return a
	}
	return b
}
