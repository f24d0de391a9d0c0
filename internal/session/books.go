package session

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"longbox/internal/filename"
	"longbox/internal/match"
)

// Discover walks root and returns a book per comic archive found, sorted by
// path for deterministic batch ordering. Hidden directories are skipped.
func Discover(root string) ([]match.Book, error) {
	var books []match.Book
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filename.IsBookFile(name) {
			books = append(books, match.Book{Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Path < books[j].Path })
	return books, nil
}
