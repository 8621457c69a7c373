// Package storage persists uploaded recipe images on local disk under the
// configured media root.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const recipeImageDir = "uploads/recipe"

// DiskStore writes images below root and returns paths relative to it, using
// forward slashes so they can be served as URLs.
type DiskStore struct {
	root string
}

// NewDiskStore creates a store rooted at the given directory.
func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// Save stores the image under uploads/recipe/{slugified-title}_{uuid}.{ext},
// keeping the original file extension. The random id keeps same-titled
// recipes from colliding.
func (s *DiskStore) Save(title, originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s_%s%s", Slugify(title), uuid.New().String(), ext)
	relPath := recipeImageDir + "/" + name

	dir := filepath.Join(s.root, recipeImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return relPath, nil
}
