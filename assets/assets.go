// Package assets stores uploaded planner images on the local filesystem.
package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lifeplan.assets")

// Folders below the upload root.
const (
	WishlistDir = "lists_for_life/wishlist"
	CoversDir   = "lists_for_life/reading/covers"
	BannersDir  = "lists_for_life/reading/banners"
	IconsDir    = "lists_for_life/reading/icons"
	YearsDir    = "yearly_plans/year"
)

var (
	ErrExists   = errors.New("file already exists")
	ErrNotFound = errors.New("file not found")
	ErrInvalid  = errors.New("invalid file name")
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".webp": true,
}

// Storage is an upload tree rooted at one directory.
type Storage struct {
	root string
}

// New prepares the fixed folders under root.
func New(root string) (*Storage, error) {
	for _, dir := range []string{WishlistDir, CoversDir, BannersDir, IconsDir, YearsDir} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &Storage{root: root}, nil
}

// Root is the directory served under /assets.
func (s *Storage) Root() string { return s.root }

// YearDir is the folder of the best-in-month images of year.
func YearDir(year int) string {
	return path.Join(YearsDir, strconv.Itoa(year))
}

// BaseName strips any directory part from a client file name.
func BaseName(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("%q: %w", name, ErrInvalid)
	}
	return base, nil
}

// IsImage reports whether name carries an accepted image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

func (s *Storage) resolve(dir, name string) (string, string, error) {
	base, err := BaseName(name)
	if err != nil {
		return "", "", err
	}
	rel := path.Join(dir, base)
	return rel, filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

// Save writes an image to dir and returns its path below the upload root.
// Existing files are replaced only when overwrite is set.
func (s *Storage) Save(dir, name string, r io.Reader, overwrite bool) (string, error) {
	rel, full, err := s.resolve(dir, name)
	if err != nil {
		return "", err
	}
	if !IsImage(rel) {
		return "", fmt.Errorf("%q is not an image: %w", name, ErrInvalid)
	}
	if !overwrite {
		if _, err := os.Stat(full); err == nil {
			return "", fmt.Errorf("%s: %w", rel, ErrExists)
		}
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create folder for %s: %w", rel, err)
	}
	if err := atomic.WriteFile(full, r); err != nil {
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	log.Debugf("saved %s", rel)
	return rel, nil
}

// Remove deletes a file from dir.
func (s *Storage) Remove(dir, name string) error {
	rel, full, err := s.resolve(dir, name)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", rel, ErrNotFound)
		}
		return fmt.Errorf("remove %s: %w", rel, err)
	}
	log.Debugf("removed %s", rel)
	return nil
}

// Open returns the file name in dir for reading.
func (s *Storage) Open(dir, name string) (string, error) {
	rel, full, err := s.resolve(dir, name)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%s: %w", rel, ErrNotFound)
	}
	return full, nil
}

// Names lists the files of dir without their extensions, sorted.
func (s *Storage) Names(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(dir)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names, nil
}

// RenameYear moves the image folder of oldYear to newYear. A missing folder is not an error.
func (s *Storage) RenameYear(oldYear, newYear int) error {
	from := filepath.Join(s.root, filepath.FromSlash(YearDir(oldYear)))
	to := filepath.Join(s.root, filepath.FromSlash(YearDir(newYear)))
	if _, err := os.Stat(from); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if _, err := os.Stat(to); err == nil {
		return fmt.Errorf("%s: %w", YearDir(newYear), ErrExists)
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("rename %s: %w", YearDir(oldYear), err)
	}
	log.Infof("moved %s to %s", YearDir(oldYear), YearDir(newYear))
	return nil
}

// RemoveYear deletes the image folder of year.
func (s *Storage) RemoveYear(year int) error {
	if err := os.RemoveAll(filepath.Join(s.root, filepath.FromSlash(YearDir(year)))); err != nil {
		return fmt.Errorf("remove %s: %w", YearDir(year), err)
	}
	return nil
}
