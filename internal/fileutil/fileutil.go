// Package fileutil provides filesystem helpers, most importantly atomic file
// replacement by rename so readers of published artifacts never observe
// partial contents.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

const tempNameAttempts = 16

// tempName yields a candidate temporary name in the same directory as path.
// The first attempt is deterministic; collisions fall back to random suffixes.
func tempName(path string, attempt int) string {
	dir, base := filepath.Split(path)
	name := fmt.Sprintf(".tmp.%d", os.Getpid())
	if attempt > 0 {
		const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
		var b strings.Builder
		for i := 0; i < 6; i++ {
			b.WriteByte(chars[rand.Intn(len(chars))])
		}
		name += "." + b.String()
	}
	return filepath.Join(dir, name+"."+base)
}

func createTemp(path string, mode os.FileMode) (*os.File, error) {
	for attempt := 0; attempt < tempNameAttempts; attempt++ {
		f, err := os.OpenFile(tempName(path, attempt), os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("create temporary for %s: too many name collisions", path)
}

// WriteBytesAtomic writes contents to a temporary file next to path and
// renames it into place. On any failure the temporary is removed and the
// target is left untouched. Readers of path see either the old contents or
// the new, never a partial write.
func WriteBytesAtomic(path string, contents []byte, mode os.FileMode) error {
	f, err := createTemp(path, mode)
	if err != nil {
		return err
	}
	tempPath := f.Name()

	if _, err := f.Write(contents); err != nil {
		_ = f.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write %s: %w", tempPath, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("close %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("rename %s: %w", tempPath, err)
	}
	return nil
}

// WriteFileAtomic is WriteBytesAtomic for string contents with 0o644 mode.
func WriteFileAtomic(path, contents string) error {
	return WriteBytesAtomic(path, []byte(contents), 0o644)
}

// Contents reads the whole file at path as a string.
func Contents(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CopyFile streams src to dst with 0o644 permissions.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// FindWithExtension walks root recursively and returns every file path whose
// name ends with ext (including the dot). Results are in walk order.
func FindWithExtension(root, ext string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ext) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// PruneEmptyDirs removes empty directories under root, deepest first. root
// itself is preserved. Directories that are still non-empty are left alone.
func PruneEmptyDirs(root string) error {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		err := os.Remove(dirs[i])
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				continue
			}
			return err
		}
	}
	return nil
}
