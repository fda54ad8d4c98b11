package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtension marks a file holding one formula.
const DefaultExtension = ".formula"

type FileInfo struct {
	Path string
	Size int64
}

// Scanner finds formula files below a root directory.
type Scanner struct {
	rootDir    string
	extensions []string
}

// New returns a Scanner matching the given extensions. With no extensions
// every regular file matches.
func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan walks the root directory and returns matching files sorted by path.
// Hidden directories are skipped.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != s.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if s.IsTarget(path) {
			files = append(files, FileInfo{
				Path: path,
				Size: info.Size(),
			})
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, err
}

// IsTarget reports whether path has one of the scanner's extensions.
func (s *Scanner) IsTarget(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
