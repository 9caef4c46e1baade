package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ListFiles returns the sorted files under dir whose extension is in exts.
// Hidden directories are skipped, and so is anything the .gitignore at the
// root of dir matches.
func ListFiles(dir string, exts []string) ([]string, error) {
	var ignore *gitignore.GitIgnore
	if path := filepath.Join(dir, ".gitignore"); fileExists(path) {
		var err error
		if ignore, err = gitignore.CompileIgnoreFile(path); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	ignored := func(path string, isDir bool) bool {
		if ignore == nil || path == dir {
			return false
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return false
		}
		rel = filepath.ToSlash(rel)
		return ignore.MatchesPath(rel) || isDir && ignore.MatchesPath(rel+"/")
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// .git, .cache и прочие скрытые каталоги не обходим
			if path != dir && strings.HasPrefix(d.Name(), ".") || ignored(path, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) && !ignored(path, false) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CollectInputs expands directories in paths into their matching files.
// Plain files are kept whatever their extension.
func CollectInputs(paths []string, exts []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		files, err := ListFiles(p, exts)
		if err != nil {
			return nil, fmt.Errorf("failed to list %q: %w", p, err)
		}
		out = append(out, files...)
	}
	return out, nil
}
