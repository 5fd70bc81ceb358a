package analyzer

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"docgen/internal/model"
)

// Directories never worth descending into: VCS metadata, caches, virtualenvs.
var skipDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	"__pycache__":   true,
	".mypy_cache":   true,
	".pytest_cache": true,
	"node_modules":  true,
	"dist":          true,
	"build":         true,
	"venv":          true,
	".venv":         true,
	"env":           true,
	".env":          true,
}

func shouldSkipDir(name string) bool {
	return skipDirs[name] || strings.HasPrefix(name, ".")
}

// matchesAny evaluates glob patterns against the root-relative path,
// normalized to forward slashes.
func matchesAny(rel string, patterns []string) bool {
	rp := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, rp); ok {
			return true
		}
		if ok, _ := path.Match(pat, path.Base(rp)); ok {
			return true
		}
	}
	return false
}

// Analyze walks root and parses every Python file into a Module record.
// Excluded subtrees are pruned before descent, and a file that fails to
// parse is dropped from the result without aborting the walk.
func Analyze(root string, excludePatterns []string) ([]*model.Module, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var modules []*model.Module
	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries must not sink the batch.
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, p)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if p == absRoot {
				return nil
			}
			if shouldSkipDir(d.Name()) || matchesAny(rel, excludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		if matchesAny(rel, excludePatterns) {
			return nil
		}

		m, parseErr := ParseFile(p, absRoot)
		if parseErr != nil {
			// Malformed or undecodable file: skip and continue.
			return nil
		}
		modules = append(modules, m)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return modules, nil
}

// ModuleName converts a file path into a dotted module name relative to
// root. An __init__.py contributes no trailing segment.
func ModuleName(root, filePath string) string {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		rel = filePath
	}
	rel = strings.TrimSuffix(rel, ".py")
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) > 0 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && p != "." {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}
