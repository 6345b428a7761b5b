package migrate

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir validates the on-disk migration tree rooted at root: every
// dialect directory must be well formed and carry the same versions.
func ValidateDir(root string) error {
	if root == "" {
		return fmt.Errorf("dir is required")
	}
	return validateTree(os.DirFS(root), ".")
}

// ValidateEmbedded checks the migrations compiled into the binary.
func ValidateEmbedded() error {
	return validateTree(embedded, "migrations")
}

func validateTree(fsys fs.FS, root string) error {
	var (
		reference     map[string]string
		referenceName string
	)
	for _, driver := range supportedDrivers {
		dir := path.Join(root, DialectDir(driver))
		versions, err := ValidateFS(fsys, dir)
		if err != nil {
			return fmt.Errorf("%s: %w", driver, err)
		}
		if reference == nil {
			reference, referenceName = versions, driver
			continue
		}
		for version, name := range reference {
			if _, ok := versions[version]; !ok {
				return fmt.Errorf("migration %q exists for %s but not for %s", name, referenceName, driver)
			}
		}
		for version, name := range versions {
			if _, ok := reference[version]; !ok {
				return fmt.Errorf("migration %q exists for %s but not for %s", name, driver, referenceName)
			}
		}
	}
	return nil
}

// ValidateFS validates the migrations found in dir of fsys and returns them
// keyed by version.
func ValidateFS(fsys fs.FS, dir string) (map[string]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name

		b, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read file %q: %w", name, err)
		}

		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		}
		if !strings.Contains(txt, "-- +goose Down") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		}
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("no migrations found in %q", dir)
	}
	return seen, nil
}
