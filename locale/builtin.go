package locale

import (
	"embed"
	"fmt"
	"path"
)

//go:embed data/*.yml
var builtinFS embed.FS

// Builtin returns a registry with the bundled fa and en locales, fa being the default.
func Builtin() (*Registry, error) {
	r := NewRegistry()

	files, err := builtinFS.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("cannot list builtin locales: %w", err)
	}
	for _, f := range files {
		data, err := builtinFS.ReadFile(path.Join("data", f.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read builtin locale %s: %w", f.Name(), err)
		}
		l, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("builtin locale %s: %w", f.Name(), err)
		}
		if err := r.Register(l.Code, l); err != nil {
			return nil, err
		}
	}

	if err := r.SetDefault(DefaultCode); err != nil {
		return nil, err
	}
	return r, nil
}
