package manifest

import (
	"github.com/regenrek/kitproj/internal/roles"
	"github.com/regenrek/kitproj/internal/shellcmd"
)

// Resolver resolves role commands from the manifest found in a directory.
type Resolver struct {
	// File overrides the manifest file name; empty means the default.
	File string
}

// Path returns the manifest path consulted for dir.
func (r Resolver) Path(dir string) string {
	return PathIn(dir, r.File)
}

// Resolve loads the manifest in dir and looks up entry/role. found is false
// when the entry or role is absent; err is set only for unreadable or invalid manifests.
func (r Resolver) Resolve(dir, entry string, role roles.Role) ([]shellcmd.Token, bool, error) {
	m, err := Load(r.Path(dir))
	if err != nil {
		return nil, false, err
	}
	tokens, ok := m.Lookup(entry, role)
	return tokens, ok, nil
}

// Entries lists the entries of the manifest in dir.
func (r Resolver) Entries(dir string) ([]string, error) {
	m, err := Load(r.Path(dir))
	if err != nil {
		return nil, err
	}
	return m.Entries(), nil
}
