// Package manifest reads the per-project session manifest: a JSON object of
// entry name -> role name -> command tokens. It is read fresh on every call.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/regenrek/kitproj/internal/identity"
	"github.com/regenrek/kitproj/internal/roles"
	"github.com/regenrek/kitproj/internal/shellcmd"
)

var (
	ErrDecode     = errors.New("json decode error")
	ErrEncoding   = errors.New("encoding error")
	ErrIncomplete = errors.New("incomplete manifest")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Manifest is one parsed manifest file.
type Manifest struct {
	Path string
	root gjson.Result
}

// PathIn returns the manifest path for a directory. An empty file name means
// the default manifest name.
func PathIn(dir, file string) string {
	file = strings.TrimSpace(file)
	if file == "" {
		file = identity.ManifestFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %q: %w", ErrDecode, path, err)
	}
	return Parse(path, data)
}

// Parse validates raw manifest bytes; path is only used in messages.
func Parse(path string, data []byte) (*Manifest, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: the file %q is not UTF-8 or UTF-16 encoded", ErrEncoding, path)
	}
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: the file %q is not in the correct json format", ErrDecode, path)
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: the file %q must contain a json object", ErrDecode, path)
	}
	m := &Manifest{Path: path, root: root}
	if len(m.Entries()) == 0 {
		return nil, fmt.Errorf("%w: kitty session json %q is incomplete and missing entries", ErrIncomplete, path)
	}
	return m, nil
}

func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		data = data[len(utf8BOM):]
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}), bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", err
		}
		data = out
	}
	if !utf8.Valid(data) {
		return "", errors.New("invalid utf-8")
	}
	return string(data), nil
}

// Entries lists distinct entry names in file order.
func (m *Manifest) Entries() []string {
	if m == nil {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	m.root.ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			out = append(out, name)
		}
		return true
	})
	return out
}

// Lookup returns the command tokens for role under entry. A missing entry or
// role is reported through ok, not as an error.
func (m *Manifest) Lookup(entry string, role roles.Role) ([]shellcmd.Token, bool) {
	if m == nil {
		return nil, false
	}
	entryVal, ok := member(m.root, entry)
	if !ok || !entryVal.IsObject() {
		return nil, false
	}
	roleVal, ok := member(entryVal, string(role))
	if !ok {
		return nil, false
	}
	return commandTokens(roleVal), true
}

// member finds an object key by exact match; the first duplicate wins.
func member(obj gjson.Result, key string) (gjson.Result, bool) {
	var found gjson.Result
	ok := false
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// commandTokens maps a role value onto tokens. A bare string is a one-fragment
// command; any other non-array value is kept as an invalid token so serializing
// it reports the type.
func commandTokens(v gjson.Result) []shellcmd.Token {
	if v.IsArray() {
		items := v.Array()
		out := make([]shellcmd.Token, 0, len(items))
		for _, item := range items {
			out = append(out, token(item))
		}
		return out
	}
	return []shellcmd.Token{token(v)}
}

func token(v gjson.Result) shellcmd.Token {
	switch {
	case v.IsArray():
		items := v.Array()
		children := make([]shellcmd.Token, 0, len(items))
		for _, item := range items {
			children = append(children, token(item))
		}
		return shellcmd.Group(children...)
	case v.Type == gjson.String:
		return shellcmd.Literal(v.Str)
	default:
		return shellcmd.Invalid(typeName(v))
	}
}

func typeName(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "bool"
	case gjson.Number:
		return "number"
	case gjson.JSON:
		if v.IsObject() {
			return "object"
		}
		return "array"
	default:
		return "unknown"
	}
}
