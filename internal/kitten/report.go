package kitten

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/regenrek/kitproj/internal/dialog"
	"github.com/regenrek/kitproj/internal/dispatch"
	"github.com/regenrek/kitproj/internal/layout"
	"github.com/regenrek/kitproj/internal/manifest"
	"github.com/regenrek/kitproj/internal/shellcmd"
)

// ErrReported marks a failure that was already shown to the user.
var ErrReported = errors.New("error reported")

const fallbackTitle = "Kitty Remote Control Failed"

var titles = []struct {
	err   error
	title string
}{
	{layout.ErrUnsupportedKind, "Unsupported Type"},
	{layout.ErrTabCreate, "Tab Creation Failed"},
	{manifest.ErrDecode, "JSON Parse Failed"},
	{manifest.ErrEncoding, "JSON Parse Failed"},
	{manifest.ErrIncomplete, "Kitty Session Json Incomplete"},
	{shellcmd.ErrTooDeep, "CMD Building Error"},
	{shellcmd.ErrTokenType, "CMD Building Error"},
}

// Title returns the modal title for err.
func Title(err error) string {
	var nf *dispatch.NotFoundError
	if errors.As(err, &nf) {
		return nf.Role.Label() + " Window Not Found"
	}
	for _, t := range titles {
		if errors.Is(err, t.err) {
			return t.title
		}
	}
	return fallbackTitle
}

// Message returns the modal text for err: the error without its class
// prefix, as a sentence.
func Message(err error) string {
	var nf *dispatch.NotFoundError
	if errors.As(err, &nf) {
		return "Could not find " + strings.ToLower(nf.Role.Label()) + " kitty window."
	}
	msg := err.Error()
	for _, t := range titles {
		if errors.Is(err, t.err) {
			msg = strings.TrimPrefix(msg, t.err.Error()+": ")
			break
		}
	}
	return sentence(msg)
}

func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

// report shows err and returns ErrReported.
func report(r dialog.Reporter, err error) error {
	r.Report(Title(err), Message(err))
	return ErrReported
}
