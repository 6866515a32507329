package location

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLocator is returned when a raw locator cannot be split into scheme and path.
var ErrMalformedLocator = errors.New("malformed locator")

// ErrNotApplicable is returned when an operation does not apply to the locator's scheme.
var ErrNotApplicable = errors.New("not applicable to scheme")

const separator = "/"

// Scheme classifies the backend a locator points at.
type Scheme int

// Known schemes.
const (
	SchemeUnknown Scheme = iota
	SchemeFile
	SchemeEmbedded
	SchemeHTTPS
)

// String returns a human readable scheme name.
func (s Scheme) String() string {
	switch s {
	case SchemeFile:
		return "file"
	case SchemeEmbedded:
		return "classpath"
	case SchemeHTTPS:
		return "https"
	case SchemeUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

func classify(raw string) Scheme {
	switch raw {
	case "file":
		return SchemeFile
	case "classpath":
		return SchemeEmbedded
	case "https", "http":
		return SchemeHTTPS
	default:
		return SchemeUnknown
	}
}

// Path is a parsed configuration locator of the form scheme:[//authority]path[/fileName].
//
// Path is an immutable value: every With* method returns a new Path and leaves the
// receiver untouched, so walk steps can be logged or retried without aliasing.
type Path struct {
	rawScheme string
	scheme    Scheme
	authority string
	absolute  bool
	segments  []string
	fileName  string
}

// Parse decomposes a raw locator string.
func Parse(raw string) (Path, error) {
	raw = strings.TrimSpace(raw)

	idx := strings.Index(raw, ":")
	if idx <= 0 {
		return Path{}, fmt.Errorf("%w: %q has no scheme", ErrMalformedLocator, raw)
	}

	rawScheme := strings.ToLower(raw[:idx])
	if !validScheme(rawScheme) {
		return Path{}, fmt.Errorf("%w: %q has an invalid scheme", ErrMalformedLocator, raw)
	}

	loc := Path{
		rawScheme: rawScheme,
		scheme:    classify(rawScheme),
	}

	rest := raw[idx+1:]

	if after, found := strings.CutPrefix(rest, "//"); found {
		authority, path, _ := strings.Cut(after, separator)
		loc.authority = authority
		rest = separator + path
	}

	if loc.IsNetwork() && loc.authority == "" {
		return Path{}, fmt.Errorf("%w: %q has no authority", ErrMalformedLocator, raw)
	}

	if rest == "" && !loc.IsNetwork() {
		return Path{}, fmt.Errorf("%w: %q has no path", ErrMalformedLocator, raw)
	}

	loc.absolute = strings.HasPrefix(rest, separator) || loc.authority != ""
	loc.segments = splitSegments(rest)

	if !strings.HasSuffix(rest, separator) && len(loc.segments) > 0 {
		last := loc.segments[len(loc.segments)-1]
		if strings.Contains(last, ".") {
			loc.fileName = last
			loc.segments = loc.segments[:len(loc.segments)-1]
		}
	}

	return loc, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(raw string) Path {
	loc, err := Parse(raw)
	if err != nil {
		panic(err)
	}

	return loc
}

func validScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}

	return s != ""
}

func splitSegments(p string) []string {
	parts := strings.Split(p, separator)
	segments := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}

// Scheme returns the classified scheme.
func (p Path) Scheme() Scheme {
	return p.scheme
}

// IsNetwork reports whether the locator addresses a remote host.
func (p Path) IsNetwork() bool {
	return p.scheme == SchemeHTTPS
}

// IsEmbedded reports whether the locator addresses a resource packaged with the binary.
func (p Path) IsEmbedded() bool {
	return p.scheme == SchemeEmbedded
}

// HostAuthority returns host[:port] for network locators.
func (p Path) HostAuthority() (string, error) {
	if !p.IsNetwork() {
		return "", fmt.Errorf("%w: host authority of %s locator", ErrNotApplicable, p.scheme)
	}

	return p.authority, nil
}

// HasFile reports whether the locator names a single resource.
func (p Path) HasFile() bool {
	return p.fileName != ""
}

// FileName returns the file name or an empty string.
func (p Path) FileName() string {
	return p.fileName
}

// Segments returns a copy of the directory segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)

	return out
}

// Depth is the number of directory segments.
func (p Path) Depth() int {
	return len(p.segments)
}

// IsRoot reports whether no directory segments remain.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// WithSegmentStripped returns the locator one directory closer to the root.
// At the root it returns an identical value.
func (p Path) WithSegmentStripped() Path {
	if p.IsRoot() {
		return p
	}

	next := p
	next.segments = p.Segments()[:len(p.segments)-1]

	return next
}

// WithDefaultFileName sets name only when the locator has no file name yet.
func (p Path) WithDefaultFileName(name string) Path {
	if p.HasFile() {
		return p
	}

	return p.WithFileName(name)
}

// WithFileName unconditionally replaces the file name. An empty name clears it.
func (p Path) WithFileName(name string) Path {
	next := p
	next.segments = p.Segments()
	next.fileName = strings.Trim(strings.TrimSpace(name), separator)

	return next
}

// Dir returns the locator without its file name.
func (p Path) Dir() Path {
	return p.WithFileName("")
}

// ResolveReference resolves ref against p. A ref carrying its own scheme is parsed as is.
// A ref starting with a separator replaces the path; any other ref is joined to p's
// directory. Dot segments are cleaned and never climb above the root.
func (p Path) ResolveReference(ref string) (Path, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Path{}, fmt.Errorf("%w: empty reference", ErrMalformedLocator)
	}

	if hasScheme(ref) {
		return Parse(ref)
	}

	base := p.Dir()

	var segments []string
	if !strings.HasPrefix(ref, separator) {
		segments = base.Segments()
	}

	for _, segment := range splitSegments(ref) {
		switch segment {
		case ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, segment)
		}
	}

	raw := base.prefix()
	if base.absolute || strings.HasPrefix(ref, separator) {
		raw += separator
	}

	raw += strings.Join(segments, separator)
	if strings.HasSuffix(ref, separator) || len(segments) == 0 {
		raw += separator
	}

	return Parse(raw)
}

func hasScheme(ref string) bool {
	idx := strings.Index(ref, ":")
	if idx <= 0 {
		return false
	}

	return validScheme(strings.ToLower(ref[:idx])) && !strings.Contains(ref[:idx], separator)
}

func (p Path) prefix() string {
	s := p.rawScheme + ":"
	if p.authority != "" {
		s += "//" + p.authority
	}

	return s
}

// DirPath returns the directory part without scheme or authority.
func (p Path) DirPath() string {
	dir := strings.Join(p.segments, separator)
	if p.absolute {
		return separator + dir
	}

	return dir
}

// FilePath returns the path component (directory plus file name) without scheme or authority.
func (p Path) FilePath() string {
	parts := p.Segments()
	if p.HasFile() {
		parts = append(parts, p.fileName)
	}

	joined := strings.Join(parts, separator)
	if p.absolute {
		return separator + joined
	}

	return joined
}

// String renders the canonical locator with duplicate separators collapsed.
func (p Path) String() string {
	path := p.FilePath()
	if !p.HasFile() && len(p.segments) > 0 {
		path += separator
	}

	return p.prefix() + path
}
