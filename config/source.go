package config

import (
	"context"
	"fmt"

	"github.com/kkarski/appconfig/config/location"
)

// Kind tags a Source variant.
type Kind int

// Source kinds.
const (
	KindUnknown Kind = iota
	KindFile
	KindEmbedded
	KindHTTPS
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindEmbedded:
		return "embedded"
	case KindHTTPS:
		return "https"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindOf returns the source kind able to serve loc.
func KindOf(loc location.Path) Kind {
	switch loc.Scheme() {
	case location.SchemeFile:
		return KindFile
	case location.SchemeEmbedded:
		return KindEmbedded
	case location.SchemeHTTPS:
		return KindHTTPS
	case location.SchemeUnknown:
		return KindUnknown
	default:
		return KindUnknown
	}
}

// Source fetches one configuration file and returns its flattened values.
//
// Fetch returns an error wrapping ErrResourceNotFound when the target does not exist and
// a *FetchError for any other failure. Implementations are stateless and safe for
// concurrent use.
type Source interface {
	Kind() Kind
	Fetch(ctx context.Context, loc location.Path) (map[string]string, error)
}

// Layer is one successfully fetched file's contribution to a merge.
type Layer struct {
	Locator string
	// Depth is the number of directory segments of the locator; the root has depth 0.
	Depth  int
	Values map[string]string
}
