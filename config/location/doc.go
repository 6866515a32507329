// Package location parses and manipulates configuration locators.
//
// A locator has the form scheme:[//authority]path[/fileName], where scheme is one of
// "file" (local filesystem), "classpath" (resources embedded in the binary) or
// "https" ("http" is accepted for local development). The final path segment is taken
// as a file name when it contains a dot and the locator does not end in a separator.
//
// Path values are immutable. The merge walk moves toward the root with
// WithSegmentStripped and pins the file it looks for with WithDefaultFileName:
//
//	loc, err := location.Parse("https://config.example.com/env/prod/")
//	if err != nil {
//	    // errors.Is(err, location.ErrMalformedLocator)
//	}
//	loc = loc.WithDefaultFileName("default.properties")
//	parent := loc.WithSegmentStripped() // https://config.example.com/env/default.properties
package location
