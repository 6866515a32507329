// Package merge implements the root-ward directory walk and the layered merge.
//
// Starting at the base locator, every directory up to the root is probed for the
// well-known override files (default.properties, default.yaml, default.yml unless the
// base names a file itself). Files that exist become layers; files that do not are
// skipped; any other fetch failure aborts the resolution. Layers are then applied root
// first, so a file closer to the base overrides one closer to the root:
//
//	env/default.properties       timeout=30  retries=3
//	env/prod/default.yaml        timeout: 45
//	merged                       timeout=45  retries=3
package merge
