// Package logging builds the JSON slog loggers used across the module.
// A LevelVar can be attached so the level follows the resolved configuration at runtime.
package logging
