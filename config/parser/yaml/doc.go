// Package yaml decodes YAML configuration with github.com/goccy/go-yaml.
//
// Parser implements config.Parser with colon-separated path navigation, which is how
// the engine's bootstrap settings are read:
//
//	parser := yaml.NewParser()
//	var settings engine.Settings
//	err := parser.Parse(data, &settings, "appconfig")
//
// For configuration files found during the merge walk, Flatten turns a nested document
// into the flat key model used everywhere else:
//
//	db:
//	  hosts: [a, b]
//	  pool: {size: 4}
//
// becomes
//
//	db.hosts[0]=a
//	db.hosts[1]=b
//	db.pool.size=4
//
// Expand reverses the transformation for reconstructible key sets.
package yaml
