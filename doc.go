// Package appconfig resolves hierarchical configuration for a fleet of hosts.
//
// A host name is mapped through a hosts registry to a base locator (a local directory,
// an embedded tree or an https endpoint). Every directory from that base up to the root
// may hold override files; files closer to the base win. The merged result is cached
// for a time-to-live and reloaded in place.
//
// App wires the engine, structured logging and an optional inspection endpoint into an
// Fx application:
//
//	app := appconfig.NewApp(
//		appconfig.WithEngine(engine.WithHostsFile("file:/etc/appconfig/hosts.properties")),
//		appconfig.WithConfigEndpoint(":8080"),
//	)
//	app.Run()
package appconfig
