// Package engine resolves, caches and refreshes the configuration of the current host.
//
// A resolution loads the hosts registry, picks the entry for the host identity, walks
// from that base locator to the root and merges what it finds. The merged snapshot is
// kept for a time-to-live; a read after it expires reloads in place. Reserved keys
// adjust the engine itself: config.ttl (seconds) replaces the TTL for later cycles and
// log.root.level drives an attached *slog.LevelVar.
//
//	e, err := engine.New(
//		engine.WithHostsFile("file:/etc/appconfig/hosts.properties"),
//		engine.WithHostDetector(os.Hostname),
//	)
//	timeout, err := engine.Get[time.Duration](e, "http.timeout")
package engine
