// Command appconfig resolves the configuration of a host and prints or serves it.
package main

import (
	"os"

	"github.com/kkarski/appconfig"
)

func main() {
	root := newRootCommand(appconfig.Version, appconfig.Commit, appconfig.CompiledAt)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
