package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkarski/appconfig"
	"github.com/kkarski/appconfig/config/fetcher/file"
	yamlparser "github.com/kkarski/appconfig/config/parser/yaml"
	"github.com/kkarski/appconfig/engine"
	"github.com/kkarski/appconfig/logging"
)

// bootstrapPath is the section of the --config document holding engine.Settings.
const bootstrapPath = "appconfig"

type rootFlags struct {
	configPath  string
	hostsFile   string
	host        string
	shortNames  bool
	ttl         time.Duration
	fileNames   []string
	logLevel    string
	httpTimeout time.Duration
	httpRetries int
}

func newRootCommand(version, commit, date string) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "appconfig",
		Short: "Resolve hierarchical host configuration",
		Long: `appconfig maps this host to a base location through a hosts registry, walks
from that location to the root collecting default.properties / default.yaml files,
and merges them so files closer to the base win.

Locators use the form scheme:[//authority]path, e.g. file:/etc/appconfig/hosts.properties
or https://config.example.com/hosts.properties.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&flags.configPath, "config", "", "bootstrap YAML file with an '"+bootstrapPath+"' section")
	persistent.StringVar(&flags.hostsFile, "hosts", "", "locator of the hosts registry")
	persistent.StringVar(&flags.host, "host", appconfig.HostOverride(),
		"host identity (default $"+appconfig.HostOverrideEnv+", then the kernel host name)")
	persistent.BoolVar(&flags.shortNames, "short-host-names", false,
		"let a fully qualified host use the entry of its short name")
	persistent.DurationVar(&flags.ttl, "ttl", 0, "snapshot time-to-live")
	persistent.StringSliceVar(&flags.fileNames, "file-name", nil, "override file names sought at every level")
	persistent.StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	persistent.DurationVar(&flags.httpTimeout, "http-timeout", 0, "timeout of a single remote request")
	persistent.IntVar(&flags.httpRetries, "http-retries", -1, "retries of a failed remote request")

	rootCmd.AddCommand(
		newResolveCommand(flags),
		newGetCommand(flags),
		newServeCommand(flags),
	)

	return rootCmd
}

// settings merges the bootstrap document with the flags set on cmd; flags win.
func (f *rootFlags) settings(cmd *cobra.Command) (*engine.Settings, error) {
	settings := &engine.Settings{}

	if f.configPath != "" {
		fetcher, err := file.NewFetcher(f.configPath)()
		if err != nil {
			return nil, fmt.Errorf("reading bootstrap file: %w", err)
		}

		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading bootstrap file: %w", err)
		}

		err = yamlparser.NewParser().Parse(data, settings, bootstrapPath)
		if err != nil {
			return nil, fmt.Errorf("parsing bootstrap file: %w", err)
		}
	}

	changed := cmd.Flags().Changed

	if changed("hosts") {
		settings.HostsFile = f.hostsFile
	}

	if f.host != "" {
		settings.Host = f.host
	}

	if changed("short-host-names") {
		settings.ShortHostNames = f.shortNames
	}

	if changed("ttl") {
		settings.TTL = int(f.ttl / time.Second)
	}

	if changed("file-name") {
		settings.FileNames = f.fileNames
	}

	if changed("log-level") || settings.LogLevel == "" {
		settings.LogLevel = f.logLevel
	}

	if changed("http-timeout") {
		settings.HTTP.Timeout = int(f.httpTimeout / time.Second)
	}

	if changed("http-retries") {
		retries := f.httpRetries
		settings.HTTP.Retries = &retries
	}

	settings.SetDefaults()

	err := settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

// newEngine builds an engine logging to w.
func newEngine(settings *engine.Settings, w io.Writer) (*engine.Engine, error) {
	levelVar := new(slog.LevelVar)
	logger := logging.NewLogger(logging.LoggerConfig{Level: settings.LogLevel, LevelVar: levelVar}, w)

	opts := append([]engine.Option{
		engine.WithHostDetector(appconfig.PlatformHostname),
		engine.WithLogger(logger),
		engine.WithLevelVar(levelVar),
	}, settings.Options()...)

	resolved, err := engine.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	return resolved, nil
}
