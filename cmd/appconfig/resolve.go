package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/magiconair/properties"
	"github.com/spf13/cobra"

	yamlparser "github.com/kkarski/appconfig/config/parser/yaml"
	"github.com/kkarski/appconfig/engine"
)

var errUnknownFormat = errors.New("unknown output format")

const (
	formatProperties = "properties"
	formatYAML       = "yaml"
	formatJSON       = "json"
)

func newResolveCommand(flags *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the merged configuration of this host",
		Long: `Resolve loads the hosts registry, walks from this host's base location to the
root and prints the merged key/value pairs.

Example:
  appconfig resolve --hosts file:/etc/appconfig/hosts.properties --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := loadSnapshot(cmd, flags)
			if err != nil {
				return err
			}

			return writeSnapshot(cmd.OutOrStdout(), snapshot, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatProperties, "output format: properties, yaml or json")

	return cmd
}

func newGetCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one resolved value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(cmd, flags)
			if err != nil {
				return err
			}

			value, ok := snapshot.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", engine.ErrKeyNotFound, args[0])
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)

			return err //nolint:wrapcheck
		},
	}
}

func loadSnapshot(cmd *cobra.Command, flags *rootFlags) (*engine.Snapshot, error) {
	settings, err := flags.settings(cmd)
	if err != nil {
		return nil, err
	}

	resolved, err := newEngine(settings, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	err = resolved.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("resolving configuration: %w", err)
	}

	return resolved.Snapshot() //nolint:wrapcheck
}

func writeSnapshot(w io.Writer, snapshot *engine.Snapshot, format string) error {
	switch format {
	case formatProperties:
		props := properties.NewProperties()
		props.DisableExpansion = true

		for _, key := range snapshot.Keys() {
			value, _ := snapshot.Lookup(key)

			_, _, err := props.Set(key, value)
			if err != nil {
				return fmt.Errorf("encoding %q: %w", key, err)
			}
		}

		_, err := props.Write(w, properties.UTF8)
		if err != nil {
			return fmt.Errorf("writing properties: %w", err)
		}

		return nil
	case formatYAML:
		var document any = snapshot.Values()

		tree, err := yamlparser.Expand(snapshot.Values())
		if err != nil {
			slog.Warn("keys cannot be nested, printing them flat", "error", err)
		} else {
			document = tree
		}

		data, err := yaml.Marshal(document)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		_, err = w.Write(data)

		return err //nolint:wrapcheck
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(snapshot.Values())
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w %q", errUnknownFormat, format)
	}
}
