/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"layoutstudio/internal/config"
	"layoutstudio/internal/version"
)

// overridable lists config keys that may come from the environment.
var overridable = []string{
	"builder.catalog",
	"storage.driver", "storage.dir", "storage.key",
	"ai.provider", "ai.model", "ai.base_url", "ai.timeout_ms", "ai.api_key",
	"logging.level", "logging.format", "logging.source", "logging.file",
}

func (a *App) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect settings and manage the AI API key",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := config.ConfigPath()
				if err != nil {
					return err
				}
				data, err := yaml.Marshal(a.cfg)
				if err != nil {
					return err
				}
				a.printf("# %s\n%s", path, data)
				for _, k := range overridable {
					if env, ok := config.EnvOverrideFor(k); ok {
						a.printf("# %s overridden by %s\n", k, env)
					}
				}
				if a.apiKey != "" {
					a.printf("# ai api key: set\n")
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-key [key]",
			Short: "Store the AI API key in the OS keyring (reads stdin without an argument)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var key string
				if len(args) == 1 {
					key = args[0]
				} else {
					line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					if err != nil && line == "" {
						return errors.New("no key on stdin")
					}
					key = line
				}
				if err := config.SetAPIKey(strings.TrimSpace(key)); err != nil {
					return fmt.Errorf("set key: %w", err)
				}
				a.printf("API key stored\n")
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete-key",
			Short: "Remove the stored AI API key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := config.DeleteAPIKey(); err != nil {
					return err
				}
				a.printf("API key removed\n")
				return nil
			},
		},
	)
	return cmd
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			a.printf("%s\n", version.String())
		},
	}
}
