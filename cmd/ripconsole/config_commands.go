package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ripconsole/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create and check the configuration file",
	}
	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var (
		targetPath string
		overwrite  bool
	)
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Long:        "Write a sample configuration to --path, else to --config, else to the default location.",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := sampleConfigTarget(targetPath, ctx.requestedConfigPath())
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("check config path: %w", statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintf(out, "Set library.tv_dir, then check it with: ripconsole --config %s config validate\n", target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

// sampleConfigTarget picks where config init writes: the explicit --path,
// then the global --config, then the default location.
func sampleConfigTarget(path, configFlag string) (string, error) {
	for _, candidate := range []string{path, configFlag} {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			expanded, err := config.ExpandPath(candidate)
			if err != nil {
				return "", fmt.Errorf("resolve config path: %w", err)
			}
			return expanded, nil
		}
	}
	target, err := config.DefaultConfigPath()
	if err != nil {
		return "", fmt.Errorf("determine default config path: %w", err)
	}
	return target, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report the paths it resolves to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source := ctx.configPath
			if !ctx.configExists {
				source += " (not found, defaults used)"
			}
			auth := "disabled"
			if cfg.Paths.APIToken != "" {
				auth = "bearer token"
			}
			roots := "any"
			if len(cfg.Rename.AllowedRoots) > 0 {
				roots = strings.Join(cfg.Rename.AllowedRoots, ", ")
			}

			out := cmd.OutOrStdout()
			for _, field := range [][2]string{
				{"Config", source},
				{"Database", cfg.DatabasePath()},
				{"Log file", cfg.LogPath()},
				{"TV library", valueOrDash(cfg.Library.TVDir)},
				{"API", cfg.Paths.APIBind + " (auth " + auth + ")"},
				{"Rename roots", roots},
			} {
				fmt.Fprintf(out, "%-14s %s\n", field[0]+":", field[1])
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
