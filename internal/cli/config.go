package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/PneumoDetect/internal/config"
	"github.com/yildizm/PneumoDetect/internal/emoji"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".pneumodetect.yaml"

// newConfigCommand groups the config file subcommands. They load files
// themselves so they keep working when the config is broken.
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage PneumoDetect configuration",
		Long: `Create, inspect and check PneumoDetect configuration files.

Settings are layered: built-in defaults, then config files, then
PNEUMODETECT_* environment variables, then command line flags.`,
	}

	configCmd.AddCommand(
		newConfigInitCommand(),
		newConfigShowCommand(),
		newConfigValidateCommand(),
		newConfigPathCommand(),
	)
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path    string
		minimal bool
		force   bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Long: `Write a commented sample configuration holding the default values.

--minimal writes only the service URL, language and output settings.`,
		Example: `  pneumodetect config init
  pneumodetect config init --minimal
  pneumodetect config init --path ~/.config/pneumodetect/config.yaml
  pneumodetect config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := writeSampleConfig(path, minimal, force)
			if err != nil {
				return err
			}

			kind := "full"
			if minimal {
				kind = "minimal"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s configuration to %s\n", emoji.GetEmoji("success"), kind, written)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&path, "path", "p", "", "where to write the config file (default: "+defaultConfigFile+")")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "write only the essential settings")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return initCmd
}

// writeSampleConfig writes the sample to path and returns where it went
func writeSampleConfig(path string, minimal, force bool) (string, error) {
	if path == "" {
		path = defaultConfigFile
	}
	path = config.ExpandPath(path)

	if !force && fileExists(path) {
		return "", fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	content := config.SampleConfig()
	if minimal {
		content = config.MinimalSampleConfig()
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, config files and environment
overrides have been applied.`,
		Example: `  pneumodetect config show
  pneumodetect config show --format json
  pneumodetect --config ./scanner.yaml config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return encodeConfig(cmd.OutOrStdout(), cfg, format)
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")
	return showCmd
}

func encodeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration for errors",
		Long: `Load the configuration and check that it parses, that the service URL
is usable, that language, theme and output format are supported and that
sizes and durations are positive.`,
		Example: `  pneumodetect config validate
  pneumodetect --config ./scanner.yaml config validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n   %v\n", emoji.GetEmoji("error"), err)
				return err
			}

			fmt.Fprintf(out, "%s Configuration is valid\n", emoji.GetEmoji("success"))
			fmt.Fprintf(out, "%s Configuration summary:\n", emoji.GetEmoji("statistics"))
			for _, row := range configSummary(cfg) {
				fmt.Fprintf(out, "   %s: %s\n", row[0], row[1])
			}
			return nil
		},
	}
}

// configSummary picks the settings worth echoing after validation
func configSummary(cfg *config.Config) [][2]string {
	return [][2]string{
		{"Version", cfg.Version},
		{"API URL", cfg.API.BaseURL},
		{"API Timeout", cfg.API.Timeout.String()},
		{"Language", cfg.UI.Language},
		{"Theme", cfg.UI.Theme},
		{"Output Format", cfg.Output.DefaultFormat},
		{"Max File Size", fmt.Sprintf("%d bytes", cfg.Upload.MaxFileSize)},
	}
}

func newConfigPathCommand() *cobra.Command {
	var showEnv bool

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "List where configuration is read from",
		Long: `List the config file search paths, highest priority first, and mark
the ones that exist. --env also lists the supported environment variables.`,
		Example: `  pneumodetect config path
  pneumodetect config path --env`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration file search paths (in priority order):")

			for i, path := range config.GetConfigPaths() {
				state := "not found"
				if fileExists(path) {
					state = emoji.GetEmoji("success") + " exists"
				}
				fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, path, state)
			}
			fmt.Fprintln(out)

			if current, found := config.FindConfigFile(); found {
				fmt.Fprintf(out, "%s Current config file: %s\n", emoji.GetEmoji("target"), current)
			} else {
				fmt.Fprintln(out, "No config file found, using defaults")
			}

			if !showEnv {
				fmt.Fprintf(out, "Environment variables with the %s prefix override file settings (--env to list)\n", config.EnvPrefix)
				return
			}
			fmt.Fprintln(out, "\nEnvironment overrides:")
			for _, name := range config.EnvVarNames() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}

	pathCmd.Flags().BoolVar(&showEnv, "env", false, "list supported environment variables")
	return pathCmd
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
