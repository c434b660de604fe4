package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/PneumoDetect/internal/config"
	"github.com/yildizm/PneumoDetect/internal/emoji"
	"github.com/yildizm/PneumoDetect/internal/i18n"
	"github.com/yildizm/PneumoDetect/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	language  string
	apiURL    string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pneumodetect",
		Short: "Chest X-ray pneumonia screening client",
		Long: `PneumoDetect sends chest X-ray images to a classification service and
shows whether the model sees signs of pneumonia, with class probabilities,
a recommendation and a browsable history of earlier analyses.

Run without a subcommand to open the interactive interface.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			// Set emoji state for all components
			emoji.SetEmojiDisabled(noEmoji)

			// config subcommands load files themselves and must work with a broken config
			if isConfigCommand(cmd) {
				return nil
			}
			return loadGlobalConfig(cmd)
		},
		RunE: runTUI,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVarP(&language, "lang", "l", "", "interface language (en, vi)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "classification service base URL")

	// Add subcommands
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newMockServerCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "PneumoDetect %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// loadGlobalConfig loads the configuration and layers the global flags on top
func loadGlobalConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = apiURL
	}
	if cmd.Flags().Changed("lang") {
		cfg.UI.Language = language
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.DefaultFormat = outputFmt
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}

	// flags may have introduced bad values
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	ui.SetColorDisabled(cfg.Output.ColorMode == "never")
	ui.SetThemeByName(cfg.UI.Theme)

	globalConfig = cfg
	return nil
}

// GetGlobalConfig returns the loaded configuration, falling back to defaults
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose || GetGlobalConfig().Output.Verbose
}

func getOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

func newTranslator() *i18n.Translator {
	lang, err := i18n.ParseLanguage(GetGlobalConfig().UI.Language)
	if err != nil {
		lang = i18n.DefaultLanguage
	}
	return i18n.NewTranslator(lang)
}
