package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"informers/internal/app"
	"informers/internal/config"
	"informers/internal/reflector"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfigError indicates the configuration file could not be loaded.
	ExitCodeConfigError = 2
	// ExitCodeListFailed indicates the API server could not be listed.
	ExitCodeListFailed = 3
)

var (
	configPath  string
	debug       bool
	logLevel    string
	kubeContext string
	namespace   string
)

// rootCmd represents the base command for the informers application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "informers",
	Short: "Turn periodic listings of Kubernetes objects into change events",
	Long: `informers lists a Kubernetes collection on a fixed period, compares each
listing with the previous one and reports every object that was added,
changed or deleted. Changes to the same object coalesce while they wait
to be consumed, so a slow consumer always sees the latest state.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	// Errors are printed by Execute so configuration errors can show their details.
	SilenceErrors: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "informers version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(getExitCode(err))
	}
}

// printError writes err the way Cobra would, followed by the file, details
// and suggestions of a configuration error.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cfgErr.DetailedError())
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ExitCodeConfigError
	}

	var listErr *reflector.ListError
	if errors.As(err, &listErr) {
		return ExitCodeListFailed
	}

	return ExitCodeError
}

// newAppConfig builds the application configuration from the persistent flags.
func newAppConfig(cmd *cobra.Command) *app.Config {
	cfg := app.NewConfig(configPath, debug)
	cfg.LogLevel = logLevel
	cfg.KubeContext = kubeContext
	cfg.Namespace = namespace
	cfg.NamespaceSet = cmd.Flags().Changed("namespace")
	cfg.Stdout = cmd.OutOrStdout()
	cfg.LogOutput = cmd.ErrOrStderr()
	return cfg
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newListCmd())

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/informers/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&kubeContext, "kube-context", "", "Kubeconfig context to use (default is the current context)")
	rootCmd.PersistentFlags().StringVarP(&namespace, "namespace", "n", "", "Namespace to watch, overriding the config file (empty for all namespaces)")
}
