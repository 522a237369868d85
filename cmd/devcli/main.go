// Package main provides the devcli entry point: an interactive command line
// for a device, with a scripted batch mode for transcript testing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"devcli/internal/config"
	"devcli/internal/logger"
	"devcli/internal/version"
)

var (
	configFile string
	v          = config.New()
	cfg        *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devcli",
	Short: "devcli - interactive device command line",
	Long: `devcli serves a login-protected command line over a terminal. Commands are
organised in a directory tree and gated by user access levels.`,
	Run: runShell, // Default behavior is to run the interactive shell
}

// shellCmd represents the shell command (explicit version of default behavior)
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session on the terminal",
	Run:   runShell,
}

// batchCmd feeds a keystroke script through an in-memory session
var batchCmd = &cobra.Command{
	Use:   "batch <script>",
	Short: "Run a keystroke script and print the transcript",
	Long: `Run a keystroke script against a fresh session and print the terminal
transcript. Each script line is typed followed by Enter; a line ending in \c
is typed without Enter. \t, \e, \b, \up, \down, \left and \right type Tab, ESC,
Backspace and the arrow keys. With --expect the transcript is compared with a
golden file and the command fails on differences.`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

// treeCmd prints the namespace
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the command tree visible at an access level",
	Args:  cobra.NoArgs,
	Run:   runTree,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "YAML config file")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.String("users", "", "YAML file with the user accounts")
	flags.String("color", "", "Colour output (auto|always|never)")

	// Bind flags to viper
	for key, flag := range map[string]string{
		config.KeyLogLevel:  "log-level",
		config.KeyLogFile:   "log-file",
		config.KeyTestMode:  "test-mode",
		config.KeyUsersFile: "users",
		config.KeyColor:     "color",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	batchCmd.Flags().String("expect", "", "Golden transcript to compare against")
	treeCmd.Flags().String("level", "user", "Access level (user|admin)")
	versionCmd.Flags().String("check", "", "Fail unless the version satisfies this constraint, e.g. \">= 1.0.0\"")

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(versionCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if configFile != "" {
		if err := config.ReadFile(v, configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := config.LoadDotEnv(v, ".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading .env: %v\n", err)
		os.Exit(1)
	}

	var err error
	cfg, err = config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("Configuration loaded", "config", v.ConfigFileUsed(), "test_mode", cfg.TestMode)
}

func runVersion(cmd *cobra.Command, _ []string) {
	fmt.Println(version.Detailed())

	constraint, _ := cmd.Flags().GetString("check")
	if constraint == "" {
		return
	}
	ok, err := version.Satisfies(constraint)
	if err != nil {
		logger.Fatal("Version check failed", "error", err)
	}
	if !ok {
		logger.Fatal("Version does not satisfy constraint", "version", version.Version, "constraint", constraint)
	}
}
