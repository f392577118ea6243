package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/term"

	"github.com/zscreen/zscreen/internal/config"
	"github.com/zscreen/zscreen/internal/logging"
	"github.com/zscreen/zscreen/internal/screens"
	"github.com/zscreen/zscreen/internal/ui"
	"github.com/zscreen/zscreen/internal/zabbix"
)

// Connection flags, shared by every command that talks to a server.
var (
	serverURL   string
	username    string
	token       string
	timeoutSecs int
	insecure    bool
	configPath  string
)

// Per-command flags.
var (
	manifestPath string
	dryRun       bool
	keepGoing    bool
	assumeYes    bool
	outputFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Zabbix frontend URL (e.g. https://zabbix.example.com)")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "API login name")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "existing session token, skips login and logout")
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 0, "HTTP timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "skip TLS certificate verification")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file to use instead of the default")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reconcile screens against a manifest",
	Long: `Apply reads a YAML manifest and drives every screen in it to its
declared state: missing screens are created, screens whose layout drifted
are rebuilt, and screens marked absent are deleted. Screens already
matching their definition are left untouched.

Example manifest:

  screens:
    - name: Web Overview
      host_groups: [Web servers]
      graph_names: [CPU load, Memory usage]
      graphs_per_row: 3

The first failure stops the batch unless --keep-going is set. Screens
already applied stay applied; there is no rollback.`,
	Example: `  # Preview without touching the server
  zscreen apply -f screens.yaml --dry-run

  # Apply, continuing past failures
  zscreen apply -f screens.yaml --keep-going`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&manifestPath, "file", "f", "", "manifest file (required)")
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	applyCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue with remaining screens after a failure")
	applyCmd.Flags().BoolVar(&assumeYes, "yes", false, "skip the deletion confirmation")
	_ = applyCmd.MarkFlagRequired("file")
}

func runApply(cmd *cobra.Command, args []string) error {
	manifest, err := screens.LoadManifest(manifestPath)
	if err != nil {
		if errs := multierr.Errors(err); len(errs) > 1 {
			fmt.Print(ui.RenderProblems(errs))
			return fmt.Errorf("manifest has %d problem(s)", len(errs))
		}
		return err
	}

	// Deletions are destructive, so confirm before opening a session.
	if absent := absentNames(manifest); len(absent) > 0 && !dryRun && !assumeYes {
		if !ui.ConfirmDeletion(absent) {
			return nil
		}
	}

	client, cleanup, err := connect()
	if err != nil {
		return err
	}
	defer cleanup()

	reconciler := screens.NewReconciler(client, screens.Options{
		DryRun:    dryRun,
		KeepGoing: keepGoing,
	})
	summary, err := reconciler.Apply(manifest.Screens)
	if !summary.Empty() {
		fmt.Print(ui.RenderSummary(summary))
	}
	if err != nil {
		if errs := multierr.Errors(err); len(errs) > 1 {
			fmt.Print(ui.RenderProblems(errs))
			return fmt.Errorf("%d of %d screen(s) failed", len(errs), len(manifest.Screens))
		}
		return err
	}
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete NAME...",
	Short: "Delete screens by name",
	Long: `Delete removes the named screens and their items from the server.
Screens that do not exist are reported as unchanged.`,
	Example: `  # Delete two screens without the confirmation prompt
  zscreen delete "Web Overview" "DB Overview" --yes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&assumeYes, "yes", false, "skip the deletion confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if !assumeYes && !ui.ConfirmDeletion(args) {
		return nil
	}

	client, cleanup, err := connect()
	if err != nil {
		return err
	}
	defer cleanup()

	specs := make([]screens.ScreenSpec, 0, len(args))
	for _, name := range args {
		specs = append(specs, screens.ScreenSpec{Name: name, State: screens.StateAbsent})
	}

	reconciler := screens.NewReconciler(client, screens.Options{})
	summary, err := reconciler.Apply(specs)
	if !summary.Empty() {
		fmt.Print(ui.RenderSummary(summary))
	}
	return err
}

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a screen and its graph placements",
	Example: `  # Inspect the layout zscreen built
  zscreen show "Web Overview"

  # Machine-readable output
  zscreen show "Web Overview" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&outputFormat, "format", "detailed", "output format (detailed, compact, json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, cleanup, err := connect()
	if err != nil {
		return err
	}
	defer cleanup()

	found, err := client.ScreensByName(name)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return screens.NewNotFoundError(name, fmt.Sprintf("no screen matching %q", name))
	}

	screen := found[0]
	items, err := client.ScreenItems(screen.ID)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		out := struct {
			Screen zabbix.Screen       `json:"screen"`
			Items  []zabbix.ScreenItem `json:"items"`
		}{screen, items}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "compact":
		fmt.Printf("%s (id %s): %d x %d, %d item(s)\n",
			screen.Name, screen.ID, screen.Columns, screen.Rows, len(items))
	case "detailed":
		fmt.Print(ui.RenderScreenInfo(screen, items))
	default:
		return fmt.Errorf("unknown format %q (expected detailed, compact, or json)", outputFormat)
	}
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server version and screen support",
	Long: `Status reports the server's API version, whether the screen API is
still available there, and which screens exist. The screen API was removed
in Zabbix ` + screens.ScreenAPIRemovedIn + `; against newer servers every
write command refuses to run.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, cleanup, err := connect()
	if err != nil {
		return err
	}
	defer cleanup()

	version, err := client.APIVersion()
	if err != nil {
		return err
	}

	supportErr := screens.CheckSupport(version)

	var names []string
	if supportErr == nil {
		all, err := client.ScreensByName("")
		if err != nil {
			return err
		}
		for _, screen := range all {
			names = append(names, screen.Name)
		}
	}

	fmt.Print(ui.RenderServerStatus(client.BaseURL, version, names))
	if supportErr != nil {
		fmt.Println(ui.WarningStyle.Render("Screen API: not available on this server"))
		fmt.Println(ui.MutedStyle.Render(supportErr.Error()))
		return nil
	}
	fmt.Println("Screen API: available")
	return nil
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a manifest without contacting a server",
	Long: `Validate parses the manifest, applies defaults, and reports every
problem it finds. It never opens a connection, so it cannot tell whether
the named host groups or graphs exist.`,
	Example: `  zscreen validate -f screens.yaml`,
	Args:    cobra.NoArgs,
	RunE:    runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&manifestPath, "file", "f", "", "manifest file (required)")
	_ = validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	manifest, err := screens.LoadManifest(manifestPath)
	if err != nil {
		if errs := multierr.Errors(err); len(errs) > 1 {
			fmt.Print(ui.RenderProblems(errs))
			return fmt.Errorf("manifest has %d problem(s)", len(errs))
		}
		return err
	}

	fmt.Printf("Manifest OK: %d screen(s)\n", len(manifest.Screens))
	for _, spec := range manifest.Screens {
		fmt.Printf("\n=== %s ===\n", spec.Name)
		fmt.Printf("State:          %s\n", spec.State)
		if spec.State != screens.StatePresent {
			continue
		}
		fmt.Printf("Host groups:    %s\n", strings.Join(spec.HostGroups, ", "))
		fmt.Printf("Graphs:         %s\n", strings.Join(spec.GraphNames, ", "))
		fmt.Printf("Graphs per row: %d\n", spec.GraphsPerRow)
		fmt.Printf("Sort hosts:     %v\n", spec.SortHosts)
		fmt.Printf("Cell size:      %s x %s\n", dimension(spec.GraphWidth), dimension(spec.GraphHeight))
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the zscreen configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Init writes a configuration file with the connection flags given on
the command line. Passwords and session tokens are never written; provide
them per run via prompt or the ` + config.EnvPassword + ` / ` + config.EnvToken + `
environment variables.`,
	Example: `  zscreen config init --server https://zabbix.example.com --username Admin`,
	Args:    cobra.NoArgs,
	RunE:    runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long: `Show prints the settings a command would run with after layering
flags over environment variables over the config file.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	settings := config.NewSettings()
	overlayFlags(settings)
	if err := settings.Save(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings()
	if err != nil {
		return err
	}

	source := configPath
	if source == "" {
		if source, err = config.GetConfigPath(); err != nil {
			return err
		}
	}

	fmt.Printf("Config file: %s\n\n", source)
	fmt.Printf("Server:   %s\n", valueOrUnset(settings.Server))
	fmt.Printf("Username: %s\n", valueOrUnset(settings.Username))
	fmt.Printf("Timeout:  %s\n", settings.Timeout())
	fmt.Printf("Insecure: %v\n", settings.Insecure)
	fmt.Println()
	fmt.Println("Passwords and session tokens are never stored. Provide them via")
	fmt.Printf("prompt or the %s / %s environment variables.\n", config.EnvPassword, config.EnvToken)
	return nil
}

// resolveSettings layers command-line flags over environment variables over
// the config file.
func resolveSettings() (*config.Settings, error) {
	var settings *config.Settings
	var err error
	if configPath != "" {
		settings, err = config.LoadFile(configPath)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	settings.ApplyEnvironment()
	overlayFlags(settings)
	return settings, nil
}

func overlayFlags(settings *config.Settings) {
	if serverURL != "" {
		settings.Server = serverURL
	}
	if username != "" {
		settings.Username = username
	}
	if timeoutSecs > 0 {
		settings.TimeoutSeconds = timeoutSecs
	}
	if rootCmd.PersistentFlags().Changed("insecure") {
		settings.Insecure = insecure
	}
}

// connect builds an authenticated client from the resolved settings. The
// returned cleanup logs out only when this process opened the session;
// tokens installed from outside are left alive.
func connect() (*zabbix.Client, func(), error) {
	// Logging is opt-in via ZSCREEN_LOG_LEVEL; stay silent otherwise.
	_ = logging.InitializeFromEnv()

	settings, err := resolveSettings()
	if err != nil {
		return nil, nil, err
	}
	if settings.Server == "" {
		return nil, nil, fmt.Errorf("no server configured (use --server, %s, or zscreen config init)", config.EnvServer)
	}

	client := zabbix.NewClient(settings.Server)
	client.SetTimeout(settings.Timeout())
	if settings.Insecure {
		client.AllowInsecureTLS()
	}

	sessionToken := token
	if sessionToken == "" {
		if fromEnv, ok := config.TokenFromEnv(); ok {
			sessionToken = fromEnv
		}
	}
	if sessionToken != "" {
		client.SetToken(sessionToken)
		return client, func() {}, nil
	}

	password, err := resolvePassword(settings)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Login(settings.Username, password); err != nil {
		return nil, nil, fmt.Errorf("login failed for %s: %w", settings.Username, err)
	}
	logging.LogSession(settings.Server, settings.Username, "login")

	cleanup := func() {
		// Best effort. The session expires server-side regardless.
		if err := client.Logout(); err == nil {
			logging.LogSession(settings.Server, settings.Username, "logout")
		}
	}
	return client, cleanup, nil
}

// resolvePassword takes the password from the environment or, on a
// terminal, prompts for it. It is never read from a file or a flag, so it
// cannot end up in shell history or process listings.
func resolvePassword(settings *config.Settings) (string, error) {
	if password, ok := config.PasswordFromEnv(); ok {
		return password, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no password available: set %s or run interactively", config.EnvPassword)
	}

	fmt.Fprintf(os.Stderr, "Password for %s at %s: ", settings.Username, settings.Server)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func absentNames(m *screens.Manifest) []string {
	var names []string
	for _, spec := range m.Screens {
		if spec.State == screens.StateAbsent {
			names = append(names, spec.Name)
		}
	}
	return names
}

func dimension(v *int) string {
	if v == nil || *v < 0 {
		return "(default)"
	}
	return strconv.Itoa(*v)
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
