package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/movetodesktop/internal/command"
	"github.com/yourusername/movetodesktop/internal/config"
	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/hook"
	"github.com/yourusername/movetodesktop/internal/hotkey"
	"github.com/yourusername/movetodesktop/internal/logging"
	"github.com/yourusername/movetodesktop/internal/output"
	"github.com/yourusername/movetodesktop/internal/session"
	"github.com/yourusername/movetodesktop/internal/shell"
	"github.com/yourusername/movetodesktop/internal/state"
	"github.com/yourusername/movetodesktop/internal/window"
)

var (
	configPath string
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Loaded once per invocation in PersistentPreRunE
	cfg *config.Config

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "movetodesktop",
	Short: "Move windows between Windows virtual desktops",
	Long: `movetodesktop moves the foreground window to an arbitrary virtual desktop.

It runs a hotkey daemon, moves windows on demand, and inspects the desktop
list the shell exposes through COM or persists in the registry.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadOrDefault(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		if err := logging.Init(logging.Options{
			Path:  cfg.Settings.LogFile,
			Level: cfg.Settings.LogLevel,
		}); err != nil {
			return err
		}
		if debugMode {
			logging.SetDebug(true)
		}
		logging.Debug().Str("cmd", cmd.Name()).Msg("starting")
		return nil
	},
}

// daemonCmd runs the hotkey listener
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Listen for hotkeys and move the foreground window",
	Long: `Registers the configured global hotkeys and moves the foreground window to
the bound desktop on every press. Stops on Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindings, err := cfg.GetBindings()
		if err != nil {
			return err
		}
		if len(bindings) == 0 {
			return errors.New("no hotkeys configured")
		}

		// COM apartments and hotkey registrations both belong to this thread
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		sess, handler := newHandler()
		defer sess.Close()

		historyPath := state.GetStatePath()
		history, err := state.LoadHistoryFrom(historyPath, cfg.Settings.HistoryLimit)
		if err != nil {
			logging.Warn().Err(err).Msg("failed to load history, starting empty")
			history = state.NewHistory(cfg.Settings.HistoryLimit)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !jsonOutput {
			successColor.Printf("✓ Listening for %d hotkeys\n", len(bindings))
			output.PrintBindingsTable(os.Stdout, bindings)
		}
		logging.Info().Int("bindings", len(bindings)).Msg("daemon started")

		err = hotkey.Listen(ctx, bindings, func(b hotkey.Binding) {
			res, err := handleBinding(handler, b)
			if err != nil {
				logging.Warn().Str("keys", b.Combo.String()).Err(err).Msg("hotkey ignored")
				return
			}
			history.Append(historyRecord(res))
			if err := history.SaveTo(historyPath); err != nil {
				logging.Warn().Err(err).Msg("failed to save history")
			}
			if !jsonOutput {
				printResult(res)
			}
		})

		logging.Info().Msg("daemon stopped")
		return err
	},
}

// moveCmd moves one window
var moveCmd = &cobra.Command{
	Use:   "move [index]",
	Short: "Move a window to a desktop",
	Long: `Moves a window to the desktop at the zero-based index, running the same
pipeline as the daemon. Without --window the foreground window is moved.
--param feeds a raw system command parameter instead of an index.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		param, err := moveParam(cmd, args)
		if err != nil {
			return report(err.Error(), err)
		}
		h, err := targetWindow(cmd)
		if err != nil {
			return report(err.Error(), err)
		}

		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		sess, handler := newHandler()
		defer sess.Close()

		res := handler.Handle(hook.NewEvent(param, h))
		if res.Outcome != hook.Passed {
			recordHistory(res)
		}

		if jsonOutput {
			if err := printJSON(historyRecord(res)); err != nil {
				return err
			}
		} else {
			printResult(res)
		}
		return resultError(res)
	},
}

// sendCmd posts the desktop request to a window's own message queue
var sendCmd = &cobra.Command{
	Use:   "send <index>",
	Short: "Post a desktop move request to a window",
	Long: `Posts WM_SYSCOMMAND with the encoded desktop request to a window, so a hook
installed in the window's process handles it. Without --window the
foreground window receives it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return report("Invalid desktop index", fmt.Errorf("invalid desktop index: %v", err))
		}
		param, err := command.Encode(index)
		if err != nil {
			return report(err.Error(), err)
		}
		h, err := targetWindow(cmd)
		if err != nil {
			return report(err.Error(), err)
		}

		if err := window.PostSysCommand(h, param); err != nil {
			return report(fmt.Sprintf("Failed to send: %v", err), err)
		}
		logging.Info().Stringer("window", h).Uint32("param", param).Msg("posted desktop request")

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"window": uint64(h),
				"param":  param,
			})
		}
		successColor.Printf("✓ Sent %#04x to window %s\n", param, h)
		return nil
	},
}

// listCmd lists desktops
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List virtual desktops",
	Long: `Lists desktops in display order. --source selects the strategy (auto,
enumeration or registry); --all prints every source that answers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceName, _ := cmd.Flags().GetString("source")
		all, _ := cmd.Flags().GetBool("all")

		strategy := cfg.GetStrategy()
		if cmd.Flags().Changed("source") {
			s, err := desktop.ParseStrategy(sourceName)
			if err != nil {
				return report(err.Error(), err)
			}
			strategy = s
		}

		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		sess, _ := newHandler()
		defer sess.Close()

		// The registry still answers when COM is unreachable
		if err := sess.EnsureReady(); err != nil {
			logging.Warn().Err(err).Msg("session unavailable, enumeration disabled")
		}
		resolver := desktop.ForStrategy(strategy, sess.Enumerator(), newRegistrySource())

		if all {
			return listEach(resolver.Sources())
		}

		ids, src, err := resolver.List()
		if err != nil {
			return report(fmt.Sprintf("Failed to list desktops: %v", err), err)
		}

		if jsonOutput {
			return printJSON(desktopsView(ids, src.Name()))
		}
		output.PrintDesktopsTable(os.Stdout, ids, src.Name())
		return nil
	},
}

func listEach(sources []desktop.Source) error {
	views := make(map[string]interface{}, len(sources))
	for _, src := range sources {
		ids, err := src.List()
		if err != nil {
			if jsonOutput {
				views[src.Name()] = map[string]string{"error": err.Error()}
				continue
			}
			keyColor.Printf("%s: ", src.Name())
			errorColor.Println(err)
			continue
		}
		if jsonOutput {
			views[src.Name()] = desktopsView(ids, src.Name())
			continue
		}
		keyColor.Printf("%s:\n", src.Name())
		output.PrintDesktopsTable(os.Stdout, ids, src.Name())
	}
	if jsonOutput {
		return printJSON(views)
	}
	return nil
}

// decodeCmd explains a system command parameter
var decodeCmd = &cobra.Command{
	Use:   "decode <param>",
	Short: "Decode a WM_SYSCOMMAND parameter",
	Long:  `Reports whether a parameter (decimal or 0x hex) is a desktop move request and which desktop it targets.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		param, err := parseParam(args[0])
		if err != nil {
			return report(err.Error(), err)
		}

		req, ok := command.Decode(param)
		if jsonOutput {
			return printJSON(map[string]interface{}{
				"param":          param,
				"index":          req.Index,
				"signatureValid": ok,
			})
		}

		keyColor.Print("Param: ")
		fmt.Printf("%#04x\n", param)
		if !ok {
			infoColor.Println("Not a desktop request, passed through")
			return nil
		}
		keyColor.Print("Desktop: ")
		fmt.Println(req.Index)
		return nil
	},
}

// configCmd is the parent command for configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

// configShowCmd shows the active configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printJSON(cfg)
		}
		data, err := cfg.Marshal("yaml")
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

// configValidateCmd validates config file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		// LoadConfig validates after parsing
		c, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Strategy: %s\n", c.GetStrategy())
		fmt.Printf("  Internal interface: %s\n", c.Settings.InternalInterface)
		fmt.Printf("  Hotkeys: %d\n", len(c.Hotkeys))

		return nil
	},
}

// configInitCmd creates default config
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}

		// Check if file exists
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		data, err := config.DefaultConfig().Marshal("yaml")
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(path, append([]byte("# movetodesktop configuration\n"), data...), 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		successColor.Printf("✓ Created default config at %s\n", path)
		return nil
	},
}

// configHotkeysCmd lists the configured bindings
var configHotkeysCmd = &cobra.Command{
	Use:   "hotkeys",
	Short: "List configured hotkeys",
	RunE: func(cmd *cobra.Command, args []string) error {
		bindings, err := cfg.GetBindings()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cfg.Hotkeys)
		}
		output.PrintBindingsTable(os.Stdout, bindings)
		return nil
	},
}

// historyCmd is the parent command for the move history
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect moves handled by the daemon",
}

// historyShowCmd prints recent records
var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show recent moves, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		history, err := state.LoadHistoryFrom(state.GetStatePath(), cfg.Settings.HistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		records := history.Recent(limit)
		if jsonOutput {
			return printJSON(records)
		}
		if len(records) == 0 {
			infoColor.Println("No moves recorded")
			return nil
		}
		output.PrintHistoryTable(os.Stdout, records)
		return nil
	},
}

// historyClearCmd removes all records
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the move history",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := state.GetStatePath()
		history, err := state.LoadHistoryFrom(path, cfg.Settings.HistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if err := history.Reset(path); err != nil {
			return fmt.Errorf("failed to reset history: %w", err)
		}

		successColor.Println("✓ History cleared")
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default <UserConfigDir>/movetodesktop/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	// Add top-level commands
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(decodeCmd)

	// Add config commands
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configHotkeysCmd)

	// Add history commands
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)

	// Command flags
	moveCmd.Flags().String("window", "", "Window handle (decimal or 0x hex), default foreground")
	moveCmd.Flags().String("param", "", "Raw WM_SYSCOMMAND parameter instead of an index")
	sendCmd.Flags().String("window", "", "Window handle (decimal or 0x hex), default foreground")
	listCmd.Flags().String("source", "", "Strategy: auto, enumeration or registry (default from config)")
	listCmd.Flags().Bool("all", false, "List every source separately")
	historyShowCmd.Flags().Int("limit", 20, "Number of records to show, 0 for all")

	// Disable color if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})
}

func main() {
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		if msg := exitMessage(err); msg != "" {
			printError(msg)
		}
		logging.Close()
		os.Exit(1)
	}
}

// Helper functions

func newRegistrySource() *desktop.RegistrySource {
	return desktop.NewRegistrySource(desktop.NewUserRegistry(), cfg.Settings.RegistryKey, cfg.Settings.RegistryValue)
}

// newHandler builds an uninitialized session and the handler over it. The
// caller must keep both on one locked OS thread and Close the session there.
func newHandler() (*session.Session, *hook.Handler) {
	sess := session.New(shell.NewPlatform(cfg.GetVariants()))
	handler := hook.NewHandler(sess, hook.Options{
		Strategy: cfg.GetStrategy(),
		Registry: newRegistrySource(),
	})
	return sess, handler
}

// handleBinding runs a hotkey press against the foreground window
func handleBinding(handler *hook.Handler, b hotkey.Binding) (hook.Result, error) {
	h, err := window.Foreground()
	if err != nil {
		return hook.Result{}, err
	}
	param, err := command.Encode(b.Desktop)
	if err != nil {
		return hook.Result{}, err
	}
	return handler.Handle(hook.NewEvent(param, h)), nil
}

func moveParam(cmd *cobra.Command, args []string) (uint32, error) {
	raw, _ := cmd.Flags().GetString("param")
	switch {
	case raw != "" && len(args) > 0:
		return 0, errors.New("pass either an index or --param, not both")
	case raw != "":
		return parseParam(raw)
	case len(args) == 0:
		return 0, errors.New("desktop index required")
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid desktop index: %v", err)
	}
	return command.Encode(index)
}

func parseParam(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid parameter %q: %v", s, err)
	}
	return uint32(v), nil
}

func targetWindow(cmd *cobra.Command) (window.Handle, error) {
	raw, _ := cmd.Flags().GetString("window")
	if raw == "" {
		return window.Foreground()
	}
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window handle %q: %v", raw, err)
	}
	h := window.Handle(v)
	if !window.IsWindow(h) {
		return 0, fmt.Errorf("window %s does not exist", h)
	}
	return h, nil
}

func historyRecord(res hook.Result) state.MoveRecord {
	rec := state.MoveRecord{
		ID:      res.Event.ID.String(),
		Time:    time.Now(),
		Param:   res.Event.Param,
		Index:   res.Index,
		Window:  uint64(res.Event.Window),
		Root:    uint64(res.Root),
		Source:  res.Source,
		Outcome: res.Outcome.String(),
	}
	if !res.Desktop.IsZero() {
		rec.Desktop = res.Desktop.String()
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	return rec
}

func recordHistory(res hook.Result) {
	path := state.GetStatePath()
	history, err := state.LoadHistoryFrom(path, cfg.Settings.HistoryLimit)
	if err != nil {
		logging.Warn().Err(err).Msg("failed to load history")
		return
	}
	history.Append(historyRecord(res))
	if err := history.SaveTo(path); err != nil {
		logging.Warn().Err(err).Msg("failed to save history")
	}
}

func desktopsView(ids []desktop.ID, source string) map[string]interface{} {
	list := make([]string, len(ids))
	for i, id := range ids {
		list[i] = id.String()
	}
	return map[string]interface{}{
		"source":   source,
		"desktops": list,
	}
}

func printResult(res hook.Result) {
	switch res.Outcome {
	case hook.Moved:
		successColor.Printf("✓ Moved window %s to desktop %d", res.Root, res.Index)
		infoColor.Printf(" %s (%s)\n", res.Desktop, res.Source)
		if title := window.Title(res.Root); title != "" {
			keyColor.Print("  Title: ")
			fmt.Println(title)
		}
	case hook.Dropped:
		errorColor.Printf("✗ Desktop %d: ", res.Index)
		fmt.Println(res.Err)
	default:
		infoColor.Printf("Parameter %#04x is not a desktop request\n", res.Event.Param)
	}
}

// reportedError is an error the command already showed to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// report prints msg and marks err as shown
func report(msg string, err error) error {
	printError(msg)
	return &reportedError{err: err}
}

// exitMessage is what main prints for err, empty when it was already shown
func exitMessage(err error) string {
	var shown *reportedError
	if err == nil || errors.As(err, &shown) {
		return ""
	}
	return err.Error()
}

// resultError fails the command for a dropped request. printResult has
// already described the failure.
func resultError(res hook.Result) error {
	if res.Outcome != hook.Dropped {
		return nil
	}
	return &reportedError{err: res.Err}
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}
