package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/1broseidon/tatami/internal/config"
	"github.com/1broseidon/tatami/internal/grid"
	"github.com/1broseidon/tatami/internal/keys"
	"github.com/1broseidon/tatami/internal/overlay"
	"github.com/1broseidon/tatami/internal/platform"
	"github.com/1broseidon/tatami/internal/runtimepath"
	"github.com/1broseidon/tatami/internal/selector"
	"github.com/BurntSushi/xgb/xproto"
	"gopkg.in/yaml.v3"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runOverlay(nil, stderr)
	}

	switch args[0] {
	case "run":
		return runOverlay(args[1:], stderr)
	case "config":
		return runConfig(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printMainUsage(stdout)
		return 0
	default:
		if len(args[0]) > 0 && args[0][0] == '-' {
			return runOverlay(args, stderr)
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tatami [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Show the grid overlay for the active window (default)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config path         Print the config file location")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Drag across the grid to place the window. Keys:")
	fmt.Fprintln(w, "  f                   Fill the screen")
	fmt.Fprintln(w, "  h / l               Left / right half")
	fmt.Fprintln(w, "  Escape              Cancel")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tatami <command> --help' for command-specific options.")
}

func runOverlay(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/tatami/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: tatami run [--config PATH]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Show the grid overlay and move the active window to the selected cells.")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	lockPath, err := runtimepath.LockPath()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	lock, err := runtimepath.Acquire(lockPath)
	if errors.Is(err, runtimepath.ErrLocked) {
		log.Printf("tatami: %v", err)
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer lock.Release()

	if err := showOverlay(res.Config); err != nil {
		log.Printf("tatami: %v", err)
		return 1
	}
	return 0
}

// showOverlay captures the active window, runs the overlay until it closes,
// and applies the chosen rectangle.
func showOverlay(cfg *config.Config) error {
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer backend.Disconnect()

	screenWidth, screenHeight, err := backend.ScreenSize()
	if err != nil {
		return err
	}

	// The overlay takes focus once mapped, so the target is read first.
	target, err := backend.ActiveWindow()
	if err != nil {
		return err
	}
	log.Printf("Overlay: target window %d on %dx%d screen", target, screenWidth, screenHeight)

	xu := backend.XUtil()
	keymap := overlay.NewKeymap(cfg, func(name string) []xproto.Keycode {
		return keys.Keycodes(xu, name)
	})

	win, err := overlay.NewWindow(backend.Connection(), overlay.Geometry(screenWidth, screenHeight))
	if err != nil {
		return err
	}

	var applyErr error
	ctrl := overlay.NewController(overlay.Options{
		Grid:         grid.FromConfig(cfg),
		Palette:      palette,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		Keymap:       keymap,
		IgnoredMods:  keys.IgnoredMods(xu),
		Host:         win,
		Committer: selector.CommitFunc(func(r grid.Rect) {
			log.Printf("Overlay: placing window %d at %d,%d %dx%d", target, r.X, r.Y, r.Width, r.Height)
			applyErr = platform.Apply(backend, target, platform.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
		}),
		Debug: cfg.Debug(),
	})
	win.Attach(ctrl)

	if err := win.Run(); err != nil {
		return err
	}
	if !ctrl.Committed() {
		log.Println("Overlay: closed without a selection")
	}
	return applyErr
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.LoadFromPath(path)
}

func runConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  tatami config validate [--config PATH]")
		fmt.Fprintln(stderr, "  tatami config print [--config PATH] [--defaults]")
		fmt.Fprintln(stderr, "  tatami config explain [--config PATH] <yaml.path>")
		fmt.Fprintln(stderr, "  tatami config path")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("config", "", "Config file path (default: ~/.config/tatami/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if res.File == "" {
			fmt.Fprintln(stdout, "config: ok (defaults, no file)")
			return 0
		}
		fmt.Fprintf(stdout, "config: ok (%s)\n", res.File)
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("config", "", "Config file path (default: ~/.config/tatami/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			cfg = res.Config
			if res.File != "" {
				fmt.Fprintf(stdout, "# source: %s\n", res.File)
			}
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("config", "", "Config file path (default: ~/.config/tatami/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		fmt.Fprintf(stdout, "path: %s\n", queryPath)
		fmt.Fprintf(stdout, "source: %s\n", formatSource(src))
		fmt.Fprintf(stdout, "value:\n%s", string(out))
		return 0

	case "path":
		if len(args) > 1 {
			fmt.Fprintln(stderr, "config path takes no arguments")
			return 2
		}
		path, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, path)
		return 0

	default:
		fmt.Fprintf(stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
