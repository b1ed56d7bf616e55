// Package cmd is the luaui command line: it brings up the terminal,
// wires the script engine to the widget toolkit and runs user scripts.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/mooffie/luaui/bridge"
	"github.com/mooffie/luaui/modules"
	"github.com/mooffie/luaui/script"
)

// Execute runs the luaui CLI with the given version string.
// Import modules via blank imports before calling this function
// so they register via init().
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "luaui",
		Usage:                  "Run Lua scripts that drive terminal dialogs",
		Version:                version,
		UseShortOptionHandling: true,
		// Allow `luaui script.lua` as shorthand for `luaui run script.lua`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				arg := cmd.Args().First()
				if strings.HasSuffix(arg, ".lua") || isLuaScript(arg) {
					return runScript(arg)
				}
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run a .lua script under the UI",
				ArgsUsage: "<file.lua>",
				Action:    runAction,
			},
			{
				Name:      "check",
				Usage:     "Compile a .lua script and report syntax errors",
				ArgsUsage: "<file.lua> [...]",
				Action:    checkAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: luaui run <file.lua>")
	}
	return runScript(cmd.Args().First())
}

// runScript brings the whole stack up and runs one script. The loop
// exists for engine restarts: a script may ask for a fresh engine, and
// the screen survives the swap.
func runScript(path string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal; use `luaui check` for headless runs")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	for {
		again, err := runOnce(screen, path)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// runOnce builds one engine generation and runs the script on it. It
// reports whether a restart was requested.
func runOnce(screen tcell.Screen, path string) (restart bool, err error) {
	eng := script.New()
	defer eng.Close()

	host := newHost(screen, eng)
	b := bridge.New(eng, host)
	if err := modules.OpenAll(b); err != nil {
		return false, err
	}

	restarted := false
	eng.SetRestart(func() { restarted = true })
	eng.SetNotice(host.Notice)

	// Startup scripts run before the ready flip: an error in them is
	// retained and replayed as a single notice here, instead of
	// scrolling away under the alternate screen.
	eng.Load()
	eng.SetUIReady()
	eng.TriggerEvent("ui::ready")

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if eng.SafeRunFile(dir, name) == script.RunFileNotFound {
		return false, fmt.Errorf("%s: no such script", path)
	}

	// The stack is quiescent here, so a ui.restart() issued at the
	// script's top level takes effect now.
	eng.CheckForRestart()

	return restarted, nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: luaui check <file.lua> [...]")
	}
	bad := false
	eng := script.New()
	defer eng.Close()
	for _, path := range cmd.Args().Slice() {
		if err := eng.CheckFile(path); err != nil {
			bad = true
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
	if bad {
		return fmt.Errorf("check failed")
	}
	return nil
}

// isLuaScript checks if a file exists and looks like a lua script.
func isLuaScript(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, 64)
	n, _ := f.Read(buf)
	return strings.HasPrefix(string(buf[:n]), "#!")
}
