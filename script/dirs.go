package script

import (
	"fmt"
	"os"
	"path/filepath"
)

// The path of the bootstrap file, relative to SystemDir.
const bootstrapFile = "core/_bootstrap.lua"

// The user's own startup script, relative to UserDir. Optional.
const userInitFile = "_init.lua"

const missingCoreText = `The core scripts could not be found. They normally live under
%s.

If you are running from a source checkout, point the LUAUI_SYSTEM_DIR
environment variable at a directory containing them.`

// SystemDir is where system scripts are stored. Overridable with
// LUAUI_SYSTEM_DIR, which is handy when running from a source checkout.
func SystemDir() string {
	if dir := os.Getenv("LUAUI_SYSTEM_DIR"); dir != "" {
		return dir
	}
	return "/usr/share/luaui"
}

// UserDir is where user scripts are stored.
func UserDir() string {
	if dir := os.Getenv("LUAUI_USER_DIR"); dir != "" {
		return dir
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cfg, "luaui")
}

// Load runs the core bootstrap script, announces core::loaded so
// system scripts can hook themselves in, and then runs the user's own
// startup script, if there is one. Returns false when the core scripts
// are missing altogether; the warning itself is deferred to SetUIReady,
// where there is a screen to show it on.
func (e *Engine) Load() bool {
	found := e.SafeRunFile(SystemDir(), bootstrapFile) != RunFileNotFound
	e.coreMissing = !found
	e.TriggerEvent("core::loaded")

	if dir := UserDir(); dir != "" {
		e.SafeRunFile(dir, userInitFile)
	}

	// sanity check
	if top := e.L.GetTop(); top != 0 {
		panic(fmt.Sprintf("lua stack error: %d values left on the stack after load", top))
	}
	return found
}
