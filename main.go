package main

import (
	"github.com/mooffie/luaui/cmd"
	_ "github.com/mooffie/luaui/modules/tty"
	_ "github.com/mooffie/luaui/modules/ui"
)

var version = "v0.3.0"

func main() {
	cmd.Execute(version)
}
