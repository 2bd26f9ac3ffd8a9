package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const (
	appName = "mamlgen"
	appDesc = "MAML help generator for Go command modules"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "%s %s\n%s\n", appName, resolvedVersion(), appDesc)
		},
	}
}

func resolvedVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
