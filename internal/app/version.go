package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so that --version works alongside invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		case "--":
			return false
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	version := Version
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	fmt.Fprintf(out, "biguint %s\n", version)
	fmt.Fprintf(out, "  commit:  %s\n", Commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
