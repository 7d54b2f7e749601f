package version

import (
	"fmt"
	"os"
	"runtime/debug"
)

func GetVersion() *debug.BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return bi
}

// Module returns the main module version, or "(devel)" outside a release build.
func Module() string {
	bi := GetVersion()
	if bi == nil || bi.Main.Version == "" {
		return "(devel)"
	}

	return bi.Main.Version
}

func PrintVersion(requested bool) {
	if !requested && os.Getenv("HILITE_VERSION") == "" {
		return
	}

	bi := GetVersion()
	if bi == nil {
		fmt.Fprintf(os.Stderr, "ReadBuildInfo() failed\n")
		os.Exit(1)
	}

	fmt.Printf("%s", bi)
	os.Exit(0)
}
