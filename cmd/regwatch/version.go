package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildDetails is the resolved version metadata of the running binary.
type buildDetails struct {
	Version string
	Commit  string
	Date    string
}

// resolveBuildDetails prefers ldflags values and falls back to the
// module's embedded build info, then to placeholders.
func resolveBuildDetails() buildDetails {
	d := buildDetails{Version: version, Commit: commit, Date: date}

	if info, ok := debug.ReadBuildInfo(); ok {
		if d.Version == "" {
			d.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if d.Commit == "" {
					d.Commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if d.Date == "" {
					d.Date = s.Value
				}
			}
		}
	}

	if d.Version == "" {
		d.Version = "(devel)"
	}
	if d.Commit == "" {
		d.Commit = "unknown"
	}
	if d.Date == "" {
		d.Date = "unknown"
	}
	return d
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

func getVersion() string {
	return resolveBuildDetails().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of regwatch.`,
		Run: func(cmd *cobra.Command, _ []string) {
			d := resolveBuildDetails()
			fmt.Fprintf(cmd.OutOrStdout(), "regwatch version %s\n  commit: %s\n  built:  %s\n",
				d.Version, d.Commit, d.Date)
		},
	}
}
