package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records the build information injected at link time
func SetVersion(v, t string) {
	version = v
	buildTime = t
	rootCmd.Version = v
}

// parseVersion parses the build version, tolerating a leading "v"
func parseVersion(v string) (semver.Version, error) {
	parsed, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.Version{}, fmt.Errorf("%q is not a release version: %w", v, err)
	}
	return parsed, nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// Skip config and logger setup
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if v, err := parseVersion(version); err == nil {
			fmt.Fprintf(out, "onering v%s\n", v)
		} else {
			fmt.Fprintf(out, "onering %s\n", version)
		}
		fmt.Fprintf(out, "built: %s\n", buildTime)
		return nil
	},
}
