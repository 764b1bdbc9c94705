package version

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/feedback"
	v "github.com/webbcam/tiflash/version"
)

// NewCommand created a new `version` command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Shows version number of tiflash.",
		Long:    "Shows the version number of tiflash which is installed on your system.",
		Example: "  " + os.Args[0] + " version",
		Args:    cobra.NoArgs,
		Run:     run,
	}
}

func run(cmd *cobra.Command, args []string) {
	feedback.PrintResult(v.VersionInfo)
}
