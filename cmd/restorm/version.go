package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/restorm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of restorm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "restorm version %s\n", strings.TrimSpace(restorm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
