package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var resourcesWatch bool

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the declared classes and their resources",
	Long: `Resources prints every class declared in the resource files.
With --watch it keeps running and reports each reload of the declaration files.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession()
		if err != nil {
			fatal("Failed to initialize restorm", err)
		}

		if err := printResources(cmd.OutOrStdout(), s); err != nil {
			fatal("Failed to print resources", err)
		}
		if !resourcesWatch {
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reloads := s.files.Events()
		if err := s.files.Start(ctx); err != nil {
			fatal("Failed to watch resource declarations", err)
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Watching resource declarations (Ctrl+C to stop)...")
		for e := range reloads {
			fmt.Fprintln(cmd.OutOrStdout(), e.String())
		}
	},
}

func printResources(out io.Writer, s *session) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLASS\tRESOURCE\tIDENTIFIER")
	for _, class := range s.files.Classes() {
		desc, _ := s.files.Lookup(class)
		md, err := s.client.Registry.Resolve(class)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\t(invalid: %v)\n", class, desc.Resource, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", md.Class, md.Resource, md.IdentifierField)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
	resourcesCmd.Flags().BoolVarP(&resourcesWatch, "watch", "w", false, "Keep running and report reloads")
}
