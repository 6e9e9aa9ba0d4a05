package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/restorm/pkg/record"
)

var saveFile string

// saveCmd creates or updates a resource from a document
var saveCmd = &cobra.Command{
	Use:   "save [class]",
	Short: "Create or update a resource",
	Long: `Save reads a document in the configured format from --file (or stdin) and sends it.
A document without identifier is created with POST, one with an identifier is updated with PUT.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		class := args[0]

		s, err := openSession()
		if err != nil {
			fatal("Failed to initialize restorm", err)
		}
		params, err := parseParams(paramFlags)
		if err != nil {
			fatal("Invalid arguments", err)
		}

		var in io.Reader = cmd.InOrStdin()
		if saveFile != "" && saveFile != "-" {
			f, err := os.Open(saveFile)
			if err != nil {
				fatal("Failed to open document", err)
			}
			defer f.Close()
			in = f
		}
		data, err := io.ReadAll(in)
		if err != nil {
			fatal("Failed to read document", err)
		}

		rec := record.New(class)
		if err := s.client.Factory.Serializer().Deserialize(data, s.client.Factory.Format(), rec); err != nil {
			fatal("Invalid document", err)
		}

		if dryRun {
			req, err := s.client.Factory.CreateSaveRequest(rec, params)
			if err != nil {
				fatal("Failed to build request", err)
			}
			printRequest(cmd.OutOrStdout(), req)
			return
		}

		repo, err := s.repository(class)
		if err != nil {
			fatal("Failed to initialize restorm", err)
		}
		saved, err := repo.Save(context.Background(), rec, params...)
		if err != nil {
			fatal("Failed to save resource", err)
		}
		saved.Class = class
		if len(saved.Fields) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s saved.\n", class)
			return
		}
		if err := s.write(cmd.OutOrStdout(), saved); err != nil {
			fatal("Failed to print resource", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringVar(&saveFile, "file", "", "Document to send (default: stdin)")
}
