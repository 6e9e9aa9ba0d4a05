package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [class] [id]",
	Short: "Delete a resource",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		class, id := args[0], args[1]

		s, err := openSession()
		if err != nil {
			fatal("Failed to initialize restorm", err)
		}
		params, err := parseParams(paramFlags)
		if err != nil {
			fatal("Invalid arguments", err)
		}

		rec, err := s.identified(class, id)
		if err != nil {
			fatal("Failed to resolve class", err)
		}

		if dryRun {
			req, err := s.client.Factory.CreateDeleteRequest(rec, params)
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
		if _, err := repo.Remove(context.Background(), rec, params...); err != nil {
			fatal("Failed to delete resource", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s deleted.\n", class, id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
