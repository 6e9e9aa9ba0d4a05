package main

import (
	"context"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [class] [id]",
	Short: "Fetch one resource by identifier",
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

		if dryRun {
			req, err := s.client.Factory.CreateFindOneRequest(class, id, params)
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
		found, err := repo.FindOneByID(context.Background(), id, params...)
		if err != nil {
			fatal("Failed to fetch resource", err)
		}
		found.Class = class

		if err := s.write(cmd.OutOrStdout(), found); err != nil {
			fatal("Failed to print resource", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
