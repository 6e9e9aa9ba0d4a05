package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listIDs bool

var listCmd = &cobra.Command{
	Use:   "list [class]",
	Short: "Fetch the collection of a class",
	Args:  cobra.ExactArgs(1),
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

		if dryRun {
			req, err := s.client.Factory.CreateFindAllRequest(class, params)
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
		items, err := repo.FindAll(context.Background(), params...)
		if err != nil {
			fatal("Failed to list resources", err)
		}

		if listIDs {
			md, err := s.client.Registry.Resolve(class)
			if err != nil {
				fatal("Failed to resolve class", err)
			}
			for _, item := range items {
				if id, ok := item.Field(md.IdentifierField); ok {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
			}
			return
		}

		for _, item := range items {
			item.Class = class
		}
		if err := s.write(cmd.OutOrStdout(), items); err != nil {
			fatal("Failed to print resources", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listIDs, "ids", false, "Print only identifiers, one per line")
}
