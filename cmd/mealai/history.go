package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or delete saved meals",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved meals, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		entries, err := a.service.ListHistory(cmd.Context())
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		return printValue(cmd.OutOrStdout(), format, entries)
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved meal and its thumbnail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.service.DeleteHistory(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	historyListCmd.Flags().StringP("output", "o", "json", "output format: json or yaml")
	historyCmd.AddCommand(historyListCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
