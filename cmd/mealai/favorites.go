package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List or delete favorite meals",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		favorites, err := a.service.ListFavorites(cmd.Context())
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		return printValue(cmd.OutOrStdout(), format, favorites)
	},
}

var favoritesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.service.DeleteFavorite(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	favoritesListCmd.Flags().StringP("output", "o", "json", "output format: json or yaml")
	favoritesCmd.AddCommand(favoritesListCmd, favoritesDeleteCmd)
	rootCmd.AddCommand(favoritesCmd)
}
