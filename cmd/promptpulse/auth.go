package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/auth"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the cloud access token",
	}

	var token string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.NewStore().SetToken(token); err != nil {
				return err
			}
			fmt.Println("Logged in.")
			return nil
		},
	}
	loginCmd.Flags().StringVar(&token, "token", "", "Access token")
	loginCmd.MarkFlagRequired("token")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.NewStore().ClearToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored",
		Run: func(cmd *cobra.Command, args []string) {
			if auth.NewStore().IsAuthenticated() {
				fmt.Println("Authenticated.")
			} else {
				fmt.Println("Not authenticated.")
			}
		},
	}

	cmd.AddCommand(loginCmd, logoutCmd, statusCmd)
	return cmd
}
