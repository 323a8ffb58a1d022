package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an approved admin account",
	Long: `Create an approved admin account. Admins cannot sign up over HTTP.
The password is read from --password or, if omitted, from ADMIN_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := adminPassword
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		if strings.TrimSpace(adminEmail) == "" || password == "" {
			return errors.New("--email and a password are required")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		svc := a.services(a.repositories())
		user, err := svc.auth.CreateAdmin(cmd.Context(), adminEmail, password, adminName)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email address")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Administrator", "display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (prefer ADMIN_PASSWORD)")
}
