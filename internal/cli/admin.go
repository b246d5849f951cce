package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type CreateAdminOptions struct {
	*RootOptions
	Name     string
	Email    string
	Password string
}

// NewCreateAdminCommand bootstraps the first ADMIN account; registration only creates clients.
func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateAdminOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an ADMIN account",
		Long: `Create an ADMIN account.

Example:
  turismo create-admin --name Admin --email admin@turismo.ec --password secret123`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), opts.RootOptions, false)
			if err != nil {
				return err
			}
			defer rt.close()

			a, err := wire(cmd.Context(), rt)
			if err != nil {
				return err
			}
			u, err := a.users.CreateAdmin(cmd.Context(), opts.Name, opts.Email, opts.Password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "login email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password, at least 6 characters (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
