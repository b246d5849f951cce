package cli

import (
	"github.com/kevinseya/app-turismo-dnavarro/internal/config"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "migrate",
		Short:         "Create or update the database tables",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), rootOpts, false)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := config.Migrate(rt.db); err != nil {
				return err
			}
			rt.logger.Info("✅ Database migrations completed")
			return nil
		},
	}
}
