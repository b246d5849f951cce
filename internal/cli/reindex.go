package cli

import (
	"github.com/spf13/cobra"
)

func NewReindexGeoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex-geo",
		Short: "Rebuild the Redis GEO index of active posts",
		Long: `Rebuild the Redis GEO set used by the nearby feed from the posts table.
Requires NEARBY_INDEX=redis.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), rootOpts, true)
			if err != nil {
				return err
			}
			defer rt.close()

			a, err := wire(cmd.Context(), rt)
			if err != nil {
				return err
			}
			return a.reindexGeo(cmd.Context(), rt.logger)
		},
	}
}
