package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eddieantonio/blobfs/pkg/sqlutils"
)

// catCmd prints a field file without mounting anything.
var catCmd = &cobra.Command{
	Use:   "cat DATABASE PATH",
	Short: "Print a field file without mounting",
	Long: `Prints the exact bytes the mounted filesystem would serve at
PATH, which must name a field file (/table/key/column).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := backend.OpenDB(args[0])
		if err != nil {
			return err
		}
		defer db.Close()

		loc, err := sqlutils.Resolve(db, backend, args[1])
		if err != nil {
			return err
		}
		if loc.Kind != sqlutils.KindFieldFile {
			return fmt.Errorf("%s: %w", args[1], sqlutils.ErrIsDir)
		}

		data, err := backend.FetchField(db, loc.Table, loc.Key, loc.Column)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}
