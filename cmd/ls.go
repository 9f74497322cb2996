package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eddieantonio/blobfs/pkg/sqlutils"
)

// lsCmd lists a directory of the tree without mounting anything.
var lsCmd = &cobra.Command{
	Use:   "ls DATABASE [PATH]",
	Short: "List a directory of the tree without mounting",
	Long: `Lists the entries the mounted filesystem would show at PATH:
table names at /, encoded row keys under a table, column names under a
row. PATH defaults to /.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "/"
		if len(args) == 2 {
			target = args[1]
		}

		db, err := backend.OpenDB(args[0])
		if err != nil {
			return err
		}
		defer db.Close()

		loc, err := sqlutils.Resolve(db, backend, target)
		if err != nil {
			return err
		}

		entries, err := sqlutils.ListEntries(db, backend, loc)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), entry)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
