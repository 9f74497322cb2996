package cmd

import (
	"github.com/spf13/cobra"

	"github.com/eddieantonio/blobfs/pkg/fuse"
)

// mountCmd represents the mount command
var mountCmd = &cobra.Command{
	Use:   "mount DATABASE MOUNTPOINT",
	Short: "Mount the database at a mountpoint",
	Long: `Mounts the database as a read-only FUSE filesystem.

Blocks until the filesystem is unmounted. Exits non-zero if the database
cannot be opened or the mountpoint cannot be attached.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fuse.MountFS(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(mountCmd)
}
