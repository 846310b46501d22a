package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var downloadOut string

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <s3-path>",
	Short: "Download an object to a local file",
	Long:  `Streams the object at the given storage path to a local file. Without --out the configured default destination is used.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrapFetch()
		if err != nil {
			return err
		}

		dest, err := svc.Download(cmd.Context(), args[0], downloadOut)
		if err != nil {
			return err
		}

		fmt.Printf("Downloaded to %s\n", dest)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&downloadOut, "out", "", "Local destination path")
}
