package cmd

import (
	"fmt"

	"sheet2sql/internal/workbook"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <workbook.xlsx>...",
	Short: "Flatten workbooks into one CSV per sheet",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			files, err := workbook.Extract(path, Log)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Println(f)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(extractCmd)
}
