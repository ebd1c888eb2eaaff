package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and construct every module without processing events",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := setup()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d module(s) %v reading %s\n", p.Len(), p.Modules(), p.Source())
		return nil
	},
}
