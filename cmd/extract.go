package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var extractTimeout time.Duration

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Introspect the active connection and print its unified schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := resolveConnection()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), extractTimeout)
		defer cancel()

		us, err := extractUnified(ctx, conn)
		if err != nil {
			return err
		}

		out, err := us.MarshalWire()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 30*time.Second, "introspection timeout")
	RootCmd.AddCommand(extractCmd)
}
