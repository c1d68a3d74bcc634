package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"medquery/internal/schema"
	"medquery/internal/validate"
)

var validateFamily string

var validateCmd = &cobra.Command{
	Use:   "validate [query]",
	Short: "Check query text for read-only safety without executing it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read query from stdin: %w", err)
			}
			text = string(data)
		}

		family, ok := schema.ParseFamily(validateFamily)
		if !ok {
			if conn, err := resolveConnection(); err == nil {
				family, ok = schema.ParseFamily(conn.Driver)
			}
			if !ok {
				return fmt.Errorf("cannot determine database family; pass --family")
			}
		}

		res := validate.Validate(strings.TrimSpace(text), family)
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		if !res.Valid {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateFamily, "family", "", "database family the query targets (defaults to the active connection)")
	RootCmd.AddCommand(validateCmd)
}
