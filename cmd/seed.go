package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"medquery/internal/dialect"
	"medquery/internal/schema"
	"medquery/internal/seed"
)

var seedRows int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create and fill a demo clinical schema on the active connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := resolveConnection()
		if err != nil {
			return err
		}
		family, ok := schema.ParseFamily(conn.Driver)
		if !ok {
			return fmt.Errorf("unknown driver %q", conn.Driver)
		}
		if family == schema.FamilyMongo {
			return fmt.Errorf("seed supports SQL families only")
		}

		db, err := openSQL(conn, family)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := seed.Run(db, dialect.For(string(family)), seedRows); err != nil {
			return err
		}
		fmt.Printf("seeded %d patients with related clinical, billing, and appointment rows\n", seedRows)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedRows, "rows", 25, "number of patients to generate")
	RootCmd.AddCommand(seedCmd)
}
