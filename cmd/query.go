package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"medquery/internal/classify"
	"medquery/internal/schema"
	"medquery/internal/synth"
	"medquery/internal/validate"
)

var (
	queryIntent     string
	queryEntityID   string
	queryLimit      int
	querySchemaFile string
	queryTimeout    time.Duration
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Synthesize a read-only retrieval query for a target patient",
	RunE: func(cmd *cobra.Command, args []string) error {
		us, err := loadSchema(cmd.Context())
		if err != nil {
			return printResponse(synth.Response{Status: "error", Error: err.Error()})
		}

		cls := classify.Classify(us)
		intent := synth.ParseIntent(queryIntent)

		text, plan, err := synth.Synthesize(us, cls, intent, queryEntityID, queryLimit)
		if err != nil {
			return printResponse(synth.Response{
				Status:       "error",
				DatabaseType: string(us.Family),
				Error:        err.Error(),
			})
		}

		if v := validate.Validate(text, us.Family); !v.Valid {
			return printResponse(synth.Response{
				Status:       "error",
				DatabaseType: string(us.Family),
				Error:        "generated query failed validation: " + strings.Join(v.Errors, "; "),
			})
		}

		related := make([]string, 0, len(plan.Related))
		for _, r := range plan.Related {
			related = append(related, r.Table)
		}
		return printResponse(synth.Response{
			Status:         "success",
			GeneratedQuery: text,
			DatabaseType:   string(us.Family),
			PatientTable:   plan.AnchorTable,
			RelatedTables:  related,
			Warnings:       plan.Warnings,
		})
	},
}

// loadSchema reads a saved wire-shape document when --schema-file is set,
// otherwise introspects the active connection.
func loadSchema(ctx context.Context) (*schema.UnifiedSchema, error) {
	if querySchemaFile != "" {
		data, err := os.ReadFile(querySchemaFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		return schema.ParseUnified(data)
	}

	conn, err := resolveConnection()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return extractUnified(ctx, conn)
}

func printResponse(r synth.Response) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	queryCmd.Flags().StringVar(&queryIntent, "intent", "comprehensive", "query intent: comprehensive, clinical, billing, or basic")
	queryCmd.Flags().StringVar(&queryEntityID, "entity", "", "target entity identifier value")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 100, "maximum result rows")
	queryCmd.Flags().StringVar(&querySchemaFile, "schema-file", "", "synthesize from a saved schema JSON instead of a live database")
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", 30*time.Second, "introspection timeout")
	queryCmd.MarkFlagRequired("entity")
	RootCmd.AddCommand(queryCmd)
}
