package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medquery/internal/dialect"
	"medquery/internal/introspect"
	"medquery/internal/schema"
)

var (
	cfgFile    string
	flagDSN    string
	flagDriver string
	flagSchema string
)

var RootCmd = &cobra.Command{
	Use:   "medquery",
	Short: "Schema-driven medical record query synthesis",
	Long: `medquery introspects a configured database, classifies its tables into
clinical domain categories, and synthesizes safe read-only retrieval
queries for a target patient across Postgres, MySQL, SQL Server, Oracle,
Snowflake, and MongoDB.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./medquery.yaml)")
	RootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "connection string, bypasses the registry when set with --driver")
	RootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "database driver (postgres, mysql, sqlserver, oracle, snowflake, mongodb)")
	RootCmd.PersistentFlags().StringVar(&flagSchema, "schema", "", "schema to introspect (defaults per family)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("medquery")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// openSQL opens and pings the SQL connection for a registry entry.
func openSQL(conn *Connection, family schema.Family) (*sql.DB, error) {
	db, err := sql.Open(sqlDriverName(family), conn.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return db, nil
}

// sqlDriverName maps a family onto the registered database/sql driver.
func sqlDriverName(family schema.Family) string {
	switch family {
	case schema.FamilyMySQL:
		return "mysql"
	case schema.FamilySQLServer:
		return "sqlserver"
	case schema.FamilyOracle:
		return "oracle"
	case schema.FamilySnowflake:
		return "snowflake"
	default:
		return "postgres"
	}
}

// extractUnified runs the full extraction for the connection: catalog scan
// plus normalization for SQL families, collection sampling for Mongo.
func extractUnified(ctx context.Context, conn *Connection) (*schema.UnifiedSchema, error) {
	family, ok := schema.ParseFamily(conn.Driver)
	if !ok {
		return nil, fmt.Errorf("unknown driver %q", conn.Driver)
	}

	if family == schema.FamilyMongo {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(conn.DSN))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		defer client.Disconnect(ctx)

		dbName := conn.Schema
		if dbName == "" {
			dbName = conn.Name
		}
		return introspect.SampleMongo(ctx, client.Database(dbName))
	}

	db, err := openSQL(conn, family)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	schemaName := conn.Schema
	if family == schema.FamilyMySQL && schemaName == "" {
		// MySQL scopes the catalog by the database selected in the DSN.
		if err := db.QueryRow("SELECT DATABASE()").Scan(&schemaName); err != nil {
			return nil, fmt.Errorf("failed to get database name: %w", err)
		}
	}

	intro := dialect.For(string(family))
	raw, err := introspect.Analyze(ctx, db, intro, family, conn.Name, schemaName)
	if err != nil {
		return nil, err
	}
	return schema.Normalize(raw, family)
}
