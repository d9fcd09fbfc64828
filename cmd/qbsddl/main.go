package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/sijms/go-ora/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/klockla/qbs"
	"github.com/klockla/qbs/example"
)

// dialect name (flag --dialect)
var dialectName string

var verbose bool

var logger = zap.NewNop()

func main() {
	if err := execRootCmd(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}

func execRootCmd(args []string, out io.Writer) error {
	rootCmd := &cobra.Command{
		Use:           "qbsddl",
		Short:         "Prints and applies the schema of the qbs example entities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&dialectName, "dialect", "d", "sqlite3", "Target dialect: mysql, postgres, sqlite3, oracle, sqlserver, sybase")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log type resolution and executed statements")
	rootCmd.AddCommand(newTypesCmd(), newSchemaCmd(), newMigrateCmd())
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
	}
	return err
}

func bindMetadata() (*qbs.Metadata, error) {
	dialect, err := qbs.DialectByName(dialectName)
	if err != nil {
		return nil, err
	}
	return qbs.NewMetadataSources(dialect, nil).
		SetLogger(logger).
		AddStruct(example.Entities()...).
		BuildMetadata()
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Prints the resolved type of every property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := bindMetadata()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "# %s (%s nationalization)\n", md.Dialect().Name(), md.Dialect().NationalizationSupport())
			fmt.Fprintln(w, "ENTITY\tPROPERTY\tCOLUMN\tTYPE\tSQL TYPE\tDEFINITION")
			for _, pc := range md.EntityBindings() {
				for _, p := range pc.Properties() {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						pc.EntityName(), p.Name(), p.Column(), p.Type().Name(), p.Type().SqlType(), md.ColumnDefinition(p))
				}
			}
			return w.Flush()
		},
	}
}

func newSchemaCmd() *cobra.Command {
	var ifNotExists bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Prints the CREATE TABLE statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := bindMetadata()
			if err != nil {
				return err
			}
			for _, pc := range md.EntityBindings() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", md.CreateTableSql(pc, ifNotExists))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ifNotExists, "if-not-exists", false, "Guard statements against existing tables")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	dsn := new(qbs.DataSourceName)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Creates the example tables in a database (mysql, postgres, sqlite3, oracle)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := qbs.DialectByName(dialectName)
			if err != nil {
				return err
			}
			dsn.Dialect = dialect
			return qbs.WithMigration(dsn, func(mg *qbs.Migration) error {
				mg.SetLogger(logger)
				if err := example.CreateTables(mg); err != nil {
					return err
				}
				logger.Info("schema applied", zap.String("dialect", dialect.Name()), zap.String("database", dsn.DbName))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dsn.DbName, "db", "", "Database name, file path for sqlite3, or service name for oracle")
	cmd.Flags().StringVar(&dsn.Host, "host", "", "Database host")
	cmd.Flags().StringVar(&dsn.Port, "port", "", "Database port")
	cmd.Flags().StringVar(&dsn.Username, "user", "", "Database user")
	cmd.Flags().StringVar(&dsn.Password, "password", "", "Database password")
	cmd.Flags().StringArrayVar(&dsn.Variables, "param", nil, "Extra driver parameter as key=value, repeatable")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}
