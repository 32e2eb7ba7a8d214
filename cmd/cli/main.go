package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/audit-atlas/pkg/services/templates"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb"
	templatestore "github.com/de-tools/audit-atlas/pkg/store/duckdb/template"
)

var dbPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "audit-atlas",
		Short: "Manage Audit Atlas questionnaire templates",
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "audit-atlas.db", "Path to the DuckDB database file")

	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Manage questionnaire templates",
	}
	templateCmd.AddCommand(
		&cobra.Command{
			Use:   "import <file>",
			Short: "Import a questionnaire template from a YAML definition",
			Args:  cobra.ExactArgs(1),
			RunE:  runImport,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List installed templates",
			RunE:  runList,
		},
	)

	rootCmd.AddCommand(
		templateCmd,
		&cobra.Command{
			Use:   "seed",
			Short: "Install the bundled ISO 27701 starter template",
			RunE:  runSeed,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openCatalog() (templates.Catalog, *sql.DB, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	store, err := templatestore.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return templates.NewCatalog(store), db, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	catalog, db, err := openCatalog()
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open definition file: %w", err)
	}
	defer f.Close()

	t, err := catalog.Import(cmd.Context(), f)
	if err != nil {
		return err
	}

	fmt.Printf("Imported template %s (%s) with %d sections and %d questions\n",
		t.Code, t.Name, len(t.Sections), t.TotalQuestions())
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	catalog, db, err := openCatalog()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := catalog.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No templates installed.")
		return nil
	}
	for _, t := range list {
		fmt.Printf("%-12s %-50s sections: %d, questions: %d\n",
			t.Code, t.Name, len(t.Sections), t.TotalQuestions())
	}
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	catalog, db, err := openCatalog()
	if err != nil {
		return err
	}
	defer db.Close()

	starter, err := templates.ISO27701Starter()
	if err != nil {
		return fmt.Errorf("failed to build starter template: %w", err)
	}

	t, err := catalog.Install(cmd.Context(), *starter)
	if err != nil {
		return err
	}
	fmt.Printf("Installed template %s with %d questions\n", t.Code, t.TotalQuestions())
	return nil
}
