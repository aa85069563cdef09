package models

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Model generation usage:

Set GENERATE_MODELS=true and start the application. It migrates every model,
prints a report of database columns the Go models do not know about and writes
typed query helpers to ./generated, then exits.

Example report:
=== COLUMN MISMATCH REPORT ===
--- Table: users ---
Found 1 columns not accounted for in model:
  - last_login

=== SUMMARY ===
Total mismatched columns across all tables: 1

Set GENERATE_COLUMN_REPORT=true to print the report without migrating.
*/

// All lists every model in migration order
func All() []any {
	return []any{
		&User{},
		&Session{},
		&Profile{},
		&Project{},
		&ProjectImage{},
		&Like{},
		&HiringInquiry{},
		&Message{},
	}
}

func GenerateModels(db *gorm.DB, outPath string) error {
	// Set up verbose logging for migration
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
		Logger:                 newLogger,
	})

	fmt.Println("Migrating models...")
	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}
	fmt.Println("Database migration completed successfully!")

	if err := PrintColumnMismatchReport(db); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	fmt.Println("Model generation complete!")
	return nil
}

// ColumnMismatches maps each table to the database columns that no field of
// its model maps to. Tables that do not exist yet are skipped.
func ColumnMismatches(db *gorm.DB) (map[string][]string, error) {
	cache := &sync.Map{}
	out := make(map[string][]string)

	for _, model := range All() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		if !db.Migrator().HasTable(s.Table) {
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", s.Table, err)
		}

		known := make(map[string]bool, len(s.DBNames))
		for _, name := range s.DBNames {
			known[name] = true
		}
		for _, ct := range columnTypes {
			if !known[ct.Name()] {
				out[s.Table] = append(out[s.Table], ct.Name())
			}
		}
	}
	return out, nil
}

// PrintColumnMismatchReport writes the ColumnMismatches report to stdout
func PrintColumnMismatchReport(db *gorm.DB) error {
	mismatches, err := ColumnMismatches(db)
	if err != nil {
		return err
	}

	fmt.Println("=== COLUMN MISMATCH REPORT ===")
	tables := make([]string, 0, len(mismatches))
	total := 0
	for table, cols := range mismatches {
		tables = append(tables, table)
		total += len(cols)
	}
	sort.Strings(tables)

	for _, table := range tables {
		fmt.Printf("\n--- Table: %s ---\n", table)
		fmt.Printf("Found %d columns not accounted for in model:\n", len(mismatches[table]))
		for _, col := range mismatches[table] {
			fmt.Printf("  - %s\n", col)
		}
	}
	if total == 0 {
		fmt.Println("All columns are accounted for in the models.")
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", total)
	return nil
}
