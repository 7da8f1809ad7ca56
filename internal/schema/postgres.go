package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// querier is the subset of *pgxpool.Pool's method set this package actually
// calls. FromPostgres takes this interface instead of *pgxpool.Pool
// directly so its query loaders can be exercised in tests against a
// hand-built pgx.Rows, with no live database or pool required.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// FromPostgres introspects a live database through pool and synthesizes a
// Schema: one namespace becomes one App, one table becomes one Model, one
// column becomes one Field, and one foreign key constraint becomes a pair
// of Relationship records — forward on the referencing model, reverse on
// the referenced one.
//
// excludeSystem drops pg_catalog/information_schema/pg_toast, the Postgres
// analogue of the wire API's ?exclude_django= flag.
func FromPostgres(ctx context.Context, pool querier, excludeSystem bool) (*Schema, error) {
	s := &Schema{Apps: map[string]App{}}

	if err := loadTables(ctx, pool, s, excludeSystem); err != nil {
		return nil, fmt.Errorf("schema: load tables: %w", err)
	}
	if err := loadColumns(ctx, pool, s, excludeSystem); err != nil {
		return nil, fmt.Errorf("schema: load columns: %w", err)
	}
	if err := loadForeignKeys(ctx, pool, s, excludeSystem); err != nil {
		return nil, fmt.Errorf("schema: load foreign keys: %w", err)
	}

	s.ResolveFieldNames()

	log.Info().
		Int("apps", len(s.Apps)).
		Msg("schema: loaded from postgres")
	return s, nil
}

func ensureApp(s *Schema, appLabel string) App {
	app, ok := s.Apps[appLabel]
	if !ok {
		app = App{VerboseName: appLabel, Models: map[string]Model{}}
		s.Apps[appLabel] = app
	}
	return app
}

func loadTables(ctx context.Context, pool querier, s *Schema, excludeSystem bool) error {
	rows, err := pool.Query(ctx, queryFetchTables)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var nsName, tableName string
		if err := rows.Scan(&nsName, &tableName); err != nil {
			return err
		}
		if excludeSystem && systemNamespaces[nsName] {
			continue
		}

		app := ensureApp(s, nsName)
		if _, ok := app.Models[tableName]; !ok {
			app.Models[tableName] = Model{
				Name:      tableName,
				TableName: tableName,
			}
		}
	}
	return rows.Err()
}

func loadColumns(ctx context.Context, pool querier, s *Schema, excludeSystem bool) error {
	rows, err := pool.Query(ctx, queryFetchColumns)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var nsName, tableName, colName, colType string
		var nullable, primary, unique, indexed bool
		if err := rows.Scan(&nsName, &tableName, &colName, &colType, &nullable, &primary, &unique, &indexed); err != nil {
			return err
		}
		if excludeSystem && systemNamespaces[nsName] {
			continue
		}

		app, ok := s.Apps[nsName]
		if !ok {
			continue
		}
		model, ok := app.Models[tableName]
		if !ok {
			continue
		}
		model.Fields = append(model.Fields, Field{
			Name:    colName,
			Type:    colType,
			Primary: primary,
			Unique:  unique,
			Null:    nullable,
			DBIndex: indexed,
		})
		app.Models[tableName] = model
	}
	return rows.Err()
}

func loadForeignKeys(ctx context.Context, pool querier, s *Schema, excludeSystem bool) error {
	rows, err := pool.Query(ctx, queryFetchForeignKeys)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var srcSchema, srcTable, tgtSchema, tgtTable, constraintName, deleteRule string
		var fkCols []string
		if err := rows.Scan(&srcSchema, &srcTable, &tgtSchema, &tgtTable, &constraintName, &deleteRule, &fkCols); err != nil {
			return err
		}
		if excludeSystem && (systemNamespaces[srcSchema] || systemNamespaces[tgtSchema]) {
			continue
		}

		srcApp, ok := s.Apps[srcSchema]
		if !ok {
			continue
		}
		srcModel, ok := srcApp.Models[srcTable]
		if !ok {
			continue
		}

		relName := constraintName
		if len(fkCols) == 1 {
			relName = fkCols[0]
		}

		srcModel.Relationships = append(srcModel.Relationships, Relationship{
			Name:        relName,
			Type:        ForeignKey,
			Direction:   Forward,
			TargetApp:   tgtSchema,
			TargetModel: tgtTable,
			OnDelete:    deleteRule,
		})
		srcApp.Models[srcTable] = srcModel

		if tgtApp, ok := s.Apps[tgtSchema]; ok {
			if tgtModel, ok := tgtApp.Models[tgtTable]; ok {
				tgtModel.Relationships = append(tgtModel.Relationships, Relationship{
					Name:        srcTable,
					Type:        ForeignKey,
					Direction:   Reverse,
					TargetApp:   srcSchema,
					TargetModel: srcTable,
				})
				tgtApp.Models[tgtTable] = tgtModel
			}
		}
	}
	return rows.Err()
}
