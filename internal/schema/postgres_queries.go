package schema

// SQL queries narrowed to the subset needed to synthesize the
// apps/models/fields/relationships wire shape: one namespace becomes one
// app, one table becomes one model, one column becomes one field, one
// foreign key constraint becomes a pair of forward/reverse relationships.
const (
	// queryFetchTables drops the size/row-count columns a capacity report
	// would need — the ER diagram has no use for them.
	queryFetchTables = `
		SELECT
			ns.nspname AS schema_name,
			cl.relname AS table_name
		FROM pg_class cl
		JOIN pg_namespace ns ON cl.relnamespace = ns.oid
		WHERE cl.relkind IN ('r', 'p')
		ORDER BY ns.nspname, cl.relname;
	`

	// queryFetchColumns fetches every column of every table along with the
	// primary-key/unique/db_index flags a Field record needs.
	queryFetchColumns = `
		SELECT
			ns.nspname AS schema_name,
			cl.relname AS table_name,
			a.attname AS column_name,
			format_type(a.atttypid, a.atttypmod) AS column_type,
			NOT a.attnotnull AS is_nullable,
			COALESCE(pk.is_primary, false) AS is_primary,
			COALESCE(uq.is_unique, false) AS is_unique,
			COALESCE(ix.is_indexed, false) AS is_indexed
		FROM pg_attribute a
		JOIN pg_class cl ON a.attrelid = cl.oid
		JOIN pg_namespace ns ON cl.relnamespace = ns.oid
		LEFT JOIN LATERAL (
			SELECT true AS is_primary
			FROM pg_constraint con
			WHERE con.conrelid = cl.oid AND con.contype = 'p' AND a.attnum = ANY(con.conkey)
		) pk ON true
		LEFT JOIN LATERAL (
			SELECT true AS is_unique
			FROM pg_constraint con
			WHERE con.conrelid = cl.oid AND con.contype = 'u' AND a.attnum = ANY(con.conkey)
		) uq ON true
		LEFT JOIN LATERAL (
			SELECT true AS is_indexed
			FROM pg_index idx
			WHERE idx.indrelid = cl.oid AND a.attnum = ANY(idx.indkey)
		) ix ON true
		WHERE cl.relkind IN ('r', 'p')
		  AND a.attnum > 0
		  AND NOT a.attisdropped
		ORDER BY ns.nspname, cl.relname, a.attnum;
	`

	// queryFetchForeignKeys returns one row per FK constraint, with its
	// source and target table and the delete rule.
	queryFetchForeignKeys = `
		SELECT
			ns.nspname AS table_schema,
			cl.relname AS table_name,
			fns.nspname AS foreign_table_schema,
			fcl.relname AS foreign_table_name,
			con.conname AS constraint_name,
			CASE con.confdeltype
				WHEN 'a' THEN 'NO ACTION'
				WHEN 'r' THEN 'RESTRICT'
				WHEN 'c' THEN 'CASCADE'
				WHEN 'n' THEN 'SET NULL'
				WHEN 'd' THEN 'SET DEFAULT'
			END AS delete_rule,
			(
				SELECT array_agg(a.attname ORDER BY array_position(con.conkey, a.attnum))
				FROM pg_attribute a
				WHERE a.attrelid = cl.oid AND a.attnum = ANY(con.conkey)
			) AS fk_columns
		FROM pg_constraint con
		JOIN pg_class cl ON con.conrelid = cl.oid
		JOIN pg_namespace ns ON cl.relnamespace = ns.oid
		JOIN pg_class fcl ON con.confrelid = fcl.oid
		JOIN pg_namespace fns ON fcl.relnamespace = fns.oid
		WHERE con.contype = 'f'
		ORDER BY ns.nspname, cl.relname, con.conname;
	`
)

// systemNamespaces lists the namespaces excludeSystem filters out.
var systemNamespaces = map[string]bool{
	"information_schema": true,
	"pg_catalog":         true,
	"pg_toast":           true,
}
