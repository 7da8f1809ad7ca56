// Package schema is the in-memory typed view of a database schema exposed by
// api/schema/ and api/model/{app}/{model}/ — Django's "app label / model
// name" grouping, carried over verbatim from the source system.
package schema

// RelationshipType enumerates the kinds of relationship a model can declare.
type RelationshipType string

const (
	ForeignKey RelationshipType = "foreign_key"
	OneToOne   RelationshipType = "one_to_one"
	ManyToMany RelationshipType = "many_to_many"
)

// Direction distinguishes a relationship declared on the owning side
// (forward) from its mirror image on the referenced side (reverse).
type Direction string

const (
	Forward Direction = "forward"
	Reverse Direction = "reverse"
)

// Field is one column of a model.
type Field struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	MaxLength *int   `json:"max_length,omitempty"`
	Primary   bool   `json:"primary_key"`
	Unique    bool   `json:"unique"`
	Null      bool   `json:"null"`
	DBIndex   bool   `json:"db_index"`
}

// Relationship is one forward or reverse relationship declared by a model.
type Relationship struct {
	Name        string           `json:"name"`
	Type        RelationshipType `json:"type"`
	Direction   Direction        `json:"direction"`
	TargetApp   string           `json:"target_app"`
	TargetModel string           `json:"target_model"`
	OnDelete    string           `json:"on_delete,omitempty"`

	// FieldName is the field this relationship resolves to on the owning
	// model, pre-normalised at ingestion time (see SPEC_FULL.md §3): it is
	// whichever of rel.Name, rel.Name+"_id", or strip("_id", rel.Name)
	// matched an actual field, or "" if none did. The layout engine looks
	// this up by equality instead of re-deriving it on every anchor lookup.
	FieldName string `json:"field_name,omitempty"`
}

// Model is one database table (or proxy/abstract model with no table of its
// own) within an app.
type Model struct {
	Name          string         `json:"name"`
	TableName     string         `json:"table_name"`
	Proxy         bool           `json:"proxy"`
	Abstract      bool           `json:"abstract"`
	Fields        []Field        `json:"fields"`
	Relationships []Relationship `json:"relationships"`
}

// App is one application namespace grouping a set of models.
type App struct {
	VerboseName string           `json:"verbose_name"`
	Models      map[string]Model `json:"models"`
}

// Schema is the full wire shape returned by GET api/schema/.
type Schema struct {
	Apps map[string]App `json:"apps"`
}

// ResolveFieldNames fills in Relationship.FieldName for every relationship
// (forward and reverse) in the schema that does not already have one, using the same three-way lookup the router
// would otherwise repeat per anchor: rel.Name, rel.Name+"_id", or rel.Name
// with a trailing "_id" stripped. It is idempotent and safe to call on a
// schema that was decoded from JSON (which never sets FieldName) or
// synthesized by FromPostgres (which already does).
func (s *Schema) ResolveFieldNames() {
	for appLabel, app := range s.Apps {
		for modelName, model := range app.Models {
			for i := range model.Relationships {
				rel := &model.Relationships[i]
				if rel.FieldName != "" {
					continue
				}
				rel.FieldName = resolveFieldName(model.Fields, rel.Name)
			}
			app.Models[modelName] = model
		}
		s.Apps[appLabel] = app
	}
}

func resolveFieldName(fields []Field, relName string) string {
	stripped := relName
	if len(stripped) > 3 && stripped[len(stripped)-3:] == "_id" {
		stripped = stripped[:len(stripped)-3]
	}
	candidates := [3]string{relName, relName + "_id", stripped}
	for _, f := range fields {
		for _, c := range candidates {
			if f.Name == c {
				return f.Name
			}
		}
	}
	return ""
}

// Model looks up a model record by app label and model name.
func (s *Schema) Model(appLabel, modelName string) (Model, bool) {
	app, ok := s.Apps[appLabel]
	if !ok {
		return Model{}, false
	}
	m, ok := app.Models[modelName]
	return m, ok
}
