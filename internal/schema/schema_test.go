package schema

import (
	"bytes"
	"strings"
	"testing"
)

func TestFromJSONRoundTrip(t *testing.T) {
	input := `{
		"apps": {
			"blog": {
				"verbose_name": "Blog",
				"models": {
					"Post": {
						"name": "Post",
						"table_name": "blog_post",
						"fields": [
							{"name": "id", "type": "AutoField", "primary_key": true, "unique": true, "null": false, "db_index": false},
							{"name": "author", "type": "ForeignKey", "primary_key": false, "unique": false, "null": false, "db_index": true}
						],
						"relationships": [
							{"name": "author", "type": "foreign_key", "direction": "forward", "target_app": "auth", "target_model": "User"}
						]
					}
				}
			},
			"auth": {
				"verbose_name": "Auth",
				"models": {
					"User": {
						"name": "User",
						"table_name": "auth_user",
						"fields": [
							{"name": "id", "type": "AutoField", "primary_key": true, "unique": true, "null": false, "db_index": false}
						]
					}
				}
			}
		}
	}`

	s, err := FromJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	post, ok := s.Model("blog", "Post")
	if !ok {
		t.Fatalf("expected blog.Post to exist")
	}
	if len(post.Relationships) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(post.Relationships))
	}
	if got := post.Relationships[0].FieldName; got != "author" {
		t.Errorf("expected resolved field name %q, got %q", "author", got)
	}

	var buf bytes.Buffer
	if err := ToJSON(&buf, s); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	s2, err := FromJSON(&buf)
	if err != nil {
		t.Fatalf("FromJSON (round trip): %v", err)
	}
	if len(s2.Apps) != len(s.Apps) {
		t.Errorf("round trip app count mismatch: got %d want %d", len(s2.Apps), len(s.Apps))
	}
}

func TestResolveFieldNameFallbacks(t *testing.T) {
	fields := []Field{
		{Name: "id", Primary: true},
		{Name: "author_id"},
	}

	cases := []struct {
		relName string
		want    string
	}{
		{"author", "author_id"},  // rel.Name + "_id" match
		{"author_id", "author_id"}, // exact match
		{"missing", ""},
	}

	for _, c := range cases {
		got := resolveFieldName(fields, c.relName)
		if got != c.want {
			t.Errorf("resolveFieldName(%q) = %q, want %q", c.relName, got, c.want)
		}
	}
}

func TestFromJSONEmptySchema(t *testing.T) {
	s, err := FromJSON(strings.NewReader(`{"apps": {}}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if len(s.Apps) != 0 {
		t.Errorf("expected empty schema, got %d apps", len(s.Apps))
	}
}
