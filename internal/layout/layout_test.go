package layout

import (
	"testing"

	"github.com/AndrewBazen/django-schema-viewer/internal/schema"
)

func onePKModel(name, table string) schema.Model {
	return schema.Model{
		Name:      name,
		TableName: table,
		Fields: []schema.Field{
			{Name: "id", Primary: true},
		},
	}
}

func TestNodeHeightMonotone(t *testing.T) {
	base := schema.Model{Fields: []schema.Field{{Name: "id"}}}
	h1 := NodeHeight(base)
	base.Fields = append(base.Fields, schema.Field{Name: "name"})
	h2 := NodeHeight(base)
	if h2 < h1 {
		t.Fatalf("height decreased after adding a field: %d -> %d", h1, h2)
	}

	// Crossing the VisibleMax threshold adds the "more" affordance.
	model := schema.Model{Fields: make([]schema.Field, VisibleMax)}
	withoutMore := NodeHeight(model)
	model.Fields = append(model.Fields, schema.Field{Name: "extra"})
	withMore := NodeHeight(model)
	if withMore <= withoutMore {
		t.Fatalf("expected height increase past VisibleMax: %d -> %d", withoutMore, withMore)
	}
}

func TestEmptySchema(t *testing.T) {
	s := &schema.Schema{Apps: map[string]schema.App{}}
	result := Compute(s)
	if len(result.Graph.Nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(result.Graph.Nodes))
	}
	if len(result.Graph.Edges) != 0 {
		t.Fatalf("expected no edges, got %d", len(result.Graph.Edges))
	}
}

func TestSingleNodeNoRelationships(t *testing.T) {
	s := &schema.Schema{Apps: map[string]schema.App{
		"blog": {Models: map[string]schema.Model{
			"Post": onePKModel("Post", "blog_post"),
		}},
	}}
	result := Compute(s)
	pos := result.Positions["blog.Post"]
	if pos.X != 50 || pos.Y != 50 {
		t.Fatalf("expected (50,50), got (%d,%d)", pos.X, pos.Y)
	}
	if len(result.Graph.Edges) != 0 {
		t.Fatalf("expected no edges, got %d", len(result.Graph.Edges))
	}
}

func TestAllCyclicTwoNodeGraph(t *testing.T) {
	a := onePKModel("A", "a")
	a.Relationships = []schema.Relationship{
		{Name: "b", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "B"},
	}
	b := onePKModel("B", "b")
	b.Relationships = []schema.Relationship{
		{Name: "a", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "A"},
	}

	s := &schema.Schema{Apps: map[string]schema.App{
		"app": {Models: map[string]schema.Model{"A": a, "B": b}},
	}}

	result := Compute(s)
	nodeA := result.Graph.Nodes["app.A"]
	nodeB := result.Graph.Nodes["app.B"]

	if nodeA.Column != 0 || nodeB.Column != 0 {
		t.Fatalf("expected both cyclic nodes at column 0, got A=%d B=%d", nodeA.Column, nodeB.Column)
	}
	if nodeA.Row == nodeB.Row {
		t.Fatalf("expected distinct rows for cyclic nodes, both got %d", nodeA.Row)
	}
}

func TestSelfLoopOnly(t *testing.T) {
	tree := onePKModel("Node", "tree_node")
	tree.Relationships = []schema.Relationship{
		{Name: "parent", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "tree", TargetModel: "Node"},
	}

	s := &schema.Schema{Apps: map[string]schema.App{
		"tree": {Models: map[string]schema.Model{"Node": tree}},
	}}

	result := Compute(s)
	node := result.Graph.Nodes["tree.Node"]
	if !node.HasSelfConnection {
		t.Fatalf("expected HasSelfConnection")
	}
	if len(result.Graph.Edges) != 0 {
		t.Fatalf("expected no edges for a self-loop, got %d", len(result.Graph.Edges))
	}
}

// S1: two apps, one FK blog.Post -> auth.User.
func TestScenarioS1(t *testing.T) {
	user := onePKModel("User", "auth_user")
	post := onePKModel("Post", "blog_post")
	post.Relationships = []schema.Relationship{
		{Name: "author", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "auth", TargetModel: "User"},
	}

	s := &schema.Schema{Apps: map[string]schema.App{
		"auth": {Models: map[string]schema.Model{"User": user}},
		"blog": {Models: map[string]schema.Model{"Post": post}},
	}}

	result := Compute(s)
	userNode := result.Graph.Nodes["auth.User"]
	postNode := result.Graph.Nodes["blog.Post"]

	if userNode.Column != 0 {
		t.Errorf("expected auth.User column 0, got %d", userNode.Column)
	}
	if postNode.Column != 1 {
		t.Errorf("expected blog.Post column 1, got %d", postNode.Column)
	}

	userPos := result.Positions["auth.User"]
	postPos := result.Positions["blog.Post"]
	if userPos.X != 50 || userPos.Y != 50 {
		t.Errorf("expected auth.User at (50,50), got (%d,%d)", userPos.X, userPos.Y)
	}
	if postPos.X != 420 || postPos.Y != 50 {
		t.Errorf("expected blog.Post at (420,50), got (%d,%d)", postPos.X, postPos.Y)
	}
}

// S2: three-node chain A->B->C.
func TestScenarioS2Chain(t *testing.T) {
	a := onePKModel("A", "a")
	a.Relationships = []schema.Relationship{
		{Name: "b", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "B"},
	}
	b := onePKModel("B", "b")
	b.Relationships = []schema.Relationship{
		{Name: "c", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "C"},
	}
	c := onePKModel("C", "c")

	s := &schema.Schema{Apps: map[string]schema.App{
		"app": {Models: map[string]schema.Model{"A": a, "B": b, "C": c}},
	}}

	result := Compute(s)
	g := result.Graph
	if g.Nodes["app.A"].Column != 2 || g.Nodes["app.B"].Column != 1 || g.Nodes["app.C"].Column != 0 {
		t.Fatalf("unexpected columns: A=%d B=%d C=%d", g.Nodes["app.A"].Column, g.Nodes["app.B"].Column, g.Nodes["app.C"].Column)
	}
	if g.Nodes["app.A"].Row != 0 || g.Nodes["app.B"].Row != 0 || g.Nodes["app.C"].Row != 0 {
		t.Fatalf("expected all three nodes in row 0, got A=%d B=%d C=%d", g.Nodes["app.A"].Row, g.Nodes["app.B"].Row, g.Nodes["app.C"].Row)
	}
}

// S3: diamond D->B, D->C, B->A, C->A.
func TestScenarioS3Diamond(t *testing.T) {
	a := onePKModel("A", "a")
	b := onePKModel("B", "b")
	b.Relationships = []schema.Relationship{
		{Name: "a", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "A"},
	}
	c := onePKModel("C", "c")
	c.Relationships = []schema.Relationship{
		{Name: "a", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "A"},
	}
	d := onePKModel("D", "d")
	d.Relationships = []schema.Relationship{
		{Name: "b", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "B"},
		{Name: "c", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "C"},
	}

	s := &schema.Schema{Apps: map[string]schema.App{
		"app": {Models: map[string]schema.Model{"A": a, "B": b, "C": c, "D": d}},
	}}

	result := Compute(s)
	g := result.Graph

	if g.Nodes["app.A"].Column != 0 {
		t.Errorf("expected A column 0, got %d", g.Nodes["app.A"].Column)
	}
	if g.Nodes["app.B"].Column != 1 || g.Nodes["app.C"].Column != 1 {
		t.Errorf("expected B,C column 1, got B=%d C=%d", g.Nodes["app.B"].Column, g.Nodes["app.C"].Column)
	}
	if g.Nodes["app.D"].Column != 2 {
		t.Errorf("expected D column 2, got %d", g.Nodes["app.D"].Column)
	}

	if g.Nodes["app.B"].Row == g.Nodes["app.C"].Row {
		t.Errorf("expected B and C in distinct rows, both got %d", g.Nodes["app.B"].Row)
	}
}

func TestDeterminism(t *testing.T) {
	a := onePKModel("A", "a")
	a.Relationships = []schema.Relationship{
		{Name: "b", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "B"},
	}
	b := onePKModel("B", "b")

	s := &schema.Schema{Apps: map[string]schema.App{
		"app": {Models: map[string]schema.Model{"A": a, "B": b}},
	}}

	r1 := Compute(s)
	r2 := Compute(s)

	for k, p1 := range r1.Positions {
		p2, ok := r2.Positions[k]
		if !ok || p1 != p2 {
			t.Fatalf("non-deterministic position for %s: %v vs %v", k, p1, p2)
		}
	}
}

func TestUsedRowsAreDense(t *testing.T) {
	// Fan test setup reused: five sources all pointing at one target forces
	// several rows; after compaction the row set must be {0..R-1}.
	target := onePKModel("T", "t")
	apps := map[string]schema.Model{"T": target}
	for i := 0; i < 5; i++ {
		name := string(rune('A' + i))
		m := onePKModel(name, name)
		m.Relationships = []schema.Relationship{
			{Name: "t", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "T"},
		}
		apps[name] = m
	}

	s := &schema.Schema{Apps: map[string]schema.App{"app": {Models: apps}}}
	result := Compute(s)

	used := map[int]bool{}
	maxRow := -1
	for _, n := range result.Graph.Nodes {
		used[n.Row] = true
		if n.Row > maxRow {
			maxRow = n.Row
		}
	}
	for r := 0; r <= maxRow; r++ {
		if !used[r] {
			t.Fatalf("row set not dense: missing row %d (maxRow=%d)", r, maxRow)
		}
	}
}

func TestDistinctRowsWithinColumn(t *testing.T) {
	target := onePKModel("T", "t")
	apps := map[string]schema.Model{"T": target}
	for i := 0; i < 5; i++ {
		name := string(rune('A' + i))
		m := onePKModel(name, name)
		m.Relationships = []schema.Relationship{
			{Name: "t", Type: schema.ForeignKey, Direction: schema.Forward, TargetApp: "app", TargetModel: "T"},
		}
		apps[name] = m
	}

	s := &schema.Schema{Apps: map[string]schema.App{"app": {Models: apps}}}
	result := Compute(s)

	byColumnRows := map[int]map[int]bool{}
	for _, n := range result.Graph.Nodes {
		if byColumnRows[n.Column] == nil {
			byColumnRows[n.Column] = map[int]bool{}
		}
		if byColumnRows[n.Column][n.Row] {
			t.Fatalf("duplicate row %d within column %d", n.Row, n.Column)
		}
		byColumnRows[n.Column][n.Row] = true
	}
}
