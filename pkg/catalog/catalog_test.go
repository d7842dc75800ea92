package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-foundry/pkg/catalog"
	"github.com/goliatone/go-foundry/pkg/documents"
	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/store"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newCatalog(t *testing.T) (*catalog.Catalog, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	seq := 0
	c := catalog.New(mem,
		catalog.WithClock(func() time.Time { return fixedNow }),
		catalog.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("project-%d", seq)
		}),
	)
	return c, mem
}

func mustProject(t *testing.T, c *catalog.Catalog, name string) catalog.Project {
	t.Helper()
	p, err := c.CreateProject(context.Background(), name, "")
	if err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return p
}

func TestCreateProject(t *testing.T) {
	c, _ := newCatalog(t)
	got := mustProject(t, c, "  Support  ")
	want := catalog.Project{
		ID:        "project-1",
		Name:      "Support",
		CreatedOn: fixedNow,
		UpdatedBy: catalog.DefaultUser,
		UpdatedOn: fixedNow,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("project mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateProject_Validation(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	if _, err := c.CreateProject(ctx, "   ", ""); !errors.Is(err, model.ErrValidationFailed) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	mustProject(t, c, "Support")
	if _, err := c.CreateProject(ctx, "Support", "again"); !errors.Is(err, model.ErrValidationFailed) {
		t.Fatalf("expected validation error for duplicate name, got %v", err)
	}
	projects, _ := c.Projects(ctx)
	if len(projects) != 1 {
		t.Fatalf("expected a single project, got %d", len(projects))
	}
}

func TestProjectCountsJoinByName(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	mustProject(t, c, "Support")
	mustProject(t, c, "Sales")

	for _, name := range []string{"Triage", "Escalation"} {
		if _, err := c.CreateAgent(ctx, catalog.Agent{Name: name, Project: "Support", Model: "gpt-4o"}); err != nil {
			t.Fatalf("agent: %v", err)
		}
	}
	if _, err := c.CreateTool(ctx, catalog.Tool{Name: "FAQ", Project: "Sales", KnowledgeBase: "Pricing"}); err != nil {
		t.Fatalf("tool: %v", err)
	}

	projects, err := c.Projects(ctx)
	if err != nil {
		t.Fatalf("projects: %v", err)
	}
	counts := map[string][2]int{}
	for _, p := range projects {
		counts[p.Name] = [2]int{p.Agents, p.Tools}
	}
	want := map[string][2]int{"Support": {2, 0}, "Sales": {0, 1}}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateAgentAndTool_Validation(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()

	if _, err := c.CreateAgent(ctx, catalog.Agent{Name: "Triage", Project: "Ghost"}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown project, got %v", err)
	}
	mustProject(t, c, "Support")
	if _, err := c.CreateAgent(ctx, catalog.Agent{Project: "Support"}); !errors.Is(err, model.ErrValidationFailed) {
		t.Fatalf("expected validation error for blank agent name, got %v", err)
	}
	if _, err := c.CreateAgent(ctx, catalog.Agent{Name: "Triage", Project: "Support"}); err != nil {
		t.Fatalf("agent: %v", err)
	}
	if _, err := c.CreateAgent(ctx, catalog.Agent{Name: "Triage", Project: "Support"}); !errors.Is(err, model.ErrValidationFailed) {
		t.Fatalf("expected duplicate agent rejection, got %v", err)
	}

	tool, err := c.CreateTool(ctx, catalog.Tool{Name: "FAQ", Project: "Support", Category: "ignored", KnowledgeBase: "Pricing"})
	if err != nil {
		t.Fatalf("tool: %v", err)
	}
	if tool.Category != catalog.CategorySelfManaged || tool.Type != catalog.DefaultToolType {
		t.Fatalf("unexpected tool defaults %+v", tool)
	}
}

func TestSaveInterface_UpsertAndDuplicates(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	mustProject(t, c, "Support")

	first := catalog.Interface{Name: "Intake", Project: "Support", Agent: "Triage", PromptTemplate: "Hi {{name}}"}
	saved, err := c.SaveInterface(ctx, first, "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Type != model.InterfaceForm || saved.UpdatedBy != catalog.DefaultUser {
		t.Fatalf("unexpected defaults %+v", saved)
	}

	if _, err := c.SaveInterface(ctx, first, ""); !errors.Is(err, model.ErrValidationFailed) {
		t.Fatalf("expected duplicate rejection for a new interface, got %v", err)
	}

	first.PromptTemplate = "Hello {{name}}"
	if _, err := c.SaveInterface(ctx, first, "Intake"); err != nil {
		t.Fatalf("update in place: %v", err)
	}
	list, _ := c.Interfaces(ctx, "Support")
	if len(list) != 1 || list[0].PromptTemplate != "Hello {{name}}" {
		t.Fatalf("expected in-place update, got %+v", list)
	}

	if _, err := c.SaveInterface(ctx, catalog.Interface{Name: "Intake", Project: "Other"}, ""); err != nil {
		t.Fatalf("same name in another project should be allowed: %v", err)
	}
}

func TestSaveInterface_RenameMovesDocument(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	mustProject(t, c, "Support")

	fields := []model.Field{{ID: "field-1", Kind: model.KindText}}
	if err := c.Documents().Save(ctx, "Support", "Intake", fields); err != nil {
		t.Fatalf("save doc: %v", err)
	}
	if _, err := c.SaveInterface(ctx, catalog.Interface{Name: "Intake", Project: "Support"}, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := c.SaveInterface(ctx, catalog.Interface{Name: "Onboarding", Project: "Support"}, "Intake"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if _, err := c.Interface(ctx, "Support", "Intake"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected old name gone, got %v", err)
	}
	got, _ := c.Documents().Load(ctx, "Support", "Onboarding")
	if diff := cmp.Diff(fields, got); diff != "" {
		t.Fatalf("document not moved (-want +got):\n%s", diff)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	c, mem := newCatalog(t)
	ctx := context.Background()
	mustProject(t, c, "Support")
	mustProject(t, c, "Sales")

	if _, err := c.CreateAgent(ctx, catalog.Agent{Name: "Triage", Project: "Support"}); err != nil {
		t.Fatalf("agent: %v", err)
	}
	if _, err := c.CreateAgent(ctx, catalog.Agent{Name: "Closer", Project: "Sales"}); err != nil {
		t.Fatalf("agent: %v", err)
	}
	if _, err := c.CreateTool(ctx, catalog.Tool{Name: "FAQ", Project: "Support", KnowledgeBase: "Pricing"}); err != nil {
		t.Fatalf("tool: %v", err)
	}
	if _, err := c.SaveInterface(ctx, catalog.Interface{Name: "Intake", Project: "Support"}, ""); err != nil {
		t.Fatalf("interface: %v", err)
	}
	if err := c.Documents().Save(ctx, "Support", "Intake", []model.Field{{ID: "field-1", Kind: model.KindDate}}); err != nil {
		t.Fatalf("doc: %v", err)
	}

	if err := c.DeleteProject(ctx, "Support"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	agents, _ := c.Agents(ctx, "")
	if len(agents) != 1 || agents[0].Project != "Sales" {
		t.Fatalf("expected only Sales agents to remain, got %+v", agents)
	}
	tools, _ := c.Tools(ctx, "")
	if len(tools) != 0 {
		t.Fatalf("expected tools removed, got %+v", tools)
	}
	interfaces, _ := c.Interfaces(ctx, "")
	if len(interfaces) != 0 {
		t.Fatalf("expected interfaces removed, got %+v", interfaces)
	}
	if _, err := mem.Get(ctx, documents.Key("Support", "Intake")); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected field document removed, got %v", err)
	}
	if err := c.DeleteProject(ctx, "Support"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUpdateProjectRenamePropagates(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	p := mustProject(t, c, "Support")
	mustProject(t, c, "Sales")

	if _, err := c.CreateAgent(ctx, catalog.Agent{Name: "Triage", Project: "Support"}); err != nil {
		t.Fatalf("agent: %v", err)
	}
	if _, err := c.SaveInterface(ctx, catalog.Interface{Name: "Intake", Project: "Support"}, ""); err != nil {
		t.Fatalf("interface: %v", err)
	}
	if err := c.Documents().Save(ctx, "Support", "Intake", []model.Field{{ID: "field-1", Kind: model.KindText}}); err != nil {
		t.Fatalf("doc: %v", err)
	}

	if _, err := c.UpdateProject(ctx, p.ID, "Sales", ""); !errors.Is(err, model.ErrValidationFailed) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
	updated, err := c.UpdateProject(ctx, p.ID, "Customer Care", "Inbound")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Customer Care" || updated.Description != "Inbound" {
		t.Fatalf("unexpected project %+v", updated)
	}

	agents, _ := c.Agents(ctx, "Customer Care")
	if len(agents) != 1 {
		t.Fatalf("expected agent to follow rename, got %+v", agents)
	}
	fields, _ := c.Documents().Load(ctx, "Customer Care", "Intake")
	if len(fields) != 1 {
		t.Fatalf("expected document to follow rename, got %+v", fields)
	}
	if _, err := c.UpdateProject(ctx, "missing", "X", ""); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCorruptCollectionIsAnError(t *testing.T) {
	c, mem := newCatalog(t)
	ctx := context.Background()
	if err := mem.Set(ctx, catalog.KeyProjects, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := c.Projects(ctx); err == nil {
		t.Fatalf("expected decode error")
	}
}
