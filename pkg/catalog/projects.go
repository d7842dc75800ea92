package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Projects returns every project with agent and tool counts joined by name.
func (c *Catalog) Projects(ctx context.Context) ([]Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projects(ctx)
}

func (c *Catalog) projects(ctx context.Context) ([]Project, error) {
	projects, err := load[Project](ctx, c.store, KeyProjects)
	if err != nil {
		return nil, err
	}
	agents, err := load[Agent](ctx, c.store, KeyAgents)
	if err != nil {
		return nil, err
	}
	tools, err := load[Tool](ctx, c.store, KeyTools)
	if err != nil {
		return nil, err
	}

	agentCounts := make(map[string]int)
	for _, agent := range agents {
		agentCounts[agent.Project]++
	}
	toolCounts := make(map[string]int)
	for _, tool := range tools {
		toolCounts[tool.Project]++
	}
	for i := range projects {
		projects[i].Agents = agentCounts[projects[i].Name]
		projects[i].Tools = toolCounts[projects[i].Name]
	}
	return projects, nil
}

// Project returns the project called name.
func (c *Catalog) Project(ctx context.Context, name string) (Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	projects, err := c.projects(ctx)
	if err != nil {
		return Project{}, err
	}
	for _, p := range projects {
		if p.Name == strings.TrimSpace(name) {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("project %q: %w", name, ErrNotFound)
}

// CreateProject adds a project. The name is required and unique.
func (c *Catalog) CreateProject(ctx context.Context, name, description string) (Project, error) {
	name = strings.TrimSpace(name)
	if err := required("project name", name); err != nil {
		return Project{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	projects, err := load[Project](ctx, c.store, KeyProjects)
	if err != nil {
		return Project{}, err
	}
	for _, p := range projects {
		if p.Name == name {
			return Project{}, duplicate("project", name)
		}
	}

	now := c.now()
	project := Project{
		ID:          c.newID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedOn:   now,
		UpdatedBy:   c.user,
		UpdatedOn:   now,
	}
	projects = append(projects, project)
	if err := save(ctx, c.store, KeyProjects, projects); err != nil {
		return Project{}, err
	}
	c.logger.Info("project created", "project", name, "id", project.ID)
	return project, nil
}

// UpdateProject renames or re-describes the project with id. A rename is
// carried to the project's agents, tools, interfaces and field documents.
func (c *Catalog) UpdateProject(ctx context.Context, id, name, description string) (Project, error) {
	name = strings.TrimSpace(name)
	if err := required("project name", name); err != nil {
		return Project{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	projects, err := load[Project](ctx, c.store, KeyProjects)
	if err != nil {
		return Project{}, err
	}
	idx := -1
	for i, p := range projects {
		if p.ID == id {
			idx = i
			continue
		}
		if p.Name == name {
			return Project{}, duplicate("project", name)
		}
	}
	if idx < 0 {
		return Project{}, fmt.Errorf("project id %q: %w", id, ErrNotFound)
	}

	previous := projects[idx].Name
	projects[idx].Name = name
	projects[idx].Description = strings.TrimSpace(description)
	projects[idx].UpdatedBy = c.user
	projects[idx].UpdatedOn = c.now()
	if err := save(ctx, c.store, KeyProjects, projects); err != nil {
		return Project{}, err
	}
	if previous != name {
		if err := c.renameProject(ctx, previous, name); err != nil {
			return Project{}, err
		}
	}
	return projects[idx], nil
}

func (c *Catalog) renameProject(ctx context.Context, from, to string) error {
	agents, err := load[Agent](ctx, c.store, KeyAgents)
	if err != nil {
		return err
	}
	for i := range agents {
		if agents[i].Project == from {
			agents[i].Project = to
		}
	}
	if err := save(ctx, c.store, KeyAgents, agents); err != nil {
		return err
	}

	tools, err := load[Tool](ctx, c.store, KeyTools)
	if err != nil {
		return err
	}
	for i := range tools {
		if tools[i].Project == from {
			tools[i].Project = to
		}
	}
	if err := save(ctx, c.store, KeyTools, tools); err != nil {
		return err
	}

	interfaces, err := load[Interface](ctx, c.store, KeyInterfaces)
	if err != nil {
		return err
	}
	for i := range interfaces {
		if interfaces[i].Project != from {
			continue
		}
		if err := c.docs.Move(ctx, from, interfaces[i].Name, to, interfaces[i].Name); err != nil {
			return err
		}
		interfaces[i].Project = to
	}
	if err := save(ctx, c.store, KeyInterfaces, interfaces); err != nil {
		return err
	}
	c.logger.Info("project renamed", "from", from, "to", to)
	return nil
}

// DeleteProject removes the project called name together with its agents,
// tools, interfaces and their field documents.
func (c *Catalog) DeleteProject(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	projects, err := load[Project](ctx, c.store, KeyProjects)
	if err != nil {
		return err
	}
	before := len(projects)
	projects = filter(projects, func(p Project) bool { return p.Name != name })
	if len(projects) == before {
		return fmt.Errorf("project %q: %w", name, ErrNotFound)
	}
	if err := save(ctx, c.store, KeyProjects, projects); err != nil {
		return err
	}

	agents, err := load[Agent](ctx, c.store, KeyAgents)
	if err != nil {
		return err
	}
	if err := save(ctx, c.store, KeyAgents, filter(agents, func(a Agent) bool { return a.Project != name })); err != nil {
		return err
	}

	tools, err := load[Tool](ctx, c.store, KeyTools)
	if err != nil {
		return err
	}
	if err := save(ctx, c.store, KeyTools, filter(tools, func(t Tool) bool { return t.Project != name })); err != nil {
		return err
	}

	interfaces, err := load[Interface](ctx, c.store, KeyInterfaces)
	if err != nil {
		return err
	}
	var kept []Interface
	for _, iface := range interfaces {
		if iface.Project != name {
			kept = append(kept, iface)
			continue
		}
		if err := c.docs.Delete(ctx, name, iface.Name); err != nil {
			return err
		}
	}
	if err := save(ctx, c.store, KeyInterfaces, kept); err != nil {
		return err
	}

	c.logger.Info("project deleted", "project", name)
	return nil
}

// CopySuffix is appended to a project name when a duplicate is not given one.
const CopySuffix = " (Copy)"

// DuplicateProject creates newName as a copy of the project called name,
// carrying over its agents and tools. Interfaces are not copied. An empty
// newName defaults to the source name with CopySuffix. Names are compared
// case-insensitively.
func (c *Catalog) DuplicateProject(ctx context.Context, name, newName, description string) (Project, error) {
	name = strings.TrimSpace(name)
	newName = strings.TrimSpace(newName)
	if newName == "" {
		newName = name + CopySuffix
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	projects, err := load[Project](ctx, c.store, KeyProjects)
	if err != nil {
		return Project{}, err
	}
	found := false
	for _, p := range projects {
		if p.Name == name {
			found = true
		}
		if strings.EqualFold(p.Name, newName) {
			return Project{}, duplicate("project", newName)
		}
	}
	if !found {
		return Project{}, fmt.Errorf("project %q: %w", name, ErrNotFound)
	}

	now := c.now()
	agents, err := load[Agent](ctx, c.store, KeyAgents)
	if err != nil {
		return Project{}, err
	}
	copiedAgents := 0
	for _, agent := range agents {
		if agent.Project != name {
			continue
		}
		agent.Project = newName
		agent.UpdatedBy = c.user
		agent.UpdatedOn = now
		agents = append(agents, agent)
		copiedAgents++
	}
	if err := save(ctx, c.store, KeyAgents, agents); err != nil {
		return Project{}, err
	}

	tools, err := load[Tool](ctx, c.store, KeyTools)
	if err != nil {
		return Project{}, err
	}
	copiedTools := 0
	for _, tool := range tools {
		if tool.Project != name {
			continue
		}
		tool.Project = newName
		tool.UpdatedBy = c.user
		tool.UpdatedOn = now
		tools = append(tools, tool)
		copiedTools++
	}
	if err := save(ctx, c.store, KeyTools, tools); err != nil {
		return Project{}, err
	}

	project := Project{
		ID:          c.newID(),
		Name:        newName,
		Description: strings.TrimSpace(description),
		CreatedOn:   now,
		UpdatedBy:   c.user,
		UpdatedOn:   now,
	}
	projects = append(projects, project)
	if err := save(ctx, c.store, KeyProjects, projects); err != nil {
		return Project{}, err
	}
	project.Agents = copiedAgents
	project.Tools = copiedTools
	c.logger.Info("project duplicated", "from", name, "to", newName, "agents", copiedAgents, "tools", copiedTools)
	return project, nil
}

// ToggleBookmark flips the bookmark flag of the project called name and
// returns the updated project.
func (c *Catalog) ToggleBookmark(ctx context.Context, name string) (Project, error) {
	name = strings.TrimSpace(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	projects, err := load[Project](ctx, c.store, KeyProjects)
	if err != nil {
		return Project{}, err
	}
	for i := range projects {
		if projects[i].Name != name {
			continue
		}
		projects[i].Bookmarked = !projects[i].Bookmarked
		if err := save(ctx, c.store, KeyProjects, projects); err != nil {
			return Project{}, err
		}
		c.logger.Debug("project bookmark toggled", "project", name, "bookmarked", projects[i].Bookmarked)
		return projects[i], nil
	}
	return Project{}, fmt.Errorf("project %q: %w", name, ErrNotFound)
}

// BookmarkedProjects returns the bookmarked projects with their counts.
func (c *Catalog) BookmarkedProjects(ctx context.Context) ([]Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	projects, err := c.projects(ctx)
	if err != nil {
		return nil, err
	}
	return filter(projects, func(p Project) bool { return p.Bookmarked }), nil
}
