package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Agents lists the agents of project, or every agent when project is empty.
func (c *Catalog) Agents(ctx context.Context, project string) ([]Agent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	agents, err := load[Agent](ctx, c.store, KeyAgents)
	if err != nil {
		return nil, err
	}
	if project == "" {
		return agents, nil
	}
	return filter(agents, func(a Agent) bool { return a.Project == project }), nil
}

// CreateAgent adds agent to its project. Names are unique per project.
func (c *Catalog) CreateAgent(ctx context.Context, agent Agent) (Agent, error) {
	agent.Name = strings.TrimSpace(agent.Name)
	agent.Project = strings.TrimSpace(agent.Project)
	if err := required("agent name", agent.Name); err != nil {
		return Agent{}, err
	}
	if err := required("project", agent.Project); err != nil {
		return Agent{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireProject(ctx, agent.Project); err != nil {
		return Agent{}, err
	}
	agents, err := load[Agent](ctx, c.store, KeyAgents)
	if err != nil {
		return Agent{}, err
	}
	for _, existing := range agents {
		if existing.Project == agent.Project && existing.Name == agent.Name {
			return Agent{}, duplicate("agent", agent.Name)
		}
	}

	agent.UpdatedBy = c.user
	agent.UpdatedOn = c.now()
	agents = append(agents, agent)
	if err := save(ctx, c.store, KeyAgents, agents); err != nil {
		return Agent{}, err
	}
	c.logger.Info("agent created", "project", agent.Project, "agent", agent.Name)
	return agent, nil
}

func (c *Catalog) requireProject(ctx context.Context, name string) error {
	projects, err := load[Project](ctx, c.store, KeyProjects)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if p.Name == name {
			return nil
		}
	}
	return fmt.Errorf("project %q: %w", name, ErrNotFound)
}
