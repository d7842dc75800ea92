package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-foundry/pkg/model"
)

// Tools lists the tools of project, or every tool when project is empty.
func (c *Catalog) Tools(ctx context.Context, project string) ([]Tool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tools, err := load[Tool](ctx, c.store, KeyTools)
	if err != nil {
		return nil, err
	}
	if project == "" {
		return tools, nil
	}
	return filter(tools, func(t Tool) bool { return t.Project == project }), nil
}

// Tool returns the tool called name in project.
func (c *Catalog) Tool(ctx context.Context, project, name string) (Tool, error) {
	tools, err := c.Tools(ctx, project)
	if err != nil {
		return Tool{}, err
	}
	for _, t := range tools {
		if t.Name == strings.TrimSpace(name) {
			return t, nil
		}
	}
	return Tool{}, fmt.Errorf("tool %q: %w", name, ErrNotFound)
}

// CreateTool adds tool to its project as a self-managed tool. The payload of
// the tool's type is validated; payload fields of other types are dropped.
func (c *Catalog) CreateTool(ctx context.Context, tool Tool) (Tool, error) {
	tool.Name = strings.TrimSpace(tool.Name)
	tool.Project = strings.TrimSpace(tool.Project)
	if strings.TrimSpace(tool.Type) == "" {
		tool.Type = DefaultToolType
	}
	if err := required("project", tool.Project); err != nil {
		return Tool{}, err
	}
	normalized, err := normalizeTool(tool)
	if err != nil {
		return Tool{}, err
	}
	tool = normalized
	tool.Category = CategorySelfManaged

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireProject(ctx, tool.Project); err != nil {
		return Tool{}, err
	}
	tools, err := load[Tool](ctx, c.store, KeyTools)
	if err != nil {
		return Tool{}, err
	}
	for _, existing := range tools {
		if existing.Project == tool.Project && existing.Name == tool.Name {
			return Tool{}, duplicate("tool", tool.Name)
		}
	}

	tool.UpdatedBy = c.user
	tool.UpdatedOn = c.now()
	tools = append(tools, tool)
	if err := save(ctx, c.store, KeyTools, tools); err != nil {
		return Tool{}, err
	}
	c.logger.Info("tool created", "project", tool.Project, "tool", tool.Name, "type", tool.Type)
	return tool, nil
}

// UpdateTool replaces the name, description and payload of the tool called
// name in project. Type, category and project are kept from the stored record.
func (c *Catalog) UpdateTool(ctx context.Context, project, name string, changes Tool) (Tool, error) {
	project = strings.TrimSpace(project)
	name = strings.TrimSpace(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	tools, err := load[Tool](ctx, c.store, KeyTools)
	if err != nil {
		return Tool{}, err
	}
	idx := -1
	for i, t := range tools {
		if t.Project == project && t.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Tool{}, fmt.Errorf("tool %q: %w", name, ErrNotFound)
	}

	current := tools[idx]
	changes.Name = strings.TrimSpace(changes.Name)
	changes.Type = current.Type
	changes.Category = current.Category
	changes.Project = current.Project
	updated, err := normalizeTool(changes)
	if err != nil {
		return Tool{}, err
	}
	for i, t := range tools {
		if i != idx && t.Project == project && t.Name == updated.Name {
			return Tool{}, duplicate("tool", updated.Name)
		}
	}

	updated.UpdatedBy = c.user
	updated.UpdatedOn = c.now()
	tools[idx] = updated
	if err := save(ctx, c.store, KeyTools, tools); err != nil {
		return Tool{}, err
	}
	c.logger.Info("tool updated", "project", project, "tool", name, "name", updated.Name)
	return updated, nil
}

// normalizeTool checks the name and the payload required by the tool type and
// clears the payload fields that belong to other types.
func normalizeTool(tool Tool) (Tool, error) {
	if err := required("tool name", tool.Name); err != nil {
		return Tool{}, err
	}
	out := Tool{
		Name:        tool.Name,
		Type:        tool.Type,
		Description: tool.Description,
		Category:    tool.Category,
		Project:     tool.Project,
	}
	switch tool.Type {
	case ToolText:
		out.KnowledgeBase = strings.TrimSpace(tool.KnowledgeBase)
		if err := required("knowledge base content", out.KnowledgeBase); err != nil {
			return Tool{}, err
		}
	case ToolDatabase:
		out.DatabaseName = strings.TrimSpace(tool.DatabaseName)
		out.Query = strings.TrimSpace(tool.Query)
		if err := required("database name", out.DatabaseName); err != nil {
			return Tool{}, err
		}
	case ToolMultimedia:
		for _, doc := range tool.PDFs {
			if strings.TrimSpace(doc.Name) == "" {
				return Tool{}, fmt.Errorf("%w: pdf name is required", model.ErrValidationFailed)
			}
			out.PDFs = append(out.PDFs, doc)
		}
		for _, link := range tool.Links {
			link = strings.TrimSpace(link)
			if !validLink(link) {
				return Tool{}, fmt.Errorf("%w: invalid link %q", model.ErrValidationFailed, link)
			}
			out.Links = append(out.Links, link)
		}
		if len(out.PDFs) == 0 && len(out.Links) == 0 {
			return Tool{}, fmt.Errorf("%w: at least one PDF or link is required", model.ErrValidationFailed)
		}
	default:
		return Tool{}, fmt.Errorf("%w: unknown tool type %q", model.ErrValidationFailed, tool.Type)
	}
	return out, nil
}

func validLink(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}
