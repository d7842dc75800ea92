package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-foundry/pkg/model"
)

// Interfaces lists the interfaces of project, or every interface when project
// is empty.
func (c *Catalog) Interfaces(ctx context.Context, project string) ([]Interface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	interfaces, err := load[Interface](ctx, c.store, KeyInterfaces)
	if err != nil {
		return nil, err
	}
	if project == "" {
		return interfaces, nil
	}
	return filter(interfaces, func(i Interface) bool { return i.Project == project }), nil
}

// Interface returns the interface called name in project.
func (c *Catalog) Interface(ctx context.Context, project, name string) (Interface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	interfaces, err := load[Interface](ctx, c.store, KeyInterfaces)
	if err != nil {
		return Interface{}, err
	}
	if idx := findInterface(interfaces, project, name); idx >= 0 {
		return interfaces[idx], nil
	}
	return Interface{}, fmt.Errorf("interface %q in project %q: %w", name, project, ErrNotFound)
}

// SaveInterface upserts iface. previousName identifies the record being
// edited; a name already used by a different interface in the same project is
// rejected. Renaming moves the interface's field document.
func (c *Catalog) SaveInterface(ctx context.Context, iface Interface, previousName string) (Interface, error) {
	iface.Name = strings.TrimSpace(iface.Name)
	iface.Project = strings.TrimSpace(iface.Project)
	previousName = strings.TrimSpace(previousName)
	if err := required("interface name", iface.Name); err != nil {
		return Interface{}, err
	}
	if err := required("project", iface.Project); err != nil {
		return Interface{}, err
	}
	if iface.Type == "" {
		iface.Type = model.InterfaceForm
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	interfaces, err := load[Interface](ctx, c.store, KeyInterfaces)
	if err != nil {
		return Interface{}, err
	}

	existing := findInterface(interfaces, iface.Project, iface.Name)
	if existing >= 0 && iface.Name != previousName {
		return Interface{}, fmt.Errorf("%w: an interface named %q already exists in this project", model.ErrValidationFailed, iface.Name)
	}
	target := existing
	if previousName != "" && previousName != iface.Name {
		target = findInterface(interfaces, iface.Project, previousName)
		if target >= 0 {
			if err := c.docs.Move(ctx, iface.Project, previousName, iface.Project, iface.Name); err != nil {
				return Interface{}, err
			}
		}
	}

	iface.UpdatedBy = c.user
	iface.UpdatedOn = c.now()
	if target >= 0 {
		interfaces[target] = iface
	} else {
		interfaces = append(interfaces, iface)
	}
	if err := save(ctx, c.store, KeyInterfaces, interfaces); err != nil {
		return Interface{}, err
	}
	c.logger.Info("interface saved", "project", iface.Project, "interface", iface.Name, "type", string(iface.Type))
	return iface, nil
}

// DeleteInterface removes the interface and its field document.
func (c *Catalog) DeleteInterface(ctx context.Context, project, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	interfaces, err := load[Interface](ctx, c.store, KeyInterfaces)
	if err != nil {
		return err
	}
	idx := findInterface(interfaces, project, name)
	if idx < 0 {
		return fmt.Errorf("interface %q in project %q: %w", name, project, ErrNotFound)
	}
	interfaces = append(interfaces[:idx], interfaces[idx+1:]...)
	if err := save(ctx, c.store, KeyInterfaces, interfaces); err != nil {
		return err
	}
	if err := c.docs.Delete(ctx, project, name); err != nil {
		return err
	}
	c.logger.Info("interface deleted", "project", project, "interface", name)
	return nil
}

func findInterface(interfaces []Interface, project, name string) int {
	for i, iface := range interfaces {
		if iface.Project == project && iface.Name == name {
			return i
		}
	}
	return -1
}
