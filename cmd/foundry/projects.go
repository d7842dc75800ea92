package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-foundry/pkg/catalog"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.catalog.CreateProject(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			a.printf("Created project %q (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "Project description")

	var bookmarkedOnly bool
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects with agent and tool counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				projects []catalog.Project
				err      error
			)
			if bookmarkedOnly {
				projects, err = a.catalog.BookmarkedProjects(cmd.Context())
			} else {
				projects, err = a.catalog.Projects(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				a.printf("No projects found.\n")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tAGENTS\tTOOLS\tUPDATED BY\tUPDATED ON")
			for _, p := range projects {
				name := p.Name
				if p.Bookmarked {
					name += " *"
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", name, p.Agents, p.Tools, p.UpdatedBy, p.UpdatedOn.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
	list.Flags().BoolVar(&bookmarkedOnly, "bookmarked", false, "Only list bookmarked projects")

	var copyDescription string
	duplicate := &cobra.Command{
		Use:   "duplicate <name> [new-name]",
		Short: "Copy a project with its agents and tools",
		Long: `Creates a new project holding copies of the agents and tools of <name>.
The new name defaults to "<name> (Copy)" and the description to the source's.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := a.catalog.Project(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("description") {
				copyDescription = source.Description
			}
			var newName string
			if len(args) > 1 {
				newName = args[1]
			}
			copied, err := a.catalog.DuplicateProject(cmd.Context(), source.Name, newName, copyDescription)
			if err != nil {
				return err
			}
			a.printf("Duplicated %q as %q (%d agents, %d tools)\n", source.Name, copied.Name, copied.Agents, copied.Tools)
			return nil
		},
	}
	duplicate.Flags().StringVarP(&copyDescription, "description", "d", "", "Description of the copy")

	bookmark := &cobra.Command{
		Use:   "bookmark <name>",
		Short: "Toggle the bookmark on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.catalog.ToggleBookmark(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if p.Bookmarked {
				a.printf("Bookmarked %q\n", p.Name)
			} else {
				a.printf("Removed bookmark from %q\n", p.Name)
			}
			return nil
		},
	}

	var newDescription string
	rename := &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a project, carrying its records along",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.catalog.Project(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("description") {
				newDescription = p.Description
			}
			updated, err := a.catalog.UpdateProject(cmd.Context(), p.ID, args[1], newDescription)
			if err != nil {
				return err
			}
			a.printf("Renamed project %q to %q\n", args[0], updated.Name)
			return nil
		},
	}
	rename.Flags().StringVarP(&newDescription, "description", "d", "", "Replace the project description")

	remove := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a project and everything it owns",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.confirm(cmd.Context(), fmt.Sprintf("Delete project %q with its agents, tools and interfaces?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := a.catalog.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printf("Deleted project %q\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, list, rename, duplicate, bookmark, remove)
	return cmd
}
