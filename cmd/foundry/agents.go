package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-foundry/pkg/catalog"
)

func newAgentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage the agents of a project",
	}

	var agent catalog.Agent
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent.Name = args[0]
			agent.Project = a.projectName()
			created, err := a.catalog.CreateAgent(cmd.Context(), agent)
			if err != nil {
				return err
			}
			a.printf("Created agent %q in %q\n", created.Name, created.Project)
			return nil
		},
	}
	create.Flags().StringVar(&agent.Model, "model", "", "Model identifier")
	create.Flags().Float64Var(&agent.Temperature, "temperature", 0.7, "Sampling temperature")
	create.Flags().StringVar(&agent.SystemPrompt, "system-prompt", "", "System prompt")

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List agents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			agents, err := a.catalog.Agents(cmd.Context(), a.projectName())
			if err != nil {
				return err
			}
			if len(agents) == 0 {
				a.printf("No agents found.\n")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMODEL\tTEMPERATURE\tUPDATED BY")
			for _, ag := range agents {
				fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\n", ag.Name, ag.Model, ag.Temperature, ag.UpdatedBy)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

func newToolCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool",
		Short: "Manage the tools of a project",
	}

	var (
		tool    catalog.Tool
		payload toolPayload
	)
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a self-managed tool",
		Long: `Creates a tool. Text tools need --knowledge-base, database tools need
--database and multimedia tools need at least one --pdf or --link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool.Name = args[0]
			tool.Project = a.projectName()
			if err := payload.apply(cmd, &tool); err != nil {
				return err
			}
			created, err := a.catalog.CreateTool(cmd.Context(), tool)
			if err != nil {
				return err
			}
			a.printf("Created tool %q (%s) in %q\n", created.Name, created.Type, created.Project)
			return nil
		},
	}
	create.Flags().StringVar(&tool.Type, "type", catalog.DefaultToolType,
		fmt.Sprintf("Tool type: %q, %q or %q", catalog.ToolText, catalog.ToolDatabase, catalog.ToolMultimedia))
	create.Flags().StringVarP(&tool.Description, "description", "d", "", "Tool description")
	payload.register(create)

	var (
		rename  string
		edited  toolPayload
		editDoc string
	)
	edit := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a tool's name, description or knowledge payload",
		Long: `Updates a tool in place. Flags that are not given keep their stored value;
--pdf and --link replace the stored lists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := a.catalog.Tool(ctx, a.projectName(), args[0])
			if err != nil {
				return err
			}
			changes := current
			if cmd.Flags().Changed("name") {
				changes.Name = rename
			}
			if cmd.Flags().Changed("description") {
				changes.Description = editDoc
			}
			if err := edited.apply(cmd, &changes); err != nil {
				return err
			}
			updated, err := a.catalog.UpdateTool(ctx, a.projectName(), args[0], changes)
			if err != nil {
				return err
			}
			a.printf("Updated tool %q\n", updated.Name)
			return nil
		},
	}
	edit.Flags().StringVar(&rename, "name", "", "New tool name")
	edit.Flags().StringVarP(&editDoc, "description", "d", "", "Tool description")
	edited.register(edit)

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tools",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tools, err := a.catalog.Tools(cmd.Context(), a.projectName())
			if err != nil {
				return err
			}
			if len(tools) == 0 {
				a.printf("No tools found.\n")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tCATEGORY\tSOURCE\tUPDATED BY")
			for _, t := range tools {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Name, t.Type, t.Category, toolSource(t), t.UpdatedBy)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(create, edit, list)
	return cmd
}

// toolPayload holds the type-specific flags shared by tool create and edit.
type toolPayload struct {
	knowledgeBase string
	database      string
	query         string
	pdfs          []string
	links         []string
}

func (p *toolPayload) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.knowledgeBase, "knowledge-base", "", "Knowledge base text (text tools)")
	cmd.Flags().StringVar(&p.database, "database", "", "Database name (database tools)")
	cmd.Flags().StringVar(&p.query, "query", "", "SQL query (database tools)")
	cmd.Flags().StringArrayVar(&p.pdfs, "pdf", nil, "PDF file to attach (multimedia tools, repeatable)")
	cmd.Flags().StringArrayVar(&p.links, "link", nil, "Link to attach (multimedia tools, repeatable)")
}

// apply copies the flags that were set onto tool.
func (p *toolPayload) apply(cmd *cobra.Command, tool *catalog.Tool) error {
	flags := cmd.Flags()
	if flags.Changed("knowledge-base") {
		tool.KnowledgeBase = p.knowledgeBase
	}
	if flags.Changed("database") {
		tool.DatabaseName = p.database
	}
	if flags.Changed("query") {
		tool.Query = p.query
	}
	if flags.Changed("pdf") {
		tool.PDFs = nil
		for _, path := range p.pdfs {
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
			tool.PDFs = append(tool.PDFs, catalog.Document{Name: filepath.Base(path), Size: formatFileSize(info.Size())})
		}
	}
	if flags.Changed("link") {
		tool.Links = append([]string(nil), p.links...)
	}
	return nil
}

func toolSource(t catalog.Tool) string {
	switch t.Type {
	case catalog.ToolDatabase:
		return t.DatabaseName
	case catalog.ToolMultimedia:
		return fmt.Sprintf("%d pdf(s), %d link(s)", len(t.PDFs), len(t.Links))
	default:
		return fmt.Sprintf("%d word(s)", len(strings.Fields(t.KnowledgeBase)))
	}
}

// formatFileSize renders size in Bytes, KB or MB with up to two decimals.
func formatFileSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB"}
	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64) + " " + units[i]
}
