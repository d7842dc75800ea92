package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	foundry "github.com/goliatone/go-foundry"
	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/prompt"
)

func newInterfaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interface",
		Aliases: []string{"iface"},
		Short:   "Manage form and chat interfaces",
	}
	cmd.AddCommand(
		newCreateFormCmd(a),
		newCreateChatCmd(a),
		newInterfaceListCmd(a),
		newInterfaceShowCmd(a),
		newInterfaceRenameCmd(a),
		newInterfaceDeleteCmd(a),
		newInterfaceTestCmd(a),
	)
	return cmd
}

func newCreateFormCmd(a *app) *cobra.Command {
	var agent, template string
	cmd := &cobra.Command{
		Use:   "create-form [name]",
		Short: "Create a form interface",
		Long:  `Creates a form interface. Missing details are asked for interactively.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := foundry.OpenFormSession(ctx, a.catalog, a.projectName(), "", a.sessionOptions(ctx)...)
			if err != nil {
				return err
			}
			details := s.Details()
			if len(args) > 0 {
				details.InterfaceName = args[0]
			}
			details.Agent = agent
			details.PromptTemplate = template

			if details.InterfaceName == "" || details.Agent == "" || details.PromptTemplate == "" {
				agents, err := a.agentNames(ctx)
				if err != nil {
					return err
				}
				if err := prompt.FormDetails(ctx, a.driver, s.Wizard(), agents); err != nil {
					return err
				}
			}
			saved, err := s.Save(ctx)
			if err != nil {
				return err
			}
			a.printf("Created form interface %q\n", saved.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&agent, "agent", "", "Agent answering the form")
	cmd.Flags().StringVar(&template, "prompt", "", "Prompt template")
	return cmd
}

func newCreateChatCmd(a *app) *cobra.Command {
	var (
		agent       string
		starter     string
		noTextInput bool
		actions     []string
	)
	cmd := &cobra.Command{
		Use:   "create-chat [name]",
		Short: "Create a chat interface",
		Long: `Creates a chat interface. Quick actions are given as "label|agent|prompt".
Missing details are asked for interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := foundry.OpenChatSession(ctx, a.catalog, a.projectName(), "", a.sessionOptions(ctx)...)
			if err != nil {
				return err
			}
			details := s.Details()
			if len(args) > 0 {
				details.InterfaceName = args[0]
			}
			details.Agent = agent
			details.StarterMessage = starter
			details.TextInputEnabled = !noTextInput
			for _, raw := range actions {
				action, err := parseQuickAction(raw)
				if err != nil {
					return err
				}
				details.QuickActions = append(details.QuickActions, action)
			}

			if details.InterfaceName == "" || details.Agent == "" {
				agents, err := a.agentNames(ctx)
				if err != nil {
					return err
				}
				if err := prompt.ChatDetails(ctx, a.driver, s.Wizard(), agents); err != nil {
					return err
				}
			}
			saved, err := s.Save(ctx)
			if err != nil {
				return err
			}
			a.printf("Created chat interface %q\n", saved.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&agent, "agent", "", "Agent answering the chat")
	cmd.Flags().StringVar(&starter, "starter", "", "Starter message")
	cmd.Flags().BoolVar(&noTextInput, "no-text-input", false, "Disable free text input")
	cmd.Flags().StringArrayVar(&actions, "action", nil, `Quick action button as "label|agent|prompt" (repeatable)`)
	return cmd
}

func parseQuickAction(raw string) (model.QuickAction, error) {
	parts := strings.SplitN(raw, "|", 3)
	if len(parts) != 3 {
		return model.QuickAction{}, fmt.Errorf("quick action %q: expected label|agent|prompt", raw)
	}
	return model.QuickAction{
		Label:  strings.TrimSpace(parts[0]),
		Agent:  strings.TrimSpace(parts[1]),
		Prompt: strings.TrimSpace(parts[2]),
	}, nil
}

func newInterfaceListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List interfaces",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			interfaces, err := a.catalog.Interfaces(cmd.Context(), a.projectName())
			if err != nil {
				return err
			}
			if len(interfaces) == 0 {
				a.printf("No interfaces found.\n")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tAGENT\tFIELDS\tUPDATED BY")
			for _, iface := range interfaces {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", iface.Name, iface.Type, iface.Agent, model.Count(iface.FormFields), iface.UpdatedBy)
			}
			return tw.Flush()
		},
	}
}

func newInterfaceShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print an interface record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iface, err := a.catalog.Interface(cmd.Context(), a.projectName(), args[0])
			if err != nil {
				return err
			}
			if iface.Type == model.InterfaceForm {
				fields, err := a.catalog.Documents().Load(cmd.Context(), a.projectName(), iface.Name)
				if err != nil {
					return err
				}
				iface.FormFields = fields
			}
			data, err := json.MarshalIndent(iface, "", "  ")
			if err != nil {
				return err
			}
			a.printf("%s\n", data)
			return nil
		},
	}
}

func newInterfaceRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename an interface",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			iface, err := a.catalog.Interface(ctx, a.projectName(), args[0])
			if err != nil {
				return err
			}
			if iface.Type == model.InterfaceChat {
				s, err := foundry.OpenChatSession(ctx, a.catalog, a.projectName(), args[0], a.sessionOptions(ctx)...)
				if err != nil {
					return err
				}
				s.Details().InterfaceName = args[1]
				_, err = s.Save(ctx)
				if err == nil {
					a.printf("Renamed %q to %q\n", args[0], args[1])
				}
				return err
			}
			s, err := foundry.OpenFormSession(ctx, a.catalog, a.projectName(), args[0], a.sessionOptions(ctx)...)
			if err != nil {
				return err
			}
			s.Details().InterfaceName = args[1]
			if _, err := s.Save(ctx); err != nil {
				return err
			}
			a.printf("Renamed %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newInterfaceDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete an interface and its fields",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.confirm(cmd.Context(), fmt.Sprintf("Delete interface %q?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := a.catalog.DeleteInterface(cmd.Context(), a.projectName(), args[0]); err != nil {
				return err
			}
			a.printf("Deleted interface %q\n", args[0])
			return nil
		},
	}
}

// errNotForm is returned by field commands pointed at a chat interface.
var errNotForm = errors.New("fields can only be edited on form interfaces")

func newInterfaceTestCmd(a *app) *cobra.Command {
	var values []string
	cmd := &cobra.Command{
		Use:   "test <name>",
		Short: "Fill a form in test mode and check the values",
		Long: `Switches the form to test mode, applies each --value id=text and checks the
result against the exported schema. Ranges are written min..max and multiple
choices are comma separated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openForm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b := s.Builder()
			b.SetTestMode(true)
			for _, pair := range values {
				id, raw, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("value %q: expected id=text", pair)
				}
				field, err := b.Field(strings.TrimSpace(id))
				if err != nil {
					return err
				}
				value, err := model.ParseValue(field.Kind, raw)
				if err != nil {
					return fmt.Errorf("value for %s: %w", field.ID, err)
				}
				if err := b.SetValue(field.ID, value); err != nil {
					return err
				}
			}

			result, err := s.CheckValues()
			if err != nil {
				return err
			}
			if result.Valid {
				a.printf("All values are valid.\n")
				return nil
			}
			for _, issue := range result.Issues {
				a.printf("%s: %s\n", issue.Field, issue.Message)
			}
			return fmt.Errorf("%d invalid value(s)", len(result.Issues))
		},
	}
	cmd.Flags().StringArrayVar(&values, "value", nil, "Field value as id=text (repeatable)")
	return cmd
}
