package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	foundry "github.com/goliatone/go-foundry"
	"github.com/goliatone/go-foundry/pkg/builder"
	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/prompt"
)

func newFieldCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Edit the fields of a form interface",
	}
	cmd.AddCommand(
		newFieldKindsCmd(a),
		newFieldListCmd(a),
		newFieldAddCmd(a),
		newFieldMoveCmd(a),
		newFieldConfigureCmd(a),
		newFieldDeleteCmd(a),
	)
	return cmd
}

// openForm opens an existing form interface for editing.
func (a *app) openForm(ctx context.Context, name string) (*foundry.FormSession, error) {
	iface, err := a.catalog.Interface(ctx, a.projectName(), name)
	if err != nil {
		return nil, err
	}
	if iface.Type != model.InterfaceForm {
		return nil, fmt.Errorf("interface %q: %w", name, errNotForm)
	}
	return foundry.OpenFormSession(ctx, a.catalog, a.projectName(), name, a.sessionOptions(ctx)...)
}

func newFieldKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the field kinds of the palette",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tDEFAULT LABEL")
			for _, kind := range model.Kinds() {
				fmt.Fprintf(tw, "%s\t%s\n", kind, kind.DefaultLabel())
			}
			return tw.Flush()
		},
	}
}

func newFieldListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list <interface>",
		Aliases: []string{"ls"},
		Short:   "Print the field tree",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openForm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fields := s.Builder().Fields()
			if len(fields) == 0 {
				a.printf("No fields yet.\n")
				return nil
			}
			return model.Walk(fields, func(f model.Field) error {
				indent := ""
				if f.Parent != builder.TopLevel {
					indent = "  "
				}
				cfg := f.EffectiveConfig()
				label := cfg.Label
				if label == "" {
					label = f.Kind.DefaultLabel()
				}
				required := ""
				if cfg.Required {
					required = " *"
				}
				a.printf("%s%s\t%s\t%s%s\n", indent, f.ID, f.Kind, label, required)
				return nil
			})
		},
	}
}

func newFieldAddCmd(a *app) *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "add <interface> <kind>",
		Short: "Append a field, optionally inside a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseFieldKind(args[1])
			if err != nil {
				return err
			}
			s, err := a.openForm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			field, err := s.Builder().CreateField(kind, section)
			if err != nil {
				return err
			}
			if _, err := s.Save(cmd.Context()); err != nil {
				return err
			}
			a.printf("Added %s %s\n", field.Kind, field.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "Section to add the field to")
	return cmd
}

func newFieldMoveCmd(a *app) *cobra.Command {
	var (
		section string
		index   int
	)
	cmd := &cobra.Command{
		Use:   "move <interface> <field-id>",
		Short: "Move a field to a position in the top-level list or a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openForm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := s.Builder().Reorder(args[1], section, index); err != nil {
				return err
			}
			if _, err := s.Save(cmd.Context()); err != nil {
				return err
			}
			list, idx, err := s.Builder().Position(args[1])
			if err != nil {
				return err
			}
			if list == builder.TopLevel {
				list = "top level"
			}
			a.printf("Moved %s to %s at %d\n", args[1], list, idx)
			return nil
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "Target section (top level when empty)")
	cmd.Flags().IntVar(&index, "index", 0, "Target position, clamped to the list")
	return cmd
}

func newFieldConfigureCmd(a *app) *cobra.Command {
	var (
		label, placeholder, help string
		required                 bool
	)
	cmd := &cobra.Command{
		Use:   "configure <interface> <field-id>",
		Short: "Edit a field's label, placeholder, help text and required flag",
		Long: `Opens the configuration panel of a field. Without flags every property
is asked for interactively.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openForm(ctx, args[0])
			if err != nil {
				return err
			}
			b := s.Builder()
			if err := b.Select(args[1]); err != nil {
				return err
			}

			var patch model.FieldPatch
			flags := cmd.Flags()
			if flags.Changed("label") || flags.Changed("placeholder") || flags.Changed("help-text") || flags.Changed("required") {
				if flags.Changed("label") {
					patch.Label = &label
				}
				if flags.Changed("placeholder") {
					patch.Placeholder = &placeholder
				}
				if flags.Changed("help-text") {
					patch.Help = &help
				}
				if flags.Changed("required") {
					patch.Required = &required
				}
			} else {
				field, err := b.Field(args[1])
				if err != nil {
					return err
				}
				view := b.Panel()
				patch, err = prompt.FieldPatch(ctx, a.driver, field.Kind, view.Draft)
				if errors.Is(err, prompt.ErrAborted) {
					b.Cancel()
					a.printf("Cancelled.\n")
					return nil
				}
				if err != nil {
					return err
				}
			}

			if err := b.Edit(patch); err != nil {
				return err
			}
			if err := b.Save(); err != nil {
				return err
			}
			if _, err := s.Save(ctx); err != nil {
				return err
			}
			a.printf("Configured %s\n", args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Field label")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", "Placeholder text")
	cmd.Flags().StringVar(&help, "help-text", "", "Help text shown under the input")
	cmd.Flags().BoolVar(&required, "required", false, "Mark the field required")
	return cmd
}

func newFieldDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <interface> <field-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a field; deleting a section removes its fields",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openForm(ctx, args[0])
			if err != nil {
				return err
			}
			deleted, err := s.Builder().DeleteField(ctx, args[1])
			if err != nil {
				return err
			}
			if !deleted {
				a.printf("Kept %s\n", args[1])
				return nil
			}
			if _, err := s.Save(ctx); err != nil {
				return err
			}
			a.printf("Deleted %s\n", args[1])
			return nil
		},
	}
}
