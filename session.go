package foundry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-foundry/pkg/builder"
	"github.com/goliatone/go-foundry/pkg/catalog"
	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/validation"
	"github.com/goliatone/go-foundry/pkg/wizard"
)

// FormSession is the form interface page: the details wizard plus the field
// builder for one interface.
type FormSession struct {
	catalog  *catalog.Catalog
	project  string
	original string
	details  *wizard.FormDetails
	wizard   *wizard.Stepper[wizard.FormDetails]
	builder  *builder.State
	logger   *slog.Logger
}

// OpenFormSession opens the form page of interfaceName in project. An empty
// interfaceName starts a new interface. A name with no catalog record yet is
// treated as new but keeps the name and any stored field document.
func OpenFormSession(ctx context.Context, cat *catalog.Catalog, project, interfaceName string, opts ...SessionOption) (*FormSession, error) {
	cfg := newSessionConfig(opts)
	if project = strings.TrimSpace(project); project == "" {
		project = DefaultProject
	}
	interfaceName = strings.TrimSpace(interfaceName)

	details := &wizard.FormDetails{InterfaceName: interfaceName}
	stepper, err := wizard.NewFormWizard(details)
	if err != nil {
		return nil, err
	}
	s := &FormSession{
		catalog: cat,
		project: project,
		details: details,
		wizard:  stepper,
		builder: builder.New(cfg.builderOpts...),
		logger:  cfg.logger,
	}
	if interfaceName == "" {
		return s, nil
	}

	record, err := cat.Interface(ctx, project, interfaceName)
	switch {
	case err == nil:
		if record.Type != "" && record.Type != model.InterfaceForm {
			return nil, fmt.Errorf("foundry: interface %q is a %s interface", interfaceName, record.Type)
		}
		details.Agent = record.Agent
		details.PromptTemplate = record.PromptTemplate
		s.original = record.Name
	case errors.Is(err, catalog.ErrNotFound):
	default:
		return nil, err
	}

	fields, err := cat.Documents().Load(ctx, project, interfaceName)
	if err != nil {
		return nil, err
	}
	if err := s.builder.Restore(fields); err != nil {
		s.logger.Warn("ignoring unusable field document", "project", project, "interface", interfaceName, "err", err)
	}
	return s, nil
}

// Project returns the owning project name.
func (s *FormSession) Project() string {
	return s.project
}

// Details returns the wizard data; edits are picked up by the next Save.
func (s *FormSession) Details() *wizard.FormDetails {
	return s.details
}

// Wizard exposes the step navigation.
func (s *FormSession) Wizard() *wizard.Stepper[wizard.FormDetails] {
	return s.wizard
}

// Builder exposes the field builder engine.
func (s *FormSession) Builder() *builder.State {
	return s.builder
}

// Document returns the current form as a FormDocument.
func (s *FormSession) Document() model.FormDocument {
	return model.FormDocument{
		InterfaceName:  strings.TrimSpace(s.details.InterfaceName),
		Project:        s.project,
		SelectedAgent:  strings.TrimSpace(s.details.Agent),
		PromptTemplate: strings.TrimSpace(s.details.PromptTemplate),
		Fields:         s.builder.Fields(),
	}
}

// CheckValues validates the values entered in test mode against the form's
// exported schema. The builder keeps running either way.
func (s *FormSession) CheckValues() (validation.Result, error) {
	return validation.Check(s.Document(), s.builder.Values())
}

// Save validates every wizard step, upserts the interface record and writes
// the field document. On a validation failure the wizard is left on the
// failing step and nothing is written.
func (s *FormSession) Save(ctx context.Context) (catalog.Interface, error) {
	if _, err := s.wizard.Finish(); err != nil {
		return catalog.Interface{}, err
	}
	doc := s.Document()

	saved, err := s.catalog.SaveInterface(ctx, catalog.Interface{
		Name:           doc.InterfaceName,
		Type:           model.InterfaceForm,
		Project:        s.project,
		Agent:          doc.SelectedAgent,
		PromptTemplate: doc.PromptTemplate,
		FormFields:     doc.Fields,
	}, s.original)
	if err != nil {
		if errors.Is(err, model.ErrValidationFailed) {
			_ = s.wizard.GoTo(0)
		}
		return catalog.Interface{}, err
	}
	if err := s.catalog.Documents().Save(ctx, s.project, saved.Name, doc.Fields); err != nil {
		return catalog.Interface{}, err
	}
	s.original = saved.Name
	s.logger.Info("form interface saved", "project", s.project, "interface", saved.Name, "fields", model.Count(doc.Fields))
	return saved, nil
}

// ChatSession is the chat interface page.
type ChatSession struct {
	catalog  *catalog.Catalog
	project  string
	original string
	details  *wizard.ChatDetails
	wizard   *wizard.Stepper[wizard.ChatDetails]
	logger   *slog.Logger
}

// OpenChatSession opens the chat page of interfaceName in project. An empty
// name starts a new interface.
func OpenChatSession(ctx context.Context, cat *catalog.Catalog, project, interfaceName string, opts ...SessionOption) (*ChatSession, error) {
	cfg := newSessionConfig(opts)
	if project = strings.TrimSpace(project); project == "" {
		project = DefaultProject
	}
	interfaceName = strings.TrimSpace(interfaceName)

	details := &wizard.ChatDetails{InterfaceName: interfaceName, TextInputEnabled: true}
	stepper, err := wizard.NewChatWizard(details)
	if err != nil {
		return nil, err
	}
	s := &ChatSession{catalog: cat, project: project, details: details, wizard: stepper, logger: cfg.logger}
	if interfaceName == "" {
		return s, nil
	}

	record, err := cat.Interface(ctx, project, interfaceName)
	switch {
	case err == nil:
		if record.Type != model.InterfaceChat {
			return nil, fmt.Errorf("foundry: interface %q is a %s interface", interfaceName, record.Type)
		}
		details.StarterMessage = record.StarterMessage
		details.TextInputEnabled = record.TextInput
		details.Agent = record.Agent
		details.QuickActions = append([]model.QuickAction(nil), record.QuickActions...)
		s.original = record.Name
	case errors.Is(err, catalog.ErrNotFound):
	default:
		return nil, err
	}
	return s, nil
}

// Project returns the owning project name.
func (s *ChatSession) Project() string {
	return s.project
}

// Details returns the wizard data.
func (s *ChatSession) Details() *wizard.ChatDetails {
	return s.details
}

// Wizard exposes the step navigation.
func (s *ChatSession) Wizard() *wizard.Stepper[wizard.ChatDetails] {
	return s.wizard
}

// Save validates both steps and upserts the chat interface record.
func (s *ChatSession) Save(ctx context.Context) (catalog.Interface, error) {
	if _, err := s.wizard.Finish(); err != nil {
		return catalog.Interface{}, err
	}
	saved, err := s.catalog.SaveInterface(ctx, catalog.Interface{
		Name:           strings.TrimSpace(s.details.InterfaceName),
		Type:           model.InterfaceChat,
		Project:        s.project,
		Agent:          strings.TrimSpace(s.details.Agent),
		StarterMessage: strings.TrimSpace(s.details.StarterMessage),
		TextInput:      s.details.TextInputEnabled,
		QuickActions:   s.details.QuickActions,
	}, s.original)
	if err != nil {
		if errors.Is(err, model.ErrValidationFailed) {
			_ = s.wizard.GoTo(0)
		}
		return catalog.Interface{}, err
	}
	s.original = saved.Name
	s.logger.Info("chat interface saved", "project", s.project, "interface", saved.Name)
	return saved, nil
}
