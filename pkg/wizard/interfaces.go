package wizard

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-foundry/pkg/model"
)

// MaxQuickActions caps the quick action buttons of a chat interface.
const MaxQuickActions = 5

// Input names reported in validation errors.
const (
	FieldInterfaceName  = "interfaceName"
	FieldAgent          = "selectedAgent"
	FieldPromptTemplate = "promptTemplate"
)

// FormDetails is the data collected by the form interface wizard.
type FormDetails struct {
	InterfaceName  string
	Agent          string
	PromptTemplate string
}

// NewFormWizard builds the two-step form flow: details, then the field
// builder. Only the details step carries validation.
func NewFormWizard(details *FormDetails) (*Stepper[FormDetails], error) {
	return New(details,
		Step[FormDetails]{Title: "Interface details", Validate: validateFormDetails},
		Step[FormDetails]{Title: "Form fields"},
	)
}

func validateFormDetails(d *FormDetails) error {
	var c Checker
	return c.Required(FieldInterfaceName, d.InterfaceName).
		Required(FieldAgent, d.Agent).
		Required(FieldPromptTemplate, d.PromptTemplate).
		Err()
}

// ChatDetails is the data collected by the chat interface wizard.
type ChatDetails struct {
	InterfaceName    string
	StarterMessage   string
	TextInputEnabled bool
	Agent            string
	QuickActions     []model.QuickAction
}

// AddQuickAction appends an empty quick action button.
func (d *ChatDetails) AddQuickAction() error {
	if len(d.QuickActions) >= MaxQuickActions {
		return fmt.Errorf("%w: maximum of %d buttons allowed", model.ErrValidationFailed, MaxQuickActions)
	}
	d.QuickActions = append(d.QuickActions, model.QuickAction{})
	return nil
}

// RemoveQuickAction drops the button at idx.
func (d *ChatDetails) RemoveQuickAction(idx int) {
	if idx < 0 || idx >= len(d.QuickActions) {
		return
	}
	d.QuickActions = append(d.QuickActions[:idx], d.QuickActions[idx+1:]...)
}

// NewChatWizard builds the two-step chat flow: naming, then agent and quick
// action configuration.
func NewChatWizard(details *ChatDetails) (*Stepper[ChatDetails], error) {
	return New(details,
		Step[ChatDetails]{Title: "Interface details", Validate: func(d *ChatDetails) error {
			var c Checker
			return c.Required(FieldInterfaceName, d.InterfaceName).Err()
		}},
		Step[ChatDetails]{Title: "Configuration", Validate: validateChatConfig},
	)
}

func validateChatConfig(d *ChatDetails) error {
	var c Checker
	c.Required(FieldAgent, d.Agent)
	if len(d.QuickActions) > MaxQuickActions {
		c.Form(fmt.Sprintf("Maximum of %d buttons allowed", MaxQuickActions))
	}
	for i, action := range d.QuickActions {
		if strings.TrimSpace(action.Label) == "" || strings.TrimSpace(action.Agent) == "" || strings.TrimSpace(action.Prompt) == "" {
			c.Form(fmt.Sprintf("Please complete all fields for Button %d", i+1))
		}
	}
	return c.Err()
}
