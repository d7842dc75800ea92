package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/wizard"
)

// FormDetails collects the first step of the form wizard, re-asking until it
// validates, and leaves the stepper on the field builder step.
func FormDetails(ctx context.Context, d Driver, w *wizard.Stepper[wizard.FormDetails], agents []string) error {
	data := w.Data()
	for {
		name, err := d.Input(ctx, InputConfig{Message: "Interface name", Default: data.InterfaceName})
		if err != nil {
			return err
		}
		data.InterfaceName = strings.TrimSpace(name)

		if data.Agent, err = chooseAgent(ctx, d, "Select agent", agents, data.Agent); err != nil {
			return err
		}

		template, err := d.TextArea(ctx, TextAreaConfig{Message: "Prompt template", Default: data.PromptTemplate})
		if err != nil {
			return err
		}
		data.PromptTemplate = strings.TrimSpace(template)

		if err := advance(ctx, d, w.Next); !errors.Is(err, errRetry) {
			return err
		}
	}
}

// ChatDetails walks both chat wizard steps.
func ChatDetails(ctx context.Context, d Driver, w *wizard.Stepper[wizard.ChatDetails], agents []string) error {
	data := w.Data()
	for w.Current() == 0 {
		name, err := d.Input(ctx, InputConfig{Message: "Interface name", Default: data.InterfaceName})
		if err != nil {
			return err
		}
		data.InterfaceName = strings.TrimSpace(name)
		if err := advance(ctx, d, w.Next); err != nil && !errors.Is(err, errRetry) {
			return err
		}
	}

	for {
		starter, err := d.TextArea(ctx, TextAreaConfig{Message: "Starter message", Default: data.StarterMessage})
		if err != nil {
			return err
		}
		data.StarterMessage = strings.TrimSpace(starter)

		if data.TextInputEnabled, err = d.Confirm(ctx, ConfirmConfig{Message: "Enable text input?", Default: true}); err != nil {
			return err
		}
		if data.Agent, err = chooseAgent(ctx, d, "Select agent", agents, data.Agent); err != nil {
			return err
		}

		data.QuickActions = nil
		for len(data.QuickActions) < wizard.MaxQuickActions {
			more, err := d.Confirm(ctx, ConfirmConfig{Message: "Add a quick action button?"})
			if err != nil {
				return err
			}
			if !more {
				break
			}
			action, err := quickAction(ctx, d, len(data.QuickActions)+1, agents)
			if err != nil {
				return err
			}
			data.QuickActions = append(data.QuickActions, action)
		}

		_, finishErr := w.Finish()
		if finishErr == nil {
			return nil
		}
		if err := advance(ctx, d, func() error { return finishErr }); !errors.Is(err, errRetry) {
			return err
		}
		if w.Current() == 0 {
			return errors.New("prompt: interface details became invalid")
		}
	}
}

// FieldPatch asks for every configurable property of a field, defaulting to
// cfg.
func FieldPatch(ctx context.Context, d Driver, kind model.FieldKind, cfg model.FieldConfig) (model.FieldPatch, error) {
	label, err := d.Input(ctx, InputConfig{Message: "Label", Default: cfg.Label})
	if err != nil {
		return model.FieldPatch{}, err
	}
	patch := model.FieldPatch{Label: &label}

	if !kind.IsSection() {
		placeholder, err := d.Input(ctx, InputConfig{Message: "Placeholder", Default: cfg.Placeholder})
		if err != nil {
			return model.FieldPatch{}, err
		}
		patch.Placeholder = &placeholder
	}

	help, err := d.Input(ctx, InputConfig{Message: "Help text", Default: cfg.Help})
	if err != nil {
		return model.FieldPatch{}, err
	}
	patch.Help = &help

	if !kind.IsSection() {
		required, err := d.Confirm(ctx, ConfirmConfig{Message: "Required?", Default: cfg.Required})
		if err != nil {
			return model.FieldPatch{}, err
		}
		patch.Required = &required
	}
	return patch, nil
}

var errRetry = errors.New("prompt: retry step")

// advance runs step; validation failures are reported and mapped to errRetry.
func advance(ctx context.Context, d Driver, step func() error) error {
	err := step()
	if err == nil {
		return nil
	}
	var verr *wizard.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for _, name := range verr.FieldNames() {
		for _, msg := range verr.Fields[name] {
			if infoErr := d.Info(ctx, fmt.Sprintf("%s: %s", name, msg)); infoErr != nil {
				return infoErr
			}
		}
	}
	for _, msg := range verr.Form {
		if infoErr := d.Info(ctx, msg); infoErr != nil {
			return infoErr
		}
	}
	return errRetry
}

func chooseAgent(ctx context.Context, d Driver, message string, agents []string, current string) (string, error) {
	if len(agents) == 0 {
		agent, err := d.Input(ctx, InputConfig{Message: message, Default: current})
		return strings.TrimSpace(agent), err
	}
	def := 0
	for i, agent := range agents {
		if agent == current {
			def = i
		}
	}
	idx, err := d.Select(ctx, SelectConfig{Message: message, Options: agents, DefaultIndex: def})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(agents) {
		return "", fmt.Errorf("prompt: agent selection %d out of range", idx)
	}
	return agents[idx], nil
}

func quickAction(ctx context.Context, d Driver, n int, agents []string) (model.QuickAction, error) {
	label, err := d.Input(ctx, InputConfig{Message: fmt.Sprintf("Button %d label", n)})
	if err != nil {
		return model.QuickAction{}, err
	}
	agent, err := chooseAgent(ctx, d, fmt.Sprintf("Button %d agent", n), agents, "")
	if err != nil {
		return model.QuickAction{}, err
	}
	text, err := d.TextArea(ctx, TextAreaConfig{Message: fmt.Sprintf("Button %d prompt", n)})
	if err != nil {
		return model.QuickAction{}, err
	}
	return model.QuickAction{
		Label:  strings.TrimSpace(label),
		Agent:  agent,
		Prompt: strings.TrimSpace(text),
	}, nil
}
