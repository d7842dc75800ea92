package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-foundry/internal/config"
	"github.com/goliatone/go-foundry/pkg/prompt"
	"github.com/goliatone/go-foundry/pkg/store"
)

type scriptedDriver struct {
	inputs   []string
	confirms []bool
	infos    []string
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	v := d.confirms[0]
	d.confirms = d.confirms[1:]
	return v, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return -1, errors.New("no select scripted")
}

func (d *scriptedDriver) TextArea(context.Context, prompt.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type harness struct {
	t      *testing.T
	store  store.Store
	driver *scriptedDriver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("FOUNDRY_STORE", "memory")
	h := &harness{t: t, store: store.NewMemory(), driver: &scriptedDriver{}}
	h.must("project", "create", "Project 1")
	h.must("agent", "create", "Helper", "--model", "gpt")
	return h
}

func (h *harness) run(args ...string) (string, error) {
	var out bytes.Buffer
	a := newApp()
	a.out = &out
	a.driver = h.driver
	a.newStore = func(config.Config) (store.Store, error) { return h.store, nil }

	root := newRootCmd(a)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) must(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "foundry %s", strings.Join(args, " "))
	return out
}

func TestFormInterfaceLifecycle(t *testing.T) {
	h := newHarness(t)

	h.must("interface", "create-form", "Signup", "--agent", "Helper", "--prompt", "Greet {{name}}")
	assert.Contains(t, h.must("field", "add", "Signup", "section"), "section field-1")
	h.must("field", "add", "Signup", "text", "--section", "field-1")
	h.must("field", "add", "Signup", "checkbox")
	h.must("field", "configure", "Signup", "field-2", "--label", "Full name", "--required")

	list := h.must("field", "list", "Signup")
	assert.Contains(t, list, "field-1\tsection\tSection")
	assert.Contains(t, list, "  field-2\ttext\tFull name *")
	assert.Contains(t, list, "field-3\tcheckbox\tCheckbox")

	moved := h.must("field", "move", "Signup", "field-3", "--index", "0")
	assert.Contains(t, moved, "Moved field-3 to top level at 0")

	assert.Contains(t, h.must("preview", "Signup"), `data-field-id="field-2"`)

	yamlOut := h.must("export", "Signup", "--format", "yaml")
	assert.Contains(t, yamlOut, "openapi: 3.0.3")
	assert.Contains(t, yamlOut, "field-2")

	path := filepath.Join(t.TempDir(), "signup.json")
	h.must("export", "Signup", "-o", path)
	assert.Contains(t, h.must("lint", path), "No violations found.")

	h.driver.confirms = []bool{false}
	assert.Contains(t, h.must("field", "delete", "Signup", "field-1"), "Kept field-1")
	assert.Contains(t, h.must("field", "delete", "Signup", "field-1", "--yes"), "Deleted field-1")
	list = h.must("field", "list", "Signup")
	assert.NotContains(t, list, "field-2")
	assert.Contains(t, list, "field-3")
}

func TestFieldConfigureInteractive(t *testing.T) {
	h := newHarness(t)
	h.must("interface", "create-form", "Contact", "--agent", "Helper", "--prompt", "P")
	h.must("field", "add", "Contact", "text")

	h.driver.inputs = []string{"Email", "you@example.com", "Work address"}
	h.driver.confirms = []bool{true}
	h.must("field", "configure", "Contact", "field-1")

	assert.Contains(t, h.must("field", "list", "Contact"), "field-1\ttext\tEmail *")
	assert.Contains(t, h.driver.infos, "[success] Field configuration saved!")
}

func TestChatInterfaceCommands(t *testing.T) {
	h := newHarness(t)

	h.must("interface", "create-chat", "Support", "--agent", "Helper", "--starter", "Hi!",
		"--action", "Reset|Helper|How do I reset my password?")
	shown := h.must("interface", "show", "Support")
	assert.Contains(t, shown, `"type": "Chat"`)
	assert.Contains(t, shown, `"label": "Reset"`)

	_, err := h.run("interface", "create-chat", "Other", "--agent", "Helper", "--action", "broken")
	assert.ErrorContains(t, err, "expected label|agent|prompt")

	_, err = h.run("field", "add", "Support", "text")
	assert.ErrorIs(t, err, errNotForm)

	h.must("interface", "rename", "Support", "Helpdesk")
	list := h.must("interface", "list")
	assert.Contains(t, list, "Helpdesk")
	assert.NotContains(t, list, "Support")

	h.must("interface", "delete", "Helpdesk", "-y")
	assert.Contains(t, h.must("interface", "list"), "No interfaces found.")
}

func TestProjectCommands(t *testing.T) {
	h := newHarness(t)
	h.must("tool", "create", "Docs", "-d", "Product docs", "--knowledge-base", "Shipping takes two days")

	list := h.must("project", "list")
	assert.Contains(t, list, "Project 1")
	assert.Contains(t, h.must("tool", "list"), "Self-managed")

	h.must("project", "rename", "Project 1", "Renamed")
	assert.Contains(t, h.must("agent", "list", "-p", "Renamed"), "Helper")

	_, err := h.run("project", "create", "Renamed")
	assert.Error(t, err)

	h.must("project", "delete", "Renamed", "--yes")
	assert.Contains(t, h.must("project", "list"), "No projects found.")
}

func TestMetricsFlagDumpsCounters(t *testing.T) {
	h := newHarness(t)
	var errOut bytes.Buffer
	a := newApp()
	a.out = io.Discard
	a.driver = h.driver
	a.newStore = func(config.Config) (store.Store, error) { return h.store, nil }
	root := newRootCmd(a)
	root.SetArgs([]string{"--log-level", "error", "--metrics", "project", "list"})
	root.SetErr(&errOut)
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, errOut.String(), "foundry_store_operations_total")
}

func TestInterfaceTestCommand(t *testing.T) {
	h := newHarness(t)
	h.must("interface", "create-form", "Survey", "--agent", "Helper", "--prompt", "P")
	h.must("field", "add", "Survey", "text")
	h.must("field", "add", "Survey", "number-slider")
	h.must("field", "configure", "Survey", "field-1", "--required")

	out, err := h.run("interface", "test", "Survey", "--value", "field-2=150")
	assert.ErrorContains(t, err, "2 invalid value(s)")
	assert.Contains(t, out, "field-1: This is a required field")
	assert.Contains(t, out, "field-2: ")

	out = h.must("interface", "test", "Survey", "--value", "field-1=Ana", "--value", "field-2=40")
	assert.Contains(t, out, "All values are valid.")

	_, err = h.run("interface", "test", "Survey", "--value", "field-2=lots")
	assert.ErrorContains(t, err, "value for field-2")
}

func TestFieldConfigureFlags(t *testing.T) {
	h := newHarness(t)
	h.must("interface", "create-form", "Signup", "--agent", "Helper", "--prompt", "P")
	h.must("field", "add", "Signup", "text")

	out := h.must("field", "configure", "Signup", "field-1",
		"--label", "Name", "--placeholder", "Ada Lovelace", "--help-text", "Shown under the input")
	assert.Contains(t, out, "Configured field-1")

	shown := h.must("interface", "show", "Signup")
	assert.Contains(t, shown, `"label": "Name"`)
	assert.Contains(t, shown, `"placeholder": "Ada Lovelace"`)
	assert.Contains(t, shown, `"help": "Shown under the input"`)

	help := h.must("field", "configure", "--help")
	assert.Contains(t, help, "--help-text")
}

func TestProjectDuplicateAndBookmark(t *testing.T) {
	h := newHarness(t)
	h.must("tool", "create", "Docs", "--knowledge-base", "Shipping takes two days")

	out := h.must("project", "duplicate", "Project 1")
	assert.Contains(t, out, `Duplicated "Project 1" as "Project 1 (Copy)" (1 agents, 1 tools)`)
	assert.Contains(t, h.must("agent", "list", "-p", "Project 1 (Copy)"), "Helper")

	_, err := h.run("project", "duplicate", "Project 1", "project 1 (copy)")
	assert.Error(t, err)

	assert.Contains(t, h.must("project", "list", "--bookmarked"), "No projects found.")
	assert.Contains(t, h.must("project", "bookmark", "Project 1 (Copy)"), `Bookmarked "Project 1 (Copy)"`)
	bookmarked := h.must("project", "list", "--bookmarked")
	assert.Contains(t, bookmarked, "Project 1 (Copy) *")
	assert.Equal(t, 2, strings.Count(bookmarked, "\n"), bookmarked)
	assert.Contains(t, h.must("project", "bookmark", "Project 1 (Copy)"), "Removed bookmark")
}

func TestToolPayloadsAndEdit(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("tool", "create", "Empty")
	assert.ErrorContains(t, err, "knowledge base content is required")

	h.must("tool", "create", "Orders", "--type", "Database Knowledge Base", "--database", "orders", "--query", "SELECT 1")

	pdf := filepath.Join(t.TempDir(), "guide.pdf")
	require.NoError(t, os.WriteFile(pdf, make([]byte, 1536), 0o600))
	_, err = h.run("tool", "create", "Manuals", "--type", "Multi-media Knowledge Base")
	assert.ErrorContains(t, err, "at least one PDF or link")
	h.must("tool", "create", "Manuals", "--type", "Multi-media Knowledge Base", "--pdf", pdf, "--link", "https://example.com")

	list := h.must("tool", "list")
	assert.Contains(t, list, "orders")
	assert.Contains(t, list, "1 pdf(s), 1 link(s)")

	assert.Contains(t, h.must("tool", "edit", "Orders", "--name", "Order history", "--query", "SELECT id FROM orders"), `Updated tool "Order history"`)
	list = h.must("tool", "list")
	assert.Contains(t, list, "Order history")
	assert.NotContains(t, list, "Orders")

	_, err = h.run("tool", "edit", "Ghost", "--name", "X")
	assert.Error(t, err)
}

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		0:       "0 Bytes",
		512:     "512 Bytes",
		1536:    "1.5 KB",
		5 << 20: "5 MB",
	}
	for size, want := range cases {
		assert.Equal(t, want, formatFileSize(size), "size %d", size)
	}
}
