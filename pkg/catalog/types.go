package catalog

import (
	"time"

	"github.com/goliatone/go-foundry/pkg/model"
)

// Storage keys of the record collections.
const (
	KeyProjects   = "projects"
	KeyAgents     = "agents"
	KeyTools      = "tools"
	KeyInterfaces = "interfaces"
)

// CategorySelfManaged is the category assigned to user-created tools.
const CategorySelfManaged = "Self-managed"

// Project groups agents, tools and interfaces. Agents and Tools are derived
// counts and are recomputed on every read.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Bookmarked  bool      `json:"bookmarked,omitempty"`
	Agents      int       `json:"agents"`
	Tools       int       `json:"tools"`
	CreatedOn   time.Time `json:"createdOn"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
	UpdatedOn   time.Time `json:"updatedOn"`
}

// Agent is a configured model persona owned by a project.
type Agent struct {
	Name         string    `json:"name"`
	Model        string    `json:"model,omitempty"`
	Temperature  float64   `json:"temperature"`
	SystemPrompt string    `json:"systemPrompt,omitempty"`
	Project      string    `json:"project"`
	UpdatedBy    string    `json:"updatedBy,omitempty"`
	UpdatedOn    time.Time `json:"updatedOn"`
}

// Tool types offered by the console. Each carries its own knowledge payload.
const (
	ToolText       = "Text Knowledge Base"
	ToolDatabase   = "Database Knowledge Base"
	ToolMultimedia = "Multi-media Knowledge Base"
)

// DefaultToolType is used when a tool is created without a type.
const DefaultToolType = ToolText

// Tool is a knowledge source an agent may consult. Only the payload fields of
// its Type are meaningful.
type Tool struct {
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Description   string     `json:"description,omitempty"`
	KnowledgeBase string     `json:"knowledgeBase,omitempty"`
	DatabaseName  string     `json:"databaseName,omitempty"`
	Query         string     `json:"query,omitempty"`
	PDFs          []Document `json:"pdfs,omitempty"`
	Links         []string   `json:"links,omitempty"`
	Category      string     `json:"category"`
	Project       string     `json:"project"`
	UpdatedBy     string     `json:"updatedBy,omitempty"`
	UpdatedOn     time.Time  `json:"updatedOn"`
}

// Document is an uploaded file attached to a multimedia tool.
type Document struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// Interface is a form or chat front end bound to an agent.
type Interface struct {
	Name           string              `json:"name"`
	Type           model.InterfaceType `json:"type"`
	Description    string              `json:"description"`
	Project        string              `json:"project"`
	Agent          string              `json:"agent"`
	PromptTemplate string              `json:"promptTemplate,omitempty"`
	StarterMessage string              `json:"starterMessage,omitempty"`
	TextInput      bool                `json:"textInputEnabled,omitempty"`
	QuickActions   []model.QuickAction `json:"quickActionButtons,omitempty"`
	FormFields     []model.Field       `json:"formFields,omitempty"`
	UpdatedBy      string              `json:"updatedBy,omitempty"`
	UpdatedOn      time.Time           `json:"updatedOn"`
}
