package server

import "github.com/inletworks/capsule/capability"

// Role identifies the sender of a prompt message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Content is a piece of message content. Only text is served here.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextContent wraps text in a content block.
func NewTextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// Capabilities
type (
	// ListCapabilitiesResponse is the result of capabilities/list.
	ListCapabilitiesResponse struct {
		Capabilities []capability.Summary `json:"capabilities"`
	}

	// InvokeParams are the parameters of capabilities/invoke.
	InvokeParams struct {
		Operation string         `json:"operation"`
		Arguments map[string]any `json:"arguments,omitempty"`
	}
)

// Resources
type (
	// Resource describes a readable resource.
	Resource struct {
		URI         string `json:"uri"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		MimeType    string `json:"mimeType,omitempty"`
	}

	// ListResourcesResponse is the result of resources/list.
	ListResourcesResponse struct {
		Resources []Resource `json:"resources"`
	}

	// ReadResourceParams are the parameters of resources/read.
	ReadResourceParams struct {
		URI string `json:"uri"`
	}

	// ResourceContents holds the contents of one resource.
	ResourceContents struct {
		URI      string `json:"uri"`
		MimeType string `json:"mimeType,omitempty"`
		Text     string `json:"text"`
	}

	// ReadResourceResponse is the result of resources/read.
	ReadResourceResponse struct {
		Contents []ResourceContents `json:"contents"`
	}
)

// Prompts
type (
	// PromptArgument declares one argument of a prompt template.
	PromptArgument struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Required    bool   `json:"required,omitempty"`
	}

	// Prompt describes a prompt template.
	Prompt struct {
		Name        string           `json:"name"`
		Description string           `json:"description,omitempty"`
		Arguments   []PromptArgument `json:"arguments,omitempty"`
	}

	// ListPromptsResponse is the result of prompts/list.
	ListPromptsResponse struct {
		Prompts []Prompt `json:"prompts"`
	}

	// GetPromptParams are the parameters of prompts/get.
	GetPromptParams struct {
		Name      string            `json:"name"`
		Arguments map[string]string `json:"arguments,omitempty"`
	}

	// PromptMessage is one rendered message of a prompt.
	PromptMessage struct {
		Role    Role    `json:"role"`
		Content Content `json:"content"`
	}

	// GetPromptResponse is the result of prompts/get.
	GetPromptResponse struct {
		Description string          `json:"description,omitempty"`
		Messages    []PromptMessage `json:"messages"`
	}
)
