// Package server exposes a capability registry and dispatcher over a
// line-oriented JSON-RPC wire.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/inletworks/capsule/capability"
	"github.com/inletworks/capsule/jsonrpc"
)

// InfoURI names the server information resource.
const InfoURI = "capsule://info"

// Server answers JSON-RPC requests by delegating to a capability
// dispatcher and its registry. Envelopes travel as JSON-RPC results
// verbatim: a failed invocation is still a successful RPC.
type Server struct {
	registry   *capability.Registry
	dispatcher *capability.Dispatcher
	prompts    []*PromptTemplate
	logger     *slog.Logger
	workspace  string
	started    time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger. It is also passed through to the
// dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithWorkspace records the workspace directory shown in the info
// resource.
func WithWorkspace(dir string) Option {
	return func(s *Server) {
		s.workspace = dir
	}
}

// WithPrompts sets the prompt templates served under prompts/*.
func WithPrompts(prompts ...*PromptTemplate) Option {
	return func(s *Server) {
		s.prompts = prompts
	}
}

// New creates a server over a registry whose capabilities have been
// registered by the bootstrap.
func New(registry *capability.Registry, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dispatcher = capability.NewDispatcher(registry, capability.WithLogger(s.logger))
	return s
}

var _ jsonrpc.Handler = (*Server)(nil)

// Handle processes a single JSON-RPC request and returns a response.
func (s *Server) Handle(ctx context.Context, req jsonrpc.Request) jsonrpc.Response {
	s.logger.Debug("handling request", "method", req.Method)

	switch req.Method {
	case "ping":
		return jsonrpc.NewResponse(req.ID, struct{}{}, nil)
	case "capabilities/list":
		return s.handleCapabilitiesList(req)
	case "capabilities/invoke":
		return s.handleInvoke(ctx, req)
	case "resources/list":
		return s.handleResourcesList(req)
	case "resources/read":
		return s.handleResourcesRead(req)
	case "prompts/list":
		return s.handlePromptsList(req)
	case "prompts/get":
		return s.handlePromptsGet(req)
	default:
		return jsonrpc.NewResponse(req.ID, nil, jsonrpc.NewError(jsonrpc.ErrMethodNotFound, req.Method))
	}
}

func (s *Server) handleCapabilitiesList(req jsonrpc.Request) jsonrpc.Response {
	result := ListCapabilitiesResponse{Capabilities: capability.Catalog(s.registry)}
	return jsonrpc.NewResponse(req.ID, result, nil)
}

func (s *Server) handleInvoke(ctx context.Context, req jsonrpc.Request) jsonrpc.Response {
	var params InvokeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return jsonrpc.NewResponse(req.ID, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
	}

	env := s.dispatcher.Invoke(ctx, capability.Request{
		Operation: params.Operation,
		Arguments: params.Arguments,
	})
	return jsonrpc.NewResponse(req.ID, env, nil)
}

func (s *Server) handleResourcesList(req jsonrpc.Request) jsonrpc.Response {
	result := ListResourcesResponse{
		Resources: []Resource{
			{
				URI:         InfoURI,
				Name:        "Server information",
				Description: "Catalog of capabilities, resources, and prompts served by this process",
				MimeType:    "text/plain",
			},
		},
	}
	return jsonrpc.NewResponse(req.ID, result, nil)
}

func (s *Server) handleResourcesRead(req jsonrpc.Request) jsonrpc.Response {
	var params ReadResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return jsonrpc.NewResponse(req.ID, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
	}
	if params.URI != InfoURI {
		return jsonrpc.NewResponse(req.ID, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, fmt.Sprintf("unknown resource %q", params.URI)))
	}

	result := ReadResourceResponse{
		Contents: []ResourceContents{
			{URI: InfoURI, MimeType: "text/plain", Text: s.infoText()},
		},
	}
	return jsonrpc.NewResponse(req.ID, result, nil)
}

func (s *Server) handlePromptsList(req jsonrpc.Request) jsonrpc.Response {
	prompts := make([]Prompt, 0, len(s.prompts))
	for _, p := range s.prompts {
		prompts = append(prompts, Prompt{
			Name:        p.Name,
			Description: p.Description,
			Arguments:   p.Arguments,
		})
	}
	return jsonrpc.NewResponse(req.ID, ListPromptsResponse{Prompts: prompts}, nil)
}

func (s *Server) handlePromptsGet(req jsonrpc.Request) jsonrpc.Response {
	var params GetPromptParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return jsonrpc.NewResponse(req.ID, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
	}

	for _, p := range s.prompts {
		if p.Name != params.Name {
			continue
		}
		text, err := p.Render(params.Arguments)
		if err != nil {
			return jsonrpc.NewResponse(req.ID, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
		}
		result := GetPromptResponse{
			Description: p.Description,
			Messages: []PromptMessage{
				{Role: RoleUser, Content: NewTextContent(text)},
			},
		}
		return jsonrpc.NewResponse(req.ID, result, nil)
	}

	return jsonrpc.NewResponse(req.ID, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, fmt.Sprintf("unknown prompt %q", params.Name)))
}

func (s *Server) infoText() string {
	var b strings.Builder
	fmt.Fprintln(&b, "Capsule Tool Server")
	fmt.Fprintln(&b, "===================")
	fmt.Fprintln(&b)
	if s.workspace != "" {
		fmt.Fprintf(&b, "Workspace: %s\n", s.workspace)
	}
	fmt.Fprintf(&b, "Started: %s\n", s.started.Format(time.RFC3339))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Capabilities:")
	for name := range s.registry.Names() {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Resources:")
	fmt.Fprintf(&b, "- %s\n", InfoURI)
	if len(s.prompts) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Prompts:")
		for _, p := range s.prompts {
			fmt.Fprintf(&b, "- %s\n", p.Name)
		}
	}
	return b.String()
}
