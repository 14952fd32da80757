// Package workspace provides file capabilities rooted at a single
// directory.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inletworks/capsule/capability"
)

// Workspace owns a directory and serves file operations confined to it.
// The root is fixed at construction.
type Workspace struct {
	root string
}

// New creates the root directory if needed and returns a workspace over
// it.
func New(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace root: %w", err)
	}
	return &Workspace{root: abs}, nil
}

// Root returns the absolute workspace directory.
func (w *Workspace) Root() string { return w.root }

// resolve maps a filename to its path under the root. Names that would
// escape the root are rejected.
func (w *Workspace) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is empty")
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("filename %q is outside the workspace", name)
	}
	return filepath.Join(w.root, name), nil
}

// Create writes a new file. It refuses to overwrite an existing one.
func (w *Workspace) Create(ctx context.Context, args map[string]any) (any, error) {
	name, _ := args["filename"].(string)
	content, _ := args["content"].(string)

	path, err := w.resolve(name)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("file %q already exists", name)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("creating %q: %w", name, err)
	}

	return map[string]any{
		"filename": name,
		"path":     path,
		"size":     len(content),
	}, nil
}

// Read returns a file's content along with its size and modification
// time.
func (w *Workspace) Read(ctx context.Context, args map[string]any) (any, error) {
	name, _ := args["filename"].(string)

	path, err := w.resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %q does not exist", name)
		}
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}

	return map[string]any{
		"filename": name,
		"content":  string(content),
		"size":     len(content),
		"modified": info.ModTime().Format(time.RFC3339),
	}, nil
}

// List enumerates the regular files in the workspace.
func (w *Workspace) List(ctx context.Context, args map[string]any) (any, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("listing workspace: %w", err)
	}

	files := []map[string]any{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, map[string]any{
			"name":     entry.Name(),
			"size":     info.Size(),
			"modified": info.ModTime().Format(time.RFC3339),
			"path":     filepath.Join(w.root, entry.Name()),
		})
	}

	return map[string]any{
		"files":     files,
		"count":     len(files),
		"workspace": w.root,
	}, nil
}

// Delete removes a file from the workspace.
func (w *Workspace) Delete(ctx context.Context, args map[string]any) (any, error) {
	name, _ := args["filename"].(string)

	path, err := w.resolve(name)
	if err != nil {
		return nil, err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %q does not exist", name)
		}
		return nil, fmt.Errorf("deleting %q: %w", name, err)
	}

	return map[string]any{
		"filename": name,
		"deleted":  true,
	}, nil
}

// Capabilities returns the file operation descriptors backed by this
// workspace, ready for registration.
func (w *Workspace) Capabilities() []*capability.Descriptor {
	filename := capability.Param{Name: "filename", Required: true, Kind: capability.String}

	return []*capability.Descriptor{
		{
			Name:        "create_file",
			Description: "Create a new file with the given content",
			Params: []capability.Param{
				filename,
				{Name: "content", Required: true, Kind: capability.String},
			},
			Handler: w.Create,
		},
		{
			Name:        "read_file",
			Description: "Read the content of a file",
			Params:      []capability.Param{filename},
			Handler:     w.Read,
		},
		{
			Name:        "list_files",
			Description: "List all files in the workspace directory",
			Handler:     w.List,
		},
		{
			Name:        "delete_file",
			Description: "Delete a file from the workspace",
			Params:      []capability.Param{filename},
			Handler:     w.Delete,
		},
	}
}
