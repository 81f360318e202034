package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"diskusage/internal/models"
)

var (
	// ErrToolNotFound is returned when calling a name nobody registered
	ErrToolNotFound = errors.New("tool not found")
	// ErrDuplicateTool is returned when a name is registered twice
	ErrDuplicateTool = errors.New("tool already registered")
)

// ToolHandler produces the string map returned to a caller
type ToolHandler func(ctx context.Context) map[string]string

// Tool is a zero-argument operation exposed to remote callers
type Tool struct {
	Name        string
	Description string
	Handler     ToolHandler
}

// ToolRegistry holds the tools a process exposes. It is built once at
// startup and shared by every transport.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewToolRegistry creates an empty registry
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]Tool)}
}

// NewDefaultRegistry creates a registry exposing the disk usage tool
func NewDefaultRegistry(svc *DiskUsageService) (*ToolRegistry, error) {
	if svc == nil {
		return nil, errors.New("disk usage service is required")
	}

	registry := NewToolRegistry()
	tool := Tool{
		Name: DiskUsageToolName,
		Description: fmt.Sprintf("Get current disk usage information for the system disk (%s). "+
			"Returns device, total_gb, used_gb, available_gb, reserved_gb, percent_used, mount and summary.", svc.Device()),
		Handler: func(ctx context.Context) map[string]string {
			return svc.GetDiskUsage(ctx).Fields()
		},
	}
	if err := registry.Register(tool); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", tool.Name, err)
	}
	return registry, nil
}

// Register adds a tool
func (r *ToolRegistry) Register(tool Tool) error {
	if tool.Name == "" {
		return errors.New("tool name is required")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool %s has no handler", tool.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, tool.Name)
	}
	r.tools[tool.Name] = tool
	return nil
}

// Get looks up a tool by name
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all tools sorted by name
func (r *ToolRegistry) List() []Tool {
	r.mu.RLock()
	tools := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	r.mu.RUnlock()

	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// Info returns name and description of every tool, sorted by name
func (r *ToolRegistry) Info() []models.ToolInfo {
	tools := r.List()
	infos := make([]models.ToolInfo, 0, len(tools))
	for _, t := range tools {
		infos = append(infos, models.ToolInfo{Name: t.Name, Description: t.Description})
	}
	return infos
}

// Call invokes the named tool
func (r *ToolRegistry) Call(ctx context.Context, name string) (map[string]string, error) {
	tool, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return tool.Handler(ctx), nil
}
