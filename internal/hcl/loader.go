package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/streambridgego/internal/config"
	"github.com/vk/streambridgego/internal/ctxlog"
	"github.com/vk/streambridgego/internal/fsutil"
)

// Loader implements config.Loader for HCL grid files.
type Loader struct {
	evalCtx *hcl.EvalContext
}

// NewLoader returns a loader whose evaluation context exposes the process
// environment as `env.<NAME>`, so feed bodies can reference secrets without
// hardcoding them into the grid file.
func NewLoader() *Loader {
	vars := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && pair[0] != "" {
			vars[pair[0]] = cty.StringVal(pair[1])
		}
	}
	return &Loader{
		evalCtx: &hcl.EvalContext{
			Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
		},
	}
}

// EvalContext returns the shared expression evaluation context used when
// decoding feed bodies.
func (l *Loader) EvalContext() *hcl.EvalContext {
	return l.evalCtx
}

// Load parses every .hcl file found at the given paths (files or
// directories) and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat config path %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("failed to walk config directory %s: %w", path, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in: %s", strings.Join(paths, ", "))
	}
	logger.Debug("Found HCL files to load.", "files", files)

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var grid gridFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &grid); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode grid file %s: %w", file, diags)
		}

		for _, b := range grid.Globals {
			model.Globals = append(model.Globals, translateBinding(b))
		}
		for _, b := range grid.Bridges {
			bridge, err := translateBridge(b)
			if err != nil {
				return nil, fmt.Errorf("invalid bridge block in %s: %w", file, err)
			}
			model.Bridges = append(model.Bridges, bridge)
		}
		logger.Debug("Loaded definitions from HCL file.", "file", file)
	}

	if err := validate(model); err != nil {
		return nil, err
	}

	logger.Info("Grid configuration loaded.", "bridges", len(model.Bridges), "global_bindings", len(model.Globals))
	return model, nil
}

// translateBridge converts the HCL-specific bridge schema into the agnostic model.
func translateBridge(b *bridgeBlock) (*config.Bridge, error) {
	if b.Name == "" {
		return nil, fmt.Errorf("bridge block requires a non-empty name label")
	}
	bridge := &config.Bridge{Name: b.Name}
	for _, f := range b.Feeds {
		bridge.Feeds = append(bridge.Feeds, &config.Feed{
			Kind: f.Kind,
			Name: f.Name,
			Body: f.Body,
		})
	}
	for _, h := range b.Bindings {
		bridge.Bindings = append(bridge.Bindings, translateBinding(h))
	}
	return bridge, nil
}

// translateBinding converts the HCL-specific `on` schema into the agnostic model.
func translateBinding(b *bindingBlock) *config.Binding {
	return &config.Binding{
		Event:   b.Event,
		Handler: b.Handler,
		Done:    b.Done,
	}
}

// validate enforces model-level invariants that gohcl cannot express.
func validate(m *config.Model) error {
	seen := make(map[string]bool)
	for _, b := range m.Bridges {
		if seen[b.Name] {
			return fmt.Errorf("duplicate bridge name %q", b.Name)
		}
		seen[b.Name] = true

		for _, bind := range b.Bindings {
			if bind.Event == "" || bind.Handler == "" {
				return fmt.Errorf("bridge %q has an `on` block with an empty event or handler", b.Name)
			}
		}
	}
	for _, bind := range m.Globals {
		if bind.Event == "" || bind.Handler == "" {
			return fmt.Errorf("top-level `on` block has an empty event or handler")
		}
	}
	return nil
}
