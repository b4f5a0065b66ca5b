package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/signalgrid/internal/config"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/specialistvlad/signalgrid/internal/fsutil"
)

// Extension is the file extension the loader picks up.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL strategy loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and merges their blocks
// into one strategy, in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Strategy, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %v", Extension, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	strategy := &config.Strategy{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		part := &config.Strategy{Name: root.Name}
		for _, n := range root.Nodes {
			node, err := l.translateNode(ctx, file, n)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			part.Nodes = append(part.Nodes, node)
		}
		for _, e := range root.Edges {
			edge, err := l.translateEdge(e)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			part.Edges = append(part.Edges, edge)
		}
		strategy.Merge(part)
	}

	logger.Debug("HCL loading complete.", "name", strategy.Name, "nodes", len(strategy.Nodes), "edges", len(strategy.Edges))
	return strategy, nil
}

// findAllHCLFiles walks all given paths and returns a flat, de-duplicated
// list of .hcl files.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, Extension)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, f := range files {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			all = append(all, f)
		}
	}
	return all, nil
}
