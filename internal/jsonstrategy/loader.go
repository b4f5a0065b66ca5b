// Package jsonstrategy loads strategy graphs exported by the node editor as
// JSON. It is the JSON counterpart of the hcl package and produces the same
// format-agnostic config.Strategy.
package jsonstrategy

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/specialistvlad/signalgrid/internal/config"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/specialistvlad/signalgrid/internal/fsutil"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Extension is the file extension the loader picks up.
const Extension = ".json"

type document struct {
	Name  string         `json:"name"`
	Nodes []nodeDocument `json:"nodes"`
	Edges []edgeDocument `json:"edges"`
}

type nodeDocument struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// edgeDocument accepts both the editor's handle form
// (source/sourceHandle/target/targetHandle) and the compact `from`/`to`
// `node.port` form.
type edgeDocument struct {
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
	From         string `json:"from"`
	To           string `json:"to"`
}

// Loader is the JSON implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new JSON strategy loader.
func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Strategy, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, Extension)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", p, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %v", Extension, paths)
	}

	strategy := &config.Strategy{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		part, err := Decode(data, file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		strategy.Merge(part)
	}

	logger.Debug("JSON loading complete.", "files", len(files), "nodes", len(strategy.Nodes), "edges", len(strategy.Edges))
	return strategy, nil
}

// Decode translates one JSON document. origin prefixes node and edge
// origins.
func Decode(data []byte, origin string) (*config.Strategy, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	s := &config.Strategy{Name: doc.Name}
	for i, n := range doc.Nodes {
		attrs, err := attributes(n.Data)
		if err != nil {
			return nil, fmt.Errorf("nodes[%d] '%s': %w", i, n.ID, err)
		}
		s.Nodes = append(s.Nodes, &config.Node{
			Kind:       n.Type,
			ID:         n.ID,
			Attributes: attrs,
			Origin:     fmt.Sprintf("%s#/nodes/%d", origin, i),
		})
	}
	for i, e := range doc.Edges {
		from, to, err := e.refs()
		if err != nil {
			return nil, fmt.Errorf("edges[%d]: %w", i, err)
		}
		s.Edges = append(s.Edges, &config.Edge{
			From:   from,
			To:     to,
			Origin: fmt.Sprintf("%s#/edges/%d", origin, i),
		})
	}
	return s, nil
}

func (e edgeDocument) refs() (from, to nodeid.PortRef, err error) {
	if e.From != "" || e.To != "" {
		if from, err = nodeid.ParsePortRef(e.From); err != nil {
			return from, to, err
		}
		to, err = nodeid.ParsePortRef(e.To)
		return from, to, err
	}
	if from, err = handleRef(e.Source, e.SourceHandle); err != nil {
		return from, to, err
	}
	to, err = handleRef(e.Target, e.TargetHandle)
	return from, to, err
}

func handleRef(node, handle string) (nodeid.PortRef, error) {
	id, err := nodeid.Validate(node)
	if err != nil {
		return nodeid.PortRef{}, err
	}
	if handle == "" {
		return nodeid.PortRef{}, fmt.Errorf("edge endpoint '%s' has no handle", node)
	}
	return nodeid.NewPortRef(id, handle), nil
}

// attributes decodes a `data` object into cty values, keeping numbers
// arbitrary-precision until the graph builder converts them.
func attributes(raw json.RawMessage) (map[string]cty.Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string]cty.Value{}, nil
	}

	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	if !ty.IsObjectType() {
		return nil, fmt.Errorf("data must be an object, got %s", ty.FriendlyName())
	}
	val, err := ctyjson.Unmarshal(raw, ty)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}

	out := make(map[string]cty.Value, len(ty.AttributeTypes()))
	for name, v := range val.AsValueMap() {
		out[name] = v
	}
	return out, nil
}
