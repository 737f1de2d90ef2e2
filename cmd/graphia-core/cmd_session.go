package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/graphia-app/graphia-sub005/adapter"
	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/document"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/spf13/cobra"
)

// adapters is the registry external GraphAdapter implementations plug
// into; graphia-core itself ships none (§1 scopes file-format parsing
// out of this core), so open always falls through to "no adapter found"
// until a build wires one in.
var adapters = adapter.NewRegistry()

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Load a graph file, auto-detecting its format by extension then content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ext := strings.TrimPrefix(filepath.Ext(path), ".")

		a, ok := adapters.ForExtension(ext)
		if !ok {
			data, err := os.ReadFile(path)
			if err != nil {
				return wrapOpenError(err)
			}
			a, ok = adapters.Sniff(data)
			if !ok {
				return wrapOpenError(fmt.Errorf("graphia-core: no adapter registered for %q", path))
			}
		}

		f, err := os.Open(path)
		if err != nil {
			return wrapOpenError(err)
		}
		defer f.Close()

		g, nodeData, edgeData, err := a.Load(cmd.Context(), f, nil)
		if err != nil {
			return wrapOpenError(err)
		}

		loaded := document.New(loadedCfg)
		byOldNode := make(map[ids.NodeId]ids.NodeId, len(g.NodeIds()))
		for _, n := range g.NodeIds() {
			byOldNode[n] = loaded.AddNode()
		}
		byOldEdge := make(map[ids.EdgeId]ids.EdgeId, len(g.EdgeIds()))
		for _, e := range g.EdgeIds() {
			src, tgt := g.Endpoints(e)
			byOldEdge[e] = loaded.AddEdge(byOldNode[src], byOldNode[tgt])
		}
		registerLoadedAttributes(loaded.Registry(), attribute.Node, nodeData, func(old uint32) (uint32, bool) {
			n, ok := byOldNode[ids.NodeId(old)]
			return uint32(n), ok
		})
		registerLoadedAttributes(loaded.Registry(), attribute.Edge, edgeData, func(old uint32) (uint32, bool) {
			e, ok := byOldEdge[ids.EdgeId(old)]
			return uint32(e), ok
		})

		doc = loaded
		fmt.Fprintf(cmd.OutOrStdout(), "loaded %s via %s adapter\n", path, a.Name())
		return nil
	},
}

// registerLoadedAttributes registers each raw string attribute table an
// adapter returned as a Searchable attribute in reg, re-keyed from the
// adapter's own element ids to the freshly assigned ones via remap.
func registerLoadedAttributes(reg *attribute.Registry, elementType attribute.ElementType, data adapter.UserData, remap func(old uint32) (uint32, bool)) {
	names := make(map[string]bool)
	for _, byName := range data {
		for name := range byName {
			names[name] = true
		}
	}
	for name := range names {
		values := make(map[uint32]string)
		for oldID, byName := range data {
			newID, ok := remap(oldID)
			if !ok {
				continue
			}
			if v, ok := byName[name]; ok {
				values[newID] = v
			}
		}
		builder := attribute.NewAttribute(name, elementType, attribute.String).
			WithValueFunc(func(id uint32) attribute.Value { return attribute.StringValue(values[id]) }).
			WithMissingFunc(func(id uint32) bool { _, ok := values[id]; return !ok }).
			WithFlags(attribute.Searchable)
		reg.Register(builder)
	}
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the current session to its session file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionPath == "" {
			return fmt.Errorf("graphia-core: no session file set; use --session or save-as")
		}
		return saveSession(sessionPath, doc)
	},
}

var saveAsCmd = &cobra.Command{
	Use:   "save-as <path>",
	Short: "Persist the current session to a new file and make it the active session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := saveSession(args[0], doc); err != nil {
			return err
		}
		sessionPath = args[0]
		return nil
	},
}
