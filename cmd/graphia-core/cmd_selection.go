package main

import (
	"fmt"
	"strconv"

	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/selection"
	"github.com/spf13/cobra"
)

var (
	findRegex         bool
	findCaseSensitive bool
	zoomComponent     int64
)

var selectCmd = &cobra.Command{
	Use:   "select <nodeId...>",
	Short: "Replace the current selection with the given node ids",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodeIds := make([]ids.NodeId, 0, len(args))
		for _, a := range args {
			v, err := strconv.ParseUint(a, 10, 32)
			if err != nil {
				return fmt.Errorf("graphia-core: invalid node id %q: %w", a, err)
			}
			nodeIds = append(nodeIds, ids.NodeId(v))
		}
		doc.Selection().Clear()
		doc.Selection().Select(nodeIds)
		return nil
	},
}

var clearSelectionCmd = &cobra.Command{
	Use:   "clear-selection",
	Short: "Empty the current selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc.Selection().Clear()
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:   "find <pattern>",
	Short: "Select the nodes whose searchable attributes match pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		found, err := doc.Find(args[0], selection.SearchOptions{
			CaseSensitive:   findCaseSensitive,
			MatchUsingRegex: findRegex,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d node(s) selected\n", len(found))
		return nil
	},
}

var zoomCmd = &cobra.Command{
	Use:   "zoom",
	Short: "Point the camera at the current selection, or a component with --component",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("component") {
			doc.ZoomToComponent(ids.ComponentId(zoomComponent))
			return nil
		}
		doc.ZoomToSelection()
		return nil
	},
}

func init() {
	findCmd.Flags().BoolVar(&findRegex, "regex", false, "treat pattern as a regular expression")
	findCmd.Flags().BoolVar(&findCaseSensitive, "case-sensitive", false, "match case-sensitively")
	zoomCmd.Flags().Int64Var(&zoomComponent, "component", 0, "zoom to this component's own camera instead of the selection")
}
