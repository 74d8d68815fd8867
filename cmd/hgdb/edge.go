package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hgdb/internal/domain"
)

func newEdgeCmd(flags *globalFlags, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Manage simple hyperedges",
	}
	cmd.AddCommand(
		newEdgePutCmd(flags, a),
		newEdgeGetCmd(flags, a),
		newEdgeListCmd(flags, a),
		newEdgeDeleteCmd(flags, a),
	)
	return cmd
}

func newEdgePutCmd(flags *globalFlags, a *app) *cobra.Command {
	var (
		name        string
		head        []string
		tail        []string
		props       []string
		traversable bool
		file        string
	)

	cmd := &cobra.Command{
		Use:   "put <id>",
		Short: "Create or replace a hyperedge",
		Long: `Create or fully replace the hyperedge stored under <id>.

Build the edge from flags, or read a JSON record with --file. Passing --tail
makes the edge directed.`,
		Example: `  hgdb edge put e1 --name Friendship --head v1,v2 --tail v3 --prop type=linked
  hgdb edge put e2 --file e2.json`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&name, "name", "", "edge name")
	cmd.Flags().StringSliceVar(&head, "head", nil, "head nodes")
	cmd.Flags().StringSliceVar(&tail, "tail", nil, "tail nodes, makes the edge directed")
	cmd.Flags().StringArrayVar(&props, "prop", nil, "property as key=v1,v2 (repeatable)")
	cmd.Flags().BoolVar(&traversable, "traversable", false, "mark the edge traversable")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the edge from a JSON file")

	cmd.RunE = withApp(flags, a, true, func(cmd *cobra.Command, args []string) error {
		var (
			edge *domain.SimpleHyperEdge
			err  error
		)
		if file != "" {
			edge, err = readEdgeFile(file)
		} else {
			edge, err = edgeFromFlags(args[0], name, head, tail, props, traversable)
		}
		if err != nil {
			return err
		}

		if err := a.edges.PutEdge(cmd.Context(), args[0], edge); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flags.output, edge)
	})
	return cmd
}

func newEdgeGetCmd(flags *globalFlags, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a hyperedge",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withApp(flags, a, true, func(cmd *cobra.Command, args []string) error {
		edge, err := a.edges.GetEdge(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flags.output, edge)
	})
	return cmd
}

func newEdgeListCmd(flags *globalFlags, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every decodable hyperedge",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(flags, a, true, func(cmd *cobra.Command, _ []string) error {
		edges, err := a.edges.ListEdges(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flags.output, edges)
	})
	return cmd
}

func newEdgeDeleteCmd(flags *globalFlags, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a hyperedge; duals derived from it are kept",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withApp(flags, a, true, func(cmd *cobra.Command, args []string) error {
		if err := a.edges.DeleteEdge(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	})
	return cmd
}

// edgeFromFlags builds a validated edge from command-line flags
func edgeFromFlags(id, name string, head, tail, props []string, traversable bool) (*domain.SimpleHyperEdge, error) {
	opts := []domain.EdgeOption{domain.WithTraversable(traversable)}
	if len(tail) > 0 {
		opts = append(opts, domain.WithTail(tail...))
	}

	properties := make([]domain.Property, 0, len(props))
	for _, p := range props {
		key, values, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --prop %q, want key=v1,v2", p)
		}
		var vs []string
		if values != "" {
			vs = strings.Split(values, ",")
		}
		properties = append(properties, domain.NewProperty(key, vs...))
	}
	opts = append(opts, domain.WithProperties(properties...))

	if name == "" {
		name = id
	}
	return domain.NewSimpleHyperEdge(id, name, head, opts...)
}

// readEdgeFile decodes a single JSON hyperedge record. Unknown fields and
// trailing data are rejected.
func readEdgeFile(path string) (*domain.SimpleHyperEdge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()

	var edge domain.SimpleHyperEdge
	if err := decoder.Decode(&edge); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: unexpected data after JSON value", path)
	}
	return &edge, nil
}
