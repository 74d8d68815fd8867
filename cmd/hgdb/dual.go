package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hgdb/internal/domain"
)

func newDualCmd(flags *globalFlags, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dual",
		Short: "Synthesize and inspect dual hyperedges",
	}

	create := &cobra.Command{
		Use:   "create <edge-id>",
		Short: "Synthesize and store the dual of a hyperedge",
		Args:  cobra.ExactArgs(1),
	}
	create.RunE = withApp(flags, a, true, func(cmd *cobra.Command, args []string) error {
		synthesis, err := a.duals.CreateDual(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flags.output, synthesis)
	})

	var bySource bool
	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a stored dual",
		Long: `Show a stored dual by its own id, e.g. dual_e1.

With --source the argument is the id of the source edge instead. Use it for
source edges whose id itself starts with "dual_".`,
		Example: `  hgdb dual get dual_e1
  hgdb dual get --source e1`,
		Args: cobra.ExactArgs(1),
	}
	get.Flags().BoolVar(&bySource, "source", false, "treat the argument as the source edge id")
	get.RunE = withApp(flags, a, true, func(cmd *cobra.Command, args []string) error {
		var (
			dual *domain.DualHyperEdge
			err  error
		)
		if bySource {
			dual, err = a.duals.GetDualOf(cmd.Context(), args[0])
		} else {
			dual, err = a.duals.GetDual(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flags.output, dual)
	})

	list := &cobra.Command{
		Use:   "list",
		Short: "List every decodable dual",
		Args:  cobra.NoArgs,
	}
	list.RunE = withApp(flags, a, true, func(cmd *cobra.Command, _ []string) error {
		duals, err := a.duals.ListDuals(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flags.output, duals)
	})

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored dual",
		Args:  cobra.ExactArgs(1),
	}
	del.RunE = withApp(flags, a, true, func(cmd *cobra.Command, args []string) error {
		if err := a.duals.DeleteDual(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	})

	hypergraph := &cobra.Command{
		Use:   "hypergraph [edge-id...]",
		Short: "Derive the node-centric dual of stored hyperedges (all when none given)",
	}
	hypergraph.RunE = withApp(flags, a, true, func(cmd *cobra.Command, args []string) error {
		dual, err := a.duals.DualHypergraph(cmd.Context(), args)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flags.output, dual)
	})

	cmd.AddCommand(create, get, list, del, hypergraph)
	return cmd
}

func newIncidenceCmd(flags *globalFlags, a *app) *cobra.Command {
	var nodes []string

	cmd := &cobra.Command{
		Use:     "incidence <edge-id...>",
		Short:   "Build the node×hyperedge incidence matrix over stored hyperedges",
		Example: `  hgdb incidence e1 e2 --nodes v1,v2,v3`,
		Args:    cobra.MinimumNArgs(1),
	}
	cmd.Flags().StringSliceVar(&nodes, "nodes", nil, "row order (default: union of the edges' nodes)")

	cmd.RunE = withApp(flags, a, true, func(cmd *cobra.Command, args []string) error {
		result, err := a.duals.Incidence(cmd.Context(), nodes, args)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flags.output, result)
	})
	return cmd
}
