package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/pgvec/engine"
	"github.com/viant/pgvec/store"
	"github.com/viant/pgvec/vecsql"
	"github.com/viant/pgvec/vector"
)

func newRoundtripCmd() *cobra.Command {
	var sparse bool
	c := &cobra.Command{
		Use:   "roundtrip <floats>",
		Short: "Store a vector in SQLite and print the text form read back",
		Long: `Store a vector in the items table of the configured SQLite database
and print the text form rendered by the vec_text / sparsevec_text SQL
functions, followed by the item id.

Example:
  pgvec roundtrip --sparse 1,2,3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFrom(cmd)
			if err != nil {
				return err
			}
			vals, err := parseFloats(args[0])
			if err != nil {
				return err
			}

			if err := engine.RegisterVectorFunctions(nil); err != nil {
				return err
			}
			db, err := engine.Open(e.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			s, err := store.New(ctx, db, e.logger)
			if err != nil {
				return err
			}

			var item store.Item
			if sparse {
				item.Sparse = vecsql.NullSparseVector{SparseVector: vector.SparseVectorFromDense(vals), Valid: true}
			} else {
				item.Embedding = vecsql.NullVector{Vector: vector.NewVector(vals), Valid: true}
			}
			ids, err := s.Add(ctx, []store.Item{item})
			if err != nil {
				return err
			}
			dense, sparseText, err := s.Text(ctx, ids[0])
			if err != nil {
				return err
			}
			text := dense
			if sparse {
				text = sparseText
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", text, ids[0])
			return nil
		},
	}
	c.Flags().BoolVar(&sparse, "sparse", false, "Use the sparsevec layout")
	return c
}
