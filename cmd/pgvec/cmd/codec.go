package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/pgvec/vector"
)

// parseFloats parses a comma separated list such as "1,0,2.5"; brackets are
// tolerated so the dense text form can be passed back in.
func parseFloats(s string) ([]float32, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func encode(vals []float32, sparse bool) ([]byte, error) {
	if sparse {
		return vector.EncodeSparseVector(vector.SparseVectorFromDense(vals))
	}
	return vector.EncodeVector(vector.NewVector(vals))
}

func decode(b []byte, sparse bool) (fmt.Stringer, error) {
	if sparse {
		return vector.DecodeSparseVector(b)
	}
	return vector.DecodeVector(b)
}

func newEncodeCmd() *cobra.Command {
	var sparse bool
	c := &cobra.Command{
		Use:   "encode <floats>",
		Short: "Encode a comma separated float list as hex",
		Long: `Encode a comma separated float list in the binary wire format and
print it as hex. With --sparse, zero elements are dropped.

Example:
  pgvec encode --sparse 0,5,0,7`,
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
			b, err := encode(vals, sparse)
			if err != nil {
				return err
			}
			e.logger.Debug("encoded", "bytes", len(b), "sparse", sparse)
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
			return nil
		},
	}
	c.Flags().BoolVar(&sparse, "sparse", false, "Use the sparsevec layout")
	return c
}

func newDecodeCmd() *cobra.Command {
	var sparse bool
	c := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a hex encoded vector and print its text form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFrom(cmd)
			if err != nil {
				return err
			}
			b, err := hex.DecodeString(strings.TrimPrefix(args[0], "\\x"))
			if err != nil {
				return fmt.Errorf("invalid hex: %w", err)
			}
			v, err := decode(b, sparse)
			if err != nil {
				e.logger.Error("decode failed", "error", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}
	c.Flags().BoolVar(&sparse, "sparse", false, "Use the sparsevec layout")
	return c
}
