package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/errcode"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/nonceaudit"
)

// ErrRelatedNonces is returned by audit when at least one pair of
// signatures shares or relates its nonces.
var ErrRelatedNonces = errors.New("related nonces found")

type findingView struct {
	nonceaudit.Finding `yaml:",inline"`
	Scalar             string `json:"scalar,omitempty" yaml:"scalar,omitempty"`
}

type auditView struct {
	Signatures   int           `json:"signatures" yaml:"signatures"`
	PairsChecked int           `json:"pairs_checked" yaml:"pairs_checked"`
	Duplicates   int           `json:"duplicates" yaml:"duplicates"`
	Truncated    bool          `json:"truncated" yaml:"truncated"`
	Findings     []findingView `json:"findings" yaml:"findings"`
}

func addAuditCommand(root *cobra.Command, a *app) {
	var (
		relation []int64
		aRange   []int64
		bRange   []int64
		reveal   bool
		workers  int
		maxPairs int
	)
	cmd := &cobra.Command{
		Use:   "audit FILE",
		Short: "Check a batch of signatures for reused or related nonces",
		Long: `Read a batch of signatures (JSON array, or CSV for .csv files) and look for pairs signed by the same key
whose nonces are equal or satisfy r2 = a*r1 + b. Any such pair reveals the
signing scalar. Exits non-zero when a finding is reported.

Each entry needs "signature" (or "r" and "s"), "public_key" and "message";
"context" is optional. Text values starting with 0x are read as hex.

  catalyst audit batch.json
  catalyst audit batch.json --relation 1,12345
  catalyst audit batch.json -o yaml --reveal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := nonceaudit.ParserFor(args[0]).ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", errcode.ErrInvalidInput, err)
			}

			opts := nonceaudit.DefaultOptions()
			opts.Workers = a.cfg.Audit.Workers
			opts.MaxPairs = a.cfg.Audit.MaxPairs
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("max-pairs") {
				opts.MaxPairs = maxPairs
			}
			if cmd.Flags().Changed("a-range") || cmd.Flags().Changed("b-range") {
				r, err := customRange(aRange, bRange)
				if err != nil {
					return err
				}
				opts.Ranges = []nonceaudit.SearchRange{r}
			}
			auditor := nonceaudit.New(opts, nonceaudit.WithLogger(a.logger.With().Str("component", "audit").Logger()))

			var report *nonceaudit.Report
			if cmd.Flags().Changed("relation") {
				if len(relation) != 2 {
					return fmt.Errorf("%w: --relation takes a,b", errcode.ErrInvalidInput)
				}
				report, err = recoverKnown(cmd, auditor, records, nonceaudit.Relation{A: relation[0], B: relation[1]})
			} else {
				report, err = auditor.Audit(cmd.Context(), records)
			}
			if err != nil {
				return err
			}

			view := newAuditView(report, reveal)
			if err := a.render(cmd, view, func(w io.Writer) error { return writeAuditText(w, view) }); err != nil {
				return err
			}
			if !report.Clean() {
				return fmt.Errorf("%w: %d pair(s)", ErrRelatedNonces, len(report.Findings))
			}
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&relation, "relation", nil, "only try the known relation a,b")
	cmd.Flags().Int64SliceVar(&aRange, "a-range", []int64{1, 1}, "range search bounds for a (min,max)")
	cmd.Flags().Int64SliceVar(&bRange, "b-range", []int64{-100, 100}, "range search bounds for b (min,max)")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "include recovered signing scalars in the output")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default audit.workers)")
	cmd.Flags().IntVar(&maxPairs, "max-pairs", 0, "maximum pairs to examine (default audit.max_pairs)")
	root.AddCommand(cmd)
}

// customRange replaces the default search phases with a single rectangle.
func customRange(a, b []int64) (nonceaudit.SearchRange, error) {
	if len(a) != 2 || len(b) != 2 || a[0] > a[1] || b[0] > b[1] {
		return nonceaudit.SearchRange{}, fmt.Errorf("%w: ranges take min,max", errcode.ErrInvalidInput)
	}
	return nonceaudit.SearchRange{A: [2]int64{a[0], a[1]}, B: [2]int64{b[0], b[1]}, Name: "custom"}, nil
}

func recoverKnown(cmd *cobra.Command, auditor *nonceaudit.Auditor, records []nonceaudit.Record, rel nonceaudit.Relation) (*nonceaudit.Report, error) {
	report := &nonceaudit.Report{Signatures: len(records)}
	f, err := auditor.RecoverWithRelation(cmd.Context(), records, rel)
	switch {
	case errors.Is(err, nonceaudit.ErrNoRelation):
		return report, nil
	case err != nil:
		return nil, err
	}
	report.Findings = []nonceaudit.Finding{*f}
	return report, nil
}

func newAuditView(r *nonceaudit.Report, reveal bool) auditView {
	v := auditView{
		Signatures:   r.Signatures,
		PairsChecked: r.PairsChecked,
		Duplicates:   r.Duplicates,
		Truncated:    r.Truncated,
		Findings:     make([]findingView, 0, len(r.Findings)),
	}
	for _, f := range r.Findings {
		fv := findingView{Finding: f}
		if reveal {
			fv.Scalar = hex.EncodeToString(f.Scalar[:])
		}
		v.Findings = append(v.Findings, fv)
	}
	return v
}

func writeAuditText(w io.Writer, v auditView) error {
	fmt.Fprintf(w, "signatures: %d, pairs checked: %d, duplicates: %d\n", v.Signatures, v.PairsChecked, v.Duplicates)
	if v.Truncated {
		fmt.Fprintln(w, "pair limit reached; not every pair was examined")
	}
	if len(v.Findings) == 0 {
		_, err := fmt.Fprintln(w, "no related nonces found")
		return err
	}
	for _, f := range v.Findings {
		fmt.Fprintf(w, "[%d, %d] %s (%s) verified=%t\n", f.Pair[0], f.Pair[1], f.Pattern, f.Relation, f.Verified)
		if f.Scalar != "" {
			fmt.Fprintf(w, "  scalar: %s\n", f.Scalar)
		}
	}
	return nil
}
