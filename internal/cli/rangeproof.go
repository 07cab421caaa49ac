package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/bwesterb/go-ristretto"
	"github.com/spf13/cobra"

	"github.com/catalyst-network/catalyst-ffi-go/internal/secret"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/errcode"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/generators"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/rangeproof"
)

type commitResult struct {
	Commitment string `json:"commitment" yaml:"commitment"`
	Blinding   string `json:"blinding,omitempty" yaml:"blinding,omitempty"`
}

type proveResult struct {
	Proof      string `json:"proof" yaml:"proof"`
	Commitment string `json:"commitment" yaml:"commitment"`
	Bits       int    `json:"bits" yaml:"bits"`
	Size       int    `json:"size" yaml:"size"`
}

func addRangeProofCommands(root *cobra.Command, a *app) {
	root.AddCommand(newCommitCmd(a), newProveCmd(a), newVerifyProofCmd(a))
}

// blindingInput decodes the --blinding flag. When it is empty and
// allowRandom is set, a random blinding factor is drawn and returned hex
// encoded so the caller can print it.
func blindingInput(blindingHex string, allowRandom bool) (*ristretto.Scalar, string, error) {
	if blindingHex == "" {
		if !allowRandom {
			return nil, "", fmt.Errorf("%w: --blinding is required", errcode.ErrInvalidInput)
		}
		var gamma ristretto.Scalar
		gamma.Rand()
		return &gamma, hex.EncodeToString(gamma.Bytes()), nil
	}
	b, err := decodeHex32("blinding", blindingHex)
	if err != nil {
		return nil, "", err
	}
	defer secret.Wipe(b[:])
	return rangeproof.BlindingFromBytes(b), "", nil
}

func newCommitCmd(a *app) *cobra.Command {
	var (
		value       uint64
		blindingHex string
	)
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Compute a Pedersen commitment",
		Long: `Compute value·B + blinding·B̃ with the default generators. Without
--blinding a random blinding factor is drawn and printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gamma, drawn, err := blindingInput(blindingHex, true)
			if err != nil {
				return err
			}
			defer gamma.SetZero()

			c := rangeproof.Commit(value, gamma)
			res := commitResult{Commitment: hex.EncodeToString(c[:]), Blinding: drawn}
			return a.render(cmd, res, func(w io.Writer) error {
				if res.Blinding != "" {
					fmt.Fprintf(w, "blinding:   %s\n", res.Blinding)
				}
				_, err := fmt.Fprintf(w, "commitment: %s\n", res.Commitment)
				return err
			})
		},
	}
	cmd.Flags().Uint64Var(&value, "value", 0, "committed value")
	cmd.Flags().StringVar(&blindingHex, "blinding", "", "blinding factor (32 bytes hex, reduced mod the group order)")
	return cmd
}

func newProveCmd(a *app) *cobra.Command {
	var (
		value       uint64
		blindingHex string
		bits        int
	)
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Prove that a committed value lies in [0, 2^bits)",
		Long: `Create a range proof for value under the given blinding factor. The
commitment is printed alongside the proof. Proof width defaults to
rangeproof.bits and the context to rangeproof.context.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("bits") {
				bits = a.cfg.RangeProof.Bits
			}
			context := contextFlag(cmd, "context", a.cfg.RangeProof.Context)

			gamma, _, err := blindingInput(blindingHex, false)
			if err != nil {
				return err
			}
			defer gamma.SetZero()

			t, err := rangeproof.NewTranscript(context)
			if err != nil {
				return err
			}
			proof, commitment, err := rangeproof.Prove(generators.Default(), t, value, gamma, bits)
			if err != nil {
				return err
			}
			encoded := proof.Bytes()
			a.logger.Debug().Int("bits", bits).Int("size", len(encoded)).Msg("range proof created")

			res := proveResult{
				Proof:      hex.EncodeToString(encoded),
				Commitment: hex.EncodeToString(commitment[:]),
				Bits:       bits,
				Size:       len(encoded),
			}
			return a.render(cmd, res, func(w io.Writer) error {
				fmt.Fprintf(w, "commitment: %s\n", res.Commitment)
				_, err := fmt.Fprintf(w, "proof:      %s\n", res.Proof)
				return err
			})
		},
	}
	cmd.Flags().Uint64Var(&value, "value", 0, "secret value")
	cmd.Flags().StringVar(&blindingHex, "blinding", "", "blinding factor (32 bytes hex)")
	cmd.Flags().IntVar(&bits, "bits", rangeproof.DefaultBitSize, "range width: 8, 16, 32 or 64")
	cmd.Flags().String("context", "", "transcript context (at most 255 bytes)")
	return cmd
}

func newVerifyProofCmd(a *app) *cobra.Command {
	var proofHex, commitmentHex string
	cmd := &cobra.Command{
		Use:   "verify-proof",
		Short: "Verify a range proof against a commitment",
		Long: `Verify a range proof. The range width is taken from the proof length.
Exits non-zero when the proof does not verify.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			context := contextFlag(cmd, "context", a.cfg.RangeProof.Context)

			proofBytes, err := decodeHex("proof", proofHex, 0)
			if err != nil {
				return err
			}
			commitmentBytes, err := decodeHex("commitment", commitmentHex, rangeproof.CommitmentLength)
			if err != nil {
				return err
			}
			proof, err := rangeproof.ProofFromBytes(proofBytes)
			if err != nil {
				return err
			}
			commitment, err := rangeproof.CommitmentFromBytes(commitmentBytes)
			if err != nil {
				return err
			}
			t, err := rangeproof.NewTranscript(context)
			if err != nil {
				return err
			}

			verr := rangeproof.Verify(generators.Default(), t, proof, commitment, proof.BitSize())
			if verr != nil && !errors.Is(verr, rangeproof.ErrVerificationFailed) {
				return verr
			}
			res := verifyResult{Valid: verr == nil}
			if verr != nil {
				res.Error = verr.Error()
			}
			if err := a.render(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, validText(res.Valid))
				return err
			}); err != nil {
				return err
			}
			return verr
		},
	}
	cmd.Flags().StringVar(&proofHex, "proof", "", "proof (hex)")
	cmd.Flags().StringVar(&commitmentHex, "commitment", "", "commitment (hex)")
	cmd.Flags().String("context", "", "transcript context (at most 255 bytes)")
	return cmd
}
