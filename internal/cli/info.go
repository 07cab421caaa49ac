package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/catalyst-network/catalyst-ffi-go/internal/config"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/errcode"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/rangeproof"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

type sizesView struct {
	PrivateKey     int `json:"private_key" yaml:"private_key"`
	PublicKey      int `json:"public_key" yaml:"public_key"`
	Signature      int `json:"signature" yaml:"signature"`
	MaxContext     int `json:"max_context" yaml:"max_context"`
	RangeProof     int `json:"range_proof" yaml:"range_proof"`
	Commitment     int `json:"commitment" yaml:"commitment"`
	RangeProofBits int `json:"range_proof_bits" yaml:"range_proof_bits"`
}

type codeView struct {
	Code int    `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

type infoView struct {
	Version    string         `json:"version" yaml:"version"`
	Transcript string         `json:"transcript_label" yaml:"transcript_label"`
	Sizes      sizesView      `json:"sizes" yaml:"sizes"`
	ErrorCodes []codeView     `json:"error_codes" yaml:"error_codes"`
	Config     *config.Config `json:"config" yaml:"config"`
}

func addInfoCommand(root *cobra.Command, a *app) {
	root.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show sizes, error codes and the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := infoView{
				Version:    root.Version,
				Transcript: rangeproof.TranscriptLabel,
				Sizes: sizesView{
					PrivateKey:     stdsig.PrivateKeyLength,
					PublicKey:      stdsig.PublicKeyLength,
					Signature:      stdsig.SignatureLength,
					MaxContext:     stdsig.ContextMaxLength,
					RangeProof:     rangeproof.ProofSize,
					Commitment:     rangeproof.CommitmentLength,
					RangeProofBits: rangeproof.DefaultBitSize,
				},
				Config: a.cfg,
			}
			for c := errcode.NoError; c <= errcode.SignatureVerificationFailure; c++ {
				v.ErrorCodes = append(v.ErrorCodes, codeView{Code: c.Int(), Name: c.String()})
			}
			return a.render(cmd, v, func(w io.Writer) error { return writeInfoText(w, v) })
		},
	})
}

func writeInfoText(w io.Writer, v infoView) error {
	fmt.Fprintf(w, "version:          %s\n", v.Version)
	fmt.Fprintf(w, "transcript label: %s\n\n", v.Transcript)
	fmt.Fprintln(w, "sizes (bytes):")
	fmt.Fprintf(w, "  private key  %d\n", v.Sizes.PrivateKey)
	fmt.Fprintf(w, "  public key   %d\n", v.Sizes.PublicKey)
	fmt.Fprintf(w, "  signature    %d\n", v.Sizes.Signature)
	fmt.Fprintf(w, "  max context  %d\n", v.Sizes.MaxContext)
	fmt.Fprintf(w, "  range proof  %d (%d-bit)\n", v.Sizes.RangeProof, v.Sizes.RangeProofBits)
	fmt.Fprintf(w, "  commitment   %d\n\n", v.Sizes.Commitment)
	fmt.Fprintln(w, "error codes:")
	for _, c := range v.ErrorCodes {
		fmt.Fprintf(w, "  %d  %s\n", c.Code, c.Name)
	}
	_, err := fmt.Fprintf(w, "\nlog level: %s, audit workers: %d\n", v.Config.Log.Level, v.Config.Audit.Workers)
	return err
}
