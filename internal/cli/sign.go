package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

// signResult uses the field names the audit parser reads, so collected
// json outputs can be fed to "catalyst audit" as an array.
type signResult struct {
	Signature string `json:"signature" yaml:"signature"`
	PublicKey string `json:"public_key" yaml:"public_key"`
	Message   string `json:"message" yaml:"message"`
	Context   string `json:"context" yaml:"context"`
}

type verifyResult struct {
	Valid bool   `json:"valid" yaml:"valid"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func addSignCommands(root *cobra.Command, a *app) {
	root.AddCommand(newSignCmd(a), newVerifyCmd(a))
}

func newSignCmd(a *app) *cobra.Command {
	var keyFile, messageFile string
	cmd := &cobra.Command{
		Use:   "sign [MESSAGE]",
		Short: "Sign a message under a context",
		Long: `Sign a message with the private key in --key. Signing is deterministic:
the same key, message and context always give the same signature.

The context defaults to signing.context from the configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := messageInput(cmd, args, messageFile)
			if err != nil {
				return err
			}
			context := contextFlag(cmd, "context", a.cfg.Signing.Context)

			k, err := readKeyFile(keyFile)
			if err != nil {
				return err
			}
			defer k.Wipe()

			sig, pub, err := stdsig.Sign((*stdsig.PrivateKey)(k), message, context)
			if err != nil {
				return err
			}
			a.logger.Debug().Int("message_len", len(message)).Int("context_len", len(context)).Msg("signed")

			res := signResult{
				Signature: hex.EncodeToString(sig[:]),
				PublicKey: hex.EncodeToString(pub[:]),
				Message:   "0x" + hex.EncodeToString(message),
				Context:   "0x" + hex.EncodeToString(context),
			}
			return a.render(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, res.Signature)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&keyFile, "key", "", "private key file (hex)")
	cmd.Flags().String("context", "", "domain-separation context (at most 255 bytes)")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "read the message from a file (- for stdin)")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var pubHex, sigHex, messageFile string
	cmd := &cobra.Command{
		Use:   "verify [MESSAGE]",
		Short: "Verify a signature",
		Long: `Verify a signature over a message and context. Exits non-zero when the
signature does not verify.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := messageInput(cmd, args, messageFile)
			if err != nil {
				return err
			}
			context := contextFlag(cmd, "context", a.cfg.Signing.Context)

			pubBytes, err := decodeHex32("public key", pubHex)
			if err != nil {
				return err
			}
			sigBytes, err := decodeHex("signature", sigHex, stdsig.SignatureLength)
			if err != nil {
				return err
			}
			pub := stdsig.PublicKey(*pubBytes)
			sig := stdsig.Signature(sigBytes)

			verr := stdsig.Verify(&sig, &pub, message, context)
			if verr != nil && !errors.Is(verr, stdsig.ErrVerificationFailed) {
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
	cmd.Flags().StringVar(&pubHex, "pubkey", "", "public key (hex)")
	cmd.Flags().StringVar(&sigHex, "signature", "", "signature (hex)")
	cmd.Flags().String("context", "", "domain-separation context (at most 255 bytes)")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "read the message from a file (- for stdin)")
	return cmd
}

func validText(ok bool) string {
	if ok {
		return "valid"
	}
	return "invalid"
}
