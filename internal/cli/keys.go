package cli

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

type keyResult struct {
	PublicKey  string `json:"public_key" yaml:"public_key"`
	PrivateKey string `json:"private_key,omitempty" yaml:"private_key,omitempty"`
	KeyFile    string `json:"key_file,omitempty" yaml:"key_file,omitempty"`
}

func addKeyCommands(root *cobra.Command, a *app) {
	root.AddCommand(newKeygenCmd(a), newPubkeyCmd(a), newValidateKeyCmd(a))
}

func newKeygenCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a private key",
		Long: `Generate a random 32-byte private key.

With --out the key is written hex encoded to a new file (mode 0600) and only
the public key is printed. Without it the private key is printed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			priv, err := stdsig.GenerateKey(nil)
			if err != nil {
				return err
			}
			defer priv.Wipe()

			pub, err := stdsig.DerivePublicKey(&priv)
			if err != nil {
				return err
			}
			res := keyResult{PublicKey: hex.EncodeToString(pub[:])}
			if out != "" {
				if err := writeKeyFile(out, &priv); err != nil {
					return err
				}
				res.KeyFile = out
				a.logger.Debug().Str("file", out).Msg("private key written")
			} else {
				res.PrivateKey = hex.EncodeToString(priv[:])
			}

			return a.render(cmd, res, func(w io.Writer) error {
				if res.PrivateKey != "" {
					fmt.Fprintf(w, "private key: %s\n", res.PrivateKey)
				}
				if res.KeyFile != "" {
					fmt.Fprintf(w, "key file:    %s\n", res.KeyFile)
				}
				_, err := fmt.Fprintf(w, "public key:  %s\n", res.PublicKey)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the private key to this file instead of printing it")
	return cmd
}

func newPubkeyCmd(a *app) *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the public key of a private key file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := readKeyFile(keyFile)
			if err != nil {
				return err
			}
			defer k.Wipe()
			pub, err := stdsig.DerivePublicKey((*stdsig.PrivateKey)(k))
			if err != nil {
				return err
			}

			res := keyResult{PublicKey: hex.EncodeToString(pub[:])}
			return a.render(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, res.PublicKey)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&keyFile, "key", "", "private key file (hex)")
	return cmd
}

func newValidateKeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-key PUBLIC_KEY_HEX",
		Short: "Check that a public key decodes to a curve point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := decodeHex("public key", args[0], stdsig.PublicKeyLength)
			if err != nil {
				return err
			}
			pub := stdsig.PublicKey(b)
			if err := stdsig.ValidatePublicKey(&pub); err != nil {
				return err
			}
			res := struct {
				PublicKey string `json:"public_key" yaml:"public_key"`
				Valid     bool   `json:"valid" yaml:"valid"`
			}{hex.EncodeToString(b), true}
			return a.render(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "valid")
				return err
			})
		},
	}
}
