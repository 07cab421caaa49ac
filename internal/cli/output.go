package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/catalyst-network/catalyst-ffi-go/internal/secret"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/errcode"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

// render writes v in the selected output format. text renders the
// human-readable form.
func (a *app) render(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	w := cmd.OutOrStdout()
	switch a.flags.Output {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// decodeHex decodes a hex flag or argument, accepting an optional 0x
// prefix. size > 0 enforces an exact decoded length.
func decodeHex(name, s string, size int) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errcode.ErrInvalidInput, name, err)
	}
	if size > 0 && len(b) != size {
		return nil, fmt.Errorf("%w: %s must be %d bytes, got %d", errcode.ErrInvalidInput, name, size, len(b))
	}
	return b, nil
}

func decodeHex32(name, s string) (*[32]byte, error) {
	b, err := decodeHex(name, s, 32)
	if err != nil {
		return nil, err
	}
	return (*[32]byte)(b), nil
}

// readKeyFile reads a hex-encoded 32-byte secret from path. The file
// contents are wiped once decoded; the caller must Wipe the result.
func readKeyFile(path string) (*secret.Key, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: --key is required", errcode.ErrInvalidInput)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	defer secret.Wipe(raw)

	text := strings.TrimSpace(string(raw))
	text = strings.TrimPrefix(text, "0x")
	if len(text) != 2*secret.KeySize {
		return nil, fmt.Errorf("%w: key file must hold %d hex characters", errcode.ErrInvalidInput, 2*secret.KeySize)
	}
	var k secret.Key
	if _, err := hex.Decode(k[:], []byte(text)); err != nil {
		k.Wipe()
		return nil, fmt.Errorf("%w: key file is not hex", errcode.ErrInvalidInput)
	}
	return &k, nil
}

// writeKeyFile writes key as hex to path with owner-only permissions. It
// refuses to overwrite an existing file.
func writeKeyFile(path string, key *stdsig.PrivateKey) error {
	buf := secret.NewBuffer(2*stdsig.PrivateKeyLength + 1)
	defer buf.Release()
	hex.Encode(buf.Bytes(), key[:])
	buf.Bytes()[2*stdsig.PrivateKeyLength] = '\n'

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return f.Close()
}

// messageInput returns the message from the positional argument or, when
// file is set, from that file ("-" is stdin).
func messageInput(cmd *cobra.Command, args []string, file string) ([]byte, error) {
	switch {
	case file != "" && len(args) > 0:
		return nil, fmt.Errorf("%w: give the message as an argument or with --message-file, not both", errcode.ErrInvalidInput)
	case file == "-":
		return io.ReadAll(cmd.InOrStdin())
	case file != "":
		return os.ReadFile(file)
	case len(args) == 1:
		return []byte(args[0]), nil
	default:
		return nil, fmt.Errorf("%w: a message is required", errcode.ErrInvalidInput)
	}
}

func contextFlag(cmd *cobra.Command, flag, fallback string) []byte {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return []byte(v)
	}
	return []byte(fallback)
}
