package boundary

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/catalyst-network/catalyst-ffi-go/internal/logging"
	"github.com/catalyst-network/catalyst-ffi-go/internal/secret"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/errcode"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/rangeproof"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

// StdSign signs the message under context with the private key and writes
// the signature (64 bytes) and public key (32 bytes) to the out buffers.
// The out buffers are written only when NoError is returned.
func StdSign(outSig, outPub, privKey, msg unsafe.Pointer, msgLen uintptr, ctx unsafe.Pointer, ctxLen uintptr) (code errcode.Code) {
	const op = "std_sign"
	defer recoverPanic(op, &code)

	context, err := contextView(ctx, ctxLen)
	if err != nil {
		return fail(op, err)
	}
	sigOut, err := fixed64(outSig)
	if err != nil {
		return fail(op, err)
	}
	pubOut, err := fixed32(outPub)
	if err != nil {
		return fail(op, err)
	}
	priv, err := fixed32(privKey)
	if err != nil {
		return fail(op, err)
	}
	message, err := View(msg, msgLen, MaxMessageLength)
	if err != nil {
		return fail(op, err)
	}

	var sig stdsig.Signature
	var pub stdsig.PublicKey
	err = secret.WithKey(priv, func(k *secret.Key) error {
		var err error
		sig, pub, err = stdsig.Sign((*stdsig.PrivateKey)(k), message, context)
		return err
	})
	if err != nil {
		return fail(op, err)
	}

	*sigOut = sig
	*pubOut = pub
	return errcode.NoError
}

// StdVerify checks a signature and stores the outcome in the C bool at
// isVerified. A well-formed signature that does not verify is reported as
// NoError with false; malformed input returns its code and leaves
// isVerified untouched.
func StdVerify(sigPtr, pubPtr, msg unsafe.Pointer, msgLen uintptr, ctx unsafe.Pointer, ctxLen uintptr, isVerified unsafe.Pointer) (code errcode.Code) {
	const op = "std_verify"
	defer recoverPanic(op, &code)

	context, err := contextView(ctx, ctxLen)
	if err != nil {
		return fail(op, err)
	}
	if isVerified == nil {
		return fail(op, ErrNullPointer)
	}
	sigBytes, err := fixed64(sigPtr)
	if err != nil {
		return fail(op, err)
	}
	pubBytes, err := fixed32(pubPtr)
	if err != nil {
		return fail(op, err)
	}
	message, err := View(msg, msgLen, MaxMessageLength)
	if err != nil {
		return fail(op, err)
	}

	sig := stdsig.Signature(*sigBytes)
	pub := stdsig.PublicKey(*pubBytes)
	return writeVerdict(op, stdsig.Verify(&sig, &pub, message, context), stdsig.ErrVerificationFailed, isVerified)
}

// PublicKeyFromPrivate writes the public key of the 32-byte seed at privKey.
func PublicKeyFromPrivate(outPub, privKey unsafe.Pointer) (code errcode.Code) {
	const op = "publickey_from_private"
	defer recoverPanic(op, &code)

	pubOut, err := fixed32(outPub)
	if err != nil {
		return fail(op, err)
	}
	priv, err := fixed32(privKey)
	if err != nil {
		return fail(op, err)
	}

	var pub stdsig.PublicKey
	err = secret.WithKey(priv, func(k *secret.Key) error {
		var err error
		pub, err = stdsig.DerivePublicKey((*stdsig.PrivateKey)(k))
		return err
	})
	if err != nil {
		return fail(op, err)
	}
	*pubOut = pub
	return errcode.NoError
}

// GenerateKey writes a fresh random private key.
func GenerateKey(outKey unsafe.Pointer) (code errcode.Code) {
	const op = "generate_key"
	defer recoverPanic(op, &code)

	keyOut, err := fixed32(outKey)
	if err != nil {
		return fail(op, err)
	}
	priv, err := stdsig.GenerateKey(nil)
	if err != nil {
		return fail(op, err)
	}
	defer priv.Wipe()
	*keyOut = priv
	return errcode.NoError
}

// ValidatePublicKey reports whether the 32 bytes at pubPtr decode to a
// curve point.
func ValidatePublicKey(pubPtr unsafe.Pointer) (code errcode.Code) {
	const op = "validate_public_key"
	defer recoverPanic(op, &code)

	pubBytes, err := fixed32(pubPtr)
	if err != nil {
		return fail(op, err)
	}
	pub := stdsig.PublicKey(*pubBytes)
	if err := stdsig.ValidatePublicKey(&pub); err != nil {
		return fail(op, err)
	}
	return errcode.NoError
}

// CreateRangeProof proves that value fits in 64 bits under the blinding
// factor and context, writing rangeproof.ProofSize bytes to outProof.
func CreateRangeProof(outProof unsafe.Pointer, value uint64, blindingPtr, ctx unsafe.Pointer, ctxLen uintptr) (code errcode.Code) {
	const op = "create_range_proof"
	defer recoverPanic(op, &code)

	context, err := contextView(ctx, ctxLen)
	if err != nil {
		return fail(op, err)
	}
	proofOut, err := fixedN(outProof, rangeproof.ProofSize)
	if err != nil {
		return fail(op, err)
	}
	blinding, err := fixed32(blindingPtr)
	if err != nil {
		return fail(op, err)
	}

	var encoded []byte
	err = secret.WithKey(blinding, func(k *secret.Key) error {
		gamma := rangeproof.BlindingFromBytes((*[32]byte)(k))
		defer gamma.SetZero()
		proof, _, err := rangeproof.ProveSingle(value, gamma, context)
		if err != nil {
			return err
		}
		encoded = proof.Bytes()
		return nil
	})
	if err != nil {
		return fail(op, err)
	}
	if len(encoded) != rangeproof.ProofSize {
		return fail(op, fmt.Errorf("encoded proof is %d bytes", len(encoded)))
	}
	copy(proofOut, encoded)
	return errcode.NoError
}

// PedersenCommit writes the commitment to value under the blinding factor.
func PedersenCommit(outCommitment unsafe.Pointer, value uint64, blindingPtr unsafe.Pointer) (code errcode.Code) {
	const op = "pedersen_commit"
	defer recoverPanic(op, &code)

	commitmentOut, err := fixed32(outCommitment)
	if err != nil {
		return fail(op, err)
	}
	blinding, err := fixed32(blindingPtr)
	if err != nil {
		return fail(op, err)
	}

	var commitment rangeproof.Commitment
	err = secret.WithKey(blinding, func(k *secret.Key) error {
		gamma := rangeproof.BlindingFromBytes((*[32]byte)(k))
		defer gamma.SetZero()
		commitment = rangeproof.Commit(value, gamma)
		return nil
	})
	if err != nil {
		return fail(op, err)
	}
	*commitmentOut = commitment
	return errcode.NoError
}

// VerifyRangeProof checks a rangeproof.ProofSize-byte proof against a
// commitment and context, storing the outcome at isVerified as StdVerify
// does.
func VerifyRangeProof(proofPtr, commitmentPtr, ctx unsafe.Pointer, ctxLen uintptr, isVerified unsafe.Pointer) (code errcode.Code) {
	const op = "verify_range_proof"
	defer recoverPanic(op, &code)

	context, err := contextView(ctx, ctxLen)
	if err != nil {
		return fail(op, err)
	}
	if isVerified == nil {
		return fail(op, ErrNullPointer)
	}
	proofBytes, err := fixedN(proofPtr, rangeproof.ProofSize)
	if err != nil {
		return fail(op, err)
	}
	commitmentBytes, err := fixed32(commitmentPtr)
	if err != nil {
		return fail(op, err)
	}

	proof, err := rangeproof.ProofFromBytes(proofBytes)
	if err != nil {
		return fail(op, err)
	}
	commitment, err := rangeproof.CommitmentFromBytes(commitmentBytes[:])
	if err != nil {
		return fail(op, err)
	}
	return writeVerdict(op, rangeproof.VerifySingle(proof, commitment, context), rangeproof.ErrVerificationFailed, isVerified)
}

// Length accessors for the C surface.

func PrivateKeyLength() int { return stdsig.PrivateKeyLength }
func PublicKeyLength() int { return stdsig.PublicKeyLength }
func SignatureLength() int { return stdsig.SignatureLength }
func MaxContextLength() int { return stdsig.ContextMaxLength }
func RangeProofLength() int { return rangeproof.ProofSize }
func CommitmentLength() int { return rangeproof.CommitmentLength }

// writeVerdict turns a verification error into the isVerified result:
// nil is true, rejected is false, anything else is returned as a code.
func writeVerdict(op string, err, rejected error, isVerified unsafe.Pointer) errcode.Code {
	switch {
	case err == nil:
		*(*bool)(isVerified) = true
	case errors.Is(err, rejected):
		logging.Default().Debug().Str("op", op).Msg("verification rejected")
		*(*bool)(isVerified) = false
	default:
		return fail(op, err)
	}
	return errcode.NoError
}

func fail(op string, err error) errcode.Code {
	code := errcode.FromError(err)
	logging.Default().Debug().
		Str("op", op).
		Stringer("code", code).
		Str("error", logging.FilterSensitiveValue(err.Error())).
		Msg("call failed")
	return code
}

// recoverPanic stops a panic at the boundary and reports it as
// InternalError. Only the panic value's text, filtered, is logged.
func recoverPanic(op string, code *errcode.Code) {
	if r := recover(); r != nil {
		*code = errcode.InternalError
		logging.Default().Error().
			Str("op", op).
			Str("panic", logging.FilterSensitiveValue(fmt.Sprint(r))).
			Msg("recovered panic")
	}
}
