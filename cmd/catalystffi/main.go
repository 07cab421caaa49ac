// Command catalystffi builds the C shared library:
//
//	go build -buildmode=c-shared -o libcatalyst.so ./cmd/catalystffi
//
// Every export returns an errcode.Code as a C int. Fixed-size arrays are
// passed by pointer; variable-length data as pointer plus length.
//
// Logging is off unless CATALYST_LOG_LEVEL or a catalyst.yaml enables it;
// CATALYST_CONFIG may name the config file.
package main

/*
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/catalyst-network/catalyst-ffi-go/internal/boundary"
	"github.com/catalyst-network/catalyst-ffi-go/internal/config"
	"github.com/catalyst-network/catalyst-ffi-go/internal/logging"
)

func init() {
	cfg, err := config.Load(os.Getenv("CATALYST_CONFIG"))
	if err != nil {
		return
	}
	if os.Getenv("CATALYST_LOG_LEVEL") == "" && cfg.Log.File == "" {
		return
	}
	logger, _, err := logging.New(cfg.Log.Options(), os.Stderr)
	if err != nil {
		return
	}
	logging.SetDefault(logger.With().Str("component", "catalystffi").Logger())
}

//export std_sign
func std_sign(outSignature, outPublicKey, privateKey, message *C.uint8_t, messageLength C.size_t, context *C.uint8_t, contextLength C.size_t) C.int {
	return C.int(boundary.StdSign(
		unsafe.Pointer(outSignature),
		unsafe.Pointer(outPublicKey),
		unsafe.Pointer(privateKey),
		unsafe.Pointer(message), uintptr(messageLength),
		unsafe.Pointer(context), uintptr(contextLength),
	))
}

//export std_verify
func std_verify(signature, publicKey, message *C.uint8_t, messageLength C.size_t, context *C.uint8_t, contextLength C.size_t, isVerified *C.bool) C.int {
	return C.int(boundary.StdVerify(
		unsafe.Pointer(signature),
		unsafe.Pointer(publicKey),
		unsafe.Pointer(message), uintptr(messageLength),
		unsafe.Pointer(context), uintptr(contextLength),
		unsafe.Pointer(isVerified),
	))
}

//export publickey_from_private
func publickey_from_private(outPublicKey, privateKey *C.uint8_t) C.int {
	return C.int(boundary.PublicKeyFromPrivate(unsafe.Pointer(outPublicKey), unsafe.Pointer(privateKey)))
}

//export generate_key
func generate_key(outKey *C.uint8_t) C.int {
	return C.int(boundary.GenerateKey(unsafe.Pointer(outKey)))
}

//export validate_public_key
func validate_public_key(publicKey *C.uint8_t) C.int {
	return C.int(boundary.ValidatePublicKey(unsafe.Pointer(publicKey)))
}

//export create_range_proof
func create_range_proof(outProof *C.uint8_t, secretValue C.uint64_t, blinding, context *C.uint8_t, contextLength C.size_t) C.int {
	return C.int(boundary.CreateRangeProof(
		unsafe.Pointer(outProof),
		uint64(secretValue),
		unsafe.Pointer(blinding),
		unsafe.Pointer(context), uintptr(contextLength),
	))
}

//export pedersen_commit
func pedersen_commit(outCommitment *C.uint8_t, value C.uint64_t, blinding *C.uint8_t) C.int {
	return C.int(boundary.PedersenCommit(unsafe.Pointer(outCommitment), uint64(value), unsafe.Pointer(blinding)))
}

//export verify_range_proof
func verify_range_proof(proof, commitment, context *C.uint8_t, contextLength C.size_t, isVerified *C.bool) C.int {
	return C.int(boundary.VerifyRangeProof(
		unsafe.Pointer(proof),
		unsafe.Pointer(commitment),
		unsafe.Pointer(context), uintptr(contextLength),
		unsafe.Pointer(isVerified),
	))
}

//export get_private_key_length
func get_private_key_length() C.int { return C.int(boundary.PrivateKeyLength()) }

//export get_public_key_length
func get_public_key_length() C.int { return C.int(boundary.PublicKeyLength()) }

//export get_signature_length
func get_signature_length() C.int { return C.int(boundary.SignatureLength()) }

//export get_max_context_length
func get_max_context_length() C.int { return C.int(boundary.MaxContextLength()) }

//export get_bulletproof_length
func get_bulletproof_length() C.int { return C.int(boundary.RangeProofLength()) }

func main() {}
