/*
Package rangeproof implements Pedersen commitments and single-value
Bulletproof range proofs over ristretto255.

A proof shows that a commitment V = v·B + γ·B̃ opens to a value v in
[0, 2^n) without revealing v or γ. The proof is logarithmic in n: for the
default n = 64 it is 672 bytes, made of four points, three scalars and an
inner-product argument with six rounds.

Challenges are drawn from a Merlin transcript. Prover and verifier must
start from transcripts in identical states; ProveSingle and VerifySingle
build a fresh transcript labelled TranscriptLabel and bind the caller's
context into it, so a proof made under one context does not verify under
another.

	blinding := new(ristretto.Scalar).Rand()
	proof, commitment, err := rangeproof.ProveSingle(42, blinding, []byte("invoice-17"))
	if err != nil {
		return err
	}
	err = rangeproof.VerifySingle(proof, commitment, []byte("invoice-17"))

Proofs and commitments use the process-wide generators from
generators.Default unless a Set is passed explicitly.
*/
package rangeproof
