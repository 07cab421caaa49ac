// Package nonceaudit checks batches of stdsig signatures for nonces that are
// reused or affinely related (r2 = a·r1 + b), and recovers the signing
// scalar when they are.
//
// stdsig derives its nonces deterministically, so a correct signer never
// trips the audit. The package exists to vet signatures produced by other
// implementations of the same scheme, or by a signer whose nonce derivation
// is suspected to be broken.
//
// For a pair signed by the same key, s = r + e·x gives
//
//	s1 = r1 + e1·x
//	s2 = r2 + e2·x
//	r2 = a·r1 + b
//
// and therefore
//
//	x = (s2 - a·s1 - b) / (e2 - a·e1) mod L
//
// Nonces are never visible directly, only R = r·B. The audit therefore tests
// a candidate relation on the points, R2 == a·R1 + b·B, before solving for x.
//
// Basic Usage:
//
//	records, err := (&nonceaudit.JSONParser{}).ParseFile("signatures.json")
//	report, err := nonceaudit.New(nonceaudit.DefaultOptions()).Audit(ctx, records)
//	for _, f := range report.Findings {
//		fmt.Println(f.Pair, f.Pattern, f.Verified)
//	}
//
// Custom patterns and search ranges:
//
//	opts := nonceaudit.DefaultOptions()
//	opts.Patterns = append(opts.Patterns, nonceaudit.Pattern{
//		Relation: nonceaudit.Relation{A: 1, B: 12345}, Name: "step_12345", Priority: 1,
//	})
//	opts.Ranges = []nonceaudit.SearchRange{{A: [2]int64{1, 10}, B: [2]int64{-50000, 50000}}}
//	auditor := nonceaudit.New(opts, nonceaudit.WithLogger(logger))
//
// Use it only on signatures you own or are authorised to analyse.
package nonceaudit
