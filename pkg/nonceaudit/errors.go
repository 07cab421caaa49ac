package nonceaudit

import "errors"

var (
	ErrTooFewSignatures = errors.New("nonceaudit: need at least 2 signatures")
	ErrDegenerate       = errors.New("nonceaudit: relation gives no information about the key")
	ErrNoRelation       = errors.New("nonceaudit: no pair satisfies the relation")
	ErrMalformedRecord  = errors.New("nonceaudit: malformed record")
)
