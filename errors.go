package elemattr

import "errors"

// Sentinel errors for declaration and binding operations.
var (
	ErrNoSeparator     = errors.New("elemattr: attribute name has no word boundary")
	ErrUnsupportedKind = errors.New("elemattr: value shape matches no supported kind")
	ErrKindMismatch    = errors.New("elemattr: value does not match declared kind")
	ErrDecodeShape     = errors.New("elemattr: attribute text decoded to the wrong shape")
	ErrNotDeclared     = errors.New("elemattr: property is not declared")
	ErrNotMounted      = errors.New("elemattr: component is not mounted")
	ErrUnknownTag      = errors.New("elemattr: no component defined for tag")
)

// Sentinel errors for state snapshot transport.
var (
	ErrInvalidFormat    = errors.New("elemattr: invalid snapshot format")
	ErrSignatureInvalid = errors.New("elemattr: snapshot signature verification failed")
	ErrDecryptFailed    = errors.New("elemattr: snapshot decryption failed")
)

// IsNamingError checks if err came from attribute-name derivation.
func IsNamingError(err error) bool {
	return errors.Is(err, ErrNoSeparator)
}

// IsKindError checks if err is a kind classification or mismatch error.
func IsKindError(err error) bool {
	return errors.Is(err, ErrUnsupportedKind) || errors.Is(err, ErrKindMismatch)
}

// IsDecodeError checks if err came from decoding attribute text.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecodeShape)
}

// IsSnapshotError checks if err is a snapshot decoding, signature or
// decryption failure.
func IsSnapshotError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrSignatureInvalid) || errors.Is(err, ErrDecryptFailed)
}
