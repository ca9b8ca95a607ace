// Package encoding serializes element attribute state for transport.
//
// A mounted element's attributes are its entire bound state, so a snapshot
// of (tag, attribute names, attribute texts) is enough to reconstruct the
// element on another request. Snapshots are msgpack-packed and either signed
// (visible but tamper-proof) or encrypted (opaque), because attribute state
// round-trips through clients.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors surfaced to callers through the root package's wrappers.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// Snapshot is a point-in-time capture of an element's attribute state.
// Names and Texts are parallel slices in the element's attribute order;
// order is preserved so restoring reproduces the original iteration order.
type Snapshot struct {
	Tag   string   `msgpack:"t"`
	Names []string `msgpack:"n"`
	Texts []string `msgpack:"v"`
}

// Encoder packs, signs or encrypts attribute snapshots.
//
// Two modes:
//   - Signed (default): base64 msgpack + HMAC signature, visible but tamper-proof
//   - Encrypted: AES-256-GCM, fully opaque
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder with the given key.
// Keys shorter than 32 bytes are stretched through SHA-256 for AES-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encoder{key: key, gcm: gcm}, nil
}

// Encode serializes a snapshot. If sensitive is true the snapshot is
// encrypted; otherwise it is signed.
func (e *Encoder) Encode(snap Snapshot, sensitive bool) (string, error) {
	packed, err := msgpack.Marshal(snap)
	if err != nil {
		return "", err
	}
	if sensitive {
		return e.encrypt(packed)
	}
	return e.sign(packed)
}

// Decode reverses Encode. The sensitive flag must match the one used when
// encoding; a mismatch surfaces as a signature or decryption failure.
func (e *Encoder) Decode(encoded string, sensitive bool) (Snapshot, error) {
	var packed []byte
	var err error

	if sensitive {
		packed, err = e.decrypt(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := msgpack.Unmarshal(packed, &snap); err != nil {
		return Snapshot{}, ErrInvalidFormat
	}
	if len(snap.Names) != len(snap.Texts) {
		return Snapshot{}, ErrInvalidFormat
	}
	return snap, nil
}

// sign creates a signed (but visible) encoding: base64.signature
func (e *Encoder) sign(data []byte) (string, error) {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16]) // 16 bytes = 128 bits
	return b64 + "." + sig, nil
}

// verify checks the signature and decodes a signed string.
func (e *Encoder) verify(encoded string) ([]byte, error) {
	parts := strings.SplitN(encoded, ".", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidFormat
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidFormat
	}

	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	expected := mac.Sum(nil)[:16]

	if !hmac.Equal(sig, expected) {
		return nil, ErrSignatureInvalid
	}

	return data, nil
}

// encrypt creates an encrypted encoding using AES-256-GCM.
func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := e.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// decrypt decodes and decrypts an encrypted string.
func (e *Encoder) decrypt(encoded string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	if len(ciphertext) < e.gcm.NonceSize() {
		return nil, ErrInvalidFormat
	}

	nonce := ciphertext[:e.gcm.NonceSize()]
	ciphertext = ciphertext[e.gcm.NonceSize():]

	plain, err := e.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
