package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, fixed for every hash this process writes. Verification
// reads the parameters back out of the stored string, so these can change
// without invalidating existing credentials.
const (
	argonMemory  uint32 = 19456 // KiB
	argonTime    uint32 = 2
	argonThreads uint8  = 1
	saltLength          = 16
	keyLength    uint32 = 32
)

// ErrMalformedHash marks a stored hash that cannot be parsed. Callers use it
// to tell corrupt data apart from a plain wrong-password mismatch.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword hashes a plain text password with Argon2id and encodes the
// result as a PHC string: $argon2id$v=19$m=..,t=..,p=..$<salt>$<digest>.
// A fresh random salt is drawn per call, so hashing the same password twice
// yields different strings.
func HashPassword(plain string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	digest := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, keyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Digest := base64.RawStdEncoding.EncodeToString(digest)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argonMemory, argonTime, argonThreads, b64Salt, b64Digest), nil
}

// VerifyPassword checks a plaintext password against a PHC-encoded hash.
// A wrong password returns (false, nil); an unparseable hash returns
// (false, err) wrapping ErrMalformedHash.
func VerifyPassword(plain, encoded string) (bool, error) {
	salt, digest, params, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(plain), salt, params.time, params.memory, params.threads, uint32(len(digest)))

	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decodeHash(encoded string) (salt, digest []byte, params argonParams, err error) {
	// ["", "argon2id", "v=19", "m=..,t=..,p=..", salt, digest]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, nil, params, fmt.Errorf("%w: expected 6 segments, got %d", ErrMalformedHash, len(parts))
	}

	if parts[1] != "argon2id" {
		return nil, nil, params, fmt.Errorf("%w: not argon2id", ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, params, fmt.Errorf("%w: unsupported version", ErrMalformedHash)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, params, fmt.Errorf("%w: bad parameters", ErrMalformedHash)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, params, fmt.Errorf("%w: bad salt encoding", ErrMalformedHash)
	}

	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, params, fmt.Errorf("%w: bad digest encoding", ErrMalformedHash)
	}

	return salt, digest, params, nil
}
