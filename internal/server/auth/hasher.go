package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// HasherParams are the argon2id cost parameters. They are embedded in every
// hash, so changing them only affects newly hashed passwords.
type HasherParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultHasherParams follows the OWASP argon2id baseline.
var DefaultHasherParams = HasherParams{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	SaltLen: 16,
	KeyLen:  32,
}

// Argon2idHasher hashes passwords into self-describing PHC strings:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// It holds no mutable state and is safe for concurrent use.
type Argon2idHasher struct {
	params HasherParams
}

func NewArgon2idHasher(params HasherParams) *Argon2idHasher {
	return &Argon2idHasher{params: params}
}

// Hash derives a salted argon2id hash. Empty passwords are rejected with
// common.ErrInvalidInput regardless of upstream validation.
func (h *Argon2idHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", common.ErrInvalidInput
	}

	salt, err := common.GenerateRandBytes(int(h.params.SaltLen))
	if err != nil {
		return "", fmt.Errorf("salt generation error: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
	defer common.WipeByteArray(key)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches the encoded hash. A malformed or
// foreign hash is a mismatch, not an error.
func (h *Argon2idHasher) Verify(password, encoded string) bool {
	p, salt, key, ok := decodeHash(encoded)
	if !ok {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	defer common.WipeByteArray(candidate)

	return subtle.ConstantTimeCompare(candidate, key) == 1
}

// Upper bounds for parameters read back from a stored hash. Anything larger
// is treated as malformed instead of being handed to argon2.
const (
	maxDecodedTime    = 16
	maxDecodedMemory  = 1 << 20 // KiB
	maxDecodedSaltLen = 64
	maxDecodedKeyLen  = 128
)

func decodeHash(encoded string) (HasherParams, []byte, []byte, bool) {
	var p HasherParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, false
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &threads); err != nil {
		return p, nil, nil, false
	}
	// argon2.IDKey panics on zero rounds or zero lanes
	if p.Time == 0 || threads == 0 || threads > 255 {
		return p, nil, nil, false
	}
	if p.Time > maxDecodedTime || p.Memory > maxDecodedMemory {
		return p, nil, nil, false
	}
	p.Threads = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, false
	}
	if len(salt) > maxDecodedSaltLen {
		return p, nil, nil, false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxDecodedKeyLen {
		return p, nil, nil, false
	}
	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))

	return p, salt, key, true
}
