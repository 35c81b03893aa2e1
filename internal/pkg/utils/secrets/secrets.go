// Package secrets hashes and verifies API key secrets with argon2id,
// stored in PHC string form.
package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Parameters for new hashes. API keys are CSPRNG output rather than
// human-chosen passwords, and verification sits on the request path, so a
// single pass over a 32 MiB arena is the right trade.
const (
	hashPasses    = 1
	hashMemoryKiB = 32 * 1024
	hashThreads   = 2
	hashKeyLen    = 32
	hashSaltLen   = 16
)

var (
	ErrEmptySecret = errors.New("secrets: empty secret")
	ErrBadHash     = errors.New("secrets: malformed argon2id hash")
)

// params are read back out of a stored hash on verification, so hashes
// written under older cost settings keep verifying after the constants
// above change.
type params struct {
	memoryKiB uint32
	passes    uint32
	threads   uint8
}

// HashSecret derives an argon2id key over secret+pepper under a fresh
// random salt and returns it PHC-encoded.
func HashSecret(secret, pepper string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	salt := make([]byte, hashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	p := params{memoryKiB: hashMemoryKiB, passes: hashPasses, threads: hashThreads}
	key := derive(secret, pepper, salt, p, hashKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memoryKiB, p.passes, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifySecret reports whether secret+pepper matches the stored PHC hash.
// A well-formed hash that does not match is (false, nil); only an
// undecodable hash is an error.
func VerifySecret(secret, pepper, phc string) (bool, error) {
	p, salt, want, err := decode(phc)
	if err != nil {
		return false, err
	}

	got := derive(secret, pepper, salt, p, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func derive(secret, pepper string, salt []byte, p params, keyLen uint32) []byte {
	return argon2.IDKey([]byte(secret+pepper), salt, p.passes, p.memoryKiB, p.threads, keyLen)
}

func decode(phc string) (params, []byte, []byte, error) {
	parts := strings.Split(phc, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params{}, nil, nil, ErrBadHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params{}, nil, nil, ErrBadHash
	}

	var p params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memoryKiB, &p.passes, &p.threads); err != nil {
		return params{}, nil, nil, ErrBadHash
	}
	if p.memoryKiB == 0 || p.passes == 0 || p.threads == 0 {
		return params{}, nil, nil, ErrBadHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return params{}, nil, nil, ErrBadHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params{}, nil, nil, ErrBadHash
	}

	return p, salt, key, nil
}
