package secrets

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	phc, err := HashSecret("my-api-secret", "pepper")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(phc, "$argon2id$"))
	assert.Contains(t, phc, "m=32768,t=1,p=2")

	ok, err := VerifySecret("my-api-secret", "pepper", phc)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifySecret("wrong-secret", "pepper", phc)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifySecret("my-api-secret", "wrong-pepper", phc)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHashSecret_EmptySecret(t *testing.T) {
	_, err := HashSecret("", "pepper")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestVerifySecret_UsesStoredParameters(t *testing.T) {
	// A hash written under different cost settings still verifies; the
	// parameters come out of the PHC string, not the current constants.
	salt := []byte("somesaltsomesalt")
	p := params{memoryKiB: 16384, passes: 2, threads: 1}
	key := derive("my-api-secret", "pepper", salt, p, 32)

	legacy := fmt.Sprintf("$argon2id$v=19$m=16384,t=2,p=1$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	ok, err := VerifySecret("my-api-secret", "pepper", legacy)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySecret_Malformed(t *testing.T) {
	tests := []struct {
		name string
		phc  string
	}{
		{name: "not phc", phc: "not-a-phc-string"},
		{name: "wrong algorithm", phc: "$argon2i$v=19$m=16,t=2,p=1$c2FsdA$a2V5"},
		{name: "wrong version", phc: "$argon2id$v=18$m=16,t=2,p=1$c2FsdA$a2V5"},
		{name: "zero params", phc: "$argon2id$v=19$m=0,t=0,p=0$c2FsdA$a2V5"},
		{name: "bad salt encoding", phc: "$argon2id$v=19$m=16,t=2,p=1$!!!$a2V5"},
		{name: "bad key encoding", phc: "$argon2id$v=19$m=16,t=2,p=1$c2FsdA$!!!"},
		{name: "truncated", phc: "$argon2id$v=19$m=16,t=2,p=1$c2FsdA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifySecret("secret", "pepper", tt.phc)
			assert.ErrorIs(t, err, ErrBadHash)
		})
	}
}

func TestHashSecret_UniqueSalts(t *testing.T) {
	a, err := HashSecret("same-secret", "pepper")
	require.NoError(t, err)
	b, err := HashSecret("same-secret", "pepper")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
