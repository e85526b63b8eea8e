package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHash_Deterministic verifies the digest is stable and hex-shaped.
func TestHash_Deterministic(t *testing.T) {
	first := Hash("senha123", "segredo:joao.silva")
	second := Hash("senha123", "segredo:joao.silva")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	for _, c := range first {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'),
			"digest must be lowercase hex, got %c", c)
	}
}

// TestHash_DistinctInputs verifies different passwords and different salts
// both change the digest.
func TestHash_DistinctInputs(t *testing.T) {
	base := Hash("senha123", "segredo:joao.silva")

	assert.NotEqual(t, base, Hash("senha124", "segredo:joao.silva"))
	assert.NotEqual(t, base, Hash("senha123", "segredo:maria.souza"))
}

// TestHasher_SaltPerUsername verifies two accounts with the same password
// never share a hash.
func TestHasher_SaltPerUsername(t *testing.T) {
	h := NewHasher("segredo-teste")

	first, err := h.HashPassword("senha123", "joao.silva")
	require.NoError(t, err)
	second, err := h.HashPassword("senha123", "maria.souza")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

// TestHasher_VerifyRoundTrip verifies both salt schemes accept the original
// password and reject others.
func TestHasher_VerifyRoundTrip(t *testing.T) {
	h := NewHasher("segredo-teste")

	stored, err := h.HashPassword("senha123", "joao.silva")
	require.NoError(t, err)

	ok, err := h.Verify("senha123", "joao.silva", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("errada", "joao.silva", stored)
	require.NoError(t, err)
	assert.False(t, ok)

	legacy := Hash("senha123", h.LegacySalt())
	ok, err = h.VerifyLegacy("senha123", legacy)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.VerifyLegacy("errada", legacy)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestHasher_EmptySecret verifies every operation refuses to run without a
// configured secret.
func TestHasher_EmptySecret(t *testing.T) {
	h := NewHasher("")

	_, err := h.HashPassword("senha123", "joao.silva")
	assert.ErrorIs(t, err, ErrHashingUnavailable)

	_, err = h.Verify("senha123", "joao.silva", "qualquer")
	assert.ErrorIs(t, err, ErrHashingUnavailable)

	_, err = h.VerifyLegacy("senha123", "qualquer")
	assert.ErrorIs(t, err, ErrHashingUnavailable)
}

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"João Silva", "joao.silva"},
		{"  MARIA__souza  ", "maria.souza"},
		{"técnico@empresa", "tecnico.empresa"},
		{"..ana...lima..", "ana.lima"},
		{"ADMIN", "admin"},
		{"", ""},
		{"###", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeUsername(tc.in), "input %q", tc.in)
	}
}

// TestNormalizeUsername_Idempotent verifies normalizing twice changes
// nothing.
func TestNormalizeUsername_Idempotent(t *testing.T) {
	inputs := []string{"João Silva", "maria__SOUZA", "a..b..c", "técnico 42"}
	for _, in := range inputs {
		once := NormalizeUsername(in)
		assert.Equal(t, once, NormalizeUsername(once), "input %q", in)
	}
}
