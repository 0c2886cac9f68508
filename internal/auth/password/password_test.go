package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, encoded, "$argon2id$v=19$")

	assert.True(t, Verify("correct horse battery staple", encoded))
	assert.False(t, Verify("wrong password", encoded))
	assert.False(t, Verify("", encoded))
}

func TestHash_UniqueSalts(t *testing.T) {
	first, err := Hash("mesma senha")
	require.NoError(t, err)
	second, err := Hash("mesma senha")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	assert.True(t, Verify("mesma senha", first))
	assert.True(t, Verify("mesma senha", second))
}

func TestVerify_MalformedEncodings(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	} {
		assert.False(t, Verify("qualquer", encoded))
	}
}
