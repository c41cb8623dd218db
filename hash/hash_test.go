package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum64Empty(t *testing.T) {
	assert.Equal(t, uint64(0), Sum64(nil))
	assert.Equal(t, uint64(0), Sum64([]byte{}))
	assert.Equal(t, uint64(0), SumString(""))
}

func TestSum64KnownVector(t *testing.T) {
	// 'a'*31 + 'b' = 97*31 + 98
	assert.Equal(t, uint64(3105), Sum64([]byte("ab")))
}

func TestSum64MatchesDirectFold(t *testing.T) {
	input := []byte("wasm demo input")

	var want uint64
	for _, b := range input {
		want = want*31 + uint64(b)
	}

	assert.Equal(t, want, Sum64(input))
}

func TestSum64Deterministic(t *testing.T) {
	inputs := []string{"", "a", "test", "different", "a longer input with spaces"}
	for _, in := range inputs {
		first := SumString(in)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, SumString(in), "input %q", in)
		}
	}
}

func TestSum64Sensitivity(t *testing.T) {
	assert.NotEqual(t, SumString("test"), SumString("different"))

	// Flipping a single byte anywhere in the input changes the result.
	base := []byte("abcdefgh")
	want := Sum64(base)
	for i := range base {
		mutated := append([]byte(nil), base...)
		mutated[i] ^= 0x01
		assert.NotEqual(t, want, Sum64(mutated), "flip at index %d", i)
	}
}

func TestSum64LengthSensitivity(t *testing.T) {
	// Spot checks on literals; collisions are possible in general (appending
	// 0x00 to the empty input is one), so only non-degenerate pairs appear.
	assert.NotEqual(t, SumString(""), SumString("a"))
	for _, in := range []string{"x", "test", "hello world"} {
		base := SumString(in)
		for _, b := range []byte{0x00, 'a', 0xff} {
			extended := append([]byte(in), b)
			assert.NotEqual(t, base, Sum64(extended), "input %q + 0x%02x", in, b)
		}
	}
}

func TestDigestMatchesSum64(t *testing.T) {
	input := []byte("split across several writes")
	want := Sum64(input)

	d := New()
	for _, chunk := range [][]byte{input[:5], input[5:12], input[12:]} {
		n, err := d.Write(chunk)
		require.NoError(t, err)
		require.Equal(t, len(chunk), n)
	}
	assert.Equal(t, want, d.Sum64())
}

func TestDigestReset(t *testing.T) {
	d := New()
	_, err := d.Write([]byte("anything"))
	require.NoError(t, err)
	require.NotEqual(t, uint64(0), d.Sum64())

	d.Reset()
	assert.Equal(t, uint64(0), d.Sum64())

	_, err = d.Write([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3105), d.Sum64())
}

func TestSumStringMatchesSum64(t *testing.T) {
	for _, in := range []string{"", "test", "héllo", "\x00\x01\x02"} {
		assert.Equal(t, Sum64([]byte(in)), SumString(in), "input %q", in)
	}
}
