package codec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRecord struct {
	Amount []byte
	Fixed  bool
	Period uint64
	Groups [][]byte
}

func TestSCALERoundTrip(t *testing.T) {
	c := &SCALECodec{}

	amount, ok := new(big.Int).SetString("340282366920938463463374607431768211456", 10) // 2^128
	require.True(t, ok)

	in := sampleRecord{
		Amount: amount.Bytes(),
		Fixed:  true,
		Period: 86400,
		Groups: [][]byte{[]byte("team"), []byte("advisors")},
	}
	bytes, err := c.Marshal(in)
	require.NoError(t, err)

	var out sampleRecord
	require.NoError(t, c.Unmarshal(bytes, &out))
	assert.Equal(t, in, out)
	assert.Equal(t, 0, amount.Cmp(new(big.Int).SetBytes(out.Amount)))
}

func TestJSONRoundTrip(t *testing.T) {
	c := &JSONCodec{}

	in := map[string]string{"token": "VSL-a1b2c3"}
	bytes, err := c.Marshal(in)
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, c.Unmarshal(bytes, &out))
	assert.Equal(t, in, out)
}
