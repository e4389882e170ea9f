package codec

import (
	"testing"

	"github.com/lib/pq/oid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNumericBinaryRoundTrip(t *testing.T) {
	r := NewRegistry()

	for _, s := range []string{"0", "123.4500", "-0.0001", "99999999999999999999.123456", "3"} {
		t.Run(s, func(t *testing.T) {
			want, err := decimal.NewFromString(s)
			require.NoError(t, err)

			enc, err := r.Encode(oid.T_numeric, true, want)
			require.NoError(t, err)

			dec, err := r.Decode(oid.T_numeric, true, enc)
			require.NoError(t, err)
			require.True(t, want.Equal(dec.(decimal.Decimal)), "want %s got %s", want, dec)
		})
	}
}

func TestNumericTextRoundTrip(t *testing.T) {
	r := NewRegistry()
	want, err := decimal.NewFromString("42.5")
	require.NoError(t, err)

	enc, err := r.Encode(oid.T_numeric, false, want)
	require.NoError(t, err)

	dec, err := r.Decode(oid.T_numeric, false, enc)
	require.NoError(t, err)
	require.True(t, want.Equal(dec.(decimal.Decimal)))
}
