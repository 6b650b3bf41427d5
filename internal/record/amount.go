package record

import (
	"fmt"
	"math/big"
)

// int128 range bounds: [-2^127, 2^127-1].
var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Amount is a signed 128-bit integer payment amount in the asset's smallest
// unit (stroops for XLM, the token's own smallest unit otherwise).
//
// Amount is an immutable value type: methods never mutate and constructors
// copy their inputs. The zero Amount is 0.
type Amount struct {
	i *big.Int
}

// AmountFromInt64 returns the Amount for n.
func AmountFromInt64(n int64) Amount {
	return Amount{i: big.NewInt(n)}
}

// ParseAmount parses a base-10 amount and enforces the 128-bit range.
func ParseAmount(s string) (Amount, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("invalid amount %q: not a base-10 integer", s)
	}
	if i.Cmp(maxInt128) > 0 || i.Cmp(minInt128) < 0 {
		return Amount{}, fmt.Errorf("amount %q overflows 128 bits", s)
	}
	return Amount{i: i}, nil
}

func (a Amount) big() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

// Sign returns -1, 0, or +1 for negative, zero, or positive amounts.
func (a Amount) Sign() int {
	return a.big().Sign()
}

// Cmp compares a and b, returning -1, 0, or +1.
func (a Amount) Cmp(b Amount) int {
	return a.big().Cmp(b.big())
}

// Equal reports numeric equality.
func (a Amount) Equal(b Amount) bool {
	return a.Cmp(b) == 0
}

// String renders the amount in base 10.
func (a Amount) String() string {
	return a.big().String()
}

// MarshalJSON encodes the amount as a JSON string. Values beyond 2^53 would
// lose precision as JSON numbers, and subscribers in other languages need
// the full 128-bit range.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare integer literal.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
