package record

import (
	"encoding/json"
	"fmt"
)

// NativeCode is the asset code callers pass to denote the native asset.
const NativeCode = "XLM"

// AssetKind tags the closed Asset variant.
type AssetKind string

const (
	// AssetNative is the chain's native asset. No code or issuer payload.
	AssetNative AssetKind = "native"

	// AssetToken is an issued token identified by (code, issuer).
	AssetToken AssetKind = "token"
)

// Asset is a closed sum: Native, or Token(code, issuer).
// Construct via NativeAsset, TokenAsset, or ParseAsset; a zero Asset is
// invalid and rejected wherever it is formatted.
type Asset struct {
	Kind   AssetKind `json:"kind"`
	Code   string    `json:"code,omitempty"`
	Issuer string    `json:"issuer,omitempty"`
}

// NativeAsset returns the native-asset variant.
func NativeAsset() Asset {
	return Asset{Kind: AssetNative}
}

// TokenAsset returns the issued-token variant.
// Validation happens in ParseAsset; this constructor trusts its inputs.
func TokenAsset(code, issuer string) Asset {
	return Asset{Kind: AssetToken, Code: code, Issuer: issuer}
}

// ParseAsset derives an Asset from a caller-supplied (code, issuer) pair.
//
// Rules (matching the recording contract's wire interface):
//   - code must be non-empty
//   - code "XLM" with an empty issuer is Native
//   - code "XLM" with an issuer is invalid (the native asset has no issuer)
//   - any other code requires a non-empty issuer and is a Token
func ParseAsset(code, issuer string) (Asset, error) {
	if code == "" {
		return Asset{}, fmt.Errorf("asset code must be non-empty")
	}
	if code == NativeCode {
		if issuer != "" {
			return Asset{}, fmt.Errorf("native asset %s must not carry an issuer", NativeCode)
		}
		return NativeAsset(), nil
	}
	if issuer == "" {
		return Asset{}, fmt.Errorf("token asset %q requires an issuer", code)
	}
	return TokenAsset(code, issuer), nil
}

// IsNative reports whether the asset is the native variant.
func (a Asset) IsNative() bool {
	return a.Kind == AssetNative
}

// Validate checks structural invariants of the sum.
// Exhaustive over AssetKind: unknown kinds are rejected, never ignored.
func (a Asset) Validate() error {
	switch a.Kind {
	case AssetNative:
		if a.Code != "" || a.Issuer != "" {
			return fmt.Errorf("native asset must not carry code or issuer")
		}
		return nil
	case AssetToken:
		if a.Code == "" {
			return fmt.Errorf("token asset requires a code")
		}
		if a.Issuer == "" {
			return fmt.Errorf("token asset %q requires an issuer", a.Code)
		}
		return nil
	default:
		return fmt.Errorf("unknown asset kind %q", a.Kind)
	}
}

// String renders the asset for logs and text output.
// Native renders as "XLM"; tokens as "CODE:ISSUER".
func (a Asset) String() string {
	switch a.Kind {
	case AssetNative:
		return NativeCode
	case AssetToken:
		return a.Code + ":" + a.Issuer
	default:
		return fmt.Sprintf("invalid(%q)", string(a.Kind))
	}
}

// UnmarshalJSON decodes and validates the asset in one step so malformed
// stored or wire payloads surface immediately.
func (a *Asset) UnmarshalJSON(data []byte) error {
	type raw Asset
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded := Asset(r)
	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("decode asset: %w", err)
	}
	*a = decoded
	return nil
}
