package authn

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Scheme is the authentication scheme announced by a challenge.
type Scheme int

const (
	// SchemeUnknown represents any scheme the resolver cannot answer.
	SchemeUnknown Scheme = iota
	// SchemeBasic represents the "Basic" HTTP authentication scheme.
	SchemeBasic
	// SchemeNTLM represents the "NTLM" authentication scheme.
	SchemeNTLM
	// SchemeNegotiate represents the "Negotiate" authentication scheme.
	SchemeNegotiate
)

// String returns the scheme token as it appears in a header.
func (s Scheme) String() string {
	switch s {
	case SchemeBasic:
		return "Basic"
	case SchemeNTLM:
		return "NTLM"
	case SchemeNegotiate:
		return "Negotiate"
	default:
		return "Unknown"
	}
}

// IsDomain reports whether the scheme is answered with a DomainCredential.
func (s Scheme) IsDomain() bool {
	return s == SchemeNTLM || s == SchemeNegotiate
}

// supportedSchemes is ordered by preference.
var supportedSchemes = []Scheme{SchemeBasic, SchemeNTLM, SchemeNegotiate}

// SupportedSchemes returns the schemes that can be answered, in the order the
// resolver prefers them.
func SupportedSchemes() []Scheme {
	return append([]Scheme(nil), supportedSchemes...)
}

// Challenge is a parsed "WWW-Authenticate" or "Proxy-Authenticate" value.
type Challenge struct {
	Scheme Scheme
	// Realm is only set for Basic challenges.
	Realm string
	// Raw is the header value the challenge was parsed from.
	Raw string
}

// ClassifyScheme returns the scheme of a raw challenge by case-sensitive prefix
// match against the supported scheme tokens.
func ClassifyScheme(header string) Scheme {
	scheme, ok := lo.Find(supportedSchemes, func(s Scheme) bool {
		return strings.HasPrefix(header, s.String())
	})
	if !ok {
		return SchemeUnknown
	}
	return scheme
}

// HasSupportedScheme reports whether at least one of the challenges can be
// answered by a stored credential.
func HasSupportedScheme(challenges []string) bool {
	return lo.ContainsBy(challenges, func(header string) bool {
		return ClassifyScheme(header) != SchemeUnknown
	})
}

// basicRealmParam is the parameter carrying the protection space of a Basic
// challenge. The name is compared case-insensitively.
const basicRealmParam = `realm="`

// ParseChallenge parses a single raw challenge such as `Basic Realm="Intranet"`,
// `NTLM` or `Negotiate`. Unsupported schemes return ErrUnsupportedScheme and
// Basic challenges without a quoted realm return ErrMalformedChallenge.
func ParseChallenge(header string) (Challenge, error) {
	challenge := Challenge{Scheme: ClassifyScheme(header), Raw: header}
	switch challenge.Scheme {
	case SchemeBasic:
		realm, err := parseBasicRealm(header)
		if err != nil {
			return Challenge{Scheme: SchemeBasic, Raw: header}, err
		}
		challenge.Realm = realm
		return challenge, nil
	case SchemeNTLM, SchemeNegotiate:
		return challenge, nil
	default:
		return challenge, fmt.Errorf("%w: %q", ErrUnsupportedScheme, header)
	}
}

func parseBasicRealm(header string) (string, error) {
	rest := strings.TrimPrefix(header, SchemeBasic.String())
	if !strings.HasPrefix(rest, " ") {
		return "", fmt.Errorf("%w: missing realm in %q", ErrMalformedChallenge, header)
	}
	rest = rest[1:]
	if len(rest) < len(basicRealmParam) || !strings.EqualFold(rest[:len(basicRealmParam)], basicRealmParam) {
		return "", fmt.Errorf("%w: missing realm in %q", ErrMalformedChallenge, header)
	}
	rest = rest[len(basicRealmParam):]
	if !strings.HasSuffix(rest, `"`) {
		return "", fmt.Errorf("%w: unterminated realm in %q", ErrMalformedChallenge, header)
	}
	return rest[:len(rest)-1], nil
}
