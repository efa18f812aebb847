package authn

import (
	"encoding/base64"
	"net/http"
)

const (
	// HeaderAuthorization is the request header answering an origin server.
	HeaderAuthorization = "Authorization"
	// HeaderProxyAuthorization is the request header answering a proxy.
	HeaderProxyAuthorization = "Proxy-Authorization"
	// HeaderWWWAuthenticate carries origin server challenges.
	HeaderWWWAuthenticate = "Www-Authenticate"
	// HeaderProxyAuthenticate carries proxy challenges.
	HeaderProxyAuthenticate = "Proxy-Authenticate"
)

// EncodeBasic encodes the credential as base64 of "<username>:<password>".
//
// NOTE: partially empty credentials are encoded as-is.
func EncodeBasic(cred BasicCredential) string {
	return encode(cred.Username + ":" + cred.Password)
}

// EncodeDomain encodes the credential as base64 of "<domain>\<username>:<password>".
func EncodeDomain(cred DomainCredential) string {
	return encode(cred.Domain + `\` + cred.Username + ":" + cred.Password)
}

// HeaderValue joins the scheme token and the encoded credential.
func HeaderValue(scheme Scheme, encoded string) string {
	return scheme.String() + " " + encoded
}

// SetAuthorization sets the resolved value on the request, as "Proxy-Authorization"
// when proxy is true and "Authorization" otherwise.
func SetAuthorization(req *http.Request, value string, proxy bool) {
	if proxy {
		req.Header.Set(HeaderProxyAuthorization, value)
		return
	}
	req.Header.Set(HeaderAuthorization, value)
}

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
