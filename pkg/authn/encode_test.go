package authn_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruacred/pkg/authn"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestEncodeBasic(t *testing.T) {
	testcases := []struct {
		name string
		cred authn.BasicCredential
		want string
	}{
		{
			name: "basic",
			cred: authn.BasicCredential{Username: "u", Password: "p"},
			want: b64("u:p"),
		},
		{
			name: "empty password",
			cred: authn.BasicCredential{Username: "foo"},
			want: b64("foo:"),
		},
		{
			name: "empty username",
			cred: authn.BasicCredential{Password: "bar"},
			want: b64(":bar"),
		},
		{
			name: "utf-8",
			cred: authn.BasicCredential{Username: "jürgen", Password: "пароль"},
			want: b64("jürgen:пароль"),
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authn.EncodeBasic(tc.cred))
		})
	}
}

func TestEncodeDomain(t *testing.T) {
	cred := authn.DomainCredential{Host: "a.com", Domain: "D", Username: "u", Password: "p"}
	assert.Equal(t, b64(`D\u:p`), authn.EncodeDomain(cred))
	assert.Equal(t, b64(`\u:`), authn.EncodeDomain(authn.DomainCredential{Username: "u"}))
}

func TestHeaderValue(t *testing.T) {
	got := authn.HeaderValue(authn.SchemeBasic, authn.EncodeBasic(authn.BasicCredential{Username: "u", Password: "p"}))
	assert.Equal(t, "Basic dTpw", got)
}

func TestSetAuthorization(t *testing.T) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "https://example.com", http.NoBody)
	require.NoError(t, err)

	authn.SetAuthorization(req, "Basic dTpw", false)
	assert.Equal(t, "Basic dTpw", req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Proxy-Authorization"))

	authn.SetAuthorization(req, "NTLM abc", true)
	assert.Equal(t, "NTLM abc", req.Header.Get("Proxy-Authorization"))
}

func TestCredentialIsEmpty(t *testing.T) {
	assert.True(t, authn.BasicCredential{Host: "a.com", Realm: "R"}.IsEmpty())
	assert.False(t, authn.BasicCredential{Username: "u"}.IsEmpty())
	assert.False(t, authn.BasicCredential{Password: "p"}.IsEmpty())
	assert.True(t, authn.DomainCredential{Host: "a.com", Domain: "D"}.IsEmpty())
	assert.False(t, authn.DomainCredential{Password: "p"}.IsEmpty())
	assert.Equal(t, authn.BasicKey{Host: "a.com", Realm: "R"}, authn.BasicCredential{Host: "a.com", Realm: "R"}.Key())
}
