package authn

// BasicCredential is a username and password scoped to one protection space,
// identified by the host and the realm announced in a Basic challenge.
type BasicCredential struct {
	Host     string `json:"host" yaml:"host"`
	Realm    string `json:"realm" yaml:"realm"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// Key returns the identity of the credential in a store.
func (c BasicCredential) Key() BasicKey {
	return BasicKey{Host: c.Host, Realm: c.Realm}
}

// IsEmpty reports whether both username and password are empty. Such a
// credential answers nothing and is never stored.
func (c BasicCredential) IsEmpty() bool {
	return c.Username == "" && c.Password == ""
}

// BasicKey identifies a BasicCredential.
type BasicKey struct {
	Host  string `json:"host" yaml:"host"`
	Realm string `json:"realm" yaml:"realm"`
}

// DomainCredential is a Windows-style domain account used to answer NTLM and
// Negotiate challenges. There is at most one per host.
type DomainCredential struct {
	Host     string `json:"host" yaml:"host"`
	Domain   string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// IsEmpty reports whether both username and password are empty.
func (c DomainCredential) IsEmpty() bool {
	return c.Username == "" && c.Password == ""
}
