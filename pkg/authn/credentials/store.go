// Package credentials provides the in-memory credential store answering
// Basic, NTLM and Negotiate challenges.
package credentials

import (
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/wuxler/ruacred/pkg/authn"
)

// Reader is the read side of a credential store used by the resolver.
type Reader interface {
	// LookupBasic returns the credential stored for the host and realm.
	LookupBasic(host, realm string) (authn.BasicCredential, bool)
	// LookupDomain returns the domain credential stored for the host.
	LookupDomain(host string) (authn.DomainCredential, bool)
}

// Writer is the write side of a credential store used by prompt collaborators.
type Writer interface {
	// AddBasic saves the credential under its host and realm.
	AddBasic(cred authn.BasicCredential)
	// AddDomain saves the credential under its host.
	AddDomain(cred authn.DomainCredential)
}

var (
	_ Reader = (*Store)(nil)
	_ Writer = (*Store)(nil)
)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		basic:  make(map[string]map[string]authn.BasicCredential),
		domain: make(map[string]authn.DomainCredential),
	}
}

// Store keeps Basic credentials keyed by (host, realm) and domain credentials
// keyed by host. Every method is safe for concurrent use.
//
// Enumeration order is sorted by host, then by realm for Basic credentials.
// Positions used by the indexed accessors shift after any deletion.
type Store struct {
	mu     sync.RWMutex
	basic  map[string]map[string]authn.BasicCredential
	domain map[string]authn.DomainCredential
}

// AddBasic inserts or replaces the credential under (host, realm). Credentials
// with both username and password empty are ignored.
func (s *Store) AddBasic(cred authn.BasicCredential) {
	if cred.IsEmpty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	realms, ok := s.basic[cred.Host]
	if !ok {
		realms = make(map[string]authn.BasicCredential)
		s.basic[cred.Host] = realms
	}
	realms[cred.Realm] = cred
}

// AddDomain inserts or replaces the credential under host. Credentials with
// both username and password empty are ignored.
func (s *Store) AddDomain(cred authn.DomainCredential) {
	if cred.IsEmpty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.domain[cred.Host] = cred
}

// LookupBasic implements Reader.
func (s *Store) LookupBasic(host, realm string) (authn.BasicCredential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.basic[host][realm]
	return cred, ok
}

// LookupDomain implements Reader.
func (s *Store) LookupDomain(host string) (authn.DomainCredential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.domain[host]
	return cred, ok
}

// CountBasic returns the number of Basic credentials.
func (s *Store) CountBasic() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.SumBy(lo.Values(s.basic), func(realms map[string]authn.BasicCredential) int {
		return len(realms)
	})
}

// BasicAt returns the i-th Basic credential in (host, realm) order.
func (s *Store) BasicAt(i int) (authn.BasicCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sortedBasic()
	if err := checkIndex(i, len(all)); err != nil {
		return authn.BasicCredential{}, err
	}
	return all[i], nil
}

// DeleteBasicAt removes the i-th Basic credential in (host, realm) order.
func (s *Store) DeleteBasicAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sortedBasic()
	if err := checkIndex(i, len(all)); err != nil {
		return err
	}
	s.deleteBasic(all[i].Host, all[i].Realm)
	return nil
}

// DeleteBasic removes the credential stored under (host, realm) and reports
// whether it existed.
func (s *Store) DeleteBasic(host, realm string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteBasic(host, realm)
}

// Basics returns a sorted snapshot of all Basic credentials.
func (s *Store) Basics() []authn.BasicCredential {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedBasic()
}

// CountDomain returns the number of domain credentials.
func (s *Store) CountDomain() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.domain)
}

// DomainAt returns the i-th domain credential in host order.
func (s *Store) DomainAt(i int) (authn.DomainCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sortedDomain()
	if err := checkIndex(i, len(all)); err != nil {
		return authn.DomainCredential{}, err
	}
	return all[i], nil
}

// DeleteDomainAt removes the i-th domain credential in host order.
func (s *Store) DeleteDomainAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sortedDomain()
	if err := checkIndex(i, len(all)); err != nil {
		return err
	}
	delete(s.domain, all[i].Host)
	return nil
}

// DeleteDomain removes the credential stored under host and reports whether it
// existed.
func (s *Store) DeleteDomain(host string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.domain[host]
	delete(s.domain, host)
	return ok
}

// Domains returns a sorted snapshot of all domain credentials.
func (s *Store) Domains() []authn.DomainCredential {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedDomain()
}

// sortedBasic must be called with s.mu held.
func (s *Store) sortedBasic() []authn.BasicCredential {
	hosts := sortedKeys(s.basic)
	all := make([]authn.BasicCredential, 0, len(hosts))
	for _, host := range hosts {
		realms := s.basic[host]
		for _, realm := range sortedKeys(realms) {
			all = append(all, realms[realm])
		}
	}
	return all
}

// sortedDomain must be called with s.mu held.
func (s *Store) sortedDomain() []authn.DomainCredential {
	return lo.Map(sortedKeys(s.domain), func(host string, _ int) authn.DomainCredential {
		return s.domain[host]
	})
}

// deleteBasic must be called with s.mu held.
func (s *Store) deleteBasic(host, realm string) bool {
	realms, ok := s.basic[host]
	if !ok {
		return false
	}
	if _, ok := realms[realm]; !ok {
		return false
	}
	delete(realms, realm)
	if len(realms) == 0 {
		delete(s.basic, host)
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

func checkIndex(i, length int) error {
	if i < 0 || i >= length {
		return fmt.Errorf("%w: index %d, length %d", authn.ErrIndexOutOfRange, i, length)
	}
	return nil
}
