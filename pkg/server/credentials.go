package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/wuxler/ruacred/pkg/authn"
	"github.com/wuxler/ruacred/pkg/errdefs"
)

// BasicView is a BasicCredential with the password left out.
type BasicView struct {
	Index       int    `json:"index"`
	Host        string `json:"host"`
	Realm       string `json:"realm"`
	Username    string `json:"username"`
	HasPassword bool   `json:"has_password"`
}

// DomainView is a DomainCredential with the password left out.
type DomainView struct {
	Index       int    `json:"index"`
	Host        string `json:"host"`
	Domain      string `json:"domain"`
	Username    string `json:"username"`
	HasPassword bool   `json:"has_password"`
}

type basicRequest struct {
	Host     string `json:"host" binding:"required"`
	Realm    string `json:"realm"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type domainRequest struct {
	Host     string `json:"host" binding:"required"`
	Domain   string `json:"domain"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func newBasicView(index int, cred authn.BasicCredential) BasicView {
	return BasicView{Index: index, Host: cred.Host, Realm: cred.Realm, Username: cred.Username, HasPassword: cred.Password != ""}
}

func newDomainView(index int, cred authn.DomainCredential) DomainView {
	return DomainView{Index: index, Host: cred.Host, Domain: cred.Domain, Username: cred.Username, HasPassword: cred.Password != ""}
}

func (s *Server) listBasic(c *gin.Context) {
	c.JSON(http.StatusOK, lo.Map(s.opts.Store.Basics(), func(cred authn.BasicCredential, i int) BasicView {
		return newBasicView(i, cred)
	}))
}

func (s *Server) addBasic(c *gin.Context) {
	var req basicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errdefs.NewE(errdefs.ErrInvalidParameter, err))
		return
	}
	cred := authn.BasicCredential(req)
	if cred.IsEmpty() {
		abortWithError(c, errdefs.Newf(errdefs.ErrInvalidParameter, "username or password is required"))
		return
	}
	s.opts.Store.AddBasic(cred)
	c.JSON(http.StatusCreated, newBasicView(s.indexOfBasic(cred.Key()), cred))
}

func (s *Server) getBasicAt(c *gin.Context) {
	index, err := parseIndex(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	cred, err := s.opts.Store.BasicAt(index)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBasicView(index, cred))
}

func (s *Server) deleteBasicAt(c *gin.Context) {
	index, err := parseIndex(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := s.opts.Store.DeleteBasicAt(index); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteBasic(c *gin.Context) {
	host, ok := c.GetQuery("host")
	if !ok || host == "" {
		abortWithError(c, errdefs.Newf(errdefs.ErrInvalidParameter, "query parameter %q is required", "host"))
		return
	}
	realm := c.Query("realm")
	if !s.opts.Store.DeleteBasic(host, realm) {
		abortWithError(c, errdefs.Newf(errdefs.ErrNotFound, "basic credential for host %q realm %q", host, realm))
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listDomain(c *gin.Context) {
	c.JSON(http.StatusOK, lo.Map(s.opts.Store.Domains(), func(cred authn.DomainCredential, i int) DomainView {
		return newDomainView(i, cred)
	}))
}

func (s *Server) addDomain(c *gin.Context) {
	var req domainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errdefs.NewE(errdefs.ErrInvalidParameter, err))
		return
	}
	cred := authn.DomainCredential(req)
	if cred.IsEmpty() {
		abortWithError(c, errdefs.Newf(errdefs.ErrInvalidParameter, "username or password is required"))
		return
	}
	s.opts.Store.AddDomain(cred)
	c.JSON(http.StatusCreated, newDomainView(s.indexOfDomain(cred.Host), cred))
}

func (s *Server) getDomainAt(c *gin.Context) {
	index, err := parseIndex(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	cred, err := s.opts.Store.DomainAt(index)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDomainView(index, cred))
}

func (s *Server) deleteDomainAt(c *gin.Context) {
	index, err := parseIndex(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := s.opts.Store.DeleteDomainAt(index); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteDomain(c *gin.Context) {
	host := c.Query("host")
	if host == "" {
		abortWithError(c, errdefs.Newf(errdefs.ErrInvalidParameter, "query parameter %q is required", "host"))
		return
	}
	if !s.opts.Store.DeleteDomain(host) {
		abortWithError(c, errdefs.Newf(errdefs.ErrNotFound, "domain credential for host %q", host))
		return
	}
	c.Status(http.StatusNoContent)
}

// indexOfBasic returns the current index of key, or -1 when a concurrent
// delete removed it.
func (s *Server) indexOfBasic(key authn.BasicKey) int {
	_, index, ok := lo.FindIndexOf(s.opts.Store.Basics(), func(cred authn.BasicCredential) bool {
		return cred.Key() == key
	})
	if !ok {
		return -1
	}
	return index
}

func (s *Server) indexOfDomain(host string) int {
	_, index, ok := lo.FindIndexOf(s.opts.Store.Domains(), func(cred authn.DomainCredential) bool {
		return cred.Host == host
	})
	if !ok {
		return -1
	}
	return index
}

func parseIndex(c *gin.Context) (int, error) {
	raw := c.Param("index")
	index, err := cast.ToIntE(raw)
	if err != nil {
		return 0, errdefs.Newf(errdefs.ErrInvalidParameter, "invalid index %q", raw)
	}
	return index, nil
}

func headerName(proxy bool) string {
	if proxy {
		return authn.HeaderProxyAuthorization
	}
	return authn.HeaderAuthorization
}
