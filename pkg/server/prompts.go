package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/wuxler/ruacred/pkg/errdefs"
	"github.com/wuxler/ruacred/pkg/preferences"
	"github.com/wuxler/ruacred/pkg/prompt"
)

type answerRequest struct {
	Answers []prompt.Answer `json:"answers" binding:"required"`
}

type resolveRequest struct {
	Host       string   `json:"host" binding:"required"`
	Challenges []string `json:"challenges"`
	Proxy      bool     `json:"proxy"`
	// Prompt overrides the preference when set.
	Prompt *bool `json:"prompt,omitempty"`
}

type resolveResponse struct {
	Found  bool   `json:"found"`
	Header string `json:"header,omitempty"`
	Value  string `json:"value,omitempty"`
}

type preferencesBody struct {
	PromptForCredentials *bool `json:"promptForCredentials"`
}

func (s *Server) listPrompts(c *gin.Context) {
	if s.opts.Queue == nil {
		c.JSON(http.StatusOK, []prompt.Request{})
		return
	}
	c.JSON(http.StatusOK, s.opts.Queue.Pending())
}

func (s *Server) answerPrompt(c *gin.Context) {
	id, err := s.promptID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errdefs.NewE(errdefs.ErrInvalidParameter, err))
		return
	}
	if err := s.opts.Queue.Answer(id, req.Answers...); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) cancelPrompt(c *gin.Context) {
	id, err := s.promptID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := s.opts.Queue.Cancel(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) promptID(c *gin.Context) (uint64, error) {
	if s.opts.Queue == nil {
		return 0, errdefs.Newf(errdefs.ErrUnavailable, "prompting is not served")
	}
	raw := c.Param("id")
	id, err := cast.ToUint64E(raw)
	if err != nil {
		return 0, errdefs.Newf(errdefs.ErrInvalidParameter, "invalid prompt id %q", raw)
	}
	return id, nil
}

// resolve blocks while a prompt it started is pending.
func (s *Server) resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errdefs.NewE(errdefs.ErrInvalidParameter, err))
		return
	}
	promptEnabled := s.promptEnabled()
	if req.Prompt != nil {
		promptEnabled = *req.Prompt
	}

	ctx := c.Request.Context()
	var (
		value string
		found bool
	)
	if req.Proxy {
		value, found = s.opts.Resolver.ResolveProxy(ctx, req.Host, req.Challenges, promptEnabled)
	} else {
		value, found = s.opts.Resolver.Resolve(ctx, req.Host, req.Challenges, promptEnabled)
	}
	resp := resolveResponse{Found: found}
	if found {
		resp.Header = headerName(req.Proxy)
		resp.Value = value
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getPreferences(c *gin.Context) {
	enabled := s.promptEnabled()
	c.JSON(http.StatusOK, preferencesBody{PromptForCredentials: &enabled})
}

func (s *Server) putPreferences(c *gin.Context) {
	if s.opts.Preferences == nil {
		abortWithError(c, errdefs.Newf(errdefs.ErrUnavailable, "no preferences file is configured"))
		return
	}
	var body preferencesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, errdefs.NewE(errdefs.ErrInvalidParameter, err))
		return
	}
	if body.PromptForCredentials != nil {
		s.opts.Preferences.Set(preferences.KeyPromptForCredentials, *body.PromptForCredentials)
	}
	if err := s.opts.Preferences.Save(); err != nil {
		abortWithError(c, err)
		return
	}
	s.getPreferences(c)
}

func (s *Server) promptEnabled() bool {
	return s.opts.Preferences != nil && s.opts.Preferences.PromptForCredentialsEnabled()
}
