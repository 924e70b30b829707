package http

import (
	"encoding/json"
	"net/http"

	"github.com/unidesk/campus/internal/campus/service"
	"github.com/unidesk/campus/pkg/campussdk"
	"github.com/unidesk/campus/pkg/httpx"
	"github.com/unidesk/campus/pkg/slogx"
)

type LoginHandler struct {
	Credentials service.Credentials
	Sessions    *service.Sessions
}

// ServeHTTP handles operator login.
//
//	@Summary		Operator login
//	@Description	Authenticates the administrative operator via Basic auth and issues a session token for the uid in the body.
//	@Description	The token is set as an HttpOnly, Secure, SameSite=Strict cookie named "token".
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		campussdk.LoginRequest	true	"Subject identity to issue the session for"
//	@Success		200		{object}	campussdk.LoginResponse
//	@Failure		400		{object}	campussdk.ErrorResponse	"Missing uid"
//	@Failure		401		{object}	campussdk.ErrorResponse	"Bad or missing credentials"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username, password, ok := r.BasicAuth()
	if !ok || !h.Credentials.Authenticate(username, password) {
		// Wrong username and wrong password collapse to the same answer.
		log.Info("login rejected")
		campussdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req campussdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UID == "" {
		campussdk.ErrInvalidRequest.WithDescription("body field uid is required").WriteError(w)
		return
	}

	token, err := h.Sessions.Issue(req.UID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	log.Info("login successful", "uid", req.UID)
	httpx.WriteJSON(w, http.StatusOK, campussdk.LoginResponse{Message: "Login successful"})
}
