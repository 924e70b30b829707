package http

import (
	"encoding/json"
	"net/http"

	"github.com/unidesk/campus/internal/campus/service"
	"github.com/unidesk/campus/pkg/campussdk"
	"github.com/unidesk/campus/pkg/httpx"
	"github.com/unidesk/campus/pkg/slogx"
)

type UsersHandler struct {
	Users *service.Users
}

// HandleSave idempotently creates a user profile.
//
//	@Summary		Save a user profile
//	@Description	Creates a profile with the default role on first call; reports pre-existence on later calls without writing.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		SessionAuth
//	@Param			request	body		campussdk.LoginRequest	true	"uid to create"
//	@Success		200		{object}	map[string]campussdk.SaveUserResult
//	@Failure		400		{object}	campussdk.ErrorResponse
//	@Failure		401		{object}	campussdk.ErrorResponse
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req campussdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UID == "" {
		campussdk.ErrInvalidRequest.WithDescription("body field uid is required").WriteError(w)
		return
	}

	existed, err := h.Users.SaveUser(ctx, req.UID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, campussdk.SaveUserResult{Existed: existed})
}

// HandleGet fetches a user profile.
//
//	@Summary	Get a user profile
//	@Tags		Users
//	@Produce	json
//	@Security	SessionAuth
//	@Param		uid	path		string	true	"User identity"
//	@Success	200	{object}	map[string]campussdk.UserProfile
//	@Failure	401	{object}	campussdk.ErrorResponse
//	@Failure	404	{object}	campussdk.ErrorResponse
//	@Router		/v1/users/{uid} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	profile, err := h.Users.GetUserByID(ctx, r.PathValue("uid"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, profile)
}

// HandleUpdate partially updates a profile. Fields outside the allow-list
// are silently dropped.
//
//	@Summary	Update a user profile
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Security	SessionAuth
//	@Param		uid		path		string			true	"User identity"
//	@Param		request	body		map[string]any	true	"Partial field updates"
//	@Success	200		{object}	map[string]string
//	@Failure	401		{object}	campussdk.ErrorResponse
//	@Failure	404		{object}	campussdk.ErrorResponse
//	@Router		/v1/users/{uid} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	updates := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		campussdk.ErrInvalidRequest.WithDescription("body must be a JSON object").WriteError(w)
		return
	}

	if err := h.Users.UpdateUser(ctx, r.PathValue("uid"), updates); err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete permanently removes a profile.
//
//	@Summary	Delete a user profile
//	@Tags		Users
//	@Produce	json
//	@Security	SessionAuth
//	@Param		uid	path		string	true	"User identity"
//	@Success	200	{object}	map[string]string
//	@Failure	401	{object}	campussdk.ErrorResponse
//	@Failure	404	{object}	campussdk.ErrorResponse
//	@Router		/v1/users/{uid} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.Users.DeleteUser(ctx, r.PathValue("uid")); err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleVerify gates an email-verification request.
//
//	@Summary	Request email verification
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Security	SessionAuth
//	@Param		uid		path		string						true	"User identity"
//	@Param		request	body		campussdk.VerifyUserRequest	true	"Address to verify"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	campussdk.ErrorResponse	"Malformed email address"
//	@Failure	401		{object}	campussdk.ErrorResponse
//	@Failure	404		{object}	campussdk.ErrorResponse
//	@Router		/v1/users/{uid}/verify [post].
func (h *UsersHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req campussdk.VerifyUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		campussdk.ErrInvalidRequest.WithDescription("body field email is required").WriteError(w)
		return
	}

	if err := h.Users.VerifyUser(ctx, r.PathValue("uid"), req.Email); err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, map[string]string{"status": "verification-sent"})
}
