package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/unidesk/campus/internal/campus/domain"
	"github.com/unidesk/campus/internal/campus/service"
	"github.com/unidesk/campus/pkg/campussdk"
	"github.com/unidesk/campus/pkg/httpx"
	"github.com/unidesk/campus/pkg/slogx"
)

type FacultiesHandler struct {
	Catalog *service.Catalog
}

// ServeHTTP lists all faculties.
//
//	@Summary		List faculties
//	@Description	Returns all faculties. Requires a valid session.
//	@Tags			Catalog
//	@Produce		json
//	@Security		SessionAuth
//	@Success		200	{object}	map[string][]campussdk.Faculty
//	@Failure		401	{object}	campussdk.ErrorResponse
//	@Router			/v1/faculties [get].
func (h *FacultiesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	faculties, err := h.Catalog.ListFaculties(ctx)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, faculties)
}

// CollectionHandler serves every faculty sub-collection (courses, programs,
// branches, events). The handlers differ only in the coordinates they pass to
// the catalog service; there is deliberately no per-resource code.
type CollectionHandler struct {
	Catalog *service.Catalog
}

// HandleList lists a sub-collection, optionally filtered by numeric equality
// on one allow-listed field supplied as a query parameter.
//
//	@Summary		List a faculty sub-collection
//	@Description	Lists faculties/{facultyID}/{collection}. An equality filter may be given as a query parameter, e.g. ?programId=3.
//	@Tags			Catalog
//	@Produce		json
//	@Security		SessionAuth
//	@Param			facultyID	path		string	true	"Faculty id"
//	@Param			collection	path		string	true	"courses | programs | branches | events"
//	@Success		200			{object}	map[string][]campussdk.Item
//	@Failure		400			{object}	campussdk.ErrorResponse	"Unknown collection, unknown filter field or non-numeric filter value"
//	@Failure		401			{object}	campussdk.ErrorResponse
//	@Router			/v1/faculties/{facultyID}/{collection} [get].
func (h *CollectionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	facultyID := r.PathValue("facultyID")
	collection := r.PathValue("collection")

	field, raw, ok := filterParam(r, collection)
	if !ok {
		docs, err := h.Catalog.ListAll(ctx, facultyID, collection)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}
		httpx.WriteResult(w, http.StatusOK, docs)
		return
	}

	// Query parameters arrive as strings; the numeric parse happens here at
	// the boundary so a bad value is a 400, not a silent non-match.
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		campussdk.ErrInvalidRequest.
			WithDescription("filter value for " + field + " must be an integer").
			WriteError(w)
		return
	}

	docs, err := h.Catalog.ListByField(ctx, facultyID, collection, field, value)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, docs)
}

// HandleGet fetches a single catalog document.
//
//	@Summary		Get a catalog item
//	@Tags			Catalog
//	@Produce		json
//	@Security		SessionAuth
//	@Param			facultyID	path		string	true	"Faculty id"
//	@Param			collection	path		string	true	"courses | programs | branches | events"
//	@Param			itemID		path		string	true	"Item id"
//	@Success		200			{object}	map[string]campussdk.Item
//	@Failure		401			{object}	campussdk.ErrorResponse
//	@Failure		404			{object}	campussdk.ErrorResponse
//	@Router			/v1/faculties/{facultyID}/{collection}/{itemID} [get].
func (h *CollectionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	doc, err := h.Catalog.GetByID(ctx,
		r.PathValue("facultyID"), r.PathValue("collection"), r.PathValue("itemID"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, doc)
}

// HandlePut creates or replaces a catalog document. This is the catalog
// ingestion path; reads never mutate.
//
//	@Summary		Upsert a catalog item
//	@Tags			Catalog
//	@Accept			json
//	@Produce		json
//	@Security		SessionAuth
//	@Param			facultyID	path		string			true	"Faculty id"
//	@Param			collection	path		string			true	"courses | programs | branches | events"
//	@Param			itemID		path		string			true	"Item id"
//	@Param			request		body		campussdk.Item	true	"Document fields"
//	@Success		200			{object}	map[string]string
//	@Failure		400			{object}	campussdk.ErrorResponse
//	@Failure		401			{object}	campussdk.ErrorResponse
//	@Router			/v1/faculties/{facultyID}/{collection}/{itemID} [put].
func (h *CollectionHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	fields := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		campussdk.ErrInvalidRequest.WithDescription("body must be a JSON object").WriteError(w)
		return
	}
	delete(fields, "id") // the id lives in the path, not the body

	doc := domain.Document{ID: r.PathValue("itemID"), Fields: fields}
	if err := h.Catalog.Upsert(ctx, r.PathValue("facultyID"), r.PathValue("collection"), doc); err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, map[string]string{"id": doc.ID})
}

// filterParam returns the first allow-listed filter field present in the
// query, with its raw value. Unknown query parameters are ignored rather
// than rejected, matching the original API's tolerance.
func filterParam(r *http.Request, collection string) (field, raw string, ok bool) {
	c, err := domain.ParseCollection(collection)
	if err != nil {
		return "", "", false // the service reports the unknown collection
	}
	query := r.URL.Query()
	for _, f := range domain.FilterFields(c) {
		if query.Has(f) {
			return f, query.Get(f), true
		}
	}
	return "", "", false
}
