package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/query"
	"github.com/okian/roster/internal/domain/types"
	"github.com/okian/roster/pkg/logger"
)

// maxBodyBytes bounds create and edit payloads.
const maxBodyBytes = 1 << 20

// PlayerDependencies defines the roster operations behind /players.
type PlayerDependencies interface {
	ListPlayers(ctx context.Context, req types.ListRequest) (types.Page, error)
	GetPlayer(ctx context.Context, id int) (types.PlayerView, error)
	CreatePlayer(ctx context.Context, d model.Draft) (model.Player, error)
	ReplacePlayer(ctx context.Context, id int, d model.Draft) (model.Player, error)
	PatchPlayer(ctx context.Context, id int, dp model.DraftPatch) (model.Player, error)
	DeletePlayer(ctx context.Context, id int) (bool, error)
}

// PlayersHandler handles the list view and edit view routes.
type PlayersHandler struct {
	deps   PlayerDependencies
	logger logger.Logger
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies, l logger.Logger) *PlayersHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &PlayersHandler{deps: deps, logger: l}
}

// HandleList handles GET /players?search=&column=&operator=&value=&page=&page_size=.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"
	req, err := parseListRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	page, err := h.deps.ListPlayers(r.Context(), req)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// parseListRequest reads the list query. Missing column and operator
// default to the match-everything filter.
func parseListRequest(q url.Values) (types.ListRequest, error) {
	c := query.DefaultCriteria()
	if v := q.Get("column"); v != "" {
		col, err := query.ParseColumn(v)
		if err != nil {
			return types.ListRequest{}, err
		}
		c.Column = col
	}
	if v := q.Get("operator"); v != "" {
		opr, err := query.ParseOperator(v)
		if err != nil {
			return types.ListRequest{}, err
		}
		c.Operator = opr
	}
	c.Value = q.Get("value")

	page, err := intParam(q, "page")
	if err != nil {
		return types.ListRequest{}, err
	}
	size, err := intParam(q, "page_size")
	if err != nil {
		return types.ListRequest{}, err
	}
	return types.ListRequest{Search: q.Get("search"), Criteria: c, Page: page, PageSize: size}, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	return n, nil
}

// HandleGet handles GET /players/{id}: the edit view prefill.
func (h *PlayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player"
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.GetPlayer(r.Context(), id)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleCreate handles POST /players.
func (h *PlayersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_player"
	var d model.Draft
	if err := decodeBody(w, r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.CreatePlayer(r.Context(), d)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	w.Header().Set("Location", "/players/"+strconv.Itoa(p.ID))
	writeJSON(w, http.StatusCreated, p)
}

// HandleReplace handles PUT /players/{id} with a full form.
func (h *PlayersHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	const op = "api.replace_player"
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	var d model.Draft
	if err := decodeBody(w, r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.ReplacePlayer(r.Context(), id, d)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandlePatch handles PATCH /players/{id} with a partial form.
func (h *PlayersHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.patch_player"
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	var dp model.DraftPatch
	if err := decodeBody(w, r, &dp); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.PatchPlayer(r.Context(), id, dp)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /players/{id}. Unknown ids also answer 204.
func (h *PlayersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_player"
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	if _, err := h.deps.DeletePlayer(r.Context(), id); err != nil {
		h.fail(w, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlayersHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if !isNotFound(err) {
		h.logger.Debug(r.Context(), "request failed",
			logger.String("op", op),
			logger.String("request_id", RequestIDFrom(r.Context())),
			logger.Error(err),
		)
	}
	writeServiceError(w, op, err)
}

func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid player id %q", raw)
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
