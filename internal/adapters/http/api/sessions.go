package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/swiri/internal/domain/model"
	"github.com/okian/swiri/internal/domain/session"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 16

// defaultChartTail is the number of latest samples shown in charts.
const defaultChartTail = 20

// scenarioRequest mirrors the OpenAPI schema for POST /api/sessions/{id}/scenario.
type scenarioRequest struct {
	Scenario string `json:"scenario" validate:"required,max=32"`
}

// confirmationRequest mirrors the OpenAPI schema for POST /api/sessions/{id}/confirmation.
type confirmationRequest struct {
	Outcome string `json:"outcome" validate:"required,max=32"`
}

// SessionsHandler handles the demo session workflow.
type SessionsHandler struct {
	deps      Dependencies
	validate  *validator.Validate
	chartTail int
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{
		deps:      deps,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		chartTail: defaultChartTail,
	}
}

// HandleCreate handles POST /api/sessions requests.
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.NewSession(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(st, h.chartTail))
}

// HandleGet handles GET /api/sessions/{id} requests.
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Session(r.Context(), r.PathValue("id"))
	h.respond(w, st, err)
}

// HandleScenario handles POST /api/sessions/{id}/scenario requests.
func (h *SessionsHandler) HandleScenario(w http.ResponseWriter, r *http.Request) {
	const op = "api.select_scenario"
	var req scenarioRequest
	if err := h.decode(r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	sc, err := model.ParseScenario(req.Scenario)
	if err != nil {
		writeDomainError(w, WrapKind(op, model.ErrInvalidScenario, err))
		return
	}
	st, err := h.deps.SelectScenario(r.Context(), r.PathValue("id"), sc)
	h.respond(w, st, err)
}

// HandleClassify handles POST /api/sessions/{id}/classify requests.
func (h *SessionsHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Classify(r.Context(), r.PathValue("id"))
	h.respond(w, st, err)
}

// HandleCapture handles POST /api/sessions/{id}/capture requests.
func (h *SessionsHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Capture(r.Context(), r.PathValue("id"))
	h.respond(w, st, err)
}

// HandleConfirmation handles POST /api/sessions/{id}/confirmation requests.
func (h *SessionsHandler) HandleConfirmation(w http.ResponseWriter, r *http.Request) {
	const op = "api.confirm"
	var req confirmationRequest
	if err := h.decode(r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	c, err := session.ParseConfirmation(req.Outcome)
	if err != nil {
		writeDomainError(w, WrapKind(op, session.ErrInvalidConfirmation, err))
		return
	}
	st, err := h.deps.Confirm(r.Context(), r.PathValue("id"), c)
	h.respond(w, st, err)
}

// HandleLogs handles GET /api/sessions/{id}/logs requests.
func (h *SessionsHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Session(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logsView{Logs: newLogViews(st.Logs), Stats: st.Stats()})
}

// HandleClearLogs handles DELETE /api/sessions/{id}/logs requests.
func (h *SessionsHandler) HandleClearLogs(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.ClearLogs(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logsView{Logs: newLogViews(st.Logs), Stats: st.Stats()})
}

func (h *SessionsHandler) respond(w http.ResponseWriter, st *session.State, err error) {
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(st, h.chartTail))
}

// decode reads a JSON body into v and validates its struct tags.
func (h *SessionsHandler) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field())+" failed "+fe.Tag())
			}
			return errors.New(strings.Join(fields, "; "))
		}
		return err
	}
	return nil
}
