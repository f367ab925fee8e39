// Package web is a thin wrapper around dimfeld/httptreemux giving handlers
// a uniform signature and a couple of JSON helpers, reconstructing the
// idiom the teacher's app/services/node handlers are written against.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dimfeld/httptreemux/v5"
	"github.com/google/uuid"
)

// Handler is the signature every route handler implements: it returns an
// error instead of writing one directly, so App can centralize error
// translation.
type Handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

// App wraps an httptreemux router.
type App struct {
	mux *httptreemux.ContextMux
}

// NewApp constructs an empty App.
func NewApp() *App {
	return &App{mux: httptreemux.NewContextMux()}
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Handle registers h at method/version/path. Any error h returns is
// translated to a JSON error response.
func (a *App) Handle(method, version, path string, h Handler) {
	full := fmt.Sprintf("/%s%s", version, path)

	wrapped := func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), traceIDKey, uuid.NewString())

		if err := h(ctx, w, r); err != nil {
			var re RequestError
			if asRequestError(err, &re) {
				_ = Respond(ctx, w, errorResponse{Error: re.Err.Error()}, re.Status)
				return
			}
			_ = Respond(ctx, w, errorResponse{Error: err.Error()}, http.StatusInternalServerError)
		}
	}

	a.mux.Handle(method, full, wrapped)
}

type contextKey int

const traceIDKey contextKey = 1

// Param returns a named path parameter, or "" if absent. It reads the
// httptreemux route params from ctx; a Handler's ctx carries them because
// it is derived from r.Context(), where the mux attaches them.
func Param(ctx context.Context, name string) string {
	params := httptreemux.ContextParams(ctx)
	return params[name]
}

// TraceID returns the per-request trace id assigned when the request
// entered the mux, or "" if ctx didn't come from a Handler.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

type errorResponse struct {
	Error string `json:"error"`
}

// Respond marshals data as JSON and writes it with statusCode. A nil data
// writes no body (useful for 204 No Content).
func Respond(_ context.Context, w http.ResponseWriter, data any, statusCode int) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if data == nil {
		w.WriteHeader(statusCode)
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.WriteHeader(statusCode)
	_, err = w.Write(jsonData)
	return err
}

// Decode reads the request body as JSON into v.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
