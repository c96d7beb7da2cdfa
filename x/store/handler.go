package store

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
)

var tracer = otel.Tracer("store")

const maxDocumentSize = 1 << 20

// Handler is the REST and websocket surface of the document store
type Handler interface {
	Get(c echo.Context) error
	Set(c echo.Context) error
	Patch(c echo.Context) error
	Delete(c echo.Context) error
	List(c echo.Context) error
	Realtime(c echo.Context) error
	GetMetrics() map[string]int64
}

type handler struct {
	store    core.RemoteStore
	realtime *realtimeHub
}

// NewHandler creates a new store handler
func NewHandler(store core.RemoteStore) Handler {
	return &handler{
		store:    store,
		realtime: newRealtimeHub(store),
	}
}

// StatusCode maps an error class to the HTTP status reported to clients.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, core.ErrorNotFound{}):
		return http.StatusNotFound
	case errors.Is(err, core.ErrorPermissionDenied{}):
		return http.StatusForbidden
	case errors.Is(err, core.ErrorValidation{}):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrorNetworkFailure{}):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(c echo.Context, err error) error {
	return c.JSON(StatusCode(err), echo.Map{"status": "error", "error": err.Error()})
}

func requestPath(c echo.Context) string {
	return "/" + c.Param("*")
}

func (h *handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Store.Handler.Get")
	defer span.End()

	path := requestPath(c)
	span.SetAttributes(attribute.String("path", path))

	doc, err := h.store.Get(ctx, path)
	if err != nil {
		if !core.IsTerminal(err) {
			span.RecordError(err)
		}
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": doc})
}

func (h *handler) Set(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Store.Handler.Set")
	defer span.End()

	path := requestPath(c)
	span.SetAttributes(attribute.String("path", path))

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxDocumentSize+1))
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "error": err.Error()})
	}
	if len(body) > maxDocumentSize {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "error": "Document size is too large"})
	}

	err = h.store.Set(ctx, path, json.RawMessage(body))
	if err != nil {
		span.RecordError(err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *handler) Patch(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Store.Handler.Patch")
	defer span.End()

	path := requestPath(c)
	span.SetAttributes(attribute.String("path", path))

	var patch core.Patch
	err := c.Bind(&patch)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "error": err.Error()})
	}

	err = h.store.Patch(ctx, path, patch)
	if err != nil {
		span.RecordError(err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Store.Handler.Delete")
	defer span.End()

	path := requestPath(c)
	span.SetAttributes(attribute.String("path", path))

	err := h.store.Delete(ctx, path)
	if err != nil {
		span.RecordError(err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Store.Handler.List")
	defer span.End()

	path := requestPath(c)
	span.SetAttributes(attribute.String("path", path))

	docs, err := h.store.List(ctx, path)
	if err != nil {
		span.RecordError(err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": docs})
}

func (h *handler) Realtime(c echo.Context) error {
	return h.realtime.serve(c)
}

func (h *handler) GetMetrics() map[string]int64 {
	return h.realtime.GetMetrics()
}
