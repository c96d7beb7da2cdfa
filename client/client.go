// Package client is a core.RemoteStore backed by a companion server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ironfellow/companion/core"
)

const (
	defaultTimeout = 10 * time.Second
)

var tracer = otel.Tracer("client")

type client struct {
	endpoint string
	http     *http.Client
	dialer   *websocket.Dialer
}

// NewClient creates a store client for the server at endpoint ("https://host:port").
// timeout bounds each REST call; subscriptions are bounded by their context only.
func NewClient(endpoint string, timeout time.Duration) core.RemoteStore {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
		},
	}
}

// errorFromStatus turns an error response back into the error class the server reported.
func errorFromStatus(status int, message string) error {
	switch {
	case status == http.StatusNotFound:
		return core.NewErrorNotFound()
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		return core.NewErrorPermissionDenied()
	case status == http.StatusBadRequest:
		return core.NewErrorValidation(message)
	case status >= 500:
		return errors.Wrap(core.NewErrorNetworkFailure(), message)
	default:
		return fmt.Errorf("unexpected status %d: %s", status, message)
	}
}

func (c *client) do(ctx context.Context, method, url string, body []byte, content any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(core.NewErrorNetworkFailure(), err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(core.NewErrorNetworkFailure(), err.Error())
	}

	var response core.ResponseBase[json.RawMessage]
	err = json.Unmarshal(respBody, &response)
	if err != nil {
		return errorFromStatus(resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if resp.StatusCode != http.StatusOK || response.Status != "ok" {
		return errorFromStatus(resp.StatusCode, response.Error)
	}

	if content == nil {
		return nil
	}
	err = json.Unmarshal(response.Content, content)
	if err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return nil
}

func (c *client) docURL(path string) (string, error) {
	cleaned, err := core.CleanPath(path)
	if err != nil {
		return "", err
	}
	return c.endpoint + "/api/v1/docs" + cleaned, nil
}

// Get implements core.RemoteStore
func (c *client) Get(ctx context.Context, path string) (core.Document, error) {
	ctx, span := tracer.Start(ctx, "Client.Get")
	defer span.End()

	url, err := c.docURL(path)
	if err != nil {
		return core.Document{}, err
	}
	span.SetAttributes(attribute.String("path", path))

	var doc core.Document
	err = c.do(ctx, http.MethodGet, url, nil, &doc)
	if err != nil {
		if !core.IsTerminal(err) {
			span.RecordError(err)
		}
		return core.Document{}, err
	}

	return doc, nil
}

// List implements core.RemoteStore
func (c *client) List(ctx context.Context, collectionPath string) ([]core.Document, error) {
	ctx, span := tracer.Start(ctx, "Client.List")
	defer span.End()

	cleaned, err := core.CleanPath(collectionPath)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("path", cleaned))

	var docs []core.Document
	err = c.do(ctx, http.MethodGet, c.endpoint+"/api/v1/collections"+cleaned, nil, &docs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return docs, nil
}

// Set implements core.RemoteStore
func (c *client) Set(ctx context.Context, path string, data json.RawMessage) error {
	ctx, span := tracer.Start(ctx, "Client.Set")
	defer span.End()

	url, err := c.docURL(path)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("path", path))

	err = c.do(ctx, http.MethodPut, url, data, nil)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// Patch implements core.RemoteStore
func (c *client) Patch(ctx context.Context, path string, patch core.Patch) error {
	ctx, span := tracer.Start(ctx, "Client.Patch")
	defer span.End()

	url, err := c.docURL(path)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("path", path))

	body, err := json.Marshal(patch)
	if err != nil {
		return errors.Wrap(core.NewErrorValidation("patch is not serializable"), err.Error())
	}

	err = c.do(ctx, http.MethodPatch, url, body, nil)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// Delete implements core.RemoteStore
func (c *client) Delete(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Client.Delete")
	defer span.End()

	url, err := c.docURL(path)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("path", path))

	err = c.do(ctx, http.MethodDelete, url, nil, nil)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// Subscribe implements core.RemoteStore. Each subscription holds its own websocket connection.
func (c *client) Subscribe(ctx context.Context, path string, snapshots chan<- core.Snapshot) error {
	ctx, span := tracer.Start(ctx, "Client.Subscribe")
	defer span.End()

	cleaned, err := core.CleanPath(path)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("path", cleaned))

	url := "ws" + strings.TrimPrefix(c.endpoint, "http") + "/api/v1/realtime"
	header := http.Header{}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(header))

	ws, _, err := c.dialer.DialContext(ctx, url, header)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		span.RecordError(err)
		return errors.Wrap(core.NewErrorNetworkFailure(), err.Error())
	}
	defer ws.Close()

	stop := context.AfterFunc(ctx, func() {
		ws.Close()
	})
	defer stop()

	err = ws.WriteJSON(core.RealtimeRequest{Type: core.RealtimeListen, Path: cleaned})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		span.RecordError(err)
		return errors.Wrap(core.NewErrorNetworkFailure(), err.Error())
	}

	for {
		var event core.RealtimeEvent
		err := ws.ReadJSON(&event)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			span.RecordError(err)
			return errors.Wrap(core.NewErrorNetworkFailure(), err.Error())
		}

		if event.Path != cleaned {
			continue
		}
		if event.Error != "" {
			err := errorFromStatus(event.Code, event.Error)
			span.RecordError(err)
			return err
		}
		if event.Snapshot == nil {
			continue
		}

		select {
		case snapshots <- *event.Snapshot:
		case <-ctx.Done():
			return nil
		}
	}
}
