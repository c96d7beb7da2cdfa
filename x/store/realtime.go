package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/ironfellow/companion/core"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeHub struct {
	store core.RemoteStore

	connections atomic.Int64
	listeners   atomic.Int64
}

func newRealtimeHub(store core.RemoteStore) *realtimeHub {
	return &realtimeHub{store: store}
}

type listen struct {
	cancel context.CancelFunc
}

type connection struct {
	ws      *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	listens map[string]*listen
	wg      sync.WaitGroup
}

func (hub *realtimeHub) GetMetrics() map[string]int64 {
	return map[string]int64{
		"realtime_connections": hub.connections.Load(),
		"realtime_listeners":   hub.listeners.Load(),
	}
}

func (hub *realtimeHub) serve(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"failed to upgrade websocket",
			slog.String("error", err.Error()),
			slog.String("module", "store"),
		)
		return nil
	}

	hub.connections.Add(1)
	defer hub.connections.Add(-1)

	ctx, cancel := context.WithCancel(context.Background())
	conn := &connection{
		ws:      ws,
		listens: make(map[string]*listen),
	}
	defer func() {
		cancel()
		conn.wg.Wait()
		ws.Close()
	}()

	for {
		var request core.RealtimeRequest
		err := ws.ReadJSON(&request)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn(
					"websocket closed unexpectedly",
					slog.String("error", err.Error()),
					slog.String("module", "store"),
				)
			}
			return nil
		}

		switch request.Type {
		case core.RealtimeListen:
			hub.listen(ctx, conn, request.Path)
		case core.RealtimeUnlisten:
			conn.unlisten(request.Path)
		default:
			conn.send(core.RealtimeEvent{
				Path:  request.Path,
				Error: fmt.Sprintf("unknown request type: %s", request.Type),
				Code:  http.StatusBadRequest,
			})
		}
	}
}

func (hub *realtimeHub) listen(ctx context.Context, conn *connection, path string) {
	info, err := core.ParsePath(path)
	if err != nil {
		conn.send(core.RealtimeEvent{Path: path, Error: err.Error(), Code: StatusCode(err)})
		return
	}

	conn.mu.Lock()
	if _, ok := conn.listens[info.Path]; ok {
		conn.mu.Unlock()
		return
	}
	listenCtx, cancel := context.WithCancel(ctx)
	l := &listen{cancel: cancel}
	conn.listens[info.Path] = l
	conn.mu.Unlock()

	hub.listeners.Add(1)
	conn.wg.Add(1)
	go func() {
		defer conn.wg.Done()
		defer hub.listeners.Add(-1)
		defer cancel()

		snapshots := make(chan core.Snapshot, 16)
		errc := make(chan error, 1)
		go func() {
			errc <- hub.store.Subscribe(listenCtx, info.Path, snapshots)
		}()

		for {
			select {
			case <-listenCtx.Done():
				return
			case snapshot := <-snapshots:
				conn.send(core.RealtimeEvent{Path: info.Path, Snapshot: &snapshot})
			case err := <-errc:
				if listenCtx.Err() != nil {
					return
				}
				for drained := false; !drained; {
					select {
					case snapshot := <-snapshots:
						conn.send(core.RealtimeEvent{Path: info.Path, Snapshot: &snapshot})
					default:
						drained = true
					}
				}
				if err == nil {
					err = core.NewErrorNetworkFailure()
				}
				conn.remove(info.Path, l)
				conn.send(core.RealtimeEvent{Path: info.Path, Error: err.Error(), Code: StatusCode(err)})
				return
			}
		}
	}()
}

func (conn *connection) unlisten(path string) {
	cleaned, err := core.CleanPath(path)
	if err != nil {
		return
	}

	conn.mu.Lock()
	l, ok := conn.listens[cleaned]
	delete(conn.listens, cleaned)
	conn.mu.Unlock()

	if ok {
		l.cancel()
	}
}

func (conn *connection) remove(path string, l *listen) {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if conn.listens[path] == l {
		delete(conn.listens, path)
	}
}

func (conn *connection) send(event core.RealtimeEvent) {
	conn.writeMu.Lock()
	defer conn.writeMu.Unlock()

	conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
	err := conn.ws.WriteJSON(event)
	if err != nil {
		slog.Warn(
			fmt.Sprintf("failed to write realtime event for %s", event.Path),
			slog.String("error", err.Error()),
			slog.String("module", "store"),
		)
	}
}
