package channel

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/stellarlinkco/taskview/internal/config"
	"github.com/stellarlinkco/taskview/internal/transcript"
)

//go:embed static
var staticFiles embed.FS

const webUIChannelName = "webui"

const defaultWebUIPort = 18792

type wsMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	id   string
}

// WebUIChannel serves a live transcript page and fans rendered messages out
// to connected websocket clients.
type WebUIChannel struct {
	port    int
	server  *http.Server
	clients sync.Map
	nextID  atomic.Int64
}

func NewWebUIChannel(cfg config.WebUIConfig) *WebUIChannel {
	port := cfg.Port
	if port == 0 {
		port = defaultWebUIPort
	}
	return &WebUIChannel{port: port}
}

func (w *WebUIChannel) Name() string { return webUIChannelName }

func (w *WebUIChannel) Start(ctx context.Context) error {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("embed static fs: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(staticFS)))
	mux.HandleFunc("/ws", w.handleWS)

	w.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", w.port),
		Handler: mux,
	}

	go func() {
		log.Printf("[webui] listening on :%d", w.port)
		if err := w.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[webui] server error: %v", err)
		}
	}()

	return nil
}

func (w *WebUIChannel) handleWS(wr http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(wr, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("[webui] websocket accept error: %v", err)
		return
	}

	clientID := fmt.Sprintf("webui-%d", w.nextID.Add(1))
	w.clients.Store(clientID, &wsClient{conn: conn, id: clientID})
	log.Printf("[webui] client connected: %s", clientID)

	defer func() {
		w.clients.Delete(clientID)
		conn.CloseNow()
		log.Printf("[webui] client disconnected: %s", clientID)
	}()

	// The transcript view is one-way; keep reading only to notice the
	// client going away.
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

func (w *WebUIChannel) Send(msg transcript.Outbound) error {
	if msg.Text == "" {
		return nil
	}
	payload, err := json.Marshal(wsMessage{Type: "transcript", Content: msg.Text})
	if err != nil {
		return fmt.Errorf("marshal ws message: %w", err)
	}

	w.clients.Range(func(_, value any) bool {
		client := value.(*wsClient)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.conn.Write(ctx, websocket.MessageText, payload); err != nil {
			log.Printf("[webui] write to %s failed: %v", client.id, err)
		}
		cancel()
		return true
	})
	return nil
}

func (w *WebUIChannel) Stop() error {
	if w.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.server.Shutdown(ctx)
}
