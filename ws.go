package sketch

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dpotapov/go-sketch/editor"
	"github.com/dpotapov/go-sketch/jsx"
)

// wsUpgrader is a Gorilla WebSocket instance, used to respond HTTP requests
// with WebSocket.
var wsUpgrader = websocket.Upgrader{}

// clientMsg is a message from the editor client.
type clientMsg struct {
	// Type is one of "open", "source", "event", "save".
	Type string `json:"type"`

	// SnippetID binds the session to a stored snippet ("open"), enabling
	// debounced auto-save.
	SnippetID string `json:"snippetId,omitempty"`

	// Source is the raw markup for "source" changes.
	Source string `json:"source,omitempty"`

	// Name is the optional display name for "save".
	Name string `json:"name,omitempty"`

	// Event is an interaction for "event".
	Event *editor.Event `json:"event,omitempty"`
}

// serverMsg is a message pushed to the editor client.
type serverMsg struct {
	// Type is one of "preview", "markup", "error", "saved".
	Type      string            `json:"type"`
	HTML      string            `json:"html,omitempty"`
	Markup    string            `json:"markup,omitempty"`
	Selection *editor.Selection `json:"selection,omitempty"`
	Editing   string            `json:"editing,omitempty"`
	Error     string            `json:"error,omitempty"`
	Context   string            `json:"context,omitempty"`
	SnippetID string            `json:"snippetId,omitempty"`
}

// serveEditor runs one editing session over a websocket connection. The
// reader goroutine applies client messages to the session; the main loop is
// the single writer. Debounced emissions arrive on the same out channel, so
// bursts of edits produce one markup push and one auto-save.
func (h *Handler) serveEditor(w http.ResponseWriter, r *http.Request) error {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	out := make(chan serverMsg, 16)
	done := make(chan error, 1)
	quit := make(chan struct{})
	defer close(quit)

	var mu sync.Mutex
	snippetID := ""

	sess := editor.NewSession(editor.Callbacks{
		OnEmit: func(markup string) {
			mu.Lock()
			id := snippetID
			mu.Unlock()

			msg := serverMsg{Type: "markup", Markup: markup}
			if id != "" {
				if _, err := h.Store.Update(id, "", markup); err != nil {
					h.logger.Error("Auto-save snippet", "id", id, "error", err)
				} else {
					msg.SnippetID = id
				}
			}
			select {
			case out <- msg:
			default:
				h.logger.Error("Drop markup push: slow editor client")
			}
		},
	}, h.saveDebounce())
	defer sess.Flush()

	go func() {
		for {
			var msg clientMsg
			if err := ws.ReadJSON(&msg); err != nil {
				if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					err = nil
				} else {
					err = fmt.Errorf("read websocket message: %w", err)
				}
				done <- err
				return
			}

			reply := h.applyClientMsg(sess, &msg, func(id string) {
				mu.Lock()
				snippetID = id
				mu.Unlock()
			})
			// The writer may be gone already; never block on a dead channel.
			for _, m := range reply {
				select {
				case out <- m:
				case <-quit:
					return
				}
			}
		}
	}()

	for {
		select {
		case msg := <-out:
			if err := ws.WriteJSON(msg); err != nil {
				return fmt.Errorf("write websocket message: %w", err)
			}
		case err := <-done:
			return err
		}
	}
}

// applyClientMsg applies one client message to the session and returns the
// messages to push back.
func (h *Handler) applyClientMsg(sess *editor.Session, msg *clientMsg, bind func(id string)) []serverMsg {
	switch msg.Type {
	case "open":
		sn, err := h.Store.Get(msg.SnippetID)
		if err != nil {
			return []serverMsg{{Type: "error", Error: "open snippet: " + err.Error()}}
		}
		bind(sn.ID)
		if err := sess.SetSource(sn.Markup); err != nil {
			return append(h.parseErrorMsgs(err), h.previewMsg(sess))
		}
		return []serverMsg{h.previewMsg(sess), {Type: "markup", Markup: sess.Markup(), SnippetID: sn.ID}}

	case "source":
		if err := sess.SetSource(msg.Source); err != nil {
			// The previously valid tree and its preview stay untouched.
			return h.parseErrorMsgs(err)
		}
		return []serverMsg{h.previewMsg(sess)}

	case "event":
		if msg.Event == nil {
			return nil
		}
		sess.HandleEvent(*msg.Event)
		return []serverMsg{h.previewMsg(sess)}

	case "save":
		sn, err := h.Store.Create(msg.Name, sess.Markup())
		if err != nil {
			h.logger.Error("Save snippet", "error", err)
			return []serverMsg{{Type: "error", Error: "save snippet: " + err.Error()}}
		}
		bind(sn.ID)
		return []serverMsg{{Type: "saved", SnippetID: sn.ID}}
	}
	return nil
}

func (h *Handler) previewMsg(sess *editor.Session) serverMsg {
	msg := serverMsg{
		Type:    "preview",
		HTML:    sess.RenderHTML(),
		Editing: sess.EditingID(),
	}
	if sel, ok := sess.SelectionInfo(); ok {
		msg.Selection = &sel
	}
	return msg
}

func (h *Handler) parseErrorMsgs(err error) []serverMsg {
	msg := serverMsg{Type: "error", Error: err.Error()}
	var pe *jsx.ParseError
	if errors.As(err, &pe) {
		msg.Context = pe.Context()
	}
	return []serverMsg{msg}
}
