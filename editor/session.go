package editor

import (
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/dpotapov/go-sketch/jsx"
	"github.com/dpotapov/go-sketch/style"
)

// Event types understood by Session.HandleEvent. They mirror the pointer
// and keyboard gestures of the preview: click selects, double-click starts
// inline text editing, commit/cancel/blur end it, and style/text/class
// carry property-panel edits.
const (
	EventClick    = "click"
	EventDblClick = "dblclick"
	EventCommit   = "commit"
	EventCancel   = "cancel"
	EventBlur     = "blur"
	EventStyle    = "style"
	EventText     = "text"
	EventClass    = "class"
)

// Event is a single user interaction reported by the view.
type Event struct {
	Type  string            `json:"type"`
	ID    string            `json:"id,omitempty"`
	Text  string            `json:"text,omitempty"`
	Decls map[string]string `json:"decls,omitempty"`
}

// Callbacks is the session's outbound interaction contract. All callbacks
// are optional. OnEmit receives regenerated markup after the debounce
// window closes; the others fire synchronously as interactions resolve.
type Callbacks struct {
	OnSelect    func(id string)
	OnStartEdit func(id string)
	OnStopEdit  func()
	OnTextEdit  func(id, text string)
	OnEmit      func(markup string)
}

// Selection is the property-panel view of the selected node: its resolved
// style map plus its editable text (the node's own content if it is a text
// node, else the content of its first text child).
type Selection struct {
	ID    string    `json:"id"`
	Tag   string    `json:"tag,omitempty"`
	Style style.Map `json:"style"`
	Text  string    `json:"text"`
}

// Session owns one tree for the duration of an editing session. All
// parsing, mutation, resolution, and serialization run synchronously on the
// event that triggered them; the only asynchronous piece is the debounce
// gate in front of OnEmit.
type Session struct {
	mu sync.Mutex

	cb  Callbacks
	deb *Debouncer

	tree       *jsx.Node
	selectedID string
	editingID  string

	// emittedMarkup is the serialization of the last mutation, pending
	// acknowledgment. A view that applies the emitted markup to its text
	// field may observe that update as a text change and report it back;
	// feeding it through the parser would reset selection and in-progress
	// edits. SetSource recognizes the echo by content, so a genuine edit
	// arriving instead is never suppressed.
	emittedMarkup string
}

// NewSession returns a session emitting through a debounce window of the
// given duration.
func NewSession(cb Callbacks, debounce time.Duration) *Session {
	return &Session{cb: cb, deb: NewDebouncer(debounce)}
}

// SetSource parses new markup and installs the resulting tree, clearing
// selection and editing state. Three outcomes are distinguished: not-markup
// input installs an empty preview; a grammar error keeps the previous tree
// untouched and is returned for display; markup installs a fresh tree. A
// source equal to the last emitted markup is the view echoing a mutation
// back and is consumed without any of this.
func (s *Session) SetSource(src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emittedMarkup != "" && src == s.emittedMarkup {
		s.emittedMarkup = ""
		return nil
	}
	s.emittedMarkup = ""

	tree, err := jsx.Parse(src)
	if err != nil {
		return err
	}
	s.tree = tree
	s.selectedID = ""
	s.editingID = ""
	return nil
}

// HandleEvent applies one interaction to the session.
func (s *Session) HandleEvent(ev Event) {
	switch ev.Type {
	case EventClick:
		s.handleClick(ev.ID)
	case EventDblClick:
		s.handleDblClick(ev.ID)
	case EventCommit, EventBlur:
		s.commitEdit(ev.Text)
	case EventCancel:
		s.cancelEdit()
	case EventStyle:
		s.applyStyle(ev.ID, ev.Decls)
	case EventText:
		s.applyText(ev.ID, ev.Text)
	case EventClass:
		s.applyClass(ev.ID, ev.Text)
	}
}

// handleClick selects exactly the clicked node; the view stops propagation,
// so an ancestor is never selected by a click on its descendant. An empty
// or unknown id is a background click and clears the selection. Clicks
// inside the active editing field never re-select.
func (s *Session) handleClick(id string) {
	s.mu.Lock()
	if s.editingID != "" && id == s.editingID {
		s.mu.Unlock()
		return
	}
	if id != "" && jsx.FindByID(s.tree, id) == nil {
		id = ""
	}
	s.selectedID = id
	cb := s.cb.OnSelect
	s.mu.Unlock()

	if cb != nil {
		cb(id)
	}
}

// handleDblClick begins inline editing of the element's single direct text
// child. Elements without one (no text, or text mixed with other children)
// never start an edit; the text child, not the element, becomes the editing
// target.
func (s *Session) handleDblClick(id string) {
	s.mu.Lock()
	var target string
	if n := jsx.FindByID(s.tree, id); n != nil && n.Kind == jsx.KindElement {
		if tc := n.SingleTextChild(); tc != nil {
			target = tc.ID
			s.editingID = target
		}
	}
	cb := s.cb.OnStartEdit
	s.mu.Unlock()

	if target != "" && cb != nil {
		cb(target)
	}
}

func (s *Session) commitEdit(text string) {
	s.mu.Lock()
	id := s.editingID
	if id == "" {
		s.mu.Unlock()
		return
	}
	s.editingID = ""
	s.mutateLocked(jsx.UpdateText(s.tree, id, text))
	onText, onStop := s.cb.OnTextEdit, s.cb.OnStopEdit
	s.mu.Unlock()

	if onText != nil {
		onText(id, text)
	}
	if onStop != nil {
		onStop()
	}
}

func (s *Session) cancelEdit() {
	s.mu.Lock()
	active := s.editingID != ""
	s.editingID = ""
	cb := s.cb.OnStopEdit
	s.mu.Unlock()

	if active && cb != nil {
		cb()
	}
}

func (s *Session) applyStyle(id string, decls map[string]string) {
	s.mu.Lock()
	if id == "" {
		id = s.selectedID
	}
	s.mutateLocked(jsx.UpdateStyle(s.tree, id, decls))
	s.mu.Unlock()
}

func (s *Session) applyText(id, text string) {
	s.mu.Lock()
	s.mutateLocked(jsx.UpdateText(s.tree, id, text))
	s.mu.Unlock()
}

func (s *Session) applyClass(id, classes string) {
	s.mu.Lock()
	if id == "" {
		id = s.selectedID
	}
	s.mutateLocked(jsx.UpdateClassList(s.tree, id, classes))
	s.mu.Unlock()
}

// mutateLocked installs a mutated tree and schedules a debounced emission
// of the regenerated markup. Called with s.mu held. No-op mutations (same
// root back) change nothing and emit nothing.
func (s *Session) mutateLocked(tree *jsx.Node) bool {
	if tree == s.tree {
		return false
	}
	s.tree = tree

	markup := jsx.Serialize(tree)
	s.emittedMarkup = markup

	emit := s.cb.OnEmit
	if emit != nil {
		s.deb.Trigger(func() {
			emit(markup)
		})
	}
	return true
}

// Tree returns the current tree snapshot. Nodes are immutable, so the
// caller can read it freely even while new edits replace the root.
func (s *Session) Tree() *jsx.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// SelectedID returns the selected node id, or "".
func (s *Session) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// EditingID returns the id of the text node being edited, or "".
func (s *Session) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// Markup serializes the current tree.
func (s *Session) Markup() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return jsx.Serialize(s.tree)
}

// Render produces the preview for the current tree and interaction state.
func (s *Session) Render() *html.Node {
	s.mu.Lock()
	tree, st := s.tree, State{SelectedID: s.selectedID, EditingID: s.editingID}
	s.mu.Unlock()
	return Render(tree, st)
}

// RenderHTML is Render followed by html.Render.
func (s *Session) RenderHTML() string {
	s.mu.Lock()
	tree, st := s.tree, State{SelectedID: s.selectedID, EditingID: s.editingID}
	s.mu.Unlock()
	return RenderHTML(tree, st)
}

// SelectionInfo reports the property-panel data for the current selection.
func (s *Session) SelectionInfo() (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := jsx.FindByID(s.tree, s.selectedID)
	if n == nil {
		return Selection{}, false
	}
	sel := Selection{ID: n.ID, Style: style.Map{}}
	if n.Kind == jsx.KindText {
		sel.Text = n.Text
		return sel, true
	}
	sel.Tag = n.Tag
	sel.Style = style.Resolve(n)
	if tc := n.FirstTextChild(); tc != nil {
		sel.Text = tc.Text
	}
	return sel, true
}

// Flush forces out any pending debounced emission, for session teardown.
func (s *Session) Flush() {
	s.deb.Flush()
}

// Close stops the debounce timer without emitting.
func (s *Session) Close() {
	s.deb.Stop()
}
