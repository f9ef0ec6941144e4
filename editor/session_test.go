package editor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// emitRecorder collects OnEmit payloads for assertions across goroutines.
type emitRecorder struct {
	mu      sync.Mutex
	markups []string
}

func (r *emitRecorder) emit(markup string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markups = append(r.markups, markup)
}

func (r *emitRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.markups))
	copy(out, r.markups)
	return out
}

func newTestSession(t *testing.T, src string, cb Callbacks) *Session {
	t.Helper()
	s := NewSession(cb, 0)
	t.Cleanup(s.Close)
	require.NoError(t, s.SetSource(src))
	require.NotNil(t, s.Tree())
	return s
}

func TestSetSourceOutcomes(t *testing.T) {
	s := NewSession(Callbacks{}, 0)
	defer s.Close()

	// Not markup: no tree, no error.
	require.NoError(t, s.SetSource("just some notes"))
	require.Nil(t, s.Tree())

	// Markup installs a tree.
	require.NoError(t, s.SetSource(`<div><h1>Hi</h1></div>`))
	tree := s.Tree()
	require.NotNil(t, tree)

	// A grammar error keeps the previous tree.
	err := s.SetSource(`<div><h1>Hi</div>`)
	require.Error(t, err)
	require.Same(t, tree, s.Tree())
}

func TestSetSourceClearsSelection(t *testing.T) {
	s := newTestSession(t, `<div><h1>Hi</h1></div>`, Callbacks{})
	s.HandleEvent(Event{Type: EventClick, ID: s.Tree().Children[0].ID})
	require.NotEmpty(t, s.SelectedID())

	require.NoError(t, s.SetSource(`<p>other</p>`))
	require.Empty(t, s.SelectedID())
}

func TestClickSelectsExactNode(t *testing.T) {
	var selected []string
	s := newTestSession(t, `<div><h1>Hi</h1></div>`, Callbacks{
		OnSelect: func(id string) { selected = append(selected, id) },
	})
	h1 := s.Tree().Children[0]

	s.HandleEvent(Event{Type: EventClick, ID: h1.ID})
	require.Equal(t, h1.ID, s.SelectedID())
	require.Equal(t, []string{h1.ID}, selected)

	// The renderer outlines only the selected node, not its ancestors.
	out := s.RenderHTML()
	require.Contains(t, out, h1.ID+`" style="outline:`)
}

func TestClickBackgroundClears(t *testing.T) {
	s := newTestSession(t, `<div><h1>Hi</h1></div>`, Callbacks{})
	s.HandleEvent(Event{Type: EventClick, ID: s.Tree().ID})
	require.NotEmpty(t, s.SelectedID())

	s.HandleEvent(Event{Type: EventClick, ID: ""})
	require.Empty(t, s.SelectedID())

	// An id that is not in the tree counts as background.
	s.HandleEvent(Event{Type: EventClick, ID: s.Tree().ID})
	s.HandleEvent(Event{Type: EventClick, ID: "stale-id"})
	require.Empty(t, s.SelectedID())
}

func TestDblClickStartsEditOnSingleTextChild(t *testing.T) {
	var started []string
	s := newTestSession(t, `<div><h1>Hello</h1><button>Click <b>Me</b></button></div>`, Callbacks{
		OnStartEdit: func(id string) { started = append(started, id) },
	})
	h1 := s.Tree().Children[0]
	button := s.Tree().Children[1]

	// Mixed children never start an edit.
	s.HandleEvent(Event{Type: EventDblClick, ID: button.ID})
	require.Empty(t, s.EditingID())
	require.Empty(t, started)

	// A lone text child does; the text node is the editing target.
	s.HandleEvent(Event{Type: EventDblClick, ID: h1.ID})
	require.Equal(t, h1.Children[0].ID, s.EditingID())
	require.Equal(t, []string{h1.Children[0].ID}, started)
}

func TestCommitEdit(t *testing.T) {
	var (
		textEdits []string
		stopped   int
	)
	rec := &emitRecorder{}
	s := newTestSession(t, `<h1>Hello</h1>`, Callbacks{
		OnTextEdit: func(id, text string) { textEdits = append(textEdits, id+"="+text) },
		OnStopEdit: func() { stopped++ },
		OnEmit:     rec.emit,
	})
	textID := s.Tree().Children[0].ID

	s.HandleEvent(Event{Type: EventDblClick, ID: s.Tree().ID})
	require.Equal(t, textID, s.EditingID())

	s.HandleEvent(Event{Type: EventCommit, Text: "Goodbye"})
	require.Empty(t, s.EditingID())
	require.Equal(t, "Goodbye", s.Tree().Children[0].Text)
	require.Equal(t, []string{textID + "=Goodbye"}, textEdits)
	require.Equal(t, 1, stopped)
	require.Equal(t, []string{"<h1>Goodbye</h1>"}, rec.snapshot())

	// Ids survive the edit.
	require.Equal(t, textID, s.Tree().Children[0].ID)
}

func TestCancelEdit(t *testing.T) {
	rec := &emitRecorder{}
	s := newTestSession(t, `<h1>Hello</h1>`, Callbacks{OnEmit: rec.emit})

	s.HandleEvent(Event{Type: EventDblClick, ID: s.Tree().ID})
	s.HandleEvent(Event{Type: EventCancel})

	require.Empty(t, s.EditingID())
	require.Equal(t, "Hello", s.Tree().Children[0].Text)
	require.Empty(t, rec.snapshot())
}

func TestCommitWithoutEditIsNoOp(t *testing.T) {
	rec := &emitRecorder{}
	s := newTestSession(t, `<h1>Hello</h1>`, Callbacks{OnEmit: rec.emit})

	s.HandleEvent(Event{Type: EventCommit, Text: "x"})
	require.Equal(t, "Hello", s.Tree().Children[0].Text)
	require.Empty(t, rec.snapshot())
}

func TestStyleEventTargetsSelection(t *testing.T) {
	rec := &emitRecorder{}
	s := newTestSession(t, `<div><h1>Hi</h1></div>`, Callbacks{OnEmit: rec.emit})
	h1 := s.Tree().Children[0]

	s.HandleEvent(Event{Type: EventClick, ID: h1.ID})
	s.HandleEvent(Event{Type: EventStyle, Decls: map[string]string{"color": "red"}})

	got := s.Tree().Children[0].StyleObject()
	require.NotNil(t, got)
	require.Equal(t, "red", got.GetString("color"))

	// The edit is scoped to the target; the parent gained nothing.
	require.Nil(t, s.Tree().StyleObject())
}

func TestClassEvent(t *testing.T) {
	s := newTestSession(t, `<div class="old">x</div>`, Callbacks{})
	s.HandleEvent(Event{Type: EventClass, ID: s.Tree().ID, Text: "flex p-4"})

	require.Equal(t, "flex p-4", s.Tree().ClassList())
	v, _ := s.Tree().Attr("class")
	require.Equal(t, "flex p-4", v)
}

func TestTextEventScopedToNode(t *testing.T) {
	s := newTestSession(t, `<ul><li>a</li><li>a</li></ul>`, Callbacks{})
	first := s.Tree().Children[0].Children[0]

	s.HandleEvent(Event{Type: EventText, ID: first.ID, Text: "edited"})

	require.Equal(t, "edited", s.Tree().Children[0].Children[0].Text)
	require.Equal(t, "a", s.Tree().Children[1].Children[0].Text)
}

func TestEmittedMarkupEchoNotReparsed(t *testing.T) {
	rec := &emitRecorder{}
	s := newTestSession(t, `<div><h1>Hi</h1></div>`, Callbacks{OnEmit: rec.emit})
	h1 := s.Tree().Children[0]

	s.HandleEvent(Event{Type: EventClick, ID: h1.ID})
	s.HandleEvent(Event{Type: EventStyle, Decls: map[string]string{"color": "red"}})
	tree := s.Tree()

	// A view that echoes the emitted markup back as a text change must not
	// trigger a reparse: same tree, same ids, selection intact.
	emitted := rec.snapshot()
	require.Len(t, emitted, 1)
	require.NoError(t, s.SetSource(emitted[0]))
	require.Same(t, tree, s.Tree())
	require.Equal(t, h1.ID, s.SelectedID())

	// A real edit after the echo reparses normally.
	require.NoError(t, s.SetSource(`<p>new</p>`))
	require.NotSame(t, tree, s.Tree())
	require.Equal(t, "p", s.Tree().Tag)
}

func TestEditAfterMutationNotSwallowed(t *testing.T) {
	rec := &emitRecorder{}
	s := newTestSession(t, `<h1>Hello</h1>`, Callbacks{OnEmit: rec.emit})

	s.HandleEvent(Event{Type: EventDblClick, ID: s.Tree().ID})
	s.HandleEvent(Event{Type: EventCommit, Text: "Goodbye"})
	require.Len(t, rec.snapshot(), 1)

	// A view may apply the markup push without reporting it back as a text
	// change. The next genuine edit still parses and installs a new tree.
	require.NoError(t, s.SetSource(`<p>user typed this</p>`))
	require.Equal(t, "p", s.Tree().Tag)
	require.Equal(t, "user typed this", s.Tree().Children[0].Text)

	// Suppression is by content, not by order: even several mutations later
	// only the exact emitted markup is treated as an echo.
	s.HandleEvent(Event{Type: EventText, ID: s.Tree().Children[0].ID, Text: "again"})
	require.NoError(t, s.SetSource(`<h1>something else</h1>`))
	require.Equal(t, "h1", s.Tree().Tag)
	require.Equal(t, "something else", s.Tree().Children[0].Text)
}

func TestDebounceCoalesces(t *testing.T) {
	rec := &emitRecorder{}
	s := NewSession(Callbacks{OnEmit: rec.emit}, 30*time.Millisecond)
	defer s.Close()
	require.NoError(t, s.SetSource(`<div>x</div>`))
	id := s.Tree().ID

	s.HandleEvent(Event{Type: EventStyle, ID: id, Decls: map[string]string{"color": "red"}})
	s.HandleEvent(Event{Type: EventStyle, ID: id, Decls: map[string]string{"color": "green"}})
	s.HandleEvent(Event{Type: EventStyle, ID: id, Decls: map[string]string{"color": "blue"}})

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	got := rec.snapshot()
	require.Len(t, got, 1)
	require.Equal(t, `<div style={{color: "blue"}}>x</div>`, got[0])
}

func TestFlushEmitsPending(t *testing.T) {
	rec := &emitRecorder{}
	s := NewSession(Callbacks{OnEmit: rec.emit}, time.Hour)
	defer s.Close()
	require.NoError(t, s.SetSource(`<div>x</div>`))

	s.HandleEvent(Event{Type: EventStyle, ID: s.Tree().ID, Decls: map[string]string{"color": "red"}})
	require.Empty(t, rec.snapshot())

	s.Flush()
	require.Equal(t, []string{`<div style={{color: "red"}}>x</div>`}, rec.snapshot())
}

func TestSelectionInfo(t *testing.T) {
	s := newTestSession(t, `<div className="p-4"><h1 className="font-bold">Title</h1></div>`, Callbacks{})

	_, ok := s.SelectionInfo()
	require.False(t, ok)

	h1 := s.Tree().Children[0]
	s.HandleEvent(Event{Type: EventClick, ID: h1.ID})

	sel, ok := s.SelectionInfo()
	require.True(t, ok)
	require.Equal(t, h1.ID, sel.ID)
	require.Equal(t, "h1", sel.Tag)
	require.Equal(t, "bold", sel.Style["fontWeight"])
	require.Equal(t, "Title", sel.Text)
}

func TestNoOpMutationDoesNotEmit(t *testing.T) {
	rec := &emitRecorder{}
	s := newTestSession(t, `<h1>Hello</h1>`, Callbacks{OnEmit: rec.emit})

	s.HandleEvent(Event{Type: EventText, ID: "missing", Text: "x"})
	s.HandleEvent(Event{Type: EventStyle, ID: s.Tree().ID, Decls: nil})
	require.Empty(t, rec.snapshot())
}
