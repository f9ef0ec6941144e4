package sketch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreCreateGet(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sn, err := s.Create("card", `<div>x</div>`)
	require.NoError(t, err)
	require.NotEmpty(t, sn.ID)
	require.Equal(t, "card", sn.Name)
	require.Equal(t, `<div>x</div>`, sn.Markup)
	require.False(t, sn.CreatedAt.IsZero())
	require.Equal(t, sn.CreatedAt, sn.UpdatedAt)

	got, err := s.Get(sn.ID)
	require.NoError(t, err)
	require.Equal(t, sn, got)
}

func TestStoreNotFound(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("nope")
	require.ErrorIs(t, err, ErrSnippetNotFound)
	_, err = s.Update("nope", "n", "m")
	require.ErrorIs(t, err, ErrSnippetNotFound)
	require.ErrorIs(t, s.Delete("nope"), ErrSnippetNotFound)
}

func TestStoreUpdate(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	s.now = stepClock()

	sn, err := s.Create("card", `<div>x</div>`)
	require.NoError(t, err)

	// Empty name keeps the current one.
	upd, err := s.Update(sn.ID, "", `<div>y</div>`)
	require.NoError(t, err)
	require.Equal(t, "card", upd.Name)
	require.Equal(t, `<div>y</div>`, upd.Markup)
	require.True(t, upd.UpdatedAt.After(sn.UpdatedAt))
	require.Equal(t, sn.CreatedAt, upd.CreatedAt)

	upd, err = s.Update(sn.ID, "renamed", `<div>z</div>`)
	require.NoError(t, err)
	require.Equal(t, "renamed", upd.Name)
}

func TestStoreDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	sn, err := s.Create("card", `<div>x</div>`)
	require.NoError(t, err)

	require.NoError(t, s.Delete(sn.ID))
	_, err = s.Get(sn.ID)
	require.ErrorIs(t, err, ErrSnippetNotFound)

	_, err = os.Stat(filepath.Join(dir, sn.ID+markupExt))
	require.True(t, os.IsNotExist(err))
}

func TestStoreListOrder(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	s.now = stepClock()

	a, err := s.Create("a", "<p>a</p>")
	require.NoError(t, err)
	b, err := s.Create("b", "<p>b</p>")
	require.NoError(t, err)
	c, err := s.Create("c", "<p>c</p>")
	require.NoError(t, err)

	// Touching a moves it to the front; most recently updated first.
	_, err = s.Update(a.ID, "", "<p>a2</p>")
	require.NoError(t, err)

	var ids []string
	for _, sn := range s.List() {
		ids = append(ids, sn.ID)
		require.Empty(t, sn.Markup)
	}
	require.Equal(t, []string{a.ID, c.ID, b.ID}, ids)
}

func TestStoreReload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	sn, err := s.Create("card", `<div>persisted</div>`)
	require.NoError(t, err)

	// A second store over the same directory sees the index and markup.
	s2, err := NewStore(dir)
	require.NoError(t, err)

	got, err := s2.Get(sn.ID)
	require.NoError(t, err)
	require.Equal(t, "card", got.Name)
	require.Equal(t, `<div>persisted</div>`, got.Markup)
	require.True(t, got.CreatedAt.Equal(sn.CreatedAt))
}

// stepClock returns a time source that advances one second per call.
func stepClock() func() time.Time {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}
