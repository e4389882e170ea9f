package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pgpipe/pgpipe/internal/dberrors"
)

func TestInsertAndGet(t *testing.T) {
	r := New()
	require.False(t, r.Has("p1"))

	def := r.Insert(&Definition{Name: "p1", SQL: "select 1"})
	require.True(t, r.Has("p1"))

	got, err := r.Get("p1")
	require.NoError(t, err)
	require.Same(t, def, got)
}

func TestGetUnknownReturnsUnknownPrepared(t *testing.T) {
	r := New()
	_, err := r.Get("missing")

	var unknown *dberrors.UnknownPrepared
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "missing", unknown.Name)
}

func TestInsertOverwritesIdempotently(t *testing.T) {
	r := New()
	r.Insert(&Definition{Name: "p1", SQL: "select 1"})
	def2 := r.Insert(&Definition{Name: "p1", SQL: "select 2"})

	got, err := r.Get("p1")
	require.NoError(t, err)
	require.Equal(t, "select 2", got.SQL)
	require.Same(t, def2, got)
}
