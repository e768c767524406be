package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	calls   int
	results []SearchResult
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]SearchResult, error) {
	s.calls++
	return s.results, s.err
}

func TestCachedSearcher_NilClientPassthrough(t *testing.T) {
	stub := &stubSearcher{results: []SearchResult{{OpenLibraryID: "OL1W", Title: "Dune"}}}
	cached := NewCachedSearcher(stub, nil, time.Minute, nil)

	for i := 0; i < 3; i++ {
		results, err := cached.Search(context.Background(), "dune")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Dune", results[0].Title)
	}
	// Without Redis every call goes straight to the catalog.
	assert.Equal(t, 3, stub.calls)
}

func TestCachedSearcher_InnerErrorPropagates(t *testing.T) {
	wantErr := errors.New("upstream down")
	cached := NewCachedSearcher(&stubSearcher{err: wantErr}, nil, time.Minute, nil)

	_, err := cached.Search(context.Background(), "dune")
	assert.ErrorIs(t, err, wantErr)
}

func TestSearchKey_Normalizes(t *testing.T) {
	assert.Equal(t, searchKey("dune"), searchKey("  DUNE "))
	assert.Equal(t, "catalog:search:dune messiah", searchKey("Dune Messiah"))
}
