package images

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestFetch_RetriesOnce(t *testing.T) {
	var calls atomic.Int32
	img := pngBytes(t, 10, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(img)
	}))
	defer srv.Close()

	data, err := NewFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, img, data)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_FailsAfterRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestResolveItems_FailedItemDegradesToEmptyList(t *testing.T) {
	good := pngBytes(t, 900, 600)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(good)
	}))
	defer srv.Close()

	results := NewFetcher().ResolveItems(context.Background(), [][]string{
		{srv.URL + "/a"},
		{srv.URL + "/b", srv.URL + "/bad"},
		{},
	})

	require.Len(t, results, 3)
	require.Len(t, results[0], 1)
	assert.Equal(t, 450, results[0][0].Width)
	assert.Equal(t, 300, results[0][0].Height)
	// One bad URL empties the whole item, untouched items keep their images.
	assert.Empty(t, results[1])
	assert.Empty(t, results[2])
}

func TestResolveItems_IndexToResultMappingPreserved(t *testing.T) {
	small := pngBytes(t, 100, 50)
	large := pngBytes(t, 900, 600)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/small" {
			_, _ = w.Write(small)
			return
		}
		_, _ = w.Write(large)
	}))
	defer srv.Close()

	results := NewFetcher().ResolveItems(context.Background(), [][]string{
		{srv.URL + "/large", srv.URL + "/small"},
	})

	require.Len(t, results, 1)
	require.Len(t, results[0], 2)
	assert.Equal(t, 450, results[0][0].Width)
	assert.Equal(t, 100, results[0][1].Width)
}
