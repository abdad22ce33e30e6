package images

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// maxConcurrentFetches bounds the fan-out across all report items so a
	// report with many photos cannot exhaust memory or trip host rate limits.
	maxConcurrentFetches = 6
	fetchTimeout         = 30 * time.Second
)

// Fetcher retrieves remote images over HTTPS, buffering each response fully
// in memory.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: fetchTimeout}}
}

// Fetch downloads a single image, retrying once on failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := f.fetchOnce(ctx, url)
	if err == nil {
		return data, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	return f.fetchOnce(ctx, url)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ResolveItems fetches and sizes every image of every report item with a
// bounded worker pool. A failure anywhere within one item degrades that item
// to an empty image list; other items are unaffected and the report proceeds.
func (f *Fetcher) ResolveItems(ctx context.Context, itemURLs [][]string) [][]Sized {
	type slot struct {
		img Sized
		err error
	}
	slots := make([][]slot, len(itemURLs))
	for i, urls := range itemURLs {
		slots[i] = make([]slot, len(urls))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, urls := range itemURLs {
		for j, url := range urls {
			i, j, url := i, j, url
			g.Go(func() error {
				data, err := f.Fetch(gctx, url)
				if err != nil {
					slots[i][j].err = err
					return nil
				}
				sized, err := Size(data)
				if err != nil {
					slots[i][j].err = err
					return nil
				}
				slots[i][j].img = sized
				return nil
			})
		}
	}
	_ = g.Wait() // workers never return errors; failures live in their slots

	results := make([][]Sized, len(itemURLs))
	for i := range slots {
		imgs := make([]Sized, 0, len(slots[i]))
		failed := false
		for j := range slots[i] {
			if slots[i][j].err != nil {
				log.Printf("report image skipped for item %d: %v", i, slots[i][j].err)
				failed = true
				break
			}
			imgs = append(imgs, slots[i][j].img)
		}
		if failed {
			results[i] = []Sized{}
		} else {
			results[i] = imgs
		}
	}
	return results
}
