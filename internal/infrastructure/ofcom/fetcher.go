package ofcom

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"uk_numcheck/internal/infrastructure/datastate"
	"uk_numcheck/pkg/httpx"
	"uk_numcheck/pkg/logx"
)

const (
	fetchTimeout   = 2 * time.Minute
	logFieldMaxLen = 2048
)

// FetchStateStore remembers conditional download state between refreshes.
type FetchStateStore interface {
	Get(ctx context.Context, source string) (datastate.FetchState, error)
	Set(ctx context.Context, source string, state datastate.FetchState) error
}

// File is one downloaded source document.
type File struct {
	Name    string
	Content []byte
}

// Result is the outcome of one fetch pass over every configured file.
// ContentHash covers the whole set in file order, so two passes over
// identical upstream content always produce the same hash. NotModified means
// every file matched its remembered validators and no content was returned.
type Result struct {
	Files       []File
	FetchedAt   time.Time
	ContentHash string
	NotModified bool
}

// Fetcher downloads the numbering-plan files with conditional requests. The
// per-file validators live in the shared state store, so whichever replica
// runs the refresh sees what upstream last served.
type Fetcher struct {
	client  *http.Client
	baseURL string
	files   []string
	state   FetchStateStore
}

func NewFetcher(baseURL string, files []string, state FetchStateStore) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: fetchTimeout,
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
				httpx.WithLogFieldMaxLen(logFieldMaxLen),
			),
		},
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		files:   files,
		state:   state,
	}
}

type fileFetch struct {
	file     File
	state    datastate.FetchState
	modified bool
}

// Fetch downloads every configured file. When at least one file changed, the
// files that answered 304 are fetched again without validators so the result
// always carries the complete set.
func (f *Fetcher) Fetch(ctx context.Context) (Result, error) {
	fetchedAt := time.Now().UTC()

	fetches := make([]fileFetch, len(f.files))

	for i, name := range f.files {
		prev, err := f.state.Get(ctx, name)
		if err != nil {
			// A lost validator only costs an unconditional download.
			logger(ctx).Warn("reading fetch state", slog.String("file", name), logx.Error(err))

			prev = datastate.FetchState{}
		}

		fetches[i], err = f.download(ctx, name, prev)
		if err != nil {
			return Result{}, err
		}
	}

	anyModified := false
	for _, fetch := range fetches {
		if fetch.modified {
			anyModified = true
			break
		}
	}

	if !anyModified {
		logger(ctx).Info("upstream unchanged", slog.Int("files", len(f.files)))

		return Result{
			FetchedAt:   fetchedAt,
			ContentHash: combinedHash(fetches),
			NotModified: true,
		}, nil
	}

	for i := range fetches {
		if fetches[i].file.Content != nil {
			continue
		}

		fetch, err := f.download(ctx, fetches[i].file.Name, datastate.FetchState{})
		if err != nil {
			return Result{}, err
		}

		fetches[i] = fetch
	}

	files := make([]File, len(fetches))
	for i, fetch := range fetches {
		files[i] = fetch.file

		if err := f.state.Set(ctx, fetch.file.Name, fetch.state); err != nil {
			logger(ctx).Warn("storing fetch state", slog.String("file", fetch.file.Name), logx.Error(err))
		}
	}

	return Result{
		Files:       files,
		FetchedAt:   fetchedAt,
		ContentHash: combinedHash(fetches),
	}, nil
}

func (f *Fetcher) download(ctx context.Context, name string, prev datastate.FetchState) (fileFetch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+name, nil)
	if err != nil {
		return fileFetch{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if prev.ETag != "" {
		req.Header.Set("If-None-Match", prev.ETag)
	}

	if prev.LastModified != "" {
		req.Header.Set("If-Modified-Since", prev.LastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fileFetch{}, fmt.Errorf("download %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return fileFetch{
			file:  File{Name: name},
			state: prev,
		}, nil
	case http.StatusOK:
	default:
		return fileFetch{}, fmt.Errorf("download %s: unexpected status %s", name, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return fileFetch{}, fmt.Errorf("download %s: read body: %w", name, err)
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	return fileFetch{
		file: File{Name: name, Content: content},
		state: datastate.FetchState{
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
			ContentHash:  hash,
		},
		// Some servers ignore validators and answer 200 for unchanged
		// content, so compare hashes as well.
		modified: prev.ContentHash == "" || prev.ContentHash != hash,
	}, nil
}

func combinedHash(fetches []fileFetch) string {
	var sb strings.Builder
	for _, fetch := range fetches {
		sb.WriteString(fetch.file.Name)
		sb.WriteByte(0)
		sb.WriteString(fetch.state.ContentHash)
		sb.WriteByte(0)
	}

	sum := sha256.Sum256([]byte(sb.String()))

	return hex.EncodeToString(sum[:])
}
