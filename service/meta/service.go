// Package meta loads declarative configuration documents through the afs
// abstract file system, so that manifests can live on the local disk, inside
// an embedded test fixture or on any other storage afs supports.
package meta

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// Service resolves and downloads configuration documents relative to a base URL.
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// New creates a meta service. An empty baseURL leaves URIs untouched.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, options: options}
}

// Download reads the document identified by URI and expands ${env.KEY}
// expressions with the current process environment.
func (s *Service) Download(ctx context.Context, URI string) ([]byte, error) {
	location := s.normalizeURL(URI)
	data, err := s.fs.DownloadWithURL(ctx, location, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", location, err)
	}
	return []byte(expandEnvExpr(string(data))), nil
}

// Exists reports whether the document identified by URI is present.
func (s *Service) Exists(ctx context.Context, URI string) (bool, error) {
	return s.fs.Exists(ctx, s.normalizeURL(URI), s.options...)
}

// List returns URLs of documents with the given suffix directly under dirURI,
// sorted lexicographically by name so that discovery is deterministic.
func (s *Service) List(ctx context.Context, dirURI, suffix string) ([]string, error) {
	location := s.normalizeURL(dirURI)
	objects, err := s.fs.List(ctx, location, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", location, err)
	}
	type item struct {
		name string
		URL  string
	}
	var items []item
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		if suffix != "" && !strings.HasSuffix(object.Name(), suffix) {
			continue
		}
		items = append(items, item{name: object.Name(), URL: object.URL()})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].name < items[j].name })
	var result []string
	for _, anItem := range items {
		result = append(result, anItem.URL)
	}
	return result, nil
}

func (s *Service) normalizeURL(URI string) string {
	if s.baseURL == "" || strings.Contains(URI, "://") || strings.HasPrefix(URI, "/") {
		return URI
	}
	return url.Join(s.baseURL, URI)
}
