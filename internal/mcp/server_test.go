package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdex/paperdex/internal/library"
	"github.com/paperdex/paperdex/internal/search"
)

type mockService struct {
	searchResults []search.Result
	searchErr     error
	browseRoots   []*search.FolderNode
	browseErr     error

	lastLibraryID int64
	lastQuery     string
	lastOpts      search.Options
}

func (m *mockService) Search(_ context.Context, libraryID int64, query string, opts search.Options) ([]search.Result, error) {
	m.lastLibraryID = libraryID
	m.lastQuery = query
	m.lastOpts = opts
	return m.searchResults, m.searchErr
}

func (m *mockService) Browse(_ context.Context, libraryID int64, opts search.Options) ([]*search.FolderNode, error) {
	m.lastLibraryID = libraryID
	m.lastOpts = opts
	return m.browseRoots, m.browseErr
}

func newTestServer(t *testing.T, svc search.Service) *Server {
	t.Helper()
	s, err := NewServer(svc, 1)
	require.NoError(t, err)
	return s
}

func TestNewServer_RequiresService(t *testing.T) {
	_, err := NewServer(nil, 1)
	assert.Error(t, err)
}

func TestServer_Info(t *testing.T) {
	s := newTestServer(t, &mockService{})
	name, _ := s.Info()
	assert.Equal(t, "paperdex", name)
	assert.NotNil(t, s.MCPServer())
}

func TestServer_ListTools(t *testing.T) {
	s := newTestServer(t, &mockService{})

	tools := s.ListTools()
	require.Len(t, tools, 2)
	assert.Equal(t, "search_papers", tools[0].Name)
	assert.Equal(t, "browse_library", tools[1].Name)
	assert.NotEmpty(t, tools[0].Description)
	assert.NotEmpty(t, tools[1].Description)
}

func TestSearchPapersHandler_EmptyQueryIsInvalidParams(t *testing.T) {
	s := newTestServer(t, &mockService{})

	_, _, err := s.mcpSearchPapersHandler(context.Background(), nil, SearchPapersInput{Query: "   "})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
}

func TestSearchPapersHandler_ReturnsResults(t *testing.T) {
	svc := &mockService{
		searchResults: []search.Result{
			{DocumentID: 9, Title: "Attention", Score: 900},
		},
	}
	s := newTestServer(t, svc)

	result, output, err := s.mcpSearchPapersHandler(context.Background(), nil, SearchPapersInput{
		Query: "attention",
		Limit: 5,
	})
	require.NoError(t, err)

	// Default library applies when library_id is omitted.
	assert.Equal(t, int64(1), svc.lastLibraryID)
	assert.Equal(t, "attention", svc.lastQuery)
	assert.Equal(t, 5, svc.lastOpts.Limit)

	require.Len(t, output.Results, 1)
	assert.Equal(t, "Attention", output.Results[0].Title)

	require.Len(t, result.Content, 1)
}

func TestSearchPapersHandler_ExplicitLibraryOverridesDefault(t *testing.T) {
	svc := &mockService{}
	s := newTestServer(t, svc)

	_, output, err := s.mcpSearchPapersHandler(context.Background(), nil, SearchPapersInput{
		Query:     "x",
		LibraryID: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), svc.lastLibraryID)
	// A nil slice from the service is projected to an empty one.
	assert.NotNil(t, output.Results)
	assert.Empty(t, output.Results)
}

func TestSearchPapersHandler_MapsLibraryNotFound(t *testing.T) {
	svc := &mockService{searchErr: library.ErrLibraryNotFound}
	s := newTestServer(t, svc)

	_, _, err := s.mcpSearchPapersHandler(context.Background(), nil, SearchPapersInput{Query: "x"})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeLibraryNotFound, mcpErr.Code)
}

func TestBrowseLibraryHandler_ReturnsTree(t *testing.T) {
	svc := &mockService{
		browseRoots: []*search.FolderNode{
			{ID: 1, Name: "Neural"},
		},
	}
	s := newTestServer(t, svc)

	result, output, err := s.mcpBrowseLibraryHandler(context.Background(), nil, BrowseLibraryInput{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), svc.lastLibraryID)
	require.Len(t, output.Collections, 1)
	assert.Equal(t, "Neural", output.Collections[0].Name)
	require.Len(t, result.Content, 1)
}

func TestBrowseLibraryHandler_EmptyLibrary(t *testing.T) {
	svc := &mockService{}
	s := newTestServer(t, svc)

	_, output, err := s.mcpBrowseLibraryHandler(context.Background(), nil, BrowseLibraryInput{LibraryID: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(3), svc.lastLibraryID)
	assert.NotNil(t, output.Collections)
	assert.Empty(t, output.Collections)
}

func TestBrowseLibraryHandler_MapsTimeout(t *testing.T) {
	svc := &mockService{browseErr: context.DeadlineExceeded}
	s := newTestServer(t, svc)

	_, _, err := s.mcpBrowseLibraryHandler(context.Background(), nil, BrowseLibraryInput{})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeTimeout, mcpErr.Code)
}

func TestServer_Serve_UnknownTransport(t *testing.T) {
	s := newTestServer(t, &mockService{})
	err := s.Serve(context.Background(), "tcp")
	assert.ErrorContains(t, err, "unknown transport")
}
