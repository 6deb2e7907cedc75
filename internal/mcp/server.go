package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paperdex/paperdex/internal/search"
	"github.com/paperdex/paperdex/pkg/version"
)

// Server is the MCP server for paperdex.
// It bridges AI clients with the library search engine.
type Server struct {
	mcp       *mcp.Server
	service   search.Service
	libraryID int64
	logger    *slog.Logger
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// SearchPapersInput defines the input schema for the search_papers tool.
type SearchPapersInput struct {
	Query     string `json:"query" jsonschema:"the search query, matched against titles, creators, citation keys, DOIs, venues, years and attachment titles"`
	LibraryID int64  `json:"library_id,omitempty" jsonschema:"library to search, defaults to the configured library"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 20"`
}

// SearchPapersOutput defines the output schema for the search_papers tool.
type SearchPapersOutput struct {
	Results []search.Result `json:"results" jsonschema:"scored results, best first"`
}

// BrowseLibraryInput defines the input schema for the browse_library tool.
type BrowseLibraryInput struct {
	LibraryID int64 `json:"library_id,omitempty" jsonschema:"library to browse, defaults to the configured library"`
}

// BrowseLibraryOutput defines the output schema for the browse_library tool.
type BrowseLibraryOutput struct {
	Collections []*search.FolderNode `json:"collections" jsonschema:"root collections, each with nested collections and documents"`
}

// NewServer creates a new MCP server. defaultLibraryID is used when a tool
// call omits library_id.
func NewServer(service search.Service, defaultLibraryID int64) (*Server, error) {
	if service == nil {
		return nil, errors.New("search service is required")
	}

	s := &Server{
		service:   service,
		libraryID: defaultLibraryID,
		logger:    slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "paperdex",
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return "paperdex", version.Version
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        "search_papers",
			Description: searchPapersDescription,
		},
		{
			Name:        "browse_library",
			Description: browseLibraryDescription,
		},
	}
}

const (
	searchPapersDescription = "Search the paper library. Matches titles, short titles, creators, citation keys, DOIs, venues, years and PDF attachment titles. Results are scored and sorted, best first."
	browseLibraryDescription = "Browse the library's collection tree. Returns root collections with nested collections and the documents filed in each; uncollected documents appear under a final synthetic collection named after the library."
)

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	s.logger.Debug("Registering MCP tools")

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_papers",
		Description: searchPapersDescription,
	}, s.mcpSearchPapersHandler)
	s.logger.Debug("Registered tool", slog.String("name", "search_papers"))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "browse_library",
		Description: browseLibraryDescription,
	}, s.mcpBrowseLibraryHandler)
	s.logger.Debug("Registered tool", slog.String("name", "browse_library"))

	s.logger.Info("MCP tools registered", slog.Int("count", 2))
}

// mcpSearchPapersHandler is the MCP SDK handler for the search_papers tool.
func (s *Server) mcpSearchPapersHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchPapersInput) (
	*mcp.CallToolResult,
	SearchPapersOutput,
	error,
) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchPapersOutput{}, NewInvalidParamsError("query parameter is required and must be a non-empty string")
	}

	start := time.Now()
	requestID := generateRequestID()
	libraryID := s.resolveLibraryID(input.LibraryID)

	s.logger.Info("search_papers started",
		slog.String("request_id", requestID),
		slog.Int64("library_id", libraryID),
		slog.String("query", input.Query))

	opts := search.Options{Limit: input.Limit}
	results, err := s.service.Search(ctx, libraryID, input.Query, opts)
	duration := time.Since(start)

	if err != nil {
		s.logger.Error("search_papers failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, SearchPapersOutput{}, MapError(err)
	}

	s.logger.Info("search_papers completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("result_count", len(results)))

	if results == nil {
		results = []search.Result{}
	}
	return textResult(FormatSearchResults(input.Query, results)), SearchPapersOutput{Results: results}, nil
}

// mcpBrowseLibraryHandler is the MCP SDK handler for the browse_library tool.
func (s *Server) mcpBrowseLibraryHandler(ctx context.Context, _ *mcp.CallToolRequest, input BrowseLibraryInput) (
	*mcp.CallToolResult,
	BrowseLibraryOutput,
	error,
) {
	start := time.Now()
	requestID := generateRequestID()
	libraryID := s.resolveLibraryID(input.LibraryID)

	s.logger.Info("browse_library started",
		slog.String("request_id", requestID),
		slog.Int64("library_id", libraryID))

	roots, err := s.service.Browse(ctx, libraryID, search.Options{})
	duration := time.Since(start)

	if err != nil {
		s.logger.Error("browse_library failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, BrowseLibraryOutput{}, MapError(err)
	}

	s.logger.Info("browse_library completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("root_count", len(roots)))

	if roots == nil {
		roots = []*search.FolderNode{}
	}
	return textResult(FormatCollectionTree(roots)), BrowseLibraryOutput{Collections: roots}, nil
}

func (s *Server) resolveLibraryID(requested int64) int64 {
	if requested > 0 {
		return requested
	}
	return s.libraryID
}

// textResult wraps markdown in a CallToolResult for clients that prefer
// the unstructured content channel.
func textResult(markdown string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: markdown}},
	}
}

// Serve starts the server with the specified transport.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("Starting MCP server",
		slog.String("transport", transport))

	switch transport {
	case "stdio":
		s.logger.Debug("Using stdio transport for JSON-RPC")
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && err != context.Canceled {
			s.logger.Error("MCP server stopped with error",
				slog.String("error", err.Error()))
		} else {
			s.logger.Info("MCP server stopped gracefully")
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
