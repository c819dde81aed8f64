package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/store"
)

// registerTools registers the read-only content tools.
func (s *MCPServer) registerTools(srv *server.MCPServer) {

	srv.AddTool(
		mcp.NewTool("vitrine_list_collections",
			mcp.WithDescription(
				"List the portfolio's public content collections (projects, posts, "+
					"challenges, and so on). Use this first to discover what content "+
					"is available.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleListCollections,
	)

	srv.AddTool(
		mcp.NewTool("vitrine_list_content",
			mcp.WithDescription(
				"List documents in a content collection, newest first. Returns each "+
					"document's full payload with its id and timestamps.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("collection",
				mcp.Required(),
				mcp.Description("Name of the collection to list"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum documents to return (default 20, max 100)"),
			),
			mcp.WithNumber("offset",
				mcp.Description("Number of documents to skip"),
			),
		),
		s.handleListContent,
	)

	srv.AddTool(
		mcp.NewTool("vitrine_get_content",
			mcp.WithDescription("Fetch a single document by collection and id."),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("collection",
				mcp.Required(),
				mcp.Description("Name of the collection"),
			),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Document id"),
			),
		),
		s.handleGetContent,
	)

	srv.AddTool(
		mcp.NewTool("vitrine_get_stats",
			mcp.WithDescription("Fetch the site stats document, including page-view counters."),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleGetStats,
	)
}

func (s *MCPServer) handleListCollections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collections := make([]map[string]interface{}, 0, len(model.PublicCollections))
	for _, name := range model.PublicCollections {
		count, err := s.store.CountDocuments(ctx, name)
		if err != nil {
			return toolError("failed to count %s: store unavailable", name)
		}
		collections = append(collections, map[string]interface{}{
			"name":  name,
			"count": count,
		})
	}
	return successJSON(collections)
}

func (s *MCPServer) handleListContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("collection")
	if err != nil {
		return toolError("missing required parameter %q", "collection")
	}
	if !model.IsPublicCollection(name) {
		return toolError("unknown collection %q", name)
	}

	limit := clamp(request.GetInt("limit", 20), 1, 100)
	offset := clamp(request.GetInt("offset", 0), 0, 1<<30)

	docs, err := s.store.ListDocuments(ctx, name, limit, offset)
	if err != nil {
		return toolError("failed to list %s: store unavailable", name)
	}

	resources := make([]map[string]interface{}, 0, len(docs))
	for i := range docs {
		resources = append(resources, docs[i].Resource())
	}
	return successJSON(resources)
}

func (s *MCPServer) handleGetContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("collection")
	if err != nil {
		return toolError("missing required parameter %q", "collection")
	}
	id, err := request.RequireString("id")
	if err != nil {
		return toolError("missing required parameter %q", "id")
	}
	if !model.IsPublicCollection(name) {
		return toolError("unknown collection %q", name)
	}

	doc, err := s.store.GetDocument(ctx, name, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return toolError("no document %q in %s", id, name)
		}
		return toolError("failed to fetch document: store unavailable")
	}
	return successJSON(doc.Resource())
}

func (s *MCPServer) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := s.store.GetSingleton(ctx, model.CollectionStats)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return successJSON(map[string]interface{}{})
		}
		return toolError("failed to fetch stats: store unavailable")
	}
	return successJSON(doc.Resource())
}

// successJSON marshals data to JSON and returns it as a tool result.
func successJSON(data interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError returns a tool-level error result, visible to the client so it
// can self-correct without terminating the session.
func toolError(format string, args ...interface{}) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...)), nil
}

// clamp constrains val to [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
