// Package mcpadapter exposes the query engines as MCP tools over
// stdio, so editor and agent clients can query indexed documents.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/ports"
)

type Server struct {
	mcpServer *server.MCPServer
}

func NewServer(edue ports.EDUEQueryService, hybrid ports.HybridQueryService) *Server {
	s := server.NewMCPServer(
		"ai-enterprise-search",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	edueTool := mcp.NewTool("edue_query",
		mcp.WithDescription("Answer a question about an indexed document using the deterministic engine only. Returns answer, confidence and page references."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Content-hash id of an indexed document"),
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Natural-language question about the document"),
		),
	)
	s.AddTool(edueTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		documentID, err := request.RequireString("document_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		question, err := request.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := edue.Query(ctx, documentID, question)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("edue query: %v", err)), nil
		}
		return jsonToolResult(result)
	})

	hybridTool := mcp.NewTool("hybrid_query",
		mcp.WithDescription("Answer a question about an indexed document with the hybrid pipeline: deterministic engine first, vector retrieval plus generation when confidence is low."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Content-hash id of an indexed document"),
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Natural-language question about the document"),
		),
	)
	s.AddTool(hybridTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		documentID, err := request.RequireString("document_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		question, err := request.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := hybrid.Query(ctx, documentID, question)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("hybrid query: %v", err)), nil
		}
		return jsonToolResult(result)
	})

	return &Server{mcpServer: s}
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func jsonToolResult(payload any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
