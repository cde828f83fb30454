// ABOUTME: MCP resource implementations for the vitality pipeline.
// ABOUTME: Provides vitality://summary and vitality://history resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/vitality/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// vitality://summary - today's computed scores and trends
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "vitality://summary",
		Name:        "Today's Readiness Summary",
		Description: "Recovery and sleep scores, breakdowns, and trends for today",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// vitality://history - last 14 days of persisted scores
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "vitality://history",
		Name:        "Recent Score History",
		Description: "Persisted recovery and sleep scores for the last 14 days",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// Resource handlers

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	entry, err := s.hub.LoadData(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's scores: %w", err)
	}

	result := map[string]interface{}{
		"date":     models.DayKey(today),
		"recovery": entry.Recovery,
		"sleep":    entry.Sleep,
		"trends":   entry.Trends,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "vitality://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -13)

	result := map[string]interface{}{
		"start": models.DayKey(start),
		"end":   models.DayKey(end),
	}
	for _, st := range models.AllScoreTypes {
		scores, err := s.repo.GetScoreRange(start, end, st)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s scores: %w", st, err)
		}
		result[string(st)] = scores
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "vitality://history",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
