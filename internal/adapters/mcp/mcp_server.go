// Package mcp provides the MCP (Model Context Protocol) server exposing the
// timer to AI assistants over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server     *server.MCPServer
	controller ports.TimerController
	settings   ports.SettingsProvider
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewServer creates a new MCP server over the timer controller.
func NewServer(controller ports.TimerController, settings ports.SettingsProvider) *Server {
	s := &Server{
		controller: controller,
		settings:   settings,
	}

	s.server = server.NewMCPServer(
		"tempo",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_state",
			mcp.WithDescription("Get the current timer state: phase, running/paused, remaining time and cycle count"),
		),
		s.handleGetState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"start_timer",
			mcp.WithDescription("Start the next phase (work after idle or a break, a break after work)"),
		),
		s.handleStart,
	)

	s.server.AddTool(
		mcp.NewTool(
			"pause_timer",
			mcp.WithDescription("Pause the running phase, freezing its remaining time"),
		),
		s.handlePause,
	)

	s.server.AddTool(
		mcp.NewTool(
			"resume_timer",
			mcp.WithDescription("Resume a paused phase"),
		),
		s.handleResume,
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Reset the timer to idle, clearing the cycle count"),
		),
		s.handleReset,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_stats",
			mcp.WithDescription("Get completion stats: today's count, trailing 7-day total and the daily streak"),
		),
		s.handleGetStats,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_settings",
			mcp.WithDescription("Get the configured phase durations and long break interval"),
		),
		s.handleGetSettings,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// stateResult flattens a snapshot into the JSON shape returned by the
// state-changing tools.
func stateResult(state domain.TimerState) map[string]interface{} {
	status := "idle"
	switch {
	case state.Running:
		status = "running"
	case state.IsPaused():
		status = "paused"
	case state.JustCompleted():
		status = "completed"
	}

	result := map[string]interface{}{
		"phase":       string(state.Phase),
		"status":      status,
		"cycle_count": state.CycleCount,
	}

	if state.Running && state.EndTime != nil {
		result["ends_at"] = state.EndTime.Format(time.RFC3339)
		result["remaining"] = state.RemainingAt(time.Now()).Round(time.Second).String()
	}
	if state.IsPaused() {
		result["remaining"] = state.Remaining.Round(time.Second).String()
	}

	return result
}

func stateText(state domain.TimerState) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(stateResult(state), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetState handles the get_state tool.
func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return stateText(s.controller.State())
}

// handleStart handles the start_timer tool.
func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.controller.Start(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start timer: %v", err)), nil
	}
	return stateText(state)
}

// handlePause handles the pause_timer tool.
func (s *Server) handlePause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.controller.Pause(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to pause timer: %v", err)), nil
	}
	return stateText(state)
}

// handleResume handles the resume_timer tool.
func (s *Server) handleResume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.controller.Resume(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resume timer: %v", err)), nil
	}
	return stateText(state)
}

// handleReset handles the reset_timer tool.
func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.controller.Reset(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to reset timer: %v", err)), nil
	}
	return stateText(state)
}

// handleGetStats handles the get_stats tool.
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := s.controller.StatsSummary(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	result := map[string]interface{}{
		"today":       summary.Today,
		"week":        summary.Week,
		"streak_days": summary.Streak,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetSettings handles the get_settings tool.
func (s *Server) handleGetSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings := domain.DefaultSettings()
	if s.settings != nil {
		settings = s.settings.Settings().Normalize()
	}

	result := map[string]interface{}{
		"work_duration":       settings.WorkDuration.String(),
		"short_break":         settings.ShortBreakDuration.String(),
		"long_break":          settings.LongBreakDuration.String(),
		"long_break_interval": settings.LongBreakInterval,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
