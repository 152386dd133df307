// Package mcptools exposes chat and feedback as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dotpi/internal/feedback"
	"dotpi/internal/logger"
	"dotpi/internal/mood"
	"dotpi/internal/preference"
	"dotpi/internal/tone"
)

// ChatParams are the arguments of the chat tool.
type ChatParams struct {
	Message string `json:"message" mcp:"the user's chat message"`
	Tone    string `json:"tone,omitempty" mcp:"preferred tone: Blunt, Empathetic or Balanced (a learned preference wins)"`
	Mood    string `json:"mood,omitempty" mcp:"mood override: positive, negative or neutral"`
}

// FeedbackParams are the arguments of the submit_feedback tool.
type FeedbackParams struct {
	Message  string `json:"message" mcp:"the user message that was answered"`
	Response string `json:"response" mcp:"the assistant reply being rated"`
	Feedback string `json:"feedback" mcp:"like or dislike"`
	Mood     string `json:"mood,omitempty" mcp:"mood detected for the message"`
	Tone     string `json:"tone,omitempty" mcp:"tone used for the reply"`
}

type PreferencesParams struct{}

// Server holds the collaborators behind the tools.
type Server struct {
	engine      ChatEngine
	feedback    FeedbackService
	preferences Preferences
	log         *logger.Logger
}

func NewServer(eng ChatEngine, fb FeedbackService, prefs Preferences, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{engine: eng, feedback: fb, preferences: prefs, log: log}
}

// Register adds the tools to an MCP server.
func (s *Server) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat",
		Description: "Replies to a message in a tone learned from feedback and reports the detected mood",
	}, s.Chat)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "submit_feedback",
		Description: "Records a like or dislike for an assistant reply",
	}, s.SubmitFeedback)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preferences",
		Description: "Summarizes liked tones, disliked tones and common moods from the feedback history",
	}, s.Preferences)
}

func (s *Server) Chat(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ChatParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	message := strings.TrimSpace(args.Message)
	if message == "" {
		return errorResult("message is required"), nil
	}

	var override *mood.Mood
	if args.Mood != "" {
		m := mood.Mood(args.Mood)
		override = &m
	}
	callerTone, _ := tone.Parse(args.Tone)

	reply := s.engine.Generate(ctx, message, callerTone, override)
	s.log.Info("mcp chat handled", "message_id", reply.ID, "mood", reply.Mood, "tone", reply.Tone, "source", reply.Source)

	text := fmt.Sprintf("%s\n\n(mood: %s, tone: %s, source: %s)", reply.Text, reply.Mood, reply.Tone, reply.Source)
	if reply.Fallback {
		text += " [fallback]"
	}
	return textResult(text), nil
}

func (s *Server) SubmitFeedback(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[FeedbackParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	e, err := s.feedback.Save(args.Message, args.Response, args.Feedback, args.Mood, args.Tone)
	switch {
	case err == nil:
		return textResult(fmt.Sprintf("Feedback saved: %s (id %s)", e.Feedback, e.ID)), nil
	case errors.Is(err, feedback.ErrMissingKind), errors.Is(err, feedback.ErrUnknownKind):
		return errorResult(err.Error() + ": use like or dislike"), nil
	default:
		s.log.Error("mcp feedback not saved", "error", err)
		return errorResult(fmt.Sprintf("Failed to save feedback: %v", err)), nil
	}
}

func (s *Server) Preferences(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[PreferencesParams]) (*mcp.CallToolResultFor[any], error) {
	a := preference.Analyze(s.preferences.Snapshot())
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to encode preferences: %v", err)), nil
	}
	return textResult(string(b)), nil
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
