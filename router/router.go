// Package router composes the intent classifier, the slot extractor, the
// action engine and the generation and retrieval collaborators into one
// Process entry point. Collaborator failures are recovered here; callers
// only ever see a structured Response.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/atomic"

	"github.com/banksight/banksight/actions"
	"github.com/banksight/banksight/components"
	"github.com/banksight/banksight/components/systemprompt"
	"github.com/banksight/banksight/intent"
	"github.com/banksight/banksight/llm"
	"github.com/banksight/banksight/rag"
	"github.com/banksight/banksight/recommend"
	"github.com/banksight/banksight/schema"
)

const (
	defaultTopK        = 3
	defaultMaxSessions = 1000
	defaultSessionAge  = 30 * time.Minute

	clarificationMessage = "I understand you want to perform an action, but I'm not sure which one. Try asking about balance, transactions, or transfers."
	degradedMessage      = "Sorry, I'm having trouble answering right now. Please try again."
	noContextMessage     = "No relevant documents found."
)

// Response is the structured outcome of one processed query.
type Response struct {
	Success      bool            `json:"success"`
	Response     string          `json:"response"`
	Intent       string          `json:"intent"`
	Error        string          `json:"error,omitempty"`
	Sources      []rag.Snippet   `json:"sources,omitempty"`
	ActionResult *actions.Result `json:"action_result,omitempty"`
	SessionID    string          `json:"session_id"`
}

// Config represents router configuration
type Config struct {
	actions     *actions.Engine
	recommender *recommend.Engine
	generator   llm.Generator
	retriever   rag.Retriever
	extractor   *intent.Extractor
	sessions    *components.SessionStore
	customerID  string
	topK        int
}

// Option is a Router config option
type Option func(*Config)

// WithActionEngine sets the banking action engine.
func WithActionEngine(e *actions.Engine) Option {
	return func(c *Config) {
		c.actions = e
	}
}

// WithRecommendEngine sets the recommendation engine whose analysis of the
// given customer is injected into question answering.
func WithRecommendEngine(e *recommend.Engine, customerID string) Option {
	return func(c *Config) {
		c.recommender = e
		c.customerID = customerID
	}
}

// WithGenerator sets the generation collaborator.
func WithGenerator(g llm.Generator) Option {
	return func(c *Config) {
		c.generator = g
	}
}

// WithRetriever sets the retrieval collaborator.
func WithRetriever(r rag.Retriever) Option {
	return func(c *Config) {
		c.retriever = r
	}
}

// WithSessionStore sets the session registry.
func WithSessionStore(s *components.SessionStore) Option {
	return func(c *Config) {
		c.sessions = s
	}
}

// WithExtractor overrides the default slot extraction rule table.
func WithExtractor(e *intent.Extractor) Option {
	return func(c *Config) {
		c.extractor = e
	}
}

// WithTopK sets how many passages question answering retrieves.
func WithTopK(topK int) Option {
	return func(c *Config) {
		c.topK = topK
	}
}

// Router routes each query by intent and owns the conversation sessions.
type Router struct {
	Config
	prompt    systemprompt.Generator
	processed atomic.Int64
}

// New returns a Router. The action engine is required for action intents.
// A Router without a generator degrades question and chitchat handling to a
// structured failure response; one without a retriever answers questions
// from the customer context alone.
func New(options ...Option) *Router {
	ret := new(Router)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.extractor == nil {
		ret.extractor = intent.NewExtractor()
	}
	if ret.sessions == nil {
		ret.sessions = components.NewSessionStore(defaultMaxSessions, defaultSessionAge)
	}
	if ret.topK <= 0 {
		ret.topK = defaultTopK
	}
	prompt := systemprompt.NewSimple(llm.BankingAssistantSystem)
	if ret.recommender != nil && ret.customerID != "" {
		prompt.AddContextProviders(&customerContext{engine: ret.recommender, customerID: ret.customerID})
	}
	ret.prompt = prompt
	return ret
}

// Processed returns the number of queries handled so far.
func (r *Router) Processed() int64 {
	return r.processed.Load()
}

// Sessions returns the session registry.
func (r *Router) Sessions() *components.SessionStore {
	return r.sessions
}

// Process classifies the query and routes it to the matching handler. Every
// failure is folded into the Response; Process never returns an error.
func (r *Router) Process(ctx context.Context, sessionID, query string) Response {
	r.processed.Inc()
	sess := r.sessions.Session(sessionID)

	label := intent.Classify(query)
	var resp Response
	switch label {
	case intent.Action:
		resp = r.handleAction(query)
	case intent.Chitchat:
		resp = r.handleChitchat(ctx, query)
	default:
		resp = r.handleQuestion(ctx, query)
	}
	resp.Intent = string(label)
	resp.SessionID = sessionID

	sess.AddTurn(components.Turn{
		Query:    query,
		Response: resp.Response,
		Intent:   resp.Intent,
	})
	return resp
}

func (r *Router) handleAction(query string) Response {
	req := r.extractor.Extract(query)
	if req.Action == actions.ActionNone {
		// Ambiguous extraction degrades to a clarification prompt, not
		// a failure.
		return Response{Success: true, Response: clarificationMessage}
	}
	result := r.actions.Execute(req)
	return Response{
		Success:      result.Success,
		Response:     actions.Format(req.Action, result),
		Error:        result.Error,
		ActionResult: result,
	}
}

func (r *Router) handleQuestion(ctx context.Context, query string) Response {
	var snippets []rag.Snippet
	if r.retriever != nil {
		var err error
		snippets, err = r.retriever.Retrieve(ctx, query, r.topK)
		if err != nil {
			return Response{Success: false, Response: degradedMessage, Error: err.Error()}
		}
	}

	docContext := noContextMessage
	if len(snippets) > 0 {
		var b strings.Builder
		for i, s := range snippets {
			if i > 0 {
				b.WriteString("\n\n")
			}
			if s.Source != "" {
				fmt.Fprintf(&b, "[%s] ", s.Source)
			}
			b.WriteString(s.Content)
		}
		docContext = b.String()
	}

	messages := []components.Message{
		*components.NewMessage(components.SystemRole, schema.String(r.prompt.Generate())),
		*components.NewMessage(components.UserRole, schema.String(llm.RAGAnswerPrompt(docContext, query))),
	}
	answer, err := r.generate(ctx, messages)
	if err != nil {
		return Response{Success: false, Response: degradedMessage, Error: err.Error()}
	}
	return Response{Success: true, Response: answer, Sources: snippets}
}

func (r *Router) handleChitchat(ctx context.Context, query string) Response {
	answer, err := r.generate(ctx, llm.ChitchatMessages(query))
	if err != nil {
		return Response{Success: false, Response: degradedMessage, Error: err.Error()}
	}
	return Response{Success: true, Response: answer}
}

// generate calls the generation collaborator. A Router built without one
// reports a plain error instead of faulting.
func (r *Router) generate(ctx context.Context, messages []components.Message) (string, error) {
	if r.generator == nil {
		return "", fmt.Errorf("no generator configured")
	}
	return r.generator.GenerateMessages(ctx, messages)
}
