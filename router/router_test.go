package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/banksight/banksight/actions"
	"github.com/banksight/banksight/components"
	"github.com/banksight/banksight/ledger"
	"github.com/banksight/banksight/rag"
	"github.com/banksight/banksight/recommend"
	"github.com/banksight/banksight/schema"
)

const testCustomer = "cust_001"

type stubGenerator struct {
	reply string
	err   error
	// last captures the messages of the most recent call for inspection.
	last []components.Message
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.GenerateMessages(ctx, []components.Message{
		*components.NewMessage(components.UserRole, schema.String(prompt)),
	})
}

func (g *stubGenerator) GenerateMessages(_ context.Context, messages []components.Message) (string, error) {
	g.last = messages
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type stubRetriever struct {
	snippets []rag.Snippet
	err      error
}

func (r *stubRetriever) Retrieve(context.Context, string, int) ([]rag.Snippet, error) {
	return r.snippets, r.err
}

func seedStore() *ledger.Store {
	store := ledger.NewStore()
	store.AddAccount(ledger.Account{
		ID:         "acc_001",
		CustomerID: testCustomer,
		Kind:       ledger.KindChecking,
		Balance:    decimal.RequireFromString("1000.00"),
		Number:     "****1234",
		Status:     "active",
	})
	store.AddAccount(ledger.Account{
		ID:         "acc_002",
		CustomerID: testCustomer,
		Kind:       ledger.KindSavings,
		Balance:    decimal.RequireFromString("500.00"),
		Number:     "****5678",
		Status:     "active",
	})
	return store
}

func testRecommender() *recommend.Engine {
	return recommend.NewEngine(recommend.Catalog{}, []recommend.Profile{{
		ID:               testCustomer,
		Name:             "Sara Haddad",
		Age:              34,
		EmploymentStatus: recommend.EmploymentFullTime,
		EmploymentMonths: 30,
		FinancialData:    recommend.FinancialData{MonthlyIncome: 6000, MonthlyExpenses: 4200},
		Accounts:         recommend.AccountBalances{Savings: 12600},
		CreditScore:      760,
	}})
}

func newTestRouter(gen *stubGenerator, ret rag.Retriever) *Router {
	return New(
		WithActionEngine(actions.NewEngine(seedStore(), actions.WithCustomerID(testCustomer))),
		WithRecommendEngine(testRecommender(), testCustomer),
		WithGenerator(gen),
		WithRetriever(ret),
	)
}

func TestProcessActionBalance(t *testing.T) {
	r := newTestRouter(&stubGenerator{}, &stubRetriever{})

	resp := r.Process(context.Background(), "s1", "check my savings balance")
	if !resp.Success {
		t.Fatalf("balance check failed: %s", resp.Error)
	}
	if resp.Intent != "action" {
		t.Errorf("intent = %q, want action", resp.Intent)
	}
	if !strings.Contains(resp.Response, "$500.00") {
		t.Errorf("response %q does not contain the savings balance", resp.Response)
	}
	if resp.ActionResult == nil || resp.ActionResult.AccountType != "savings" {
		t.Errorf("action result = %+v, want savings account", resp.ActionResult)
	}
}

func TestProcessActionClarification(t *testing.T) {
	r := newTestRouter(&stubGenerator{}, &stubRetriever{})

	// "pay" routes to the action handler but matches no extraction rule.
	resp := r.Process(context.Background(), "s1", "pay my rent")
	if !resp.Success {
		t.Fatalf("clarification must not be a failure: %s", resp.Error)
	}
	if resp.Response != clarificationMessage {
		t.Errorf("response = %q, want clarification prompt", resp.Response)
	}
	if resp.ActionResult != nil {
		t.Errorf("unexpected action result %+v", resp.ActionResult)
	}
}

func TestProcessActionFailureRecovered(t *testing.T) {
	r := newTestRouter(&stubGenerator{}, &stubRetriever{})

	resp := r.Process(context.Background(), "s1", "transfer $2000 to savings")
	if resp.Success {
		t.Fatal("transfer beyond balance succeeded")
	}
	if resp.Error == "" {
		t.Error("failure carries no error")
	}
	if !strings.HasPrefix(resp.Response, "Sorry, I couldn't complete that action") {
		t.Errorf("response = %q, want apology prefix", resp.Response)
	}
}

func TestProcessQuestionUsesContext(t *testing.T) {
	gen := &stubGenerator{reply: "The transfer fee is 25 SAR."}
	ret := &stubRetriever{snippets: []rag.Snippet{
		{ID: "doc_fees", Content: "International transfer fee is 25 SAR.", Source: "fees.md", Score: 0.9},
	}}
	r := newTestRouter(gen, ret)

	resp := r.Process(context.Background(), "s1", "how much is the international fee?")
	if !resp.Success {
		t.Fatalf("question failed: %s", resp.Error)
	}
	if resp.Intent != "question" {
		t.Errorf("intent = %q, want question", resp.Intent)
	}
	if resp.Response != gen.reply {
		t.Errorf("response = %q, want generator reply", resp.Response)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].ID != "doc_fees" {
		t.Errorf("sources = %+v, want the retrieved snippet", resp.Sources)
	}

	if len(gen.last) != 2 {
		t.Fatalf("generator got %d messages, want system + user", len(gen.last))
	}
	system := schema.Stringify(gen.last[0].Content())
	if !strings.Contains(system, customerContextTitle) || !strings.Contains(system, "Sara Haddad") {
		t.Errorf("system prompt missing customer context:\n%s", system)
	}
	user := schema.Stringify(gen.last[1].Content())
	if !strings.Contains(user, "International transfer fee is 25 SAR.") {
		t.Errorf("user prompt missing retrieved context:\n%s", user)
	}
	if !strings.Contains(user, "[fees.md]") {
		t.Errorf("user prompt missing source attribution:\n%s", user)
	}
}

func TestProcessQuestionNoRetriever(t *testing.T) {
	gen := &stubGenerator{reply: "I don't have that information in my documents."}
	r := New(
		WithActionEngine(actions.NewEngine(seedStore(), actions.WithCustomerID(testCustomer))),
		WithGenerator(gen),
	)

	resp := r.Process(context.Background(), "s1", "why was my fee so high?")
	if !resp.Success {
		t.Fatalf("question failed: %s", resp.Error)
	}
	user := schema.Stringify(gen.last[1].Content())
	if !strings.Contains(user, noContextMessage) {
		t.Errorf("user prompt missing empty-context marker:\n%s", user)
	}
}

func TestProcessGenerationFailureRecovered(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	r := newTestRouter(gen, &stubRetriever{})

	resp := r.Process(context.Background(), "s1", "hello")
	if resp.Success {
		t.Fatal("generation failure reported as success")
	}
	if resp.Response != degradedMessage {
		t.Errorf("response = %q, want degraded message", resp.Response)
	}
	if !strings.Contains(resp.Error, "model unavailable") {
		t.Errorf("error = %q, want cause", resp.Error)
	}
}

func TestProcessWithoutGenerator(t *testing.T) {
	r := New(
		WithActionEngine(actions.NewEngine(seedStore(), actions.WithCustomerID(testCustomer))),
	)

	// Both generator-backed intents must degrade, not fault.
	for _, query := range []string{"hello", "how do I open an account"} {
		resp := r.Process(context.Background(), "s1", query)
		if resp.Success {
			t.Errorf("Process(%q) succeeded without a generator", query)
		}
		if resp.Response != degradedMessage {
			t.Errorf("Process(%q) response = %q, want degraded message", query, resp.Response)
		}
		if !strings.Contains(resp.Error, "no generator configured") {
			t.Errorf("Process(%q) error = %q, want cause", query, resp.Error)
		}
	}

	// Actions stay fully functional.
	resp := r.Process(context.Background(), "s1", "check my savings balance")
	if !resp.Success {
		t.Fatalf("balance check failed: %s", resp.Error)
	}
}

func TestProcessChitchatArabic(t *testing.T) {
	gen := &stubGenerator{reply: "مرحباً! أنا بنك سايت إيه آي."}
	r := newTestRouter(gen, &stubRetriever{})

	resp := r.Process(context.Background(), "s1", "مرحبا")
	if resp.Intent != "chitchat" {
		t.Errorf("intent = %q, want chitchat", resp.Intent)
	}
	if resp.Response != gen.reply {
		t.Errorf("response = %q, want generator reply", resp.Response)
	}
}

func TestProcessRecordsTurns(t *testing.T) {
	gen := &stubGenerator{reply: "Hello! How can I help?"}
	r := newTestRouter(gen, &stubRetriever{})

	ctx := context.Background()
	r.Process(ctx, "s1", "hello")
	r.Process(ctx, "s1", "check my balance")
	r.Process(ctx, "s2", "hello")

	turns := r.Sessions().Session("s1").Turns()
	if len(turns) != 2 {
		t.Fatalf("session s1 has %d turns, want 2", len(turns))
	}
	if turns[0].Intent != "chitchat" || turns[1].Intent != "action" {
		t.Errorf("turn intents = %q, %q", turns[0].Intent, turns[1].Intent)
	}
	if turns[1].Query != "check my balance" {
		t.Errorf("turn query = %q", turns[1].Query)
	}
	if got := r.Processed(); got != 3 {
		t.Errorf("processed = %d, want 3", got)
	}
}
