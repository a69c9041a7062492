// Command banksight runs the bilingual banking assistant as a terminal
// chat loop. It loads the ledger snapshot, product catalog and customer
// profiles, builds the configured generation provider once, and routes
// every line through the query router.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philippgille/chromem-go"
	"github.com/rs/xid"

	"github.com/banksight/banksight/actions"
	"github.com/banksight/banksight/components"
	"github.com/banksight/banksight/config"
	"github.com/banksight/banksight/ledger"
	"github.com/banksight/banksight/llm"
	"github.com/banksight/banksight/rag"
	"github.com/banksight/banksight/recommend"
	"github.com/banksight/banksight/router"
)

func main() {
	configPath := flag.String("config", "data/config.yaml", "configuration file")
	docsDir := flag.String("docs", "data/docs", "directory of policy documents to index")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	store := ledger.NewStore()
	if err := store.LoadFile(cfg.Data.Ledger); err != nil {
		log.Fatal(err)
	}
	catalog, err := recommend.LoadCatalog(cfg.Data.Products)
	if err != nil {
		log.Fatal(err)
	}
	profiles, err := recommend.LoadProfiles(cfg.Data.Profiles)
	if err != nil {
		log.Fatal(err)
	}

	client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.BaseURL,
		llm.WithModel(cfg.LLM.Model),
		llm.WithTemperature(cfg.LLM.Temperature),
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
	)
	if err != nil {
		log.Fatal(err)
	}

	opts := []router.Option{
		router.WithActionEngine(actions.NewEngine(store, actions.WithCustomerID(cfg.DefaultCustomer))),
		router.WithRecommendEngine(recommend.NewEngine(catalog, profiles), cfg.DefaultCustomer),
		router.WithGenerator(client),
		router.WithSessionStore(components.NewSessionStore(cfg.Sessions.MaxSessions, time.Duration(cfg.Sessions.MaxAge))),
		router.WithTopK(cfg.RetrievalTopK),
	}
	if retriever, err := buildRetriever(*docsDir); err != nil {
		log.Printf("document index disabled: %v", err)
	} else if retriever != nil {
		opts = append(opts, router.WithRetriever(retriever))
	}

	r := router.New(opts...)
	sessionID := xid.New().String()

	fmt.Println("BankSight AI ready. Type your question (exit to quit).")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}
		if query == "/reset" {
			r.Sessions().Session(sessionID).Reset()
			fmt.Println("Conversation cleared.")
			continue
		}
		resp := r.Process(context.Background(), sessionID, query)
		fmt.Println(resp.Response)
		if !resp.Success {
			log.Printf("query failed: %s", resp.Error)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}

	if err := store.WriteFile(cfg.Data.Ledger); err != nil {
		log.Fatal(err)
	}
}

// buildRetriever indexes the plain-text documents under dir into an embedded
// chromem collection. A missing directory just disables retrieval.
func buildRetriever(dir string) (rag.Retriever, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	docStore, err := rag.NewStore(chromem.NewDB(), nil)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".md", ".txt":
		default:
			continue
		}
		bs, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		doc := rag.Document{Content: string(bs), Source: entry.Name()}
		if err := docStore.Add(ctx, doc); err != nil {
			return nil, err
		}
	}
	if docStore.Len() == 0 {
		return nil, nil
	}
	return docStore, nil
}
