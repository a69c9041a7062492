package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Snapshot is the ledger persistence format: the full record set of accounts
// and transactions, loaded wholesale at startup and rewritten wholesale on
// demand. Suitable only for small deployments.
type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}

// Snapshot exports the store's current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Accounts:     make([]Account, 0, len(s.accounts)),
		Transactions: make([]Transaction, 0),
	}
	for _, acc := range s.accounts {
		snap.Accounts = append(snap.Accounts, *acc)
	}
	sort.Slice(snap.Accounts, func(i, j int) bool {
		return snap.Accounts[i].ID < snap.Accounts[j].ID
	})
	ids := make([]string, 0, len(s.txns))
	for id := range s.txns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		snap.Transactions = append(snap.Transactions, s.txns[id]...)
	}
	return snap
}

// Restore replaces the store's state with the snapshot's record set.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make(map[string]*Account, len(snap.Accounts))
	s.txns = make(map[string][]Transaction)
	for _, acc := range snap.Accounts {
		cp := acc
		s.accounts[acc.ID] = &cp
	}
	for _, txn := range snap.Transactions {
		s.txns[txn.AccountID] = append(s.txns[txn.AccountID], txn)
	}
}

// LoadFile restores the store from a JSON snapshot file.
func (s *Store) LoadFile(path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ledger snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(bs, &snap); err != nil {
		return fmt.Errorf("decode ledger snapshot: %w", err)
	}
	s.Restore(snap)
	return nil
}

// WriteFile rewrites the JSON snapshot file from the store's current state.
func (s *Store) WriteFile(path string) error {
	bs, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger snapshot: %w", err)
	}
	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return fmt.Errorf("write ledger snapshot: %w", err)
	}
	return nil
}
