package approval

import (
	"sync"
	"testing"
)

func TestMemoryStoreCreateReplaces(t *testing.T) {
	s := NewMemoryStore()
	key := Key{Kind: KindBranchChange, SubjectID: 1}

	s.Create(key, Payload{SubjectID: 1, Branch: "surgut_2"})
	s.AppendDelivery(key, Delivery{ChatID: 10, MessageID: 1})

	s.Create(key, Payload{SubjectID: 1, Branch: "surgut_3"})
	req, ok := s.Get(key)
	if !ok {
		t.Fatal("entry missing after replace")
	}
	if req.Payload.Branch != "surgut_3" {
		t.Errorf("payload = %q, want surgut_3 (no merge)", req.Payload.Branch)
	}
	if len(req.Deliveries) != 0 {
		t.Errorf("replace must not carry over the old ledger, got %d deliveries", len(req.Deliveries))
	}
}

func TestMemoryStoreClaimRemoves(t *testing.T) {
	s := NewMemoryStore()
	key := Key{Kind: KindRegistration, SubjectID: 1}
	s.Create(key, Payload{SubjectID: 1})

	if _, ok := s.Claim(key); !ok {
		t.Fatal("first claim should win")
	}
	if _, ok := s.Claim(key); ok {
		t.Error("second claim should miss")
	}
	if _, ok := s.Get(key); ok {
		t.Error("claimed entry must be gone")
	}
}

func TestMemoryStoreAppendAfterClaimIsNoop(t *testing.T) {
	s := NewMemoryStore()
	key := Key{Kind: KindRegistration, SubjectID: 1}
	s.Create(key, Payload{SubjectID: 1})
	s.Claim(key)
	s.AppendDelivery(key, Delivery{ChatID: 10, MessageID: 1}) // must not panic or resurrect
	if _, ok := s.Get(key); ok {
		t.Error("append on a resolved key must not resurrect it")
	}
}

func TestMemoryStoreSnapshotIsolation(t *testing.T) {
	s := NewMemoryStore()
	key := Key{Kind: KindRegistration, SubjectID: 1}
	s.Create(key, Payload{SubjectID: 1})
	s.AppendDelivery(key, Delivery{ChatID: 10, MessageID: 1})

	req, _ := s.Get(key)
	req.Deliveries[0].ChatID = 999

	fresh, _ := s.Get(key)
	if fresh.Deliveries[0].ChatID != 10 {
		t.Error("Get must return a copy, not the stored slice")
	}
}

// Exactly one of many concurrent claims on the same key may win.
func TestMemoryStoreConcurrentClaim(t *testing.T) {
	s := NewMemoryStore()
	key := Key{Kind: KindRegistration, SubjectID: 1}
	s.Create(key, Payload{SubjectID: 1})

	const claimers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, claimers)
	wg.Add(claimers)
	for i := 0; i < claimers; i++ {
		go func() {
			defer wg.Done()
			if _, ok := s.Claim(key); ok {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	n := 0
	for range wins {
		n++
	}
	if n != 1 {
		t.Errorf("winners = %d, want exactly 1", n)
	}
}
