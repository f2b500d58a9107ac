package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"finlear/domain"
)

func TestLoanRepositoryMemory_Cap(t *testing.T) {

	repo := NewLoanRepositoryMemory(3)

	for i := 0; i < 5; i++ {
		if err := repo.Save(domain.LoanInput{Amount: float64(i)}, domain.LoanResult{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(repo.data) != 3 {
		t.Errorf("expected 3 kept calculations, got %d", len(repo.data))
	}
	if repo.data[0].Input.Amount != 2 {
		t.Errorf("expected oldest entries dropped, first is %.0f", repo.data[0].Input.Amount)
	}
}

func TestTrackedLoanRepositoryMemory(t *testing.T) {

	repo := NewTrackedLoanRepositoryMemory()

	_ = repo.Add(domain.Loan{ID: "a", UserID: "u1", Name: "home"}, 0)
	_ = repo.Add(domain.Loan{ID: "b", UserID: "u1", Name: "car"}, 0)

	if err := repo.Replace(domain.Loan{ID: "a", UserID: "u1", Name: "house"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Replace(domain.Loan{ID: "a", UserID: "u2"}); !errors.Is(err, ErrLoanNotFound) {
		t.Errorf("expected ErrLoanNotFound, got %v", err)
	}

	loans, _ := repo.List("u1")
	if len(loans) != 2 || loans[0].Name != "house" {
		t.Fatalf("unexpected loans: %+v", loans)
	}

	// List returns a copy.
	loans[0].Name = "changed"
	again, _ := repo.List("u1")
	if again[0].Name != "house" {
		t.Errorf("List leaked internal storage")
	}

	if err := repo.Delete("u1", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete("u1", "a"); !errors.Is(err, ErrLoanNotFound) {
		t.Errorf("expected ErrLoanNotFound, got %v", err)
	}
	loans, _ = repo.List("u1")
	if len(loans) != 1 || loans[0].ID != "b" {
		t.Errorf("unexpected loans after delete: %+v", loans)
	}
}

func TestTrackedLoanRepositoryMemory_Limit(t *testing.T) {

	repo := NewTrackedLoanRepositoryMemory()

	if err := repo.Add(domain.Loan{ID: "a", UserID: "u1"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Add(domain.Loan{ID: "b", UserID: "u1"}, 1); !errors.Is(err, ErrLoanLimit) {
		t.Errorf("expected ErrLoanLimit, got %v", err)
	}
	if err := repo.Add(domain.Loan{ID: "c", UserID: "u2"}, 1); err != nil {
		t.Errorf("limit leaked across users: %v", err)
	}
}

func TestTrackedLoanRepositoryMemory_LimitConcurrent(t *testing.T) {

	repo := NewTrackedLoanRepositoryMemory()
	const limit = 5

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Add(domain.Loan{ID: fmt.Sprintf("l%d", i), UserID: "u1"}, limit)
		}(i)
	}
	wg.Wait()

	loans, _ := repo.List("u1")
	if len(loans) != limit {
		t.Errorf("expected %d loans, got %d", limit, len(loans))
	}
}
