// Package contract holds reusable adapter contract checks. Every adapter test
// runs its fake-registry scenarios through these so the record and error
// shapes stay uniform across sources.
package contract

import (
	"context"
	"testing"

	"companyintel/internal/intel/providers"
)

// ContractTest defines a test case for adapter contract validation
type ContractTest[T any] struct {
	Name         string
	Fetch        func(ctx context.Context) (*T, error)
	ValidateFunc func(t *testing.T, record *T)
}

// ContractSuite is a collection of contract tests for one adapter
type ContractSuite[T any] struct {
	ProviderID string
	Tests      []ContractTest[T]
}

// Run executes all contract tests in the suite
func (s *ContractSuite[T]) Run(t *testing.T) {
	t.Helper()
	for _, test := range s.Tests {
		t.Run(test.Name, func(t *testing.T) {
			record, err := test.Fetch(context.Background())
			if err != nil {
				t.Fatalf("%s fetch failed: %v", s.ProviderID, err)
			}
			if record == nil {
				t.Fatalf("%s returned nil record without error", s.ProviderID)
			}
			if test.ValidateFunc != nil {
				test.ValidateFunc(t, record)
			}
		})
	}
}

// ErrorContractTest validates that adapter errors follow the taxonomy
type ErrorContractTest struct {
	Name          string
	ProviderID    string
	Call          func(ctx context.Context) error
	ExpectedError providers.ErrorCategory
	ExpectedRetry bool
}

// Run executes an error contract test
func (ect *ErrorContractTest) Run(t *testing.T) {
	t.Helper()
	t.Run(ect.Name, func(t *testing.T) {
		err := ect.Call(context.Background())
		if err == nil {
			t.Fatal("expected error but got none")
		}

		pe, ok := err.(*providers.ProviderError)
		if !ok {
			t.Fatalf("expected *providers.ProviderError, got %T", err)
		}
		if pe.ProviderID != ect.ProviderID {
			t.Errorf("expected provider ID %s, got %s", ect.ProviderID, pe.ProviderID)
		}

		category := providers.GetCategory(err)
		if category != ect.ExpectedError {
			t.Errorf("expected error category %s, got %s", ect.ExpectedError, category)
		}

		isRetryable := providers.IsRetryable(err)
		if isRetryable != ect.ExpectedRetry {
			t.Errorf("expected retryable=%v, got %v", ect.ExpectedRetry, isRetryable)
		}
	})
}
