package search

import (
	"context"
	"reflect"
	"testing"

	"github.com/cadastra/registryd/internal/domain/fields"
	"github.com/cadastra/registryd/internal/domain/query"
	"github.com/cadastra/registryd/internal/domain/record"
)

// --- Mocks ---

type mockStore struct {
	records []record.Record
	calls   int
}

func (m *mockStore) All() []record.Record {
	m.calls++
	return m.records
}

func registryStore() *mockStore {
	return &mockStore{records: []record.Record{
		record.New(map[string]string{
			"name": "João", "surname": "Silva", "cpf": "123.456.789-00",
			"city": "São Paulo", "state": "SP", "phone": "(11) 98765-4321",
		}),
		record.New(map[string]string{
			"name": "Ana", "surname": "Silva", "cpf": "321.654.987-00",
			"city": "Porto Alegre", "state": "RS", "phone": "(51) 98123-4567",
		}),
		record.New(map[string]string{
			"name": "Maria", "surname": "Santos", "cpf": "987.654.321-00",
			"city": "Rio de Janeiro", "state": "RJ", "phone": "(21) 91234-5678",
		}),
	}}
}

func registryPolicy() fields.Policy {
	return fields.NewPolicy(
		[]string{"name", "surname", "cpf", "phone", "city", "state"},
		[]string{"name", "surname", "city", "state", "phone"},
	)
}

func newService() *Service {
	return New(registryStore(), registryPolicy())
}

// --- Tests ---

func TestSearch_ByNameProjectsWithoutCPF(t *testing.T) {
	svc := newService()

	results := svc.Search(context.Background(), query.New(map[string]string{"name": "joão"}))

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if _, ok := r.Value("cpf"); ok {
		t.Error("cpf is not exposed and must not appear in results")
	}
	want := []string{"name", "surname", "city", "state", "phone"}
	if got := r.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want exposed order %v", got, want)
	}
}

func TestSearch_SearchableOnlyFieldFindsButNeverLeaks(t *testing.T) {
	svc := newService()

	results := svc.Search(context.Background(),
		query.New(map[string]string{"cpf": "123.456.789-00"}))

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if _, ok := results[0].Value("cpf"); ok {
		t.Error("searchable-only field leaked into the projected record")
	}
	if v, _ := results[0].Value("name"); v != "João" {
		t.Errorf("name = %q, want João", v)
	}
}

func TestSearch_LiteralSubstringNoNormalization(t *testing.T) {
	svc := newService()

	// Punctuation-stripped CPF is not a substring of the stored value.
	results := svc.Search(context.Background(),
		query.New(map[string]string{"cpf": "12345678900"}))

	if len(results) != 0 {
		t.Fatalf("got %d results, want 0: matching is literal substring", len(results))
	}
}

func TestSearch_EmptyQueryMatchesNothing(t *testing.T) {
	svc := newService()

	results := svc.Search(context.Background(), query.New(nil))

	if len(results) != 0 {
		t.Fatalf("empty query returned %d results; must never disclose the table", len(results))
	}
	if results == nil {
		t.Error("results should be an empty slice, not nil")
	}
}

func TestSearch_UnknownFieldTreatedAsEmptyQuery(t *testing.T) {
	svc := newService()

	results := svc.Search(context.Background(),
		query.New(map[string]string{"unknown_field": "x"}))

	if len(results) != 0 {
		t.Fatalf("got %d results, want 0 after dropping unknown keys", len(results))
	}
}

func TestSearch_ANDSemanticsAcrossPredicates(t *testing.T) {
	svc := newService()

	// Two Silvas in different states; both predicates must hold.
	results := svc.Search(context.Background(),
		query.New(map[string]string{"surname": "Silva", "state": "SP"}))

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if v, _ := results[0].Value("name"); v != "João" {
		t.Errorf("name = %q, want João", v)
	}
}

func TestSearch_PreservesStoreOrder(t *testing.T) {
	svc := newService()

	results := svc.Search(context.Background(),
		query.New(map[string]string{"surname": "Silva"}))

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	first, _ := results[0].Value("name")
	second, _ := results[1].Value("name")
	if first != "João" || second != "Ana" {
		t.Errorf("results out of store order: %q, %q", first, second)
	}
}

func TestSearch_Idempotent(t *testing.T) {
	svc := newService()
	q := query.New(map[string]string{"surname": "silva"})

	first := svc.Search(context.Background(), q)
	second := svc.Search(context.Background(), q)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated identical queries must yield identical results")
	}
}

func TestSearch_EmptyExposedFieldsYieldsZeroWidthRecords(t *testing.T) {
	svc := New(registryStore(), fields.NewPolicy([]string{"surname"}, nil))

	results := svc.Search(context.Background(),
		query.New(map[string]string{"surname": "Silva"}))

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: matches are still counted", len(results))
	}
	for i, r := range results {
		if r.Len() != 0 {
			t.Errorf("result %d has %d fields, want zero-width record", i, r.Len())
		}
	}
}

func TestSearch_EmptyQuerySkipsStoreScan(t *testing.T) {
	store := registryStore()
	svc := New(store, registryPolicy())

	svc.Search(context.Background(), query.New(nil))

	if store.calls != 0 {
		t.Error("empty query should not scan the store")
	}
}
