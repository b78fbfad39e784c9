package shelters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pet-adoption-api/internal/domain/apperr"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Shelter
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Shelter{}}
}

func (r *testRepo) Create(ctx context.Context, s Shelter) error {
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Shelter, error) {
	s, ok := r.byID[id]
	if !ok {
		return Shelter{}, apperr.ErrNotFound
	}
	return s, nil
}

func (r *testRepo) List(ctx context.Context) ([]Shelter, error) {
	out := make([]Shelter, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, s Shelter) error {
	if _, ok := r.byID[s.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func validInput() CreateInput {
	return CreateInput{
		Name:    "Abrigo Esperança",
		Address: "Rua das Flores, 123",
		Phone:   "(11) 99999-8888",
		Email:   "Contato@Abrigo.com",
	}
}

func TestCreate_NormalizesAndPersists(t *testing.T) {
	svc := NewService(newTestRepo())

	sh, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sh.ID == "" {
		t.Fatal("expected generated id")
	}
	if sh.Email != "contato@abrigo.com" {
		t.Fatalf("email not lowered: %q", sh.Email)
	}

	got, err := svc.GetByID(context.Background(), sh.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Abrigo Esperança" {
		t.Fatalf("unexpected name %q", got.Name)
	}
}

func TestCreate_CollectsAllFieldErrors(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), CreateInput{
		Phone: "11 99999-8888", // sin paréntesis
		Email: "no-es-email",
	})

	var v *apperr.Validation
	if !errors.As(err, &v) {
		t.Fatalf("expected validation error, got %v", err)
	}

	want := []string{
		"O nome do abrigo é obrigatório.",
		"O endereço é obrigatório.",
		"Formato de telefone inválido. Use (XX) XXXX-XXXX ou (XX) XXXXX-XXXX.",
		"Formato de e-mail inválido.",
	}
	if len(v.Messages) != len(want) {
		t.Fatalf("got %d messages, want %d: %v", len(v.Messages), len(want), v.Messages)
	}
	for i := range want {
		if v.Messages[i] != want[i] {
			t.Fatalf("message %d: got %q want %q", i, v.Messages[i], want[i])
		}
	}
}

func TestGetByID_BadFormatBeforeLookup(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	var ref *apperr.InvalidReference
	if !errors.As(err, &ref) {
		t.Fatalf("expected InvalidReference, got %v", err)
	}
	if ref.Message != "ID de abrigo inválido." {
		t.Fatalf("unexpected message %q", ref.Message)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.GetByID(context.Background(), "7b3e1f14-9a0f-4a43-8b2e-0c3a9d6f1e21")
	var nf *apperr.NotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestUpdate_PartialKeepsOtherFields(t *testing.T) {
	svc := NewService(newTestRepo())

	sh, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "Abrigo Novo Lar"
	got, err := svc.Update(context.Background(), sh.ID, UpdateInput{Name: &newName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != newName {
		t.Fatalf("name not updated: %q", got.Name)
	}
	if got.Phone != sh.Phone || got.Email != sh.Email || got.Address != sh.Address {
		t.Fatal("partial update touched fields that were not sent")
	}
}

func TestUpdate_RevalidatesResult(t *testing.T) {
	svc := NewService(newTestRepo())

	sh, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := "telefone-invalido"
	_, err = svc.Update(context.Background(), sh.ID, UpdateInput{Phone: &bad})
	var v *apperr.Validation
	if !errors.As(err, &v) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(v.Error(), "Formato de telefone inválido") {
		t.Fatalf("unexpected messages: %v", v.Messages)
	}
}

func TestDelete_NotFoundMessage(t *testing.T) {
	svc := NewService(newTestRepo())

	err := svc.Delete(context.Background(), "7b3e1f14-9a0f-4a43-8b2e-0c3a9d6f1e21")
	var nf *apperr.NotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if nf.Message != "Abrigo não encontrado para exclusão." {
		t.Fatalf("unexpected message %q", nf.Message)
	}
}
