package adoptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-api/internal/domain/adopters"
	"pet-adoption-api/internal/domain/animals"
	"pet-adoption-api/internal/domain/apperr"
)

// -------------------------
// Test repo y directorios
// -------------------------

type testRepo struct {
	byID map[string]Adoption
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Adoption{}}
}

func (r *testRepo) Create(ctx context.Context, a Adoption) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Adoption, error) {
	a, ok := r.byID[id]
	if !ok {
		return Adoption{}, apperr.ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context, f Filter) ([]Adoption, error) {
	out := make([]Adoption, 0)
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, a Adoption) error {
	if _, ok := r.byID[a.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Los directorios registran las consultas en una traza compartida para
// verificar el orden de chequeo adoptante-antes-que-animal.
type refTrace struct {
	calls []string
}

type testAdopterDir struct {
	byID  map[string]adopters.Adopter
	trace *refTrace
}

func (d *testAdopterDir) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	d.trace.calls = append(d.trace.calls, "adopter:"+id)
	a, ok := d.byID[id]
	if !ok {
		return adopters.Adopter{}, &apperr.NotFound{Message: "Adotante não encontrado."}
	}
	return a, nil
}

type testAnimalDir struct {
	byID  map[string]animals.Animal
	trace *refTrace
}

func (d *testAnimalDir) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	d.trace.calls = append(d.trace.calls, "animal:"+id)
	a, ok := d.byID[id]
	if !ok {
		return animals.Animal{}, &apperr.NotFound{Message: "Animal não encontrado."}
	}
	return a, nil
}

const (
	adopterID = "4a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	animalID  = "5b2c3d4e-5f6a-4b7c-9d8e-0f1a2b3c4d5e"
)

func newFixture(withAdopter, withAnimal bool) (*Service, *refTrace) {
	trace := &refTrace{}
	ad := &testAdopterDir{byID: map[string]adopters.Adopter{}, trace: trace}
	an := &testAnimalDir{byID: map[string]animals.Animal{}, trace: trace}
	if withAdopter {
		ad.byID[adopterID] = adopters.Adopter{ID: adopterID, Name: "Maria"}
	}
	if withAnimal {
		an.byID[animalID] = animals.Animal{ID: animalID, Name: "Rex"}
	}
	return NewService(newTestRepo(), ad, an), trace
}

func TestCreate_DefaultsAdoptionDate(t *testing.T) {
	svc, _ := newFixture(true, true)

	fixed := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	a, err := svc.Create(context.Background(), CreateInput{
		AdopterID: adopterID,
		AnimalID:  animalID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !a.AdoptionDate.Equal(fixed) {
		t.Fatalf("adoption date not defaulted: %v", a.AdoptionDate)
	}
}

func TestCreate_ChecksAdopterBeforeAnimal(t *testing.T) {
	// Ambas referencias faltan: el error debe ser el del adoptante y el
	// animal ni siquiera se consulta.
	svc, trace := newFixture(false, false)

	_, err := svc.Create(context.Background(), CreateInput{
		AdopterID: adopterID,
		AnimalID:  animalID,
	})

	var rnf *apperr.ReferenceNotFound
	if !errors.As(err, &rnf) {
		t.Fatalf("expected ReferenceNotFound, got %v", err)
	}
	if rnf.Entity != "adopter" {
		t.Fatalf("expected adopter error first, got entity %q", rnf.Entity)
	}
	if len(trace.calls) != 1 || trace.calls[0] != "adopter:"+adopterID {
		t.Fatalf("unexpected lookup order %v", trace.calls)
	}
}

func TestCreate_BadAnimalFormat(t *testing.T) {
	svc, trace := newFixture(true, true)

	_, err := svc.Create(context.Background(), CreateInput{
		AdopterID: adopterID,
		AnimalID:  "no-es-uuid",
	})

	var ref *apperr.InvalidReference
	if !errors.As(err, &ref) {
		t.Fatalf("expected InvalidReference, got %v", err)
	}
	if ref.Message != "ID de animal inválido." {
		t.Fatalf("unexpected message %q", ref.Message)
	}
	// El adoptante sí se consultó; el animal malformado no llegó al store.
	for _, c := range trace.calls {
		if c == "animal:no-es-uuid" {
			t.Fatal("malformed animal id reached the store")
		}
	}
}

func TestCreate_MissingAdopterField(t *testing.T) {
	svc, _ := newFixture(true, true)

	_, err := svc.Create(context.Background(), CreateInput{AnimalID: animalID})
	var v *apperr.Validation
	if !errors.As(err, &v) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if v.Messages[0] != "O adotante é obrigatório." {
		t.Fatalf("unexpected message %q", v.Messages[0])
	}
}

func TestUpdate_OnlyRechecksPresentRefs(t *testing.T) {
	svc, trace := newFixture(true, true)

	a, err := svc.Create(context.Background(), CreateInput{
		AdopterID: adopterID,
		AnimalID:  animalID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	before := len(trace.calls)
	newDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.Update(context.Background(), a.ID, UpdateInput{AdoptionDate: &newDate})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.AdoptionDate.Equal(newDate) {
		t.Fatalf("date not updated: %v", got.AdoptionDate)
	}
	if len(trace.calls) != before {
		t.Fatalf("update without refs hit the directories: %v", trace.calls[before:])
	}
}

func TestList_BadFilterIDs(t *testing.T) {
	svc, _ := newFixture(true, true)

	if _, err := svc.List(context.Background(), Filter{AdopterID: "xxx"}); err == nil {
		t.Fatal("expected error for bad adopter filter")
	}
	if _, err := svc.List(context.Background(), Filter{AnimalID: "xxx"}); err == nil {
		t.Fatal("expected error for bad animal filter")
	}
}
