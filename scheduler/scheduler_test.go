package scheduler

import (
	"testing"
	"time"

	"github.com/vetmedica/vetmedica-api/graph"
	"github.com/vetmedica/vetmedica-api/graph/entities"
	"github.com/vetmedica/vetmedica-api/recommender"
)

// mockDataStore for testing the scheduler
type mockDataStore struct {
	engine      *recommender.Engine
	lastUpdated time.Time
	startTime   time.Time
	updating    bool
	updateCount int
}

func (m *mockDataStore) GetEngine() *recommender.Engine { return m.engine }
func (m *mockDataStore) GetLastUpdated() time.Time      { return m.lastUpdated }
func (m *mockDataStore) IsUpdating() bool               { return m.updating }
func (m *mockDataStore) GetServerStartTime() time.Time  { return m.startTime }
func (m *mockDataStore) SetServerStartTime(t time.Time) { m.startTime = t }

func (m *mockDataStore) UpdateEngine(engine *recommender.Engine) {
	m.engine = engine
	m.lastUpdated = time.Now()
	m.updateCount++
}

func (m *mockDataStore) BeginUpdate() bool {
	if m.updating {
		return false
	}
	m.updating = true
	return true
}

func (m *mockDataStore) EndUpdate() { m.updating = false }

// mockLoader for testing the scheduler
type mockLoader struct {
	loadCount  int
	shouldFail bool
}

func (m *mockLoader) Load() (*graph.Documentos, error) {
	m.loadCount++
	if m.shouldFail {
		return nil, &graph.LoadError{Documento: graph.GrafoFile, Err: errMock}
	}

	return &graph.Documentos{
		Grafo: &entities.Grafo{
			Medicamentos: map[string]entities.Medicamento{
				"MED-001": {ID: "MED-001", Nombre: "Meloxidyl", PrincipiosActivos: []string{"Meloxicam"}, Especie: "Perro"},
			},
			Enfermedades: map[string]entities.Enfermedad{
				"Artrosis_Perro": {Nombre: "Artrosis", Especie: "Perro", MedicamentosAsociados: []string{"MED-001"}},
			},
		},
		Sinonimos: entities.TablaSinonimos{Grupos: map[string][]string{"artrosis": {"cojera"}}},
	}, nil
}

var errMock = &mockError{"load failed"}

type mockError struct {
	msg string
}

func (e *mockError) Error() string { return e.msg }

func TestSchedulerSuccessfulInitialLoad(t *testing.T) {
	mockStore := &mockDataStore{}
	loader := &mockLoader{}

	sched := NewScheduler(mockStore, loader)

	if err := sched.Start(); err != nil {
		t.Errorf("Unexpected error during start: %v", err)
	}
	defer sched.Stop()

	if mockStore.updateCount != 1 {
		t.Errorf("Expected 1 engine swap, got %d", mockStore.updateCount)
	}
	if loader.loadCount != 1 {
		t.Errorf("Expected 1 load call, got %d", loader.loadCount)
	}
	if mockStore.engine == nil {
		t.Error("Engine not stored after initial load")
	}
}

func TestSchedulerLoadFailureIsFatal(t *testing.T) {
	mockStore := &mockDataStore{}
	loader := &mockLoader{shouldFail: true}

	sched := NewScheduler(mockStore, loader)

	if err := sched.Start(); err == nil {
		t.Error("Expected error during start but got none")
	}

	if mockStore.updateCount != 0 {
		t.Errorf("Expected 0 swaps after failed load, got %d", mockStore.updateCount)
	}
}

func TestSchedulerConcurrentReloadPrevention(t *testing.T) {
	mockStore := &mockDataStore{}
	loader := &mockLoader{}

	sched := NewScheduler(mockStore, loader)

	// Simulate a reload in progress
	mockStore.BeginUpdate()

	if err := sched.Start(); err != nil {
		t.Errorf("Unexpected error during start with concurrent reload: %v", err)
	}
	defer sched.Stop()

	if mockStore.updateCount != 0 {
		t.Errorf("Expected 0 swaps due to concurrent reload, got %d", mockStore.updateCount)
	}
}

func TestSchedulerReloadReplacesEngine(t *testing.T) {
	mockStore := &mockDataStore{}
	loader := &mockLoader{}

	sched := NewScheduler(mockStore, loader)
	if err := sched.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer sched.Stop()

	first := mockStore.engine

	if err := sched.reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if mockStore.engine == first {
		t.Error("reload did not swap in a fresh engine")
	}
	if mockStore.updateCount != 2 {
		t.Errorf("Expected 2 swaps, got %d", mockStore.updateCount)
	}
}
