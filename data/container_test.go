package data

import (
	"sync"
	"testing"
	"time"

	"github.com/vetmedica/vetmedica-api/graph"
	"github.com/vetmedica/vetmedica-api/graph/entities"
	"github.com/vetmedica/vetmedica-api/recommender"
)

func testEngine() *recommender.Engine {
	return recommender.NewEngine(&graph.Documentos{
		Grafo: &entities.Grafo{
			Medicamentos: map[string]entities.Medicamento{
				"MED-001": {ID: "MED-001", Nombre: "Meloxidyl", PrincipiosActivos: []string{"Meloxicam"}, Especie: "Perro"},
			},
			Enfermedades: map[string]entities.Enfermedad{
				"Artrosis_Perro": {Nombre: "Artrosis", Especie: "Perro", MedicamentosAsociados: []string{"MED-001"}},
			},
		},
		Sinonimos: entities.TablaSinonimos{Grupos: map[string][]string{"artrosis": {"cojera"}}},
	})
}

func TestContainerEmptyBeforeFirstLoad(t *testing.T) {
	dc := NewDataContainer()

	if dc.GetEngine() != nil {
		t.Error("engine should be nil before the first load")
	}
	if !dc.GetLastUpdated().IsZero() {
		t.Error("last-updated should be zero before the first load")
	}
	if dc.IsUpdating() {
		t.Error("new container reports an update in progress")
	}
}

func TestContainerUpdateEngine(t *testing.T) {
	dc := NewDataContainer()
	engine := testEngine()

	before := time.Now()
	dc.UpdateEngine(engine)

	if dc.GetEngine() != engine {
		t.Error("engine not stored")
	}
	if dc.GetLastUpdated().Before(before) {
		t.Error("last-updated not refreshed")
	}
}

func TestContainerBeginUpdateExclusive(t *testing.T) {
	dc := NewDataContainer()

	if !dc.BeginUpdate() {
		t.Fatal("first BeginUpdate refused")
	}
	if dc.BeginUpdate() {
		t.Error("concurrent BeginUpdate allowed")
	}
	dc.EndUpdate()
	if !dc.BeginUpdate() {
		t.Error("BeginUpdate refused after EndUpdate")
	}
	dc.EndUpdate()
}

func TestContainerServerStartTime(t *testing.T) {
	dc := NewDataContainer()

	start := time.Now()
	dc.SetServerStartTime(start)
	if !dc.GetServerStartTime().Equal(start) {
		t.Error("server start time not stored")
	}
}

func TestContainerConcurrentReadsDuringSwap(t *testing.T) {
	dc := NewDataContainer()
	dc.UpdateEngine(testEngine())

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers keep querying while the writer swaps snapshots
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				engine := dc.GetEngine()
				if engine == nil {
					t.Error("engine became nil during swaps")
					return
				}
				_ = engine.Search("cojera", "Perro")
			}
		}()
	}

	for i := 0; i < 50; i++ {
		dc.UpdateEngine(testEngine())
	}
	close(stop)
	wg.Wait()
}
