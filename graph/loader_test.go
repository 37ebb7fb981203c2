package graph

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vetmedica/vetmedica-api/graph/entities"
)

func writeTestJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func floatPtr(f float64) *float64 { return &f }

func writeTestDocuments(t *testing.T, dir string) {
	t.Helper()

	grafo, _, err := Build(testMedicamentos(), testEnfermedades())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	writeTestJSON(t, filepath.Join(dir, GrafoFile), grafo)

	writeTestJSON(t, filepath.Join(dir, DosisFile), entities.TablaDosis{
		Categorias: []entities.PalabraCategoria{
			{Palabra: "meloxicam", Categoria: "Antiinflamatorio"},
		},
		Reglas: map[string]entities.ReglaDosis{
			"Antiinflamatorio": {MgPorKg: floatPtr(0.2), Frecuencia: "cada 24h", Via: "oral"},
		},
	})

	writeTestJSON(t, filepath.Join(dir, RazasFile), entities.TablaRazas{
		"Labrador": {
			EnfermedadesPredisposicion: []entities.Predisposicion{{Enfermedad: "artrosis", Factor: 2}},
		},
	})

	writeTestJSON(t, filepath.Join(dir, SinonimosFile), entities.TablaSinonimos{
		Grupos: map[string][]string{
			"cojera": {"cojea", "renquea"},
		},
	})
}

func TestLoaderLoadsAllDocuments(t *testing.T) {
	dir := t.TempDir()
	writeTestDocuments(t, dir)

	docs, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(docs.Grafo.Medicamentos) != 4 {
		t.Errorf("loaded %d medicamentos, want 4", len(docs.Grafo.Medicamentos))
	}
	if len(docs.Dosis.Reglas) != 1 {
		t.Errorf("loaded %d dose rules, want 1", len(docs.Dosis.Reglas))
	}
	if _, ok := docs.Razas["Labrador"]; !ok {
		t.Error("breed table missing Labrador")
	}
	if len(docs.Sinonimos.Grupos) != 1 {
		t.Errorf("loaded %d synonym groups, want 1", len(docs.Sinonimos.Grupos))
	}
}

func TestLoaderMissingDocumentIsLoadError(t *testing.T) {
	dir := t.TempDir()
	writeTestDocuments(t, dir)
	os.Remove(filepath.Join(dir, DosisFile))

	_, err := NewLoader(dir).Load()
	if err == nil {
		t.Fatal("expected error for missing dose document")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error is %T, want *LoadError", err)
	}
	if loadErr.Documento != DosisFile {
		t.Errorf("LoadError.Documento = %s, want %s", loadErr.Documento, DosisFile)
	}
}

func TestLoaderMalformedDocumentIsLoadError(t *testing.T) {
	dir := t.TempDir()
	writeTestDocuments(t, dir)
	if err := os.WriteFile(filepath.Join(dir, GrafoFile), []byte("{truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader(dir).Load()
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error is %T, want *LoadError", err)
	}
}

func TestLoaderRejectsEmptyGraph(t *testing.T) {
	dir := t.TempDir()
	writeTestDocuments(t, dir)
	writeTestJSON(t, filepath.Join(dir, GrafoFile), entities.Grafo{
		Medicamentos: map[string]entities.Medicamento{},
		Enfermedades: map[string]entities.Enfermedad{},
	})

	if _, err := NewLoader(dir).Load(); err == nil {
		t.Error("expected error for empty graph document")
	}
}

func TestLoaderRebuildsFromCatalogs(t *testing.T) {
	dir := t.TempDir()
	writeTestDocuments(t, dir)
	os.Remove(filepath.Join(dir, GrafoFile))

	writeTestJSON(t, filepath.Join(dir, CatalogoMedicamentosFile), entities.CatalogoMedicamentos{
		Medicamentos: testMedicamentos(),
	})
	writeTestJSON(t, filepath.Join(dir, CatalogoEnfermedadesFile), entities.CatalogoEnfermedades{
		Enfermedades: testEnfermedades(),
	})

	docs, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(docs.Grafo.Relaciones) != 3 {
		t.Errorf("rebuilt graph has %d relations, want 3", len(docs.Grafo.Relaciones))
	}

	// The rebuilt graph must have been persisted for the next start
	if _, err := os.Stat(filepath.Join(dir, GrafoFile)); err != nil {
		t.Errorf("rebuilt graph not persisted: %v", err)
	}
}

func TestLoaderMissingGraphAndCatalogsFails(t *testing.T) {
	dir := t.TempDir()
	writeTestDocuments(t, dir)
	os.Remove(filepath.Join(dir, GrafoFile))

	if _, err := NewLoader(dir).Load(); err == nil {
		t.Error("expected error with neither graph nor catalogs present")
	}
}

func TestSaveGrafoRoundTrip(t *testing.T) {
	dir := t.TempDir()
	grafo, _, err := Build(testMedicamentos(), testEnfermedades())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path := filepath.Join(dir, GrafoFile)
	if err := SaveGrafo(path, grafo); err != nil {
		t.Fatalf("SaveGrafo: %v", err)
	}

	var loaded entities.Grafo
	if err := readJSON(path, &loaded); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(loaded.Relaciones) != len(grafo.Relaciones) {
		t.Errorf("round-trip lost relations: %d != %d", len(loaded.Relaciones), len(grafo.Relaciones))
	}

	// No leftover temp files
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("unexpected leftover files: %v", entries)
	}
}

func TestValidateDosisRejectsBadRules(t *testing.T) {
	bad := entities.TablaDosis{
		Reglas: map[string]entities.ReglaDosis{
			"Antibiotico": {MgPorKg: floatPtr(-5)},
		},
	}
	if err := validateDosis(bad); err == nil {
		t.Error("expected error for non-positive mg_por_kg")
	}

	inverted := entities.TablaDosis{
		Reglas: map[string]entities.ReglaDosis{
			"Antibiotico": {PesoMinimoKg: floatPtr(30), PesoMaximoKg: floatPtr(5)},
		},
	}
	if err := validateDosis(inverted); err == nil {
		t.Error("expected error for inverted weight bounds")
	}
}
