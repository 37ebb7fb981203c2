// Package scheduler provides automated knowledge reload scheduling and health
// monitoring for the recommendation API. It handles cron-based document
// reloads and coordinates engine swaps with the data container using
// dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vetmedica/vetmedica-api/interfaces"
	"github.com/vetmedica/vetmedica-api/logging"
	"github.com/vetmedica/vetmedica-api/metrics"
	"github.com/vetmedica/vetmedica-api/recommender"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles knowledge reloads and health monitoring using dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	loader    interfaces.DocumentLoader
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, loader interfaces.DocumentLoader) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		loader:    loader,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial load and schedules periodic reloads
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.reload(); err != nil {
		logging.Error("Failed to perform initial knowledge load", "error", err)
		return fmt.Errorf("initial knowledge load failed: %w", err)
	}

	// Schedule reloads at 06:00 and 18:00 daily
	_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		if err := s.reload(); err != nil {
			logging.Error("Failed to reload knowledge documents", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule reloads", "error", err)
		return fmt.Errorf("failed to schedule reloads: %w", err)
	}

	s.scheduler.StartAsync()

	// Start health monitoring
	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// reload loads the knowledge documents from disk, builds a fresh engine and
// swaps it into the data container atomically.
func (s *Scheduler) reload() error {
	// Prevent concurrent reloads
	if !s.dataStore.BeginUpdate() {
		logging.Info("Reload already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info(fmt.Sprintf("Starting knowledge reload at: %s", time.Now().Format(time.RFC3339)))
	start := time.Now()

	docs, err := s.loader.Load()
	if err != nil {
		logging.Error("Failed to load knowledge documents", "error", err)
		return fmt.Errorf("failed to load knowledge documents: %w", err)
	}

	engine := recommender.NewEngine(docs)

	// Atomic swap using the injected data store
	s.dataStore.UpdateEngine(engine)

	stats := engine.Estadisticas()
	metrics.LoadedMedicamentos.Set(float64(stats.TotalMedicamentos))
	metrics.LoadedEnfermedades.Set(float64(stats.TotalEnfermedades))
	metrics.LoadedRelaciones.Set(float64(stats.TotalRelaciones))

	elapsed := time.Since(start)
	logging.Info("Knowledge reload completed",
		"duration", elapsed.String(),
		"medicamentos", stats.TotalMedicamentos,
		"enfermedades", stats.TotalEnfermedades,
		"relaciones", stats.TotalRelaciones,
	)

	return nil
}

// startHealthMonitoring monitors the freshness of the loaded knowledge
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastUpdate := s.dataStore.GetLastUpdated()
			if time.Since(lastUpdate) > 25*time.Hour {
				logging.Warn("Knowledge documents haven't been reloaded in over 25 hours")
			}
		}
	}()
}
