// Package data provides thread-safe storage for the query snapshot. The
// engine is swapped atomically on reload so in-flight queries keep the
// snapshot they started with and never observe a half-loaded graph.
package data

import (
	"sync/atomic"
	"time"

	"github.com/vetmedica/vetmedica-api/interfaces"
	"github.com/vetmedica/vetmedica-api/logging"
	"github.com/vetmedica/vetmedica-api/recommender"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the current engine behind an atomic pointer.
type DataContainer struct {
	engine          atomic.Value // *recommender.Engine
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates an empty container. Until UpdateEngine runs the
// engine is nil and the process must not serve queries.
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// GetEngine returns the current query snapshot, or nil before the first load.
func (dc *DataContainer) GetEngine() *recommender.Engine {
	if v := dc.engine.Load(); v != nil {
		if engine, ok := v.(*recommender.Engine); ok {
			return engine
		}
	}

	logging.Warn("Query engine not loaded yet")
	return nil
}

// GetLastUpdated returns the timestamp of the last snapshot swap.
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true while a reload is in progress.
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time.
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time.
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateEngine atomically swaps in a freshly built snapshot.
func (dc *DataContainer) UpdateEngine(engine *recommender.Engine) {
	dc.engine.Store(engine)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a reload. Returns false when another reload
// is already running.
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a reload.
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
