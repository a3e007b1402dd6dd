package ingest

import (
	"fmt"

	"cafe-analytics/src/interfaces"
	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"
)

// MultiSourceLoader merges several IRowSource instances (e.g. per-branch POS
// exports) into one raw dataset.
type MultiSourceLoader struct {
	Sources map[string]interfaces.IRowSource
	order   []string
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMultiSourceLoader(sources []interfaces.IRowSource, log *logger.Logger) *MultiSourceLoader {
	m := &MultiSourceLoader{
		Sources: make(map[string]interfaces.IRowSource),
		Logger:  log,
	}
	for _, s := range sources {
		if _, exists := m.Sources[s.Name()]; exists {
			log.Warning("Duplicate source name %q, keeping the first", s.Name())
			continue
		}
		m.Sources[s.Name()] = s
		m.order = append(m.order, s.Name())
	}
	return m
}

// -----------------------------------------------------------------------------

// FromConfig builds a loader with one CSV source per configured data source.
func FromConfig(cfg *models.MConfig, log *logger.Logger) *MultiSourceLoader {
	sources := make([]interfaces.IRowSource, 0, len(cfg.Data.Sources))
	for _, sc := range cfg.Data.Sources {
		sources = append(sources, NewCSVSource(sc, logger.NewLogger(nil, "CSVSource-"+sc.Name)))
	}
	return NewMultiSourceLoader(sources, log)
}

// -----------------------------------------------------------------------------

// LoadAll reads every source in configured order and concatenates the rows.
// A schema mismatch in ANY source is fatal for the whole run: partial
// datasets would silently skew every aggregate.
func (m *MultiSourceLoader) LoadAll() ([]models.MRawRow, error) {
	var all []models.MRawRow
	for _, name := range m.order {
		rows, err := m.Sources[name].Load()
		if err != nil {
			return nil, fmt.Errorf("loading source %q: %w", name, err)
		}
		all = append(all, rows...)
	}
	m.Logger.Info("Loaded %d rows from %d source(s)", len(all), len(m.order))
	return all, nil
}

// -----------------------------------------------------------------------------

// SourceCount returns the number of configured sources.
func (m *MultiSourceLoader) SourceCount() int {
	return len(m.Sources)
}
