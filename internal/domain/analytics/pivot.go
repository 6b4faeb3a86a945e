package analytics

import (
	"math"
	"strings"
)

// StatRow is one observed statistic for an entity within a grouping key and period.
type StatRow struct {
	Entity   string
	Group    string
	Period   string
	StatName string
	Value    float64
}

// PivotedRecord holds every stat observed for one (entity, group) pair.
// Stat keys are lowercase.
type PivotedRecord struct {
	Entity string
	Group  string
	Stats  map[string]float64
}

// Stat returns the value stored under the lowercased stat name.
func (r PivotedRecord) Stat(name string) (float64, bool) {
	v, ok := r.Stats[StatKey(name)]
	return v, ok
}

// Pivoted is the request-scoped result of Pivot. Records keep first-seen order.
type Pivoted struct {
	records []*PivotedRecord
	index   map[string]*PivotedRecord
}

// Pivot folds flat stat rows into one record per entity|group key.
// Later rows overwrite earlier ones for the same stat (last write wins).
func Pivot(rows []StatRow) *Pivoted {
	p := &Pivoted{
		records: make([]*PivotedRecord, 0, len(rows)/4+1),
		index:   make(map[string]*PivotedRecord, len(rows)/4+1),
	}

	for _, row := range rows {
		key := row.Entity + "|" + row.Group
		record, ok := p.index[key]
		if !ok {
			record = &PivotedRecord{
				Entity: row.Entity,
				Group:  row.Group,
				Stats:  make(map[string]float64),
			}
			p.index[key] = record
			p.records = append(p.records, record)
		}
		record.Stats[StatKey(row.StatName)] = finiteOrZero(row.Value)
	}

	return p
}

// Len reports how many (entity, group) records were built.
func (p *Pivoted) Len() int {
	if p == nil {
		return 0
	}
	return len(p.records)
}

// Records returns a copy of every record in first-seen order.
func (p *Pivoted) Records() []PivotedRecord {
	if p == nil {
		return nil
	}

	out := make([]PivotedRecord, 0, len(p.records))
	for _, record := range p.records {
		stats := make(map[string]float64, len(record.Stats))
		for k, v := range record.Stats {
			stats[k] = v
		}
		out = append(out, PivotedRecord{Entity: record.Entity, Group: record.Group, Stats: stats})
	}
	return out
}

// Get looks up a record by its exact entity and group.
func (p *Pivoted) Get(entity, group string) (PivotedRecord, bool) {
	if p == nil {
		return PivotedRecord{}, false
	}
	record, ok := p.index[entity+"|"+group]
	if !ok {
		return PivotedRecord{}, false
	}
	return *record, true
}

func (p *Pivoted) cohort(group string) []*PivotedRecord {
	out := make([]*PivotedRecord, 0, 32)
	for _, record := range p.records {
		if record.Group == group {
			out = append(out, record)
		}
	}
	return out
}

// StatKey normalizes a stat name into the key used inside pivoted records.
func StatKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// round2 rounds half up to two decimals, matching what clients were built against.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
