package models

import (
	"sort"
	"sync"
)

// Schedule holds every row of a schedule file plus the block and duty
// views derived from them.
//
// The derived views are built lazily on first access and cached behind a
// mutex; AddRow invalidates both caches. Callers never observe a stale or
// half-built view, and concurrent readers are safe once rows stop being
// added.
type Schedule struct {
	Metadata ScheduleMetadata

	mu     sync.Mutex
	rows   []ScheduleRow
	blocks map[string]*Block
	duties map[string]*Duty
}

// ScheduleMetadata describes where a schedule came from and how it was
// imported.
type ScheduleMetadata struct {
	SourceFile string
	Name       string
	StartDate  string
	EndDate    string
	Operator   string

	// ColumnMapping records which source column fed each row field during
	// import, keyed by field name.
	ColumnMapping map[string]string
}

// NewSchedule creates an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// FromRows creates a schedule over the given rows.
func FromRows(rows []ScheduleRow) *Schedule {
	return &Schedule{rows: rows}
}

// AddRow appends a row and invalidates the derived views.
func (s *Schedule) AddRow(row ScheduleRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	s.blocks = nil
	s.duties = nil
}

// Len returns the number of rows.
func (s *Schedule) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Rows returns a copy of the row slice in file order.
func (s *Schedule) Rows() []ScheduleRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]ScheduleRow, len(s.rows))
	copy(rows, s.rows)
	return rows
}

// RevenueTrips returns the revenue rows in file order.
func (s *Schedule) RevenueTrips() []ScheduleRow {
	return s.filterRows(func(r ScheduleRow) bool { return r.IsRevenue() })
}

// Deadheads returns the deadhead rows in file order.
func (s *Schedule) Deadheads() []ScheduleRow {
	return s.filterRows(func(r ScheduleRow) bool { return r.IsDeadhead() })
}

// RowsForBlock returns the rows carrying the given block id, in file order.
func (s *Schedule) RowsForBlock(blockID string) []ScheduleRow {
	return s.filterRows(func(r ScheduleRow) bool { return r.Block == blockID && blockID != "" })
}

// RowsForRun returns the rows carrying the given run number, in file order.
func (s *Schedule) RowsForRun(runNumber string) []ScheduleRow {
	return s.filterRows(func(r ScheduleRow) bool { return r.RunNumber == runNumber && runNumber != "" })
}

func (s *Schedule) filterRows(keep func(ScheduleRow) bool) []ScheduleRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ScheduleRow
	for _, row := range s.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// BlockIDs returns the sorted unique block ids across all rows.
func (s *Schedule) BlockIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedUnique(s.rows, func(r ScheduleRow) string { return r.Block })
}

// RunNumbers returns the sorted unique run numbers across all rows.
func (s *Schedule) RunNumbers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedUnique(s.rows, func(r ScheduleRow) string { return r.RunNumber })
}

// Depots returns the sorted unique depot codes across all rows.
func (s *Schedule) Depots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedUnique(s.rows, func(r ScheduleRow) string { return r.Depot })
}

// TripIDs returns the sorted unique trip ids of revenue rows.
func (s *Schedule) TripIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedUnique(s.rows, func(r ScheduleRow) string {
		if !r.IsRevenue() {
			return ""
		}
		return r.TripID
	})
}

// Blocks returns the block view keyed by block id, deriving it if
// needed. Rows without a block id belong to no block. Rows inside each
// block are sorted by start time.
func (s *Schedule) Blocks() map[string]*Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blocks == nil {
		s.blocks = deriveBlocks(s.rows)
	}
	return s.blocks
}

// Block returns one block by id, or nil when no row references it.
func (s *Schedule) Block(blockID string) *Block {
	return s.Blocks()[blockID]
}

// Duties returns the duty view keyed by duty id, deriving it if needed.
// Rows are grouped by duty id, falling back to run number; rows with
// neither belong to no duty. Rows inside each duty are sorted by start
// time.
func (s *Schedule) Duties() map[string]*Duty {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.duties == nil {
		s.duties = deriveDuties(s.rows)
	}
	return s.duties
}

// Duty returns one duty by id, or nil when no row maps to it.
func (s *Schedule) Duty(dutyID string) *Duty {
	return s.Duties()[dutyID]
}

func deriveBlocks(rows []ScheduleRow) map[string]*Block {
	blocks := make(map[string]*Block)
	for _, row := range rows {
		if row.Block == "" {
			continue
		}
		block, ok := blocks[row.Block]
		if !ok {
			block = NewBlock(row.Block)
			blocks[row.Block] = block
		}
		block.AddRow(row)
	}
	for _, block := range blocks {
		block.SortRowsByTime()
	}
	return blocks
}

func deriveDuties(rows []ScheduleRow) map[string]*Duty {
	duties := make(map[string]*Duty)
	for _, row := range rows {
		key := row.DutyID
		if key == "" {
			key = row.RunNumber
		}
		if key == "" {
			continue
		}
		duty, ok := duties[key]
		if !ok {
			duty = NewDuty(key)
			duties[key] = duty
		}
		duty.AddRow(row)
	}
	for _, duty := range duties {
		duty.SortRowsByTime()
	}
	return duties
}

// ScheduleSummary carries whole-schedule statistics.
type ScheduleSummary struct {
	TotalRows        int
	RevenueTrips     int
	Deadheads        int
	BreaksAndReliefs int
	UniqueBlocks     int
	UniqueRuns       int
	UniqueDepots     int
}

// Summary computes whole-schedule statistics.
func (s *Schedule) Summary() ScheduleSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := ScheduleSummary{TotalRows: len(s.rows)}
	for _, row := range s.rows {
		switch {
		case row.IsRevenue():
			summary.RevenueTrips++
		case row.IsDeadhead():
			summary.Deadheads++
		case row.IsBreakOrRelief():
			summary.BreaksAndReliefs++
		}
	}
	summary.UniqueBlocks = len(sortedUnique(s.rows, func(r ScheduleRow) string { return r.Block }))
	summary.UniqueRuns = len(sortedUnique(s.rows, func(r ScheduleRow) string { return r.RunNumber }))
	summary.UniqueDepots = len(sortedUnique(s.rows, func(r ScheduleRow) string { return r.Depot }))
	return summary
}

// sortedUnique collects the non-empty values of key over rows, sorted
// ascending with duplicates removed.
func sortedUnique(rows []ScheduleRow, key func(ScheduleRow) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, row := range rows {
		v := key(row)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
