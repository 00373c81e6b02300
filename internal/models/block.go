package models

import (
	"sort"

	"github.com/jinzhu/copier"
)

// Block is a vehicle assignment: the sequence of trips, deadheads, and
// layovers worked by one vehicle from pull-out to pull-in.
//
// Blocks own deep copies of their rows. Mutating a block never affects
// the schedule it was derived from, and vice versa.
type Block struct {
	BlockID string
	Rows    []ScheduleRow

	// Depot, VehicleClass, and VehicleType come from the first added row
	// that carries a value.
	Depot        string
	VehicleClass string
	VehicleType  string
}

// Gap is idle time between two consecutive rows: Seconds between the end
// of Rows[Index] and the start of Rows[Index+1].
type Gap struct {
	Index   int
	Seconds int
}

// NewBlock creates an empty block with the given id.
func NewBlock(blockID string) *Block {
	return &Block{BlockID: blockID}
}

// cloneRow deep-copies a schedule row, including its coordinate pointers.
func cloneRow(row ScheduleRow) ScheduleRow {
	var clone ScheduleRow
	if err := copier.CopyWithOption(&clone, &row, copier.Option{DeepCopy: true}); err != nil {
		// copier cannot fail on two identical concrete structs, but a
		// shallow copy of the value is still safe for every field except
		// the coordinate pointers, which we re-point explicitly.
		clone = row
		clone.StartLat = cloneFloat(row.StartLat)
		clone.StartLon = cloneFloat(row.StartLon)
		clone.EndLat = cloneFloat(row.EndLat)
		clone.EndLon = cloneFloat(row.EndLon)
	}
	return clone
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// AddRow appends a copy of the row. The first row carrying a depot or
// vehicle attribute pins that attribute for the whole block.
func (b *Block) AddRow(row ScheduleRow) {
	if b.Depot == "" {
		b.Depot = row.Depot
	}
	if b.VehicleClass == "" {
		b.VehicleClass = row.VehicleClass
	}
	if b.VehicleType == "" {
		b.VehicleType = row.VehicleType
	}
	b.Rows = append(b.Rows, cloneRow(row))
}

// SortRowsByTime orders rows ascending by parsed start time. Rows with an
// unparsable start sort as zero, so they surface at the front. The sort
// is stable: equal keys keep their insertion order.
func (b *Block) SortRowsByTime() {
	sort.SliceStable(b.Rows, func(i, j int) bool {
		ti, _ := b.Rows[i].StartSeconds()
		tj, _ := b.Rows[j].StartSeconds()
		return ti < tj
	})
}

// Len returns the number of rows in the block.
func (b *Block) Len() int {
	return len(b.Rows)
}

// RevenueTrips returns the revenue rows in block order.
func (b *Block) RevenueTrips() []ScheduleRow {
	var trips []ScheduleRow
	for _, row := range b.Rows {
		if row.IsRevenue() {
			trips = append(trips, row)
		}
	}
	return trips
}

// RevenueTripCount counts the revenue rows.
func (b *Block) RevenueTripCount() int {
	count := 0
	for _, row := range b.Rows {
		if row.IsRevenue() {
			count++
		}
	}
	return count
}

// PullOut returns the first pull-out row, or nil when the block has none.
func (b *Block) PullOut() *ScheduleRow {
	for i := range b.Rows {
		if b.Rows[i].Kind == KindPullOut {
			return &b.Rows[i]
		}
	}
	return nil
}

// PullIn returns the last pull-in row, or nil when the block has none.
func (b *Block) PullIn() *ScheduleRow {
	for i := len(b.Rows) - 1; i >= 0; i-- {
		if b.Rows[i].Kind == KindPullIn {
			return &b.Rows[i]
		}
	}
	return nil
}

// FirstRow returns the first row, or nil for an empty block.
func (b *Block) FirstRow() *ScheduleRow {
	if len(b.Rows) == 0 {
		return nil
	}
	return &b.Rows[0]
}

// LastRow returns the last row, or nil for an empty block.
func (b *Block) LastRow() *ScheduleRow {
	if len(b.Rows) == 0 {
		return nil
	}
	return &b.Rows[len(b.Rows)-1]
}

// StartSeconds returns the earliest parsed start time across all rows.
func (b *Block) StartSeconds() (int, bool) {
	best, found := 0, false
	for _, row := range b.Rows {
		if t, ok := row.StartSeconds(); ok && (!found || t < best) {
			best, found = t, true
		}
	}
	return best, found
}

// EndSeconds returns the latest parsed end time across all rows.
func (b *Block) EndSeconds() (int, bool) {
	best, found := 0, false
	for _, row := range b.Rows {
		if t, ok := row.EndSeconds(); ok && (!found || t > best) {
			best, found = t, true
		}
	}
	return best, found
}

// DurationSeconds returns the span from earliest start to latest end.
func (b *Block) DurationSeconds() (int, bool) {
	start, okStart := b.StartSeconds()
	end, okEnd := b.EndSeconds()
	if !okStart || !okEnd || end < start {
		return 0, false
	}
	return end - start, true
}

// RevenueTimeSeconds sums the durations of revenue rows. Rows without a
// measurable duration contribute nothing.
func (b *Block) RevenueTimeSeconds() int {
	total := 0
	for _, row := range b.Rows {
		if !row.IsRevenue() {
			continue
		}
		if d, ok := row.DurationSeconds(); ok {
			total += d
		}
	}
	return total
}

// DeadheadTimeSeconds sums the durations of deadhead rows.
func (b *Block) DeadheadTimeSeconds() int {
	total := 0
	for _, row := range b.Rows {
		if !row.IsDeadhead() {
			continue
		}
		if d, ok := row.DurationSeconds(); ok {
			total += d
		}
	}
	return total
}

// FindGaps reports idle time between consecutive rows. A pair only
// produces a gap when both boundary times parse and the next row starts
// strictly after the previous ends.
func (b *Block) FindGaps() []Gap {
	var gaps []Gap
	for i := 0; i+1 < len(b.Rows); i++ {
		end, okEnd := b.Rows[i].EndSeconds()
		start, okStart := b.Rows[i+1].StartSeconds()
		if okEnd && okStart && start > end {
			gaps = append(gaps, Gap{Index: i, Seconds: start - end})
		}
	}
	return gaps
}

// FindLocationDiscontinuities reports indices i where row i ends at a
// different place than row i+1 starts. Pairs with a missing place on
// either side are skipped.
func (b *Block) FindLocationDiscontinuities() []int {
	var indices []int
	for i := 0; i+1 < len(b.Rows); i++ {
		end := b.Rows[i].EndPlace
		start := b.Rows[i+1].StartPlace
		if end != "" && start != "" && end != start {
			indices = append(indices, i)
		}
	}
	return indices
}

// BlockSummary carries derived statistics for one block.
type BlockSummary struct {
	BlockID             string
	TotalRows           int
	RevenueTrips        int
	DurationSeconds     int
	HasDuration         bool
	RevenueTimeSeconds  int
	DeadheadTimeSeconds int
	Depot               string
}

// Summary computes the block's statistics.
func (b *Block) Summary() BlockSummary {
	duration, hasDuration := b.DurationSeconds()
	return BlockSummary{
		BlockID:             b.BlockID,
		TotalRows:           len(b.Rows),
		RevenueTrips:        b.RevenueTripCount(),
		DurationSeconds:     duration,
		HasDuration:         hasDuration,
		RevenueTimeSeconds:  b.RevenueTimeSeconds(),
		DeadheadTimeSeconds: b.DeadheadTimeSeconds(),
		Depot:               b.Depot,
	}
}
