package inference

import (
	"log/slog"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"rosterkit.transitops.org/internal/logging"
	"rosterkit.transitops.org/internal/models"
	"rosterkit.transitops.org/internal/reference"
	"rosterkit.transitops.org/internal/utils"
)

// Result aggregates everything one inference pass produced. Inferred
// movements and blocks that could not be processed are reported
// separately; the result is never collapsed into a single pass/fail.
type Result struct {
	PullOuts     []models.Deadhead
	PullIns      []models.Deadhead
	Interlinings []models.Deadhead

	// IncompleteBlocks lists blocks skipped for lack of a resolvable
	// depot, in ascending block-id order.
	IncompleteBlocks []string
}

// TotalCount returns the number of inferred deadheads of all kinds.
func (r Result) TotalCount() int {
	return len(r.PullOuts) + len(r.PullIns) + len(r.Interlinings)
}

// AllDeadheads returns pull-outs, pull-ins, and interlinings as one slice.
func (r Result) AllDeadheads() []models.Deadhead {
	all := make([]models.Deadhead, 0, r.TotalCount())
	all = append(all, r.PullOuts...)
	all = append(all, r.PullIns...)
	all = append(all, r.Interlinings...)
	return all
}

// Inferrer fills in missing deadhead movements block by block.
type Inferrer struct {
	config Config

	// stopCoords holds depot-code coordinates resolved through the
	// config's depot locations; stop ids resolve through the timetable.
	stopCoords map[string]reference.Coordinate
	timetable  *reference.Timetable
	logger     *slog.Logger
}

// New creates an inferrer without reference coordinates. Durations fall
// back to the fixed estimate and inferred deadheads carry no coordinates.
func New(config Config) *Inferrer {
	return &Inferrer{
		config:     config,
		stopCoords: make(map[string]reference.Coordinate),
	}
}

// NewWithTimetable creates an inferrer that resolves stop coordinates
// through the reference timetable. Depot codes registered in the config's
// depot locations resolve through their host stop.
func NewWithTimetable(config Config, tt *reference.Timetable) *Inferrer {
	inf := New(config)
	if tt == nil {
		return inf
	}
	for stopID, depotCode := range config.DepotLocations {
		if coord, ok := tt.StopCoord(stopID); ok {
			inf.stopCoords[depotCode] = coord
		}
	}
	inf.timetable = tt
	return inf
}

// WithLogger attaches a logger for per-run reporting.
func (inf *Inferrer) WithLogger(logger *slog.Logger) *Inferrer {
	inf.logger = logger
	return inf
}

// Infer reconstructs the missing deadheads for every block of the
// schedule. Blocks are processed independently and concurrently; the
// merged result is ordered by ascending block id, so output is
// deterministic regardless of scheduling. A block without a resolvable
// depot is reported incomplete and contributes nothing, without
// affecting any other block.
func (inf *Inferrer) Infer(schedule *models.Schedule) Result {
	blockIDs := schedule.BlockIDs()
	blocks := schedule.Blocks()

	p := pool.NewWithResults[blockResult]()
	for _, blockID := range blockIDs {
		block := blocks[blockID]
		p.Go(func() blockResult {
			return inf.inferBlock(block)
		})
	}
	perBlock := p.Wait()
	sort.Slice(perBlock, func(i, j int) bool {
		return perBlock[i].blockID < perBlock[j].blockID
	})

	var result Result
	for _, br := range perBlock {
		if br.incomplete {
			result.IncompleteBlocks = append(result.IncompleteBlocks, br.blockID)
			continue
		}
		result.PullOuts = append(result.PullOuts, br.pullOuts...)
		result.PullIns = append(result.PullIns, br.pullIns...)
		result.Interlinings = append(result.Interlinings, br.interlinings...)
	}

	if inf.logger != nil {
		logging.LogOperation(inf.logger, "deadhead_inference_completed",
			slog.Int("blocks", len(blockIDs)),
			slog.Int("pull_outs", len(result.PullOuts)),
			slog.Int("pull_ins", len(result.PullIns)),
			slog.Int("interlinings", len(result.Interlinings)),
			slog.Int("incomplete_blocks", len(result.IncompleteBlocks)))
	}
	return result
}

type blockResult struct {
	blockID      string
	pullOuts     []models.Deadhead
	pullIns      []models.Deadhead
	interlinings []models.Deadhead
	incomplete   bool
}

func (inf *Inferrer) inferBlock(block *models.Block) blockResult {
	br := blockResult{blockID: block.BlockID}

	depot := block.Depot
	if depot == "" {
		depot = inf.config.DefaultDepot
	}
	if depot == "" {
		br.incomplete = true
		return br
	}

	if first := firstRevenue(block); first != nil && first.StartPlace != "" && block.PullOut() == nil {
		pullOut := models.NewPullOut(depot, first.StartPlace).
			WithBlock(block.BlockID).
			Inferred()
		if coord, ok := inf.coord(first.StartPlace); ok {
			pullOut.ToLat = &coord.Lat
			pullOut.ToLon = &coord.Lon
		}
		if tripStart, ok := first.StartSeconds(); ok {
			duration := inf.estimateDuration(depot, first.StartPlace)
			start := tripStart - duration
			if start < 0 {
				start = 0
			}
			pullOut = pullOut.WithTimes(start, tripStart)
		}
		br.pullOuts = append(br.pullOuts, pullOut)
	}

	if last := lastRevenue(block); last != nil && last.EndPlace != "" && block.PullIn() == nil {
		pullIn := models.NewPullIn(last.EndPlace, depot).
			WithBlock(block.BlockID).
			Inferred()
		if coord, ok := inf.coord(last.EndPlace); ok {
			pullIn.FromLat = &coord.Lat
			pullIn.FromLon = &coord.Lon
		}
		if tripEnd, ok := last.EndSeconds(); ok {
			duration := inf.estimateDuration(last.EndPlace, depot)
			pullIn = pullIn.WithTimes(tripEnd, tripEnd+duration)
		}
		br.pullIns = append(br.pullIns, pullIn)
	}

	if inf.config.InferInterlining {
		br.interlinings = inf.inferInterlinings(block)
	}
	return br
}

func (inf *Inferrer) inferInterlinings(block *models.Block) []models.Deadhead {
	trips := block.RevenueTrips()
	var interlinings []models.Deadhead

	for i := 0; i+1 < len(trips); i++ {
		prev, next := trips[i], trips[i+1]
		if prev.EndPlace == "" || next.StartPlace == "" || prev.EndPlace == next.StartPlace {
			continue
		}

		// A discontinuity needs a deadhead when the gap exceeds the
		// configured minimum, or when either boundary time is unknown.
		prevEnd, okEnd := prev.EndSeconds()
		nextStart, okStart := next.StartSeconds()
		needed := true
		if okEnd && okStart {
			needed = nextStart > prevEnd+inf.config.MinGapSeconds
		}
		if !needed {
			continue
		}

		interlining := models.NewInterlining(prev.EndPlace, next.StartPlace).
			WithBlock(block.BlockID).
			WithTrips(prev.TripID, next.TripID).
			Inferred()
		if coord, ok := inf.coord(prev.EndPlace); ok {
			interlining.FromLat = &coord.Lat
			interlining.FromLon = &coord.Lon
		}
		if coord, ok := inf.coord(next.StartPlace); ok {
			interlining.ToLat = &coord.Lat
			interlining.ToLon = &coord.Lon
		}
		if okEnd && okStart {
			interlining = interlining.WithTimes(prevEnd, nextStart)
		}
		interlinings = append(interlinings, interlining)
	}
	return interlinings
}

// estimateDuration converts the crow-flies distance between two places
// into seconds at the configured average speed, falling back to a fixed
// duration when either coordinate is unknown.
func (inf *Inferrer) estimateDuration(from, to string) int {
	fromCoord, okFrom := inf.coord(from)
	toCoord, okTo := inf.coord(to)
	if !okFrom || !okTo || inf.config.AverageSpeedMps <= 0 {
		return FallbackDurationSeconds
	}
	distance := utils.HaversineMeters(fromCoord.Lat, fromCoord.Lon, toCoord.Lat, toCoord.Lon)
	return int(distance / inf.config.AverageSpeedMps)
}

func (inf *Inferrer) coord(place string) (reference.Coordinate, bool) {
	if c, ok := inf.stopCoords[place]; ok {
		return c, true
	}
	if inf.timetable != nil {
		return inf.timetable.StopCoord(place)
	}
	return reference.Coordinate{}, false
}

func firstRevenue(block *models.Block) *models.ScheduleRow {
	for i := range block.Rows {
		if block.Rows[i].IsRevenue() {
			return &block.Rows[i]
		}
	}
	return nil
}

func lastRevenue(block *models.Block) *models.ScheduleRow {
	for i := len(block.Rows) - 1; i >= 0; i-- {
		if block.Rows[i].IsRevenue() {
			return &block.Rows[i]
		}
	}
	return nil
}
