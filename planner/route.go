package planner

import (
	"go.uber.org/zap"

	"github.com/umpire274/sw-galaxy-map/collision"
	"github.com/umpire274/sw-galaxy-map/detour"
	"github.com/umpire274/sw-galaxy-map/geometry"
	"github.com/umpire274/sw-galaxy-map/scoring"
)

// DetourDecision is a fully self-describing record of one waypoint
// insertion: everything needed to explain the decision later without
// recomputing against the live catalog.
type DetourDecision struct {
	Iteration    int
	SegmentIndex int

	ObstacleID     int64
	ObstacleName   string
	ObstacleCenter geometry.Point
	ObstacleRadius float64

	ClosestT    float64
	ClosestQ    geometry.Point
	ClosestDist float64

	OffsetUsed float64
	Waypoint   geometry.Point

	Score scoring.Score

	// TriesUsed is in [1, MaxOffsetTries]; TriesExhausted is true iff
	// TriesUsed == MaxOffsetTries.
	TriesUsed      int
	TriesExhausted bool
}

// Route is the in-memory result of a successful compute: a collision-free
// polyline plus the chronological log of detour decisions that produced
// it.
type Route struct {
	Waypoints  []geometry.Point
	Length     float64
	Iterations int
	Detours    []DetourDecision
}

// ComputeRoute runs the iterative detour-insertion search between start and
// end, treating obstacles as the only no-fly zones. It never fails on
// coincident endpoints: start == end yields a degenerate single-point,
// zero-length route regardless of whether the caller considers start and
// end "the same place" at a higher level — that identity check belongs to
// Compute, not here.
func ComputeRoute(start, end geometry.Point, obstacles []collision.Obstacle, opts RouteOptions, log *zap.SugaredLogger) (Route, error) {
	log = nopSafe(log)

	if start == end {
		return Route{Waypoints: []geometry.Point{start}}, nil
	}

	if err := opts.Validate(); err != nil {
		return Route{}, newError(ErrKindInvalidOptions, err)
	}

	waypoints := []geometry.Point{start, end}
	var decisions []DetourDecision

	for iteration := 0; iteration < opts.MaxIters; iteration++ {
		segIdx, hit, found := firstCollidingSegment(waypoints, obstacles)
		if !found {
			return Route{
				Waypoints:  waypoints,
				Length:     polylineLength(waypoints),
				Iterations: iteration,
				Detours:    decisions,
			}, nil
		}

		a := waypoints[segIdx]
		b := waypoints[segIdx+1]

		decision, ok := searchDetour(iteration, segIdx, a, b, hit, obstacles, opts)
		if !ok {
			log.Debugw("no valid detour found",
				"obstacle_id", hit.Obstacle.ID,
				"obstacle_name", hit.Obstacle.Name,
				"center", hit.Obstacle.Center,
				"radius", hit.Obstacle.Radius,
				"closest_dist", hit.Closest.Dist,
				"segment_index", segIdx,
			)
			return Route{}, newNoDetourError(hit.Obstacle.ID, segIdx, ErrNoDetour)
		}

		decisions = append(decisions, decision)

		next := make([]geometry.Point, 0, len(waypoints)+1)
		next = append(next, waypoints[:segIdx+1]...)
		next = append(next, decision.Waypoint)
		next = append(next, waypoints[segIdx+1:]...)
		waypoints = next
	}

	return Route{}, newError(ErrKindMaxItersExceeded, ErrMaxItersExceeded)
}

// firstCollidingSegment scans the polyline in order and returns the first
// segment whose interior collides with an obstacle.
func firstCollidingSegment(waypoints []geometry.Point, obstacles []collision.Obstacle) (int, collision.Hit, bool) {
	for i := 0; i < len(waypoints)-1; i++ {
		if hit, ok := collision.FirstCollision(waypoints[i], waypoints[i+1], obstacles); ok {
			return i, hit, true
		}
	}
	return 0, collision.Hit{}, false
}

// searchDetour expands the offset up to opts.MaxOffsetTries times, scoring
// every candidate at each offset and keeping the single best one found
// across the whole search. The search stops growing the offset as soon as
// any valid candidate exists at the current offset.
func searchDetour(iteration, segIdx int, a, b geometry.Point, hit collision.Hit, obstacles []collision.Obstacle, opts RouteOptions) (DetourDecision, bool) {
	baseOffset := hit.Obstacle.Radius + opts.Clearance
	offset := baseOffset
	weights := opts.scoringWeights()
	excludeID := hit.Obstacle.ID

	var (
		bestSet   bool
		bestScore scoring.Score
		bestWP    geometry.Point
		bestTry   int
	)

	for tryIdx := 0; tryIdx < opts.MaxOffsetTries; tryIdx++ {
		for _, w := range detour.Candidates(a, b, hit, offset) {
			score, ok := scoring.Evaluate(a, w, b, obstacles, weights, &excludeID)
			if !ok {
				continue
			}

			if !bestSet || scoring.Better(score, bestScore) {
				bestSet = true
				bestScore = score
				bestWP = w
				bestTry = tryIdx
			}
		}

		if bestSet {
			break
		}

		offset *= opts.OffsetGrowth
	}

	if !bestSet {
		return DetourDecision{}, false
	}

	triesUsed := bestTry + 1

	return DetourDecision{
		Iteration:    iteration,
		SegmentIndex: segIdx,

		ObstacleID:     hit.Obstacle.ID,
		ObstacleName:   hit.Obstacle.Name,
		ObstacleCenter: hit.Obstacle.Center,
		ObstacleRadius: hit.Obstacle.Radius,

		ClosestT:    hit.Closest.T,
		ClosestQ:    hit.Closest.Q,
		ClosestDist: hit.Closest.Dist,

		OffsetUsed: offsetAtTry(baseOffset, opts.OffsetGrowth, bestTry),
		Waypoint:   bestWP,

		Score: bestScore,

		TriesUsed:      triesUsed,
		TriesExhausted: triesUsed == opts.MaxOffsetTries,
	}, true
}

func offsetAtTry(base, growth float64, tryIdx int) float64 {
	offset := base
	for i := 0; i < tryIdx; i++ {
		offset *= growth
	}
	return offset
}

func polylineLength(waypoints []geometry.Point) float64 {
	var total float64
	for i := 0; i+1 < len(waypoints); i++ {
		total += geometry.Dist(waypoints[i], waypoints[i+1])
	}
	return total
}

func nopSafe(log *zap.SugaredLogger) *zap.SugaredLogger {
	if log != nil {
		return log
	}
	return zap.NewNop().Sugar()
}
