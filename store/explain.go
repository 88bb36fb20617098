package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ExplainDoc is the stable shape returned by Explain, matching spec.md §6's
// JSON export exactly. Both the text and JSON renderings are built from
// this same struct, derived purely from persisted numbers — no
// recomputation against the live catalog.
type ExplainDoc struct {
	Route   explainRoute    `json:"route"`
	Options optionsJSON     `json:"options"`
	Detours []explainDetour `json:"detours"`
	Note    explainNote     `json:"note"`
}

type explainEndpoint struct {
	FID  int64  `json:"fid"`
	Name string `json:"name"`
}

type explainRoute struct {
	ID           int64           `json:"id"`
	From         explainEndpoint `json:"from"`
	To           explainEndpoint `json:"to"`
	Status       string          `json:"status"`
	LengthParsec float64         `json:"length_parsec"`
	Iterations   int             `json:"iterations"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type explainObstacle struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

type explainClosest struct {
	T          float64 `json:"t"`
	QX         float64 `json:"qx"`
	QY         float64 `json:"qy"`
	Dist       float64 `json:"dist"`
	Required   float64 `json:"required"`
	ViolatedBy float64 `json:"violated_by"`
}

type explainWaypoint struct {
	X                float64    `json:"x"`
	Y                float64    `json:"y"`
	ComputedWaypoint nullableID `json:"computed_waypoint_id"`
}

type explainScore struct {
	Base      float64 `json:"base"`
	Turn      float64 `json:"turn"`
	Back      float64 `json:"back"`
	Proximity float64 `json:"proximity"`
	Total     float64 `json:"total"`
}

type explainDominant struct {
	Component string  `json:"component"`
	Value     float64 `json:"value"`
}

type explainDetour struct {
	Idx             int             `json:"idx"`
	Iteration       int             `json:"iteration"`
	SegmentIndex    int             `json:"segment_index"`
	Obstacle        explainObstacle `json:"obstacle"`
	Closest         explainClosest  `json:"closest"`
	OffsetUsed      float64         `json:"offset_used"`
	Waypoint        explainWaypoint `json:"waypoint"`
	Score           explainScore    `json:"score"`
	TriesUsed       int             `json:"tries_used"`
	TriesExhausted  bool            `json:"tries_exhausted"`
	DominantPenalty explainDominant `json:"dominant_penalty"`
	DecisionDrivers []string        `json:"decision_drivers"`
}

type explainNote struct {
	Text  string `json:"text"`
	Units string `json:"units"`
}

// nullableID renders a nullable id as either a JSON number or null,
// without pulling database/sql's NullInt64 JSON quirks into the shape.
type nullableID struct {
	Valid bool
	Int64 int64
}

func (n nullableID) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Int64)
}

// Explain loads routeID and builds its explain projection in one step.
func (d *DB) Explain(ctx context.Context, routeID int64) (ExplainDoc, error) {
	p, err := d.LoadRoute(ctx, routeID)
	if err != nil {
		return ExplainDoc{}, err
	}
	return BuildExplain(p)
}

// BuildExplain derives the explain projection from a loaded route and its
// persisted options.
func BuildExplain(p PersistedRoute) (ExplainDoc, error) {
	var opts optionsJSON
	if err := json.Unmarshal([]byte(p.Header.OptionsJSON), &opts); err != nil {
		return ExplainDoc{}, fmt.Errorf("store: explain: unmarshal options_json: %w", err)
	}

	doc := ExplainDoc{
		Route: explainRoute{
			ID:           p.Header.ID,
			From:         explainEndpoint{FID: p.Header.FromFID, Name: p.Header.FromName},
			To:           explainEndpoint{FID: p.Header.ToFID, Name: p.Header.ToName},
			Status:       p.Header.Status,
			LengthParsec: p.Header.Length,
			Iterations:   p.Header.Iterations,
			CreatedAt:    p.Header.CreatedAt,
			UpdatedAt:    p.Header.UpdatedAt,
		},
		Options: opts,
		Note: explainNote{
			Text:  "reflects compute-time state; not recomputed against the live catalog",
			Units: "parsec",
		},
	}

	for _, d := range p.Detours {
		doc.Detours = append(doc.Detours, buildExplainDetour(d, opts))
	}

	return doc, nil
}

func buildExplainDetour(d RouteDetourRow, opts optionsJSON) explainDetour {
	required := d.ObstacleRadius + opts.Clearance
	violatedBy := required - d.ClosestDist

	dominant := dominantPenalty(d.ScoreTurn, d.ScoreBack, d.ScoreProximity)

	var wpID nullableID
	if d.WaypointID.Valid {
		wpID = nullableID{Valid: true, Int64: d.WaypointID.Int64}
	}

	triesUsed := 0
	if d.TriesUsed.Valid {
		triesUsed = int(d.TriesUsed.Int64)
	}

	return explainDetour{
		Idx:          d.Idx,
		Iteration:    d.Iteration,
		SegmentIndex: d.SegmentIndex,
		Obstacle: explainObstacle{
			ID: d.ObstacleID, Name: d.ObstacleName, X: d.ObstacleX, Y: d.ObstacleY, Radius: d.ObstacleRadius,
		},
		Closest: explainClosest{
			T: d.ClosestT, QX: d.ClosestQX, QY: d.ClosestQY, Dist: d.ClosestDist,
			Required: required, ViolatedBy: violatedBy,
		},
		OffsetUsed: d.OffsetUsed,
		Waypoint:   explainWaypoint{X: d.WPX, Y: d.WPY, ComputedWaypoint: wpID},
		Score: explainScore{
			Base: d.ScoreBase, Turn: d.ScoreTurn, Back: d.ScoreBack, Proximity: d.ScoreProximity, Total: d.ScoreTotal,
		},
		TriesUsed:       triesUsed,
		TriesExhausted:  d.TriesExhausted,
		DominantPenalty: dominant,
		DecisionDrivers: decisionDrivers(d, opts, required, violatedBy, dominant),
	}
}

func dominantPenalty(turn, back, proximity float64) explainDominant {
	component, value := "turn", turn
	if back > value {
		component, value = "back", back
	}
	if proximity > value {
		component, value = "proximity", proximity
	}
	return explainDominant{Component: component, Value: value}
}

func decisionDrivers(d RouteDetourRow, opts optionsJSON, required, violatedBy float64, dominant explainDominant) []string {
	var drivers []string

	if violatedBy > 0 {
		drivers = append(drivers, fmt.Sprintf("constraint: safety breach %.4f", violatedBy))
	}

	if d.TriesExhausted {
		theoreticalMax := d.ObstacleRadius * math.Pow(opts.OffsetGrowth, float64(maxTries(d)-1))
		drivers = append(drivers, fmt.Sprintf(
			"limit: offset near theoretical max %.4f, likely limited by max_offset_tries", theoreticalMax))
	}

	drivers = append(drivers, fmt.Sprintf("cost: dominant penalty component %s", dominant.Component))

	penaltySum := d.ScoreTurn + d.ScoreBack + d.ScoreProximity
	if d.ScoreBase >= penaltySum {
		drivers = append(drivers, "cost: route length dominates")
	} else {
		drivers = append(drivers, "cost: penalties dominant")
	}

	return drivers
}

func maxTries(d RouteDetourRow) int {
	if d.TriesUsed.Valid {
		return int(d.TriesUsed.Int64)
	}
	return 1
}

// JSON renders the explain document as indented JSON, matching the shape
// in spec.md §6 exactly.
func (doc ExplainDoc) JSON() ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Text renders a human-readable form of the explain document.
func (doc ExplainDoc) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Route #%d: %s -> %s\n", doc.Route.ID, doc.Route.From.Name, doc.Route.To.Name)
	fmt.Fprintf(&b, "  status=%s length=%.4f parsec iterations=%d\n", doc.Route.Status, doc.Route.LengthParsec, doc.Route.Iterations)

	if len(doc.Detours) == 0 {
		b.WriteString("  detours: none\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  detours (%d):\n", len(doc.Detours))
	for _, d := range doc.Detours {
		fmt.Fprintf(&b, "    #%d obstacle=%q (id=%d) seg=%d offset=%.4f\n",
			d.Idx, d.Obstacle.Name, d.Obstacle.ID, d.SegmentIndex, d.OffsetUsed)
		fmt.Fprintf(&b, "      score: total=%.4f base=%.4f turn=%.4f back=%.4f proximity=%.4f\n",
			d.Score.Total, d.Score.Base, d.Score.Turn, d.Score.Back, d.Score.Proximity)
		for _, driver := range d.DecisionDrivers {
			fmt.Fprintf(&b, "      - %s\n", driver)
		}
	}

	return b.String()
}
