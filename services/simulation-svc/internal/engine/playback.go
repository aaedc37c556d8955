package engine

import (
	"math"

	"mapfnet/pkg/domain"
)

// TimeStep is one discrete instant of a playback: every agent's vertex at
// that time, and a congestion reading derived from how many agents share a
// vertex.
type TimeStep struct {
	Step             int           `json:"step"`
	Time             float64       `json:"time"`
	OccupiedVertices map[int][]int `json:"occupiedVertices"` // vertex -> agent IDs present there
	ActiveAgents     int           `json:"activeAgents"`
	CongestionLevel  float64       `json:"congestionLevel"`
}

// PlaybackConfig tunes how RunPlayback steps through time.
type PlaybackConfig struct {
	StepDuration float64 `json:"stepDuration,omitempty"` // simulated time advanced per step; defaults to 1
}

// RunPlayback advances every agent in paths one StepDuration at a time from
// time 0 to the makespan, reporting each vertex's occupants and a
// congestion level — useful for visual or manual verification of a solve.
func RunPlayback(paths map[int]*domain.AgentPath, cfg PlaybackConfig) []TimeStep {
	if cfg.StepDuration <= 0 {
		cfg.StepDuration = 1
	}

	makespan := 0.0
	for _, p := range paths {
		if p == nil {
			continue
		}
		if a := p.ArrivalAt(); a > makespan {
			makespan = a
		}
	}

	numSteps := int(math.Ceil(makespan/cfg.StepDuration)) + 1
	steps := make([]TimeStep, 0, numSteps)

	for i := 0; i < numSteps; i++ {
		t := float64(i) * cfg.StepDuration
		steps = append(steps, stepAt(paths, i, t))
	}
	return steps
}

func stepAt(paths map[int]*domain.AgentPath, step int, t float64) TimeStep {
	occupied := make(map[int][]int)
	active := 0

	for agentID, p := range paths {
		if p == nil || len(p.Vertices) == 0 {
			continue
		}
		departure := p.Vertices[0].Time
		arrival := p.ArrivalAt()
		if t < departure || t > arrival {
			continue
		}
		active++

		vertex := vertexAt(p, t)
		occupied[vertex] = append(occupied[vertex], agentID)
	}

	congestion := 0.0
	if len(occupied) > 0 {
		maxOccupants := 0
		for _, agents := range occupied {
			if len(agents) > maxOccupants {
				maxOccupants = len(agents)
			}
		}
		congestion = float64(maxOccupants-1) / float64(len(occupied))
		if congestion < 0 {
			congestion = 0
		}
	}

	return TimeStep{
		Step:             step,
		Time:             t,
		OccupiedVertices: occupied,
		ActiveAgents:     active,
		CongestionLevel:  congestion,
	}
}

// vertexAt returns the vertex p's agent occupies at time t: the last
// TimedVertex whose Time does not exceed t.
func vertexAt(p *domain.AgentPath, t float64) int {
	vertex := p.Vertices[0].Vertex
	for _, tv := range p.Vertices {
		if tv.Time > t {
			break
		}
		vertex = tv.Vertex
	}
	return vertex
}
