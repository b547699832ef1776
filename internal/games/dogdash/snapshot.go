package dogdash

import "github.com/vovakirdan/dogdash/internal/core"

// cameraLead is how many blocks the camera trails the dog's left edge.
const cameraLead = 5

// Snapshot is a read-only view of a session for renderers.
type Snapshot struct {
	Course    string       `json:"course"`
	State     State        `json:"state"`
	Attempt   int          `json:"attempt"`
	Score     int          `json:"score"`
	Best      int          `json:"best"`
	NewBest   bool         `json:"new_best,omitempty"`
	Cause     Cause        `json:"cause,omitempty"`
	CanRetry  bool         `json:"can_retry,omitempty"`
	Actor     Actor        `json:"actor"`
	Pose      Presentation `json:"pose"`
	Camera    float64      `json:"camera"`
	GroundY   float64      `json:"ground_y"`
	BlockSize float64      `json:"block_size"`
	Obstacles []Obstacle   `json:"obstacles"`
	Pits      []int        `json:"pits"`
	FinishX   float64      `json:"finish_x,omitempty"`
	Events    []core.Event `json:"events,omitempty"`
}

// Camera returns the left edge of the view in world pixels.
func (s *Session) Camera() float64 {
	return max(0, s.actor.X-cameraLead*s.cfg.World.BlockSize)
}

// Snapshot captures the on-screen part of the session. events are the
// events of the tick that produced this state. The returned slices are
// copies and safe to retain.
func (s *Session) Snapshot(events []core.Event) Snapshot {
	bs := s.cfg.World.BlockSize
	cam := s.Camera()
	right := cam + s.cfg.World.Width

	visible := s.world.Between(cam-bs, right)
	pits := s.world.PitsBetween(core.FloorDiv(cam, bs), core.FloorDiv(right, bs))

	snap := Snapshot{
		Course:    s.courseName(),
		State:     s.state,
		Attempt:   s.attempt,
		Score:     s.score,
		Best:      s.best,
		NewBest:   s.newBest,
		Cause:     s.cause,
		CanRetry:  (s.state == StateDead || s.state == StateComplete) && s.CanRetry(),
		Actor:     s.actor,
		Pose:      s.pose,
		Camera:    cam,
		GroundY:   s.cfg.World.GroundY(),
		BlockSize: bs,
		Obstacles: append([]Obstacle(nil), visible...),
		Pits:      append([]int(nil), pits...),
		FinishX:   s.finishX(),
		Events:    append([]core.Event(nil), events...),
	}
	if snap.Obstacles == nil {
		snap.Obstacles = []Obstacle{}
	}
	if snap.Pits == nil {
		snap.Pits = []int{}
	}
	return snap
}
