package countdown

import "time"

// State classifies the current moment relative to the target.
type State string

const (
	StateBefore State = "BEFORE"
	StateLive   State = "LIVE"
	StatePost   State = "POST"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	// liveWindow is the final countdown minute.
	liveWindow = secondsPerMinute
)

// rank orders states along BEFORE -> LIVE -> POST. Unknown states rank lowest.
func (s State) rank() int {
	switch s {
	case StateBefore:
		return 1
	case StateLive:
		return 2
	case StatePost:
		return 3
	default:
		return 0
	}
}

// Remaining is the whole-second breakdown of the time left.
type Remaining struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`   // 0-23
	Minutes int64 `json:"minutes"` // 0-59
	Seconds int64 `json:"seconds"` // 0-59
}

// TotalSeconds folds the breakdown back into seconds.
func (r Remaining) TotalSeconds() int64 {
	return r.Days*secondsPerDay + r.Hours*secondsPerHour + r.Minutes*secondsPerMinute + r.Seconds
}

// Snapshot is one computed countdown result.
type Snapshot struct {
	Remaining
	State  State `json:"state"`
	IsOver bool  `json:"isOver"`
}

func postSnapshot() Snapshot {
	return Snapshot{State: StatePost, IsOver: true}
}

// Compute samples the countdown at now. It has no side effects.
func Compute(now, target time.Time) Snapshot {
	if !now.Before(target) {
		return postSnapshot()
	}

	// Duration division truncates toward zero.
	total := int64(target.Sub(now) / time.Second)

	state := StateBefore
	if total < liveWindow {
		state = StateLive
	}

	return Snapshot{
		Remaining: decompose(total),
		State:     state,
	}
}

func decompose(total int64) Remaining {
	return Remaining{
		Days:    total / secondsPerDay,
		Hours:   (total / secondsPerHour) % 24,
		Minutes: (total / secondsPerMinute) % 60,
		Seconds: total % 60,
	}
}
