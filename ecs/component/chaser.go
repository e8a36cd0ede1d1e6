package component

// Chaser moves horizontally toward the player while it is within
// DetectionRange. Script optionally names a tengo behaviour script.
type Chaser struct {
	Speed          float64
	DetectionRange float64
	Script         string

	InRange bool
	DirX    float64
}

var ChaserComponent = NewComponent[Chaser]()
