package domain

// Status is the position of a point relative to a polygon.
type Status string

const (
	StatusInside  Status = "INSIDE"
	StatusOnEdge  Status = "ON_EDGE"
	StatusOutside Status = "OUTSIDE"
)

// Result messages.
const (
	MsgTooFewVertices = "The polygon must have at least 3 vertices."
	MsgOutsideWedge   = "The point is outside the convex polygon."
	MsgOutside        = "The point is outside the polygon."
	MsgOnEdge         = "The point lies on the edge of the polygon."
	MsgInside         = "The point is inside the convex polygon."
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusInside, StatusOnEdge, StatusOutside:
		return true
	}
	return false
}

// Label is the display form used by badges and rendered output.
func (s Status) Label() string {
	if s == StatusOnEdge {
		return "ON EDGE"
	}
	return string(s)
}

// Classification is the outcome of locating a point.
type Classification struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}
