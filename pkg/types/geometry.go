package types

// pixel space, origin top-left, Y down
type Pointi struct {
	X int
	Y int
}

// number (complex plane) space, Y up
type Pointf64 struct {
	X float64
	Y float64
}

func (p Pointf64) Add(q Pointf64) Pointf64 {
	return Pointf64{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Pointf64) Sub(q Pointf64) Pointf64 {
	return Pointf64{X: p.X - q.X, Y: p.Y - q.Y}
}

type Rectf64 struct {
	X float64
	Y float64
	W float64
	H float64
}

// Contains reports whether p lies in the half-open rect [X, X+W) x [Y, Y+H).
func (r Rectf64) Contains(p Pointf64) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}
