package mandel

// Iterate runs z = z^2 + c from z = 0 for c = (x0, y0) and returns the index
// of the step at which |z| exceeded 2, or maxIt if it never did.
func Iterate(x0, y0 float64, maxIt uint32) uint32 {
	var zre, zim float64 = 0, 0
	var it uint32 = 0
	for ; it < maxIt; it += 1 {
		copyZre := zre
		zre = zre*zre - zim*zim + x0
		zim = copyZre*zim*2 + y0
		if zre*zre+zim*zim > 4 {
			break
		}
	}
	return it
}
