// Package campath plays back a camera rig along Catmull-Rom paths.
//
// A Timeline is a looping sequence of segments. Evaluating it at a global time
// yields the camera position and the point it should look at. Evaluation is
// a pure function of the timeline and the time, so seeking backwards or
// sampling out of order is always valid.
package campath

import "github.com/Faultbox/meshview/pkg/math"

// CatmullRom evaluates the uniform Catmull-Rom span between p1 and p2 at t.
// t=0 yields p1 and t=1 yields p2; values outside [0,1] extrapolate along the
// same cubic.
func CatmullRom(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	t2 := t * t
	t3 := t2 * t

	a := p1.Scale(2)
	b := p2.Sub(p0).Scale(t)
	c := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(t2)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(t3)

	return a.Add(b).Add(c).Add(d).Scale(0.5)
}
