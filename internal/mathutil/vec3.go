package mathutil

// Vec3 is a 3-component vector (value type, stack-allocated). Points in
// homogeneous form are Vec3{x, y, 1}.
type Vec3 [3]float64
