package world

// components.go holds the component value types a World's tables can store:
// transform, visibility, bounds, free-form properties, and tagged-variant
// shape/geometry descriptors. GPU command collection, triangulation, and
// geodetic math are out of scope here.

// Vec3 is a plain 3-component vector carrying the fields world components
// need (no geodetic operations are implemented here).
type Vec3 struct {
	X, Y, Z float64
}

// Transform holds an entity's position.
type Transform struct {
	Position Vec3
}

// IdentityTransform returns a Transform at the origin.
func IdentityTransform() Transform { return Transform{} }

// Visibility toggles whether an entity participates in rendering/selection
// by convention; this package does not interpret it itself.
type Visibility struct {
	Visible bool
}

// VisibleComponent and HiddenComponent construct a Visibility in either
// state.
func VisibleComponent() Visibility { return Visibility{Visible: true} }
func HiddenComponent() Visibility  { return Visibility{Visible: false} }

// Bounds is an axis-aligned bounding box in world space.
type Bounds struct {
	Min, Max Vec3
}

// Contains reports whether p lies within b, inclusive of the boundary.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether b and other overlap, touching boundaries
// counted as intersecting.
func (b Bounds) Intersects(other Bounds) bool {
	return !(b.Max.X < other.Min.X || b.Min.X > other.Max.X ||
		b.Max.Y < other.Min.Y || b.Min.Y > other.Max.Y ||
		b.Max.Z < other.Min.Z || b.Min.Z > other.Max.Z)
}

// Properties is an opaque string/string bag attached to an entity.
type Properties struct {
	Pairs map[string]string
}

// Shape3DKind tags which variant a Shape3D value holds.
type Shape3DKind uint8

const (
	ShapeCube Shape3DKind = iota
	ShapeSphere
	ShapeEllipsoid
)

// Shape3D is a tagged-variant shape descriptor. Only the field matching
// Kind is meaningful.
type Shape3D struct {
	Kind   Shape3DKind
	Size   float64 // ShapeCube
	Radius float64 // ShapeSphere
	Radii  Vec3    // ShapeEllipsoid
}

func CubeShape(size float64) Shape3D     { return Shape3D{Kind: ShapeCube, Size: size} }
func SphereShape(radius float64) Shape3D { return Shape3D{Kind: ShapeSphere, Radius: radius} }
func EllipsoidShape(radii Vec3) Shape3D  { return Shape3D{Kind: ShapeEllipsoid, Radii: radii} }

// VectorGeometryKind tags which variant a VectorGeometry value holds.
type VectorGeometryKind uint8

const (
	GeometryPoint VectorGeometryKind = iota
	GeometryLine
	GeometryArea
)

// VectorGeometry is a tagged-variant vector geometry descriptor. Only the
// field(s) matching Kind are meaningful.
type VectorGeometry struct {
	Kind     VectorGeometryKind
	Position Vec3     // GeometryPoint
	Vertices []Vec3   // GeometryLine
	Rings    [][]Vec3 // GeometryArea
}

func PointGeometry(position Vec3) VectorGeometry {
	return VectorGeometry{Kind: GeometryPoint, Position: position}
}
func LineGeometry(vertices []Vec3) VectorGeometry {
	return VectorGeometry{Kind: GeometryLine, Vertices: vertices}
}
func AreaGeometry(rings [][]Vec3) VectorGeometry {
	return VectorGeometry{Kind: GeometryArea, Rings: rings}
}
