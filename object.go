package pixeloid

import "github.com/google/uuid"

// Kind identifies the shape kind of a geometric object.
type Kind uint8

// Shape kind constants.
const (
	// KindPoint is a single grid point occupying one pixeloid cell.
	KindPoint Kind = iota

	// KindLine is a line segment between two endpoints.
	KindLine

	// KindRect is an axis-aligned rectangle.
	KindRect

	// KindCircle is a circle defined by center and radius.
	KindCircle

	// KindDiamond is a rhombus defined by center and half-extents.
	KindDiamond
)

// String returns a human-readable name for the shape kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindDiamond:
		return "diamond"
	default:
		return "unknown"
	}
}

// Shape is the closed set of geometric primitives the editor places on
// the plane. Each implementation carries its shape-specific parameters;
// the Kind tag allows exhaustive dispatch in ComputeMetadata and the
// version hash.
type Shape interface {
	Kind() Kind
}

// PointShape is a single point. It occupies the unit pixeloid cell
// containing its coordinates.
type PointShape struct {
	X, Y float64
}

// Kind returns KindPoint.
func (PointShape) Kind() Kind { return KindPoint }

// LineShape is a line segment between two endpoints.
type LineShape struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Kind returns KindLine.
func (LineShape) Kind() Kind { return KindLine }

// RectShape is an axis-aligned rectangle anchored at its top-left corner.
type RectShape struct {
	X, Y          float64
	Width, Height float64
}

// Kind returns KindRect.
func (RectShape) Kind() Kind { return KindRect }

// CircleShape is a circle defined by center and radius.
type CircleShape struct {
	CX, CY float64
	R      float64
}

// Kind returns KindCircle.
func (CircleShape) Kind() Kind { return KindCircle }

// DiamondShape is a rhombus defined by center and half-extents. Its four
// vertices are (CX±RX, CY) and (CX, CY±RY), so its bounding box is
// grid-aligned whenever the center and half-extents are.
type DiamondShape struct {
	CX, CY float64
	RX, RY float64
}

// Kind returns KindDiamond.
func (DiamondShape) Kind() Kind { return KindDiamond }

// Style holds the visual attributes of an object. Every field
// participates in the texture version hash: changing any of them
// invalidates the object's cached texture.
type Style struct {
	// StrokeWidth is the outline thickness in pixeloid units.
	StrokeWidth float64

	// Stroke is the outline color.
	Stroke RGBA

	// Fill is the interior color.
	Fill RGBA
}

// Object is a geometric primitive placed on the plane. Objects are
// owned by a document-level store keyed by ID, mutated in place on
// edit, and removed on deletion.
type Object struct {
	// ID is the stable identity of the object. It never changes across
	// mutations; caches and display nodes key off it.
	ID uuid.UUID

	// Shape holds the kind tag and shape-specific parameters.
	Shape Shape

	// Style holds the visual attributes.
	Style Style
}

// NewObject creates an object with a fresh identity.
func NewObject(shape Shape, style Style) *Object {
	return &Object{
		ID:    uuid.New(),
		Shape: shape,
		Style: style,
	}
}
