package megaverse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Kind identifies what occupies a cell of the map.
type Kind int

const (
	// KindSpace is an empty cell.
	KindSpace Kind = iota
	// KindPolyanet is a polyanet, which carries no attribute.
	KindPolyanet
	// KindSoloon is a soloon, which carries a Color.
	KindSoloon
	// KindCometh is a cometh, which carries a Direction.
	KindCometh
)

// String returns the goal-map spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindSpace:
		return "SPACE"
	case KindPolyanet:
		return "POLYANET"
	case KindSoloon:
		return "SOLOON"
	case KindCometh:
		return "COMETH"
	default:
		return "UNKNOWN"
	}
}

// Color is the attribute of a soloon.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorWhite  Color = "white"
)

// Direction is the attribute of a cometh.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

var colors = map[string]Color{
	"red":    ColorRed,
	"blue":   ColorBlue,
	"purple": ColorPurple,
	"white":  ColorWhite,
}

var directions = map[string]Direction{
	"up":    DirectionUp,
	"down":  DirectionDown,
	"left":  DirectionLeft,
	"right": DirectionRight,
}

// ParseColor looks up a soloon color, ignoring case.
func ParseColor(s string) (Color, error) {
	if c, ok := colors[strings.ToLower(s)]; ok {
		return c, nil
	}
	return "", &InvalidAttributeError{Attribute: "color", Value: s, Allowed: keys(colors)}
}

// ParseDirection looks up a cometh direction, ignoring case.
func ParseDirection(s string) (Direction, error) {
	if d, ok := directions[strings.ToLower(s)]; ok {
		return d, nil
	}
	return "", &InvalidAttributeError{Attribute: "direction", Value: s, Allowed: keys(directions)}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

const (
	tokenSpace    = "SPACE"
	tokenPolyanet = "POLYANET"
	suffixSoloon  = "_SOLOON"
	suffixCometh  = "_COMETH"
)

// Cell is the value of one map position. Only the attribute matching Kind
// is set; cells compare equal with ==.
type Cell struct {
	Kind      Kind
	Color     Color
	Direction Direction
}

// Space returns an empty cell.
func Space() Cell { return Cell{Kind: KindSpace} }

// Polyanet returns a polyanet cell.
func Polyanet() Cell { return Cell{Kind: KindPolyanet} }

// Soloon returns a soloon cell of the given color.
func Soloon(c Color) Cell { return Cell{Kind: KindSoloon, Color: c} }

// Cometh returns a cometh cell facing the given direction.
func Cometh(d Direction) Cell { return Cell{Kind: KindCometh, Direction: d} }

// ParseCell parses a goal-map token such as "POLYANET", "RED_SOLOON" or
// "UP_COMETH". Unrecognised shapes wrap ErrUnknownToken; a recognised
// shape with a bad attribute returns an *InvalidAttributeError.
func ParseCell(token string) (Cell, error) {
	t := strings.ToUpper(strings.TrimSpace(token))
	switch {
	case t == tokenSpace:
		return Space(), nil
	case t == tokenPolyanet:
		return Polyanet(), nil
	case strings.HasSuffix(t, suffixSoloon):
		c, err := ParseColor(strings.TrimSuffix(t, suffixSoloon))
		if err != nil {
			return Cell{}, err
		}
		return Soloon(c), nil
	case strings.HasSuffix(t, suffixCometh):
		d, err := ParseDirection(strings.TrimSuffix(t, suffixCometh))
		if err != nil {
			return Cell{}, err
		}
		return Cometh(d), nil
	default:
		return Cell{}, fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
}

// Token renders the cell in goal-map encoding.
func (c Cell) Token() string {
	switch c.Kind {
	case KindSoloon:
		return strings.ToUpper(string(c.Color)) + suffixSoloon
	case KindCometh:
		return strings.ToUpper(string(c.Direction)) + suffixCometh
	default:
		return c.Kind.String()
	}
}

func (c Cell) String() string {
	switch c.Kind {
	case KindSoloon:
		return fmt.Sprintf("soloon(%s)", c.Color)
	case KindCometh:
		return fmt.Sprintf("cometh(%s)", c.Direction)
	default:
		return strings.ToLower(c.Kind.String())
	}
}

// Object type codes used by the live map payload.
const (
	objectTypePolyanet = 0
	objectTypeSoloon   = 1
	objectTypeCometh   = 2
)

type mapObject struct {
	Type      *int   `json:"type"`
	Color     string `json:"color,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// UnmarshalJSON decodes a current-map entry. null means space; a string
// is parsed as a goal token; an object carries a numeric type plus the
// matching attribute.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Space()
		return nil
	}

	if data[0] == '"' {
		var token string
		if err := json.Unmarshal(data, &token); err != nil {
			return err
		}
		parsed, err := ParseCell(token)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	var obj mapObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding map cell: %w", err)
	}
	if obj.Type == nil {
		return fmt.Errorf("decoding map cell %s: missing type", data)
	}

	switch *obj.Type {
	case objectTypePolyanet:
		*c = Polyanet()
	case objectTypeSoloon:
		color, err := ParseColor(obj.Color)
		if err != nil {
			return err
		}
		*c = Soloon(color)
	case objectTypeCometh:
		dir, err := ParseDirection(obj.Direction)
		if err != nil {
			return err
		}
		*c = Cometh(dir)
	default:
		return fmt.Errorf("decoding map cell %s: unknown object type %d", data, *obj.Type)
	}
	return nil
}

// Grid is a map snapshot indexed [row][column].
type Grid [][]Cell

// GoalGrid is the goal map as returned by the API, one token per cell.
type GoalGrid [][]string

// Shape returns the row count and the column count of every row.
func (g Grid) Shape() Shape { return shapeOf(len(g), func(i int) int { return len(g[i]) }) }

// Shape returns the row count and the column count of every row.
func (g GoalGrid) Shape() Shape { return shapeOf(len(g), func(i int) int { return len(g[i]) }) }

// Shape describes grid dimensions. Rows may in principle be ragged, so
// each row width is kept.
type Shape []int

func shapeOf(rows int, width func(int) int) Shape {
	s := make(Shape, rows)
	for i := range s {
		s[i] = width(i)
	}
	return s
}

// Equal reports whether both shapes have the same rows and row widths.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Shape) String() string {
	if len(s) == 0 {
		return "0x0"
	}
	uniform := true
	for _, w := range s[1:] {
		if w != s[0] {
			uniform = false
			break
		}
	}
	if uniform {
		return fmt.Sprintf("%dx%d", len(s), s[0])
	}
	return fmt.Sprintf("%d rows %v", len(s), []int(s))
}
