package terrain

import (
	"strconv"
	"strings"

	"github.com/Hemifuture/terragen/internal/apperr"
)

// ParseTemplate parses the line-oriented terrain command template format
// (spec §6): UTF-8, one command per line, '#' starts a comment line,
// blank lines ignored. A parse error names the 1-based line and a
// human-readable reason; the core never hands the interpreter a
// half-parsed command list — on the first error, ParseTemplate returns
// nil and that error.
func ParseTemplate(text string) ([]Command, error) {
	var commands []Command

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		name := fields[0]
		args := fields[1:]

		cmd, err := parseCommand(name, args)
		if err != nil {
			return nil, apperr.TemplateParse(lineNo, err.Error())
		}
		commands = append(commands, cmd)
	}

	return commands, nil
}

func parseCommand(name string, args []string) (Command, error) {
	switch name {
	case "Add":
		v, err := requireFloat(args, 0, "value")
		if err != nil {
			return nil, err
		}
		return AddCmd{Value: v}, nil

	case "Multiply":
		v, err := requireFloat(args, 0, "factor")
		if err != nil {
			return nil, err
		}
		return MultiplyCmd{Factor: v}, nil

	case "Smooth":
		n, err := requireInt(args, 0, "iter")
		if err != nil {
			return nil, err
		}
		return SmoothCmd{Iterations: n}, nil

	case "Normalize":
		return NormalizeCmd{}, nil

	case "SetSeaLevel":
		v, err := requireFloat(args, 0, "level")
		if err != nil {
			return nil, err
		}
		return SetSeaLevelCmd{Level: v}, nil

	case "Mask":
		if len(args) < 2 {
			return nil, errMissingArg("mode", "strength")
		}
		strength, err := parseFloat(args[1])
		if err != nil {
			return nil, err
		}
		return MaskCmd{Mode: MaskMode(args[0]), Strength: strength}, nil

	case "Invert":
		if len(args) < 2 {
			return nil, errMissingArg("axis", "p")
		}
		p, err := parseFloat(args[1])
		if err != nil {
			return nil, err
		}
		return InvertCmd{Axis: Axis(args[0]), Probability: p}, nil

	case "Mountain":
		if len(args) < 4 {
			return nil, errMissingArg("height", "x", "y", "radius")
		}
		h, err := parseFloat(args[0])
		if err != nil {
			return nil, err
		}
		x, err := parseFloat(args[1])
		if err != nil {
			return nil, err
		}
		y, err := parseFloat(args[2])
		if err != nil {
			return nil, err
		}
		rad, err := parseFloat(args[3])
		if err != nil {
			return nil, err
		}
		return MountainCmd{Height: h, X: x, Y: y, Radius: rad}, nil

	case "Hill":
		if len(args) < 4 {
			return nil, errMissingArg("count", "height-range", "x-range,y-range", "radius-range")
		}
		count, err := parseInt(args[0])
		if err != nil {
			return nil, err
		}
		heightR, err := parseRange(args[1])
		if err != nil {
			return nil, err
		}
		xr, yr, err := parseRangePair(args[2])
		if err != nil {
			return nil, err
		}
		radiusR, err := parseRange(args[3])
		if err != nil {
			return nil, err
		}
		return HillCmd{Count: count, HeightR: heightR, XR: xr, YR: yr, RadiusR: radiusR}, nil

	case "Pit":
		h, xr, yr, radiusR, count, err := parseBlobShape(args)
		if err != nil {
			return nil, err
		}
		return PitCmd{Count: count, HeightR: h, XR: xr, YR: yr, RadiusR: radiusR}, nil

	case "Range":
		c, err := parseLineShape(args)
		if err != nil {
			return nil, err
		}
		return RangeCmd(c), nil

	case "Trough":
		c, err := parseLineShape(args)
		if err != nil {
			return nil, err
		}
		return TroughCmd(c), nil

	case "Strait":
		if len(args) < 4 {
			return nil, errMissingArg("width", "direction", "position", "depth")
		}
		width, err := parseFloat(args[0])
		if err != nil {
			return nil, err
		}
		position, err := parseFloat(args[2])
		if err != nil {
			return nil, err
		}
		depth, err := parseFloat(args[3])
		if err != nil {
			return nil, err
		}
		return StraitCmd{Width: width, Direction: StraitDirection(args[1]), Position: position, Depth: depth}, nil

	default:
		return nil, errUnknownCommand(name)
	}
}

func parseBlobShape(args []string) (heightR, xr, yr, radiusR Range01, count int, err error) {
	if len(args) < 4 {
		err = errMissingArg("count", "height-range", "x-range,y-range", "radius-range")
		return
	}
	count, err = parseInt(args[0])
	if err != nil {
		return
	}
	heightR, err = parseRange(args[1])
	if err != nil {
		return
	}
	xr, yr, err = parseRangePair(args[2])
	if err != nil {
		return
	}
	radiusR, err = parseRange(args[3])
	return
}

// lineShapeFields mirrors RangeCmd/TroughCmd's field layout so both
// parse identically (spec: "Trough, same shape as Range").
type lineShapeFields struct {
	Count   int
	HeightR Range01
	XR, YR  Range01
	LengthR Range01
	WidthR  Range01
	AngleR  Range01
}

func parseLineShape(args []string) (lineShapeFields, error) {
	if len(args) < 6 {
		return lineShapeFields{}, errMissingArg("count", "height-range", "x-range,y-range", "length-range", "width-range", "angle-range")
	}
	count, err := parseInt(args[0])
	if err != nil {
		return lineShapeFields{}, err
	}
	heightR, err := parseRange(args[1])
	if err != nil {
		return lineShapeFields{}, err
	}
	xr, yr, err := parseRangePair(args[2])
	if err != nil {
		return lineShapeFields{}, err
	}
	lengthR, err := parseRange(args[3])
	if err != nil {
		return lineShapeFields{}, err
	}
	widthR, err := parseRange(args[4])
	if err != nil {
		return lineShapeFields{}, err
	}
	angleR, err := parseRange(args[5])
	if err != nil {
		return lineShapeFields{}, err
	}
	return lineShapeFields{Count: count, HeightR: heightR, XR: xr, YR: yr, LengthR: lengthR, WidthR: widthR, AngleR: angleR}, nil
}

func requireFloat(args []string, i int, name string) (float64, error) {
	if i >= len(args) {
		return 0, errMissingArg(name)
	}
	return parseFloat(args[i])
}

func requireInt(args []string, i int, name string) (int, error) {
	if i >= len(args) {
		return 0, errMissingArg(name)
	}
	return parseInt(args[i])
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errBadNumber(s)
	}
	return v, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errBadNumber(s)
	}
	return v, nil
}

// parseRange parses "a..b" into a Range01; a bare number "a" is accepted
// as the degenerate range [a,a].
func parseRange(s string) (Range01, error) {
	if idx := strings.Index(s, ".."); idx >= 0 {
		lo, err := parseFloat(s[:idx])
		if err != nil {
			return Range01{}, err
		}
		hi, err := parseFloat(s[idx+2:])
		if err != nil {
			return Range01{}, err
		}
		return Range01{Min: lo, Max: hi}, nil
	}
	v, err := parseFloat(s)
	if err != nil {
		return Range01{}, err
	}
	return Range01{Min: v, Max: v}, nil
}

// parseRangePair parses "a..b,c..d" into two Range01 values (x-range and
// y-range given as one comma-separated tuple).
func parseRangePair(s string) (Range01, Range01, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return Range01{}, Range01{}, errBadTuple(s)
	}
	x, err := parseRange(parts[0])
	if err != nil {
		return Range01{}, Range01{}, err
	}
	y, err := parseRange(parts[1])
	if err != nil {
		return Range01{}, Range01{}, err
	}
	return x, y, nil
}
