package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemifuture/terragen/internal/apperr"
)

func TestParseTemplateBasicCommands(t *testing.T) {
	text := `
# a comment
Add 10
Multiply 1.5
Smooth 2
Normalize
SetSeaLevel 20
`
	cmds, err := ParseTemplate(text)
	require.NoError(t, err)
	require.Len(t, cmds, 5)

	assert.Equal(t, AddCmd{Value: 10}, cmds[0])
	assert.Equal(t, MultiplyCmd{Factor: 1.5}, cmds[1])
	assert.Equal(t, SmoothCmd{Iterations: 2}, cmds[2])
	assert.Equal(t, NormalizeCmd{}, cmds[3])
	assert.Equal(t, SetSeaLevelCmd{Level: 20}, cmds[4])
}

func TestParseTemplateHill(t *testing.T) {
	cmds, err := ParseTemplate("Hill 1 150..200 0.4..0.6,0.4..0.6 0.05..0.15")
	require.NoError(t, err)
	require.Len(t, cmds, 1)

	hill, ok := cmds[0].(HillCmd)
	require.True(t, ok)
	assert.Equal(t, 1, hill.Count)
	assert.Equal(t, Range01{Min: 150, Max: 200}, hill.HeightR)
	assert.Equal(t, Range01{Min: 0.4, Max: 0.6}, hill.XR)
	assert.Equal(t, Range01{Min: 0.4, Max: 0.6}, hill.YR)
	assert.Equal(t, Range01{Min: 0.05, Max: 0.15}, hill.RadiusR)
}

func TestParseTemplateRange(t *testing.T) {
	cmds, err := ParseTemplate("Range 1 100..150 0.2..0.3,0.5..0.6 0.3..0.4 0.02..0.05 0..1")
	require.NoError(t, err)
	require.Len(t, cmds, 1)

	r, ok := cmds[0].(RangeCmd)
	require.True(t, ok)
	assert.Equal(t, 1, r.Count)
	assert.Equal(t, Range01{Min: 0, Max: 1}, r.AngleR)
}

func TestParseTemplateMountain(t *testing.T) {
	cmds, err := ParseTemplate("Mountain 200 0.5 0.5 0.1")
	require.NoError(t, err)
	require.Equal(t, MountainCmd{Height: 200, X: 0.5, Y: 0.5, Radius: 0.1}, cmds[0])
}

func TestParseTemplateMask(t *testing.T) {
	cmds, err := ParseTemplate("Mask edge-fade 0.5")
	require.NoError(t, err)
	require.Equal(t, MaskCmd{Mode: MaskEdgeFade, Strength: 0.5}, cmds[0])
}

func TestParseTemplateStrait(t *testing.T) {
	cmds, err := ParseTemplate("Strait 0.05 horizontal 0.5 100")
	require.NoError(t, err)
	require.Equal(t, StraitCmd{Width: 0.05, Direction: StraitHorizontal, Position: 0.5, Depth: 100}, cmds[0])
}

func TestParseTemplateUnknownCommand(t *testing.T) {
	_, err := ParseTemplate("Bogus 1 2 3")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindTemplateParse))
}

func TestParseTemplateReportsLineNumber(t *testing.T) {
	_, err := ParseTemplate("Add 10\nMultiply bogus\n")
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 2, appErr.Line)
}

func TestParseTemplateMissingArgs(t *testing.T) {
	_, err := ParseTemplate("Add")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindTemplateParse))
}

func TestParseRangeBareNumber(t *testing.T) {
	r, err := parseRange("42")
	require.NoError(t, err)
	assert.Equal(t, Range01{Min: 42, Max: 42}, r)
}

func TestParseRangePairRejectsMissingComma(t *testing.T) {
	_, _, err := parseRangePair("0.1..0.2")
	require.Error(t, err)
}
