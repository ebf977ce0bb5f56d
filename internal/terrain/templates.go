package terrain

// namedTemplates holds the built-in command templates a GenerationConfig
// can select by name instead of supplying literal template text
// (spec §4.2/§6). Each is plain template syntax, parsed the same way as
// caller-supplied text.
var namedTemplates = map[string]string{
	"continents": `
# A few large continental masses with mountainous interiors
Add -20
Hill 4 60..110 0.1..0.9,0.1..0.9 0.1..0.25
Range 3 40..80 0.2..0.8,0.2..0.8 0.2..0.5 0.03..0.08 0..1
Smooth 2
Normalize
SetSeaLevel 0.45
`,
	"archipelago": `
# Many small islands scattered over open ocean
Add -60
Hill 18 30..70 0..1,0..1 0.03..0.08
Pit 3 20..40 0..1,0..1 0.1..0.2
Smooth 1
Normalize
SetSeaLevel 0.7
`,
}

// NamedTemplate returns the built-in template text registered under name,
// and whether it exists.
func NamedTemplate(name string) (string, bool) {
	t, ok := namedTemplates[name]
	return t, ok
}
