package searcher

import "testing"

func TestTemplate_Expand(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"group", `<mark>$1</mark>`, "x <mark>Pie</mark> y"},
		{"whole match", `[$&]`, "x [Pie] y"},
		{"dollar", `$$1`, "x $1 y"},
		{"missing group is literal", `<$2>`, "x <$2> y"},
		{"before", "[$`]", "x [x ] y"},
		{"after", `[$']`, "x [ y] y"},
		{"unknown reference", `$x$1`, "x $xPie y"},
		{"trailing dollar", `$1$`, "x Pie$ y"},
		{"plain", `*`, "x * y"},
		{"markup kept", `<span class="hl">$1</span>`, `x <span class="hl">Pie</span> y`},
	}

	p := BuildPattern("pie", false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Highlight("x Pie y", tt.tmpl); got != tt.want {
				t.Errorf("Highlight with %q = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestTemplate_EscapesReferences(t *testing.T) {
	p := BuildPattern("&", false)
	got := p.Highlight("<a & b>", "[$`|$1|$']")
	want := "&lt;a [&lt;a |&amp;| b&gt;] b&gt;"
	if got != want {
		t.Errorf("Highlight() = %q, want %q", got, want)
	}
}

func TestParseTemplate(t *testing.T) {
	tmpl := ParseTemplate(`<b>$1</b>`)
	if len(tmpl) != 3 {
		t.Fatalf("len(ParseTemplate) = %d, want 3", len(tmpl))
	}
	if tmpl[0].literal != "<b>" || tmpl[0].ref != refLiteral {
		t.Errorf("part 0 = %+v", tmpl[0])
	}
	if tmpl[1].ref != 1 {
		t.Errorf("part 1 ref = %d, want 1", tmpl[1].ref)
	}
	if tmpl[2].literal != "</b>" {
		t.Errorf("part 2 = %+v", tmpl[2])
	}

	if got := ParseTemplate(""); len(got) != 0 {
		t.Errorf("ParseTemplate(\"\") = %+v, want empty", got)
	}
}
