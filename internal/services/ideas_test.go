package services

import (
	"strings"
	"testing"
)

func TestParseIdea(t *testing.T) {
	tests := []struct {
		text string
		want Idea
	}{
		{"Title: Star Mop\nDescription: Clean debris in orbit.", Idea{"Star Mop", "Clean debris in orbit."}},
		{"title:   Lava Lamp  \ndescription: float", Idea{"Lava Lamp", "float"}},
		{"Here you go!\n**Title:** Quiet\n", Idea{"** Quiet", DefaultDescription}},
		{"no structure at all", Idea{DefaultTitle, DefaultDescription}},
		{"", Idea{DefaultTitle, DefaultDescription}},
	}
	for _, tt := range tests {
		if got := ParseIdea(tt.text); got != tt.want {
			t.Errorf("ParseIdea(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestBuildIdeaPrompt(t *testing.T) {
	first := func(int) int { return 0 }

	p := BuildIdeaPrompt("a cat that juggles", false, first)
	if !strings.Contains(p, `"a cat that juggles"`) {
		t.Errorf("user prompt should be wrapped: %s", p)
	}

	// 自动生成忽略用户描述
	p = BuildIdeaPrompt("a cat that juggles", true, first)
	if strings.Contains(p, "juggles") {
		t.Error("auto prompt should ignore user input")
	}
	want := "Create a unique " + gameTypes[0] + " set in a " + themes[0] + " where the player must " + mechanics[0] + "."
	if !strings.HasPrefix(p, want) {
		t.Errorf("unexpected combinatorial prompt: %s", p)
	}

	last := func(n int) int { return n - 1 }
	p = BuildIdeaPrompt("   ", false, last)
	if !strings.Contains(p, themes[len(themes)-1]) {
		t.Errorf("blank prompt should fall back to pools: %s", p)
	}
}
