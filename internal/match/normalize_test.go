package match

import (
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"ABC", "abc"},
		{"Case Nara", "case nara"},
		{"강아지", "강아지"},
		{"ㄱㅇㅈ", "ㄱㅇㅈ"},
		{"ÀÉÎ", "àéî"},
		{"Galaxy S24 케이스", "galaxy s24 케이스"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Fold(tt.input)
			if result != tt.expected {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	// "강" spelled as conjoining jamo: choseong kiyeok, jungseong a, jongseong ieung.
	decomposed := "\u1100\u1161\u11bc"

	if got := Compose(decomposed); got != "강" {
		t.Errorf("Compose(decomposed) = %q, want %q", got, "강")
	}

	if got := Compose("강아지"); got != "강아지" {
		t.Errorf("Compose(composed) = %q, want unchanged", got)
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"  강  아지 ", "강 아지"},
		{"a\t\nb", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := Collapse(tt.input); result != tt.expected {
				t.Errorf("Collapse(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
