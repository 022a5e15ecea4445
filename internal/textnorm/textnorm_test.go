package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAlefVariants(t *testing.T) {
	want := Normalize("احمد")
	assert.Equal(t, want, Normalize("أحمد"))
	assert.Equal(t, want, Normalize("إحمد"))
	assert.Equal(t, want, Normalize("آحمد"))
}

func TestNormalizeLetters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"teh marbuta", "مكتبة", "مكتبه"},
		{"alef maksura", "مصطفى", "مصطفي"},
		{"harakat stripped", "كِتَابٌ", "كتاب"},
		{"shadda stripped", "محمّد", "محمد"},
		{"latin untouched", "Book One", "Book One"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"أحمد", "إِسْلَامِيَّة", "مُصْطَفَى", "آمنة", "plain"} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), s)
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%احمد%", LikePattern("أحمد"))
	assert.Equal(t, `%100\% off\_sale%`, LikePattern("100% off_sale"))
	assert.Equal(t, `%a\\b%`, LikePattern(`a\b`))
}
