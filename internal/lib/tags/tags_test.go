package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "простой список",
			raw:  "nature,forest,green",
			want: "nature,forest,green",
		},
		{
			name: "пробелы и регистр",
			raw:  " Nature , FOREST ,green",
			want: "nature,forest,green",
		},
		{
			name: "дубликаты",
			raw:  "sea,sea,Sea",
			want: "sea",
		},
		{
			name: "пустые значения",
			raw:  ",,nature,, ,",
			want: "nature",
		},
		{
			name: "пустая строка",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"nature", "forest"}, Split("Nature, forest"))
	assert.Empty(t, Split("  ,  "))
}
