package templating

import (
	"reflect"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		tpl    string
		values map[string]string
		want   string
	}{
		{
			name:   "known token",
			tpl:    "Hello {{name}}",
			values: map[string]string{"name": "World"},
			want:   "Hello World",
		},
		{
			name:   "unknown token replaced with empty",
			tpl:    "Hello {{name}}, score {{score}}",
			values: map[string]string{"name": "Kim"},
			want:   "Hello Kim, score ",
		},
		{
			name:   "whitespace padded name",
			tpl:    "{{ name }} and {{name}}",
			values: map[string]string{"name": "Lee"},
			want:   "Lee and Lee",
		},
		{
			name:   "control markup stripped not evaluated",
			tpl:    "{{#if premium}}VIP{{/if}} {{name}}",
			values: map[string]string{"name": "Park", "premium": "true"},
			want:   "VIP Park",
		},
		{
			name:   "empty binding is a real value",
			tpl:    "[{{note}}]",
			values: map[string]string{"note": ""},
			want:   "[]",
		},
		{
			name:   "no tokens",
			tpl:    "plain text",
			values: map[string]string{"name": "unused"},
			want:   "plain text",
		},
		{
			name:   "nil values strips everything",
			tpl:    "a {{x}} b {{y}} c",
			values: nil,
			want:   "a  b  c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.tpl, tt.values); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlaceholders(t *testing.T) {
	tpl := "{{b}} {{a}} {{b}} {{ c }}"
	got := Placeholders(tpl)
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders() = %v, want %v", got, want)
	}

	if names := Placeholders("no tokens here"); len(names) != 0 {
		t.Errorf("Placeholders() = %v, want empty", names)
	}
}
