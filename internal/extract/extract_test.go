package extract_test

import (
	"testing"

	"winnow/internal/extract"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{
			name: "plain text passes through",
			cell: "Order now. Limited time!",
			want: "Order now. Limited time!",
		},
		{
			name: "tags stripped",
			cell: "<p>Order <b>now</b>. Limited time!</p>",
			want: "Order now. Limited time!",
		},
		{
			name: "entities decoded",
			cell: "Don&#39;t wait &amp; miss out",
			want: "Don't wait & miss out",
		},
		{
			name: "empty cell",
			cell: "",
			want: "",
		},
		{
			name: "bare ampersand survives",
			cell: "salt & pepper",
			want: "salt & pepper",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.Text(tt.cell); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}
