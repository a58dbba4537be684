// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package value

import "testing"

func TestIsZeroSizedType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{name: "struct{}", got: IsZST[struct{}](), want: true},
		{name: "[0]byte", got: IsZST[[0]byte](), want: true},
		{name: "int", got: IsZST[int](), want: false},
		{name: "string", got: IsZST[string](), want: false},
		{name: "pointer", got: IsZST[*int](), want: false},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}
