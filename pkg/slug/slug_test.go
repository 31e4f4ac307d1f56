package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ocular Trap T-Shirt", "ocular-trap-t-shirt"},
		{"Visual Trap T-Shirt", "visual-trap-t-shirt"},
		{"T-Shirts", "t-shirts"},
		{"  Hello   World!  ", "hello-world"},
		{"Café Crème", "cafe-creme"},
		{"Ünïcödé", "unicode"},
		{"---", ""},
		{"", ""},
		{"قميص", ""},
		{"Size: XL / 2XL", "size-xl-2xl"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}
