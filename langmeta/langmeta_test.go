package langmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "zh_cn", want: "zh-CN"},
		{in: " PT-br ", want: "pt-BR"},
		{in: "ru", want: "ru"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, canonicalize(tc.in), "canonicalize(%q)", tc.in)
	}
}

func TestResolve(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		got := Resolve("zh-CN")
		assert.Equal(t, "ChineseSimplified", got.Folder)
		assert.Equal(t, "Simplified Chinese", got.Name)
	})

	t.Run("normalized match", func(t *testing.T) {
		assert.Equal(t, "PortugueseBrazilian", Resolve("pt_br").Folder)
	})

	t.Run("base fallback", func(t *testing.T) {
		assert.Equal(t, "French", Resolve("fr-CA").Folder)
	})

	t.Run("unknown passthrough", func(t *testing.T) {
		got := Resolve("Klingon")
		assert.Equal(t, Meta{Name: "Klingon", Native: "Klingon", Folder: "Klingon"}, got)
		assert.False(t, Known("Klingon"))
		assert.True(t, Known("zh_CN"))
	})
}
