package glossary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinPerLanguage(t *testing.T) {
	zh := Builtin("zh_CN")
	assert.Greater(t, zh.Len(), 300)
	v, ok := zh.Lookup("Steel")
	assert.True(t, ok)
	assert.Equal(t, "钢铁", v)

	assert.Equal(t, 0, Builtin("ru").Len())
}

func TestMergeOverridesWithoutMutation(t *testing.T) {
	base := New(map[string]string{"Steel": "钢铁", "Wood": "木材"})
	merged := base.Merge(map[string]string{"Steel": "钢", "Bronze": "青铜"})

	v, _ := base.Lookup("Steel")
	assert.Equal(t, "钢铁", v)

	v, _ = merged.Lookup("Steel")
	assert.Equal(t, "钢", v)
	assert.Equal(t, 3, merged.Len())
}

func TestLinesSortedAndLowercased(t *testing.T) {
	g := New(map[string]string{"Wood": "木材", "Alpaca": "羊驼"})
	assert.Equal(t, []string{"- 'alpaca': '羊驼'", "- 'wood': '木材'"}, g.Lines())
}
