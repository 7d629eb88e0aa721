package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhl/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()

		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Theme map", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Theme: map[string]config.Style{"heading": {Foreground: "blue", Bold: true}},
		}

		clone := original.Clone()
		require.Contains(t, clone.Theme, "heading")
		assert.Equal(t, original.Theme["heading"], clone.Theme["heading"])

		clone.Theme["heading"] = config.Style{Italic: true}
		assert.Equal(t, "blue", original.Theme["heading"].Foreground)
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{Ignore: []string{"*.md", "vendor/**"}}

		clone := original.Clone()
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "*.md", original.Ignore[0])
	})

	t.Run("copies Merge pointer", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{Merge: config.Bool(false)}

		clone := original.Clone()
		require.NotNil(t, clone.Merge)
		assert.False(t, *clone.Merge)
		assert.NotSame(t, original.Merge, clone.Merge)
	})

	t.Run("preserves all fields", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Flavor: config.FlavorGFM,
			Merge:  config.Bool(true),
			Format: config.FormatJSON,
			Jobs:   4,
			Ignore: []string{"vendor/**"},
			Window: "0:100",
			Theme:  map[string]config.Style{"link": {Underline: true}},
			Debug:  true,
			Color:  "never",
		}

		assert.Equal(t, original, original.Clone())
	})
}

func TestToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		data, err := c.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("omits CLI fields", func(t *testing.T) {
		t.Parallel()

		c := &config.Config{Flavor: config.FlavorGFM, Debug: true, Color: "always"}
		data, err := c.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: gfm")
		assert.NotContains(t, string(data), "debug")
		assert.NotContains(t, string(data), "color")
	})

	t.Run("writes theme styles", func(t *testing.T) {
		t.Parallel()

		c := &config.Config{Theme: map[string]config.Style{"strong": {Bold: true}}}
		data, err := c.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "theme:\n  strong:\n    bold: true\n")
	})
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	c := &config.Config{Flavor: config.FlavorCommonMark}

	data, err := c.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Equal(t, "# header\n\nflavor: commonmark\n", string(data))

	plain, err := c.ToYAMLWithHeader("")
	require.NoError(t, err)
	assert.Equal(t, "flavor: commonmark\n", string(plain))
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
flavor: gfm
merge: false
format: summary
jobs: 2
window: "10:"
ignore:
  - "drafts/**"
theme:
  heading:
    fg: "#ff0000"
    bold: true
`))
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		require.NotNil(t, cfg.Merge)
		assert.False(t, *cfg.Merge)
		assert.Equal(t, config.FormatSummary, cfg.Format)
		assert.Equal(t, 2, cfg.Jobs)
		assert.Equal(t, "10:", cfg.Window)
		assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
		assert.Equal(t, config.Style{Foreground: "#ff0000", Bold: true}, cfg.Theme["heading"])
	})

	t.Run("absent fields stay zero", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("jobs: 3\n"))
		require.NoError(t, err)
		assert.Nil(t, cfg.Merge)
		assert.Empty(t, cfg.Flavor)
		assert.Nil(t, cfg.Theme)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("flavor: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})
}
