package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhl/pkg/config"
)

func TestGenerateTemplate_Minimal(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Nil(t, cfg.Theme, "theme is commented out")
	assert.Contains(t, string(data), "# gomdhl configuration")
}

func TestGenerateTemplate_Full(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTheme(), cfg.Theme)
	require.NotNil(t, cfg.Merge)
	assert.True(t, *cfg.Merge)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestGenerateTemplate_JSON(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "commonmark", got["flavor"])

	theme, ok := got["theme"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, theme, len(config.DefaultTheme()))
	assert.Equal(t, map[string]any{"bold": true}, theme["strong"])
}
