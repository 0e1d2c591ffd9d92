package common

import (
	"bytes"
	"testing"

	"fjacquet/plannerfin/cmd/root"
	"fjacquet/plannerfin/internal/config"
	"fjacquet/plannerfin/internal/container"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"
	"fjacquet/plannerfin/internal/report"
	"fjacquet/plannerfin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare(t *testing.T) {
	root.AppContainer = nil
	_, err := Prepare()
	require.Error(t, err)

	cfg := &config.Config{}
	cfg.Display.CurrencySymbol = "R$"
	c, err := container.NewContainerWithStore(cfg, store.NewMockStore(), nil, logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(func() { root.AppContainer = nil })

	root.SharedFlags.Month = "2026-02"
	ctx, err := Prepare()
	require.NoError(t, err)
	assert.Equal(t, models.MonthKey("2026-02"), ctx.Month)
	assert.NotNil(t, ctx.Service)

	root.SharedFlags.Month = "February"
	_, err = Prepare()
	assert.ErrorContains(t, err, "invalid --month")
	root.SharedFlags.Month = ""
}

func TestWriteReport(t *testing.T) {
	ctx := &Context{
		Generator: report.NewGenerator(logging.NewMockLogger(), "R$"),
		Month:     "2026-02",
		Format:    "text",
	}
	var buf bytes.Buffer

	require.NoError(t, ctx.WriteReport(&buf, report.New("2026-02")))
	assert.Equal(t, "Month 2026-02\n", buf.String())

	ctx.Format = "yaml"
	assert.Error(t, ctx.WriteReport(&buf, report.New("2026-02")))
}

func TestParseModeFlag(t *testing.T) {
	tests := []struct {
		flag    string
		want    models.SuggestionMode
		wantErr bool
	}{
		{"", "", false},
		{"monthly", models.SuggestionMonthly, false},
		{"quarterly", models.SuggestionQuarterly, false},
		{"weekly", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			mode, err := ParseModeFlag(tt.flag)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}
