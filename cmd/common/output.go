// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"

	"fjacquet/plannerfin/cmd/root"
	"fjacquet/plannerfin/internal/consultor"
	"fjacquet/plannerfin/internal/models"
	"fjacquet/plannerfin/internal/report"
)

// Context is what a command handler needs from the root command.
type Context struct {
	Service   *consultor.Service
	Generator *report.Generator
	Month     models.MonthKey
	Format    string
}

// Prepare resolves the selected month and the wired dependencies.
func Prepare() (*Context, error) {
	c, err := root.GetContainer()
	if err != nil {
		return nil, err
	}
	month, err := root.Month()
	if err != nil {
		return nil, err
	}
	return &Context{
		Service:   c.GetService(),
		Generator: c.GetGenerator(),
		Month:     month,
		Format:    root.SharedFlags.Format,
	}, nil
}

// WriteReport renders r in the selected format to w.
func (c *Context) WriteReport(w io.Writer, r *report.Report) error {
	out, err := c.Generator.Generate(r, c.Format)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ParseModeFlag validates a --mode value. An empty flag stays empty so the
// configured or preferred mode applies.
func ParseModeFlag(flag string) (models.SuggestionMode, error) {
	if flag == "" {
		return "", nil
	}
	return models.ParseSuggestionMode(flag)
}
