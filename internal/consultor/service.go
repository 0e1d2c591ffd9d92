// Package consultor runs the analysis engine over the stored snapshot. It is
// the only place that loads data, scopes it to a month and blends in the
// profile-derived transactions before calling the pure analysis functions.
package consultor

import (
	"context"
	"fmt"
	"time"

	"fjacquet/plannerfin/internal/analysis"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"
	"fjacquet/plannerfin/internal/narrator"
	"fjacquet/plannerfin/internal/report"
	"fjacquet/plannerfin/internal/store"
	"fjacquet/plannerfin/internal/virtualtx"

	"golang.org/x/sync/errgroup"
)

// Options tunes the service from configuration.
type Options struct {
	// UseProfile allows profile-derived transactions in the month analysis.
	// The user preference must allow them as well.
	UseProfile bool
	// SuggestionMode overrides the preference when set.
	SuggestionMode models.SuggestionMode
}

// ReportOptions selects the optional parts of a full report.
type ReportOptions struct {
	Mode      models.SuggestionMode
	Narrative bool
}

// Service answers the questions of the CLI commands.
type Service struct {
	store    store.DataStore
	narrator *narrator.Narrator
	opts     Options
	logger   logging.Logger
}

// NewService creates a Service. narrator may be nil.
func NewService(ds store.DataStore, n *narrator.Narrator, opts Options, logger logging.Logger) *Service {
	return &Service{
		store:    ds,
		narrator: n,
		opts:     opts,
		logger:   logger.WithField("component", "Consultor"),
	}
}

// snapshot is the data one month needs.
type snapshot struct {
	transactions []models.Transaction
	categories   []models.Category
	settings     models.UserSettings
}

// loadSnapshot reads transactions, categories and settings concurrently.
func (s *Service) loadSnapshot() (*snapshot, error) {
	snap := &snapshot{}
	var g errgroup.Group
	g.Go(func() error {
		transactions, err := s.store.LoadTransactions()
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		snap.transactions = transactions
		return nil
	})
	g.Go(func() error {
		categories, err := s.store.LoadCategories()
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		snap.categories = categories
		return nil
	})
	g.Go(func() error {
		settings, err := s.store.LoadSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		snap.settings = settings
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Service) profileEnabled(settings models.UserSettings) bool {
	return s.opts.UseProfile && settings.Preferences.UseProfileOnDashboard
}

// analyze builds the month analysis, with the profile transactions when enabled.
func (s *Service) analyze(snap *snapshot, month models.MonthKey) models.MonthAnalysis {
	recorded := models.FilterByMonth(snap.transactions, month)
	enabled := s.profileEnabled(snap.settings)
	transactions := virtualtx.Blend(recorded, snap.settings.Profile, month, enabled)

	categories := snap.categories
	if enabled {
		categories = append(append([]models.Category(nil), snap.categories...), virtualtx.Categories()...)
	}

	start := time.Now()
	a := analysis.AnalyzeMonth(transactions, categories, month)
	s.logger.Debug("Analyzed month",
		logging.Field{Key: logging.FieldMonth, Value: month.String()},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()})
	return a
}

// Analyze returns the month analysis with its score and action plan.
func (s *Service) Analyze(month models.MonthKey) (*report.Report, error) {
	snap, err := s.loadSnapshot()
	if err != nil {
		return nil, err
	}
	a := s.analyze(snap, month)
	r := report.New(month).WithAnalysis(a)
	s.logger.Info("Month analysis ready",
		logging.Field{Key: logging.FieldMonth, Value: month.String()},
		logging.Field{Key: logging.FieldScore, Value: r.Score.Value})
	return r, nil
}

// DebtPlan returns the debt payoff plan of month.
func (s *Service) DebtPlan(month models.MonthKey) (*report.Report, error) {
	snap, err := s.loadSnapshot()
	if err != nil {
		return nil, err
	}
	profile := models.NewDebtProfile(snap.settings.Profile, snap.settings.Preferences)
	return report.New(month).WithDebtPlan(profile, s.analyze(snap, month)), nil
}

// ResolveMode picks the suggestion mode: an explicit mode first, then the
// configured one, then the user preference.
func (s *Service) ResolveMode(explicit models.SuggestionMode, prefs models.ConsultorPreferences) models.SuggestionMode {
	switch {
	case explicit != "":
		return explicit
	case s.opts.SuggestionMode != "":
		return s.opts.SuggestionMode
	case prefs.BudgetSuggestionMode != "":
		return prefs.BudgetSuggestionMode
	default:
		return models.SuggestionMonthly
	}
}

// Suggest returns budget suggestions for month. Only recorded transactions
// feed the history.
func (s *Service) Suggest(month models.MonthKey, mode models.SuggestionMode) (models.BudgetSuggestions, error) {
	snap, err := s.loadSnapshot()
	if err != nil {
		return models.BudgetSuggestions{}, err
	}
	return s.suggest(snap, month, mode), nil
}

func (s *Service) suggest(snap *snapshot, month models.MonthKey, mode models.SuggestionMode) models.BudgetSuggestions {
	mode = s.ResolveMode(mode, snap.settings.Preferences)
	history := models.BuildExpenseHistory(windowTransactions(snap.transactions, month, mode))
	suggestions := analysis.Suggest(month, mode, history, snap.categories)
	s.logger.Debug("Built budget suggestions",
		logging.Field{Key: logging.FieldMonth, Value: month.String()},
		logging.Field{Key: logging.FieldMode, Value: string(mode)},
		logging.Field{Key: logging.FieldCount, Value: len(suggestions.Items)})
	return suggestions
}

// windowTransactions keeps the transactions dated inside the months averaged
// for month under mode. An invalid month keeps nothing.
func windowTransactions(transactions []models.Transaction, month models.MonthKey, mode models.SuggestionMode) []models.Transaction {
	window := month.PreviousN(mode.WindowSize())
	if len(window) == 0 {
		return nil
	}
	return models.FilterByRange(transactions, window[len(window)-1].FirstDay(), window[0].LastDay())
}

// ApplySuggestions stores suggestions as the budgets of month, replacing the
// existing budget of each suggested category.
func (s *Service) ApplySuggestions(month models.MonthKey, suggestions models.BudgetSuggestions) error {
	existing, err := s.store.LoadBudgets()
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}
	merged := store.UpsertBudgets(existing, store.BudgetsFromSuggestions(month, suggestions.Items))
	if err := s.store.SaveBudgets(merged); err != nil {
		return fmt.Errorf("failed to save budgets: %w", err)
	}
	s.logger.Info("Applied budget suggestions",
		logging.Field{Key: logging.FieldMonth, Value: month.String()},
		logging.Field{Key: logging.FieldCount, Value: len(suggestions.Items)})
	return nil
}

// ExportSuggestions writes suggestions to a CSV file.
func (s *Service) ExportSuggestions(path string, month models.MonthKey, suggestions models.BudgetSuggestions) error {
	return s.store.WriteSuggestionsCSV(path, month, suggestions)
}

// Budgets returns the budget status of every expense category in month.
func (s *Service) Budgets(month models.MonthKey) ([]models.BudgetUsage, error) {
	transactions, err := s.store.LoadTransactions()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	categories, err := s.store.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	budgets, err := s.store.LoadBudgets()
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	return analysis.BudgetStatus(transactions, categories, budgets, month), nil
}

// Goals returns the progress of every savings goal.
func (s *Service) Goals() ([]models.GoalProgress, error) {
	goals, err := s.store.LoadGoals()
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	return analysis.GoalsProgress(goals), nil
}

// Report assembles every section for month. A failed narration is logged and
// leaves the narrative empty.
func (s *Service) Report(ctx context.Context, month models.MonthKey, opts ReportOptions) (*report.Report, error) {
	snap, err := s.loadSnapshot()
	if err != nil {
		return nil, err
	}
	budgets, err := s.store.LoadBudgets()
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	goals, err := s.store.LoadGoals()
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	a := s.analyze(snap, month)
	prefs := snap.settings.Preferences
	monthTransactions := models.FilterByMonth(snap.transactions, month)

	r := report.New(month).
		WithAnalysis(a).
		WithDebtPlan(models.NewDebtProfile(snap.settings.Profile, prefs), a).
		WithSuggestions(s.suggest(snap, month, opts.Mode)).
		WithBudgets(analysis.BudgetStatus(snap.transactions, snap.categories, budgets, month)).
		WithGoals(analysis.GoalsProgress(goals))
	if len(prefs.EssentialCategoryIDs) > 0 {
		r.WithNonEssential(analysis.NonEssentialSpending(monthTransactions, snap.categories, prefs.EssentialSet()))
	}

	if opts.Narrative {
		s.narrate(ctx, r)
	}
	return r, nil
}

func (s *Service) narrate(ctx context.Context, r *report.Report) {
	if !s.narrator.Enabled() {
		s.logger.Warn("AI narration requested but AI is disabled",
			logging.Field{Key: logging.FieldMonth, Value: r.Month.String()})
		return
	}
	text, err := s.narrator.Narrate(ctx, narrator.Input{
		Analysis: *r.Analysis,
		Score:    r.Score.Value,
		Label:    r.Score.Label,
		Plan:     r.Plan,
		DebtPlan: r.DebtPlan,
	})
	if err != nil {
		return
	}
	r.Narrative = text
}
