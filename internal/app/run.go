package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/signalgrid/internal/bars"
	"github.com/specialistvlad/signalgrid/internal/barstore"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/specialistvlad/signalgrid/internal/executor"
	"github.com/specialistvlad/signalgrid/internal/graph"
	"github.com/specialistvlad/signalgrid/internal/localexecutor"
	"github.com/specialistvlad/signalgrid/internal/publish"
	"github.com/specialistvlad/signalgrid/internal/report"
	"github.com/specialistvlad/signalgrid/internal/signals"
)

// Run executes one backtest based on the App's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "symbol", a.config.Symbol)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthCheckServer(ctx)
		defer a.closeHealthCheckServer(ctx)
	}

	a.setStage("loading")
	strategy, err := a.loaderFor(a.config.StrategyPath).Load(ctx, a.config.StrategyPath)
	if err != nil {
		return fmt.Errorf("failed to load strategy: %w", err)
	}
	g, err := graph.Build(ctx, strategy, graph.WithIndicators(a.indicators))
	if err != nil {
		return fmt.Errorf("failed to build strategy graph: %w", err)
	}
	a.logger.Info("Strategy loaded.", "name", strategy.Name, "nodes", g.Len(), "actions", len(g.Actions()))

	table, err := a.loadBars(ctx)
	if err != nil {
		return err
	}

	a.setStage("compiling")
	res, err := signals.Compile(ctx, g, table)
	if err != nil {
		return fmt.Errorf("failed to compile signals: %w", err)
	}
	entries, exits := res.Counts()
	a.logger.Info("Signals compiled.", "rows", res.Len(), "entries", entries, "exits", exits)

	a.setStage("executing")
	exec, err := localexecutor.New(localexecutor.Config{StartCash: a.config.StartCash, Quantity: a.config.Quantity})
	if err != nil {
		return fmt.Errorf("failed to configure executor: %w", err)
	}
	rep, err := exec.Execute(ctx, res)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	sum := report.RunSummary{
		RunID:    a.runID,
		Strategy: strategy.Name,
		Symbol:   a.config.Symbol,
		Bars:     res.Len(),
		Entries:  entries,
		Exits:    exits,
		Rejected: rep.Rejected,
		Summary:  rep.Summary,
	}
	a.summary = &sum
	a.logger.Info("Backtest finished.",
		"trades", rep.Summary.Trades,
		"final_equity", rep.Summary.FinalEquity.String(),
		"pnl", rep.Summary.PnL.String(),
	)

	if a.config.OutDir != "" {
		a.setStage("reporting")
		paths, err := report.WriteDir(ctx, a.config.OutDir, a.config.OutFormat, res, rep, sum)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		a.logger.Info("Report written.", "files", paths)
	}

	if err := a.publish(ctx, rep); err != nil {
		// The backtest itself succeeded; a missing listener is not fatal.
		a.logger.Warn("Failed to publish result.", "error", err)
	}

	a.setStage("done")
	a.logger.Debug("App.Run method finished.")
	return nil
}

// loadBars fetches the configured range and resamples it when a timeframe
// is set.
func (a *App) loadBars(ctx context.Context) (*bars.Table, error) {
	store := a.store
	if store == nil {
		if a.config.DSN != "" {
			pg, err := barstore.NewPostgresStore(ctx, a.config.DSN)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to bar database: %w", err)
			}
			defer pg.Close()
			store = pg
		} else {
			store = barstore.NewFileStore(a.config.DataDir)
		}
	}

	raw, err := store.Load(ctx, a.config.Symbol, a.config.Start, a.config.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load bars for %s: %w", a.config.Symbol, err)
	}
	table, err := bars.NewTable(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid bars for %s: %w", a.config.Symbol, err)
	}
	// Stores filter on their own, but a custom store may hand back more.
	table = table.Filter(a.config.Start, a.config.End)
	if table.Len() == 0 {
		return nil, fmt.Errorf("failed to load bars for %s: %w", a.config.Symbol, barstore.ErrNoBars)
	}

	tf, ok, err := a.config.ParsedTimeframe()
	if err != nil {
		return nil, err
	}
	if ok {
		if table, err = bars.Resample(table, tf); err != nil {
			return nil, fmt.Errorf("failed to resample to %s: %w", tf, err)
		}
	}

	a.logger.Info("Bars loaded.", "symbol", a.config.Symbol, "rows", table.Len(), "timeframe", a.config.Timeframe)
	return table, nil
}

func (a *App) publish(ctx context.Context, rep *executor.Report) error {
	p := a.publisher
	if p == nil {
		if a.config.PublishURL == "" {
			return nil
		}
		pub, err := publish.NewPublisher(publish.Config{URL: a.config.PublishURL})
		if err != nil {
			return err
		}
		p = pub
	}

	a.setStage("publishing")
	return p.Publish(ctx, publish.NewPayload(a.runID, a.config.Symbol, rep.Summary))
}
