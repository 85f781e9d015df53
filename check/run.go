// Package check implements "check" sub-command: it finds stylesheets, checks
// them with configured rules and reports found problems.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cssnest/common"
	"cssnest/config"
	"cssnest/css"
	"cssnest/lint"
	"cssnest/nesting"
	"cssnest/state"
)

// Before applies command line options of the check command to program
// environment: report format and destination, rule overrides.
func Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := state.EnvFromContext(ctx)
	if env.Cfg == nil {
		return ctx, errors.New("configuration is not loaded")
	}

	if err := env.SelectReport(cmd.String("format"), cmd.String("output")); err != nil {
		return ctx, err
	}
	if cmd.IsSet("max-depth") {
		depth := cmd.Int("max-depth")
		if depth < 0 {
			return ctx, fmt.Errorf("max depth must not be negative, got %d", depth)
		}
		env.Log.Debug("Overriding configured max depth", zap.Int("max_depth", depth))
		env.Cfg.Rules.MaxNestingDepth.MaxDepth = depth
	}
	return ctx, nil
}

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	if cmd.Args().Len() == 0 {
		return errors.New("no input source has been specified")
	}

	log.Info("Processing starting", zap.Strings("sources", cmd.Args().Slice()), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, cmd.Args().Slice(), log)
}

// NewRegistry registers every enabled rule.
func NewRegistry(rules *config.RulesConfig, log *zap.Logger) (*lint.Registry, error) {
	reg := lint.NewRegistry(log)

	if conf := &rules.MaxNestingDepth; conf.Enabled {
		opts, err := conf.Options()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", nesting.Name, err)
		}
		rule, err := nesting.New(opts, log)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(rule, conf.Severity); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// process handles checking independently of CLI framework.
func process(ctx context.Context, args []string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	reg, err := NewRegistry(&env.Cfg.Rules, log)
	if err != nil {
		return err
	}
	if reg.Len() == 0 {
		log.Warn("No rules are enabled")
	}

	formatter, err := lint.NewFormatter(env.Format)
	if err != nil {
		return err
	}

	l := &linter{
		cfg:      env.Cfg,
		rpt:      env.Rpt,
		log:      log,
		registry: reg,
		parser:   css.NewParser(log),
	}

	srcs, err := l.discover(ctx, args)
	if err != nil {
		return err
	}
	diags, err := l.checkAll(ctx, srcs)
	if err != nil {
		return err
	}

	out := env.Out
	if out == nil {
		out = io.Discard
	}
	if err := formatter.Write(out, diags); err != nil {
		return err
	}

	errs, warns := lint.Count(diags)
	failed := l.failed.Load()
	log.Info("Stylesheets checked",
		zap.Int("sources", len(srcs)), zap.Int("errors", errs), zap.Int("warnings", warns), zap.Int64("failed", failed))

	switch {
	case failed > 0:
		return fmt.Errorf("unable to check %d source(s)", failed)
	case errs > 0:
		return fmt.Errorf("%d problem(s) with error severity found", errs)
	}
	return nil
}

type linter struct {
	cfg      *config.Config
	rpt      *config.Report
	log      *zap.Logger
	registry *lint.Registry
	parser   *css.Parser
	failed   atomic.Int64
}

// checkAll checks sources in parallel. Unreadable sources are logged and
// counted, broken tree invariants stop everything.
func (l *linter) checkAll(ctx context.Context, srcs []source) ([]lint.Diagnostic, error) {
	jobs := l.cfg.Sources.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([][]lint.Diagnostic, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, src := range srcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			diags, err := l.checkOne(src)
			var ie *nesting.InvariantError
			switch {
			case errors.As(err, &ie):
				return err
			case err != nil:
				l.log.Error("Unable to check stylesheet", zap.String("source", src.name), zap.Error(err))
				l.failed.Add(1)
				return nil
			}
			results[i] = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []lint.Diagnostic
	for _, r := range results {
		all = append(all, r...)
	}
	lint.SortDiagnostics(all)
	return all, nil
}

func (l *linter) checkOne(src source) (diags []lint.Diagnostic, rerr error) {
	defer func(start time.Time) {
		if r := recover(); r != nil {
			l.log.Error("Check ended with panic",
				zap.Any("panic", r), zap.String("source", src.name), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("check panic: %v", r)
			return
		}
		l.log.Debug("Stylesheet checked",
			zap.String("source", src.name), zap.Int("problems", len(diags)), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	raw, err := src.read()
	if err != nil {
		return nil, err
	}
	text, err := css.Decode(raw, l.cfg.Sources.Charset)
	if err != nil {
		return nil, err
	}

	tree, err := l.parser.Parse(text, src.name, common.SyntaxFromExt(strings.ToLower(filepath.Ext(src.name))))
	if err != nil {
		var se *css.SyntaxError
		if errors.As(err, &se) {
			l.log.Debug("Stylesheet has syntax errors", zap.String("source", src.name), zap.Error(err))
			return []lint.Diagnostic{lint.FromSyntaxError(se)}, nil
		}
		return nil, err
	}

	if l.rpt != nil {
		l.rpt.StoreData(path.Join("tree", config.CleanFileName(src.name)+".txt"), []byte(tree.Dump()))
	}
	return l.registry.Check(tree)
}
