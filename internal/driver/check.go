package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"flexparse/internal/cursor"
	"flexparse/internal/diag"
	"flexparse/internal/grammar"
	"flexparse/internal/input"
	"flexparse/internal/parse"
	"flexparse/internal/source"
	"flexparse/internal/token"
	"flexparse/internal/trace"
)

// Options controls Check.
type Options struct {
	// Grammar forces one grammar for every file; nil picks by extension.
	Grammar        grammar.Grammar
	MaxDiagnostics int
	MaxDepth       int
	SkipTrivia     bool
	Jobs           int
	Cache          *TokenCache
	Progress       ProgressSink
	BaseDir        string
}

// UnitResult is the outcome of checking one file.
type UnitResult struct {
	Path    string
	UnitID  source.UnitID
	Grammar string
	Lines   []string
	Bag     *diag.Bag
	// Err holds a fatal grammar or span error; it is also in Bag.
	Err       error
	CacheHit  bool
	Elapsed   time.Duration
	loadError bool
}

// Failed reports whether the unit produced errors.
func (r *UnitResult) Failed() bool {
	return r.Err != nil || r.loadError || r.Bag.HasErrors()
}

// ErrNoGrammar is reported for files no grammar claims.
var ErrNoGrammar = errors.New("no grammar for file")

// Check parses every file in parallel. Files are loaded up front in order,
// so unit ids follow the order of paths; results do too. Cancellation is
// observed between units only.
func Check(ctx context.Context, paths []string, opts Options) (*source.UnitSet, []UnitResult, error) {
	runSpan := trace.BeginFrom(ctx, trace.ScopeDriver, "check").
		WithExtra("files", strconv.Itoa(len(paths)))
	defer runSpan.End("")
	ctx = trace.WithSpan(ctx, runSpan)

	us := source.NewUnitSet()
	if opts.BaseDir != "" {
		us.SetBaseDir(opts.BaseDir)
	}
	if len(paths) == 0 {
		return us, nil, nil
	}

	// Предзагружаем все файлы: UnitSet не потокобезопасен на запись
	unitIDs := make([]source.UnitID, len(paths))
	loadErrors := make(map[int]error, len(paths))
	for i, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := us.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		unitIDs[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]UnitResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				results[i] = UnitResult{Path: path, Bag: bag, loadError: true}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			gr := opts.Grammar
			if gr == nil {
				var ok bool
				if gr, ok = grammar.ForPath(path); !ok {
					err := fmt.Errorf("%w: %s", ErrNoGrammar, path)
					bag := diag.NewBag(opts.MaxDiagnostics)
					bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, err.Error()))
					results[i] = UnitResult{Path: path, UnitID: unitIDs[i], Bag: bag, loadError: true}
					emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
					return nil
				}
			}

			results[i] = CheckUnit(gctx, us.Get(unitIDs[i]), gr, opts)
			results[i].Path = path
			return nil
		})
	}

	// Ждём завершения всех горутин
	if err := g.Wait(); err != nil {
		return us, results, err
	}
	return us, results, nil
}

// CheckUnit runs g over one unit already in a UnitSet. Its trace spans
// nest under the span carried by ctx.
func CheckUnit(ctx context.Context, unit *source.Unit, g grammar.Grammar, opts Options) UnitResult {
	tracer := trace.FromContext(ctx)
	started := time.Now()
	unitSpan := trace.BeginFrom(ctx, trace.ScopeUnit, "unit").
		WithExtra("unit", unit.Name).
		WithExtra("grammar", g.Name())

	res := UnitResult{
		Path:    unit.Name,
		UnitID:  unit.ID,
		Grammar: g.Name(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	var src input.Source = input.NewText(unit)
	if g.Tokenized() {
		emit(opts.Progress, Event{File: unit.Name, Stage: StageLex, Status: StatusWorking})
		lexSpan := unitSpan.Child(trace.ScopePass, "lex")
		toks, hit := tokensFor(unit, res.Bag, opts.Cache)
		res.CacheHit = hit
		lexSpan.WithExtra("tokens", strconv.Itoa(len(toks))).
			WithExtra("cache", strconv.FormatBool(hit)).
			End("")

		stream, err := input.NewStream(unit.ID, toks, input.StreamOptions{SkipTrivia: opts.SkipTrivia})
		if err != nil {
			return finish(res, unitSpan, started, opts.Progress, err)
		}
		src = stream
	}

	emit(opts.Progress, Event{File: unit.Name, Stage: StageParse, Status: StatusWorking})
	parseSpan := unitSpan.Child(trace.ScopePass, "parse")
	st := parse.NewState(cursor.New(src)).WithTrace(tracer, parseSpan.ID())
	st.MaxDepth = opts.MaxDepth

	lines, diags, err := g.Check(st)
	res.Lines = lines
	addLimited(res.Bag, diags)
	parseSpan.WithExtra("diags", strconv.Itoa(len(diags))).End(outcomeLabel(err, diags))
	return finish(res, unitSpan, started, opts.Progress, err)
}

func finish(res UnitResult, sp *trace.Span, started time.Time, sink ProgressSink, err error) UnitResult {
	if err != nil {
		res.Err = err
		res.Bag.Add(parse.FatalDiagnostic(err))
	}
	res.Bag.Sort()
	res.Elapsed = time.Since(started)

	status := StatusDone
	if res.Failed() {
		status = StatusError
	}
	sp.End(string(status))
	emit(sink, Event{File: res.Path, Stage: StageParse, Status: status, Err: err, Elapsed: res.Elapsed})
	return res
}

func outcomeLabel(err error, diags []diag.Diagnostic) string {
	if err != nil {
		return "fatal"
	}
	for _, d := range diags {
		if d.Severity == diag.SevError {
			return "fail"
		}
	}
	return "ok"
}

// tokensFor lexes unit, going through the cache when there is one. Lexer
// diagnostics land in bag either way.
func tokensFor(unit *source.Unit, bag *diag.Bag, cache *TokenCache) ([]token.Token, bool) {
	if toks, diags, ok, err := cache.Get(unit); err == nil && ok {
		addLimited(bag, diags)
		return toks, true
	}
	lexBag := diag.NewBag(0)
	toks := lex(unit, lexBag)
	// кэш - best effort, ошибки записи не мешают проверке
	_ = cache.Put(unit, toks, lexBag.Items())
	addLimited(bag, lexBag.Items())
	return toks, false
}

func addLimited(bag *diag.Bag, ds []diag.Diagnostic) {
	for _, d := range ds {
		if !bag.Add(d) {
			return
		}
	}
}

// Summary counts results over a run.
type Summary struct {
	Files    int
	Failed   int
	Errors   int
	Warnings int
}

// Summarize counts errors and warnings across results.
func Summarize(results []UnitResult) Summary {
	s := Summary{Files: len(results)}
	for i := range results {
		r := &results[i]
		if r.Bag == nil {
			continue
		}
		if r.Failed() {
			s.Failed++
		}
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				s.Errors++
			case diag.SevWarning:
				s.Warnings++
			}
		}
	}
	return s
}

// Merge collects every unit's diagnostics into one bag, in unit order.
// Truncation for display is left to the renderer.
func Merge(results []UnitResult) *diag.Bag {
	out := diag.NewBag(0)
	for i := range results {
		if results[i].Bag != nil {
			out.AddAll(results[i].Bag.Items())
		}
	}
	out.Sort()
	return out
}
