package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"flexparse/internal/diag"
	"flexparse/internal/lexer"
	"flexparse/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	us := source.NewUnitSet()
	content := "[server]\nname = \"unterminated\n"
	unitID := us.AddText("test.kv", content)

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{Unit: unitID, Start: 16, End: 29},
		"Unterminated string literal",
	).WithNote(source.Span{Unit: unitID, Start: 0, End: 8}, "inside this section")
	bag.Add(d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	}
	if err := JSON(&buf, bag, us, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	// Парсим JSON чтобы убедиться что он валидный
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	if output.Count != 1 || output.Errors != 1 || output.Warnings != 0 {
		t.Fatalf("unexpected counters: %+v", output)
	}

	got := output.Diagnostics[0]
	if got.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", got.Severity)
	}
	if got.Code != "LEX1002" {
		t.Errorf("Expected code=LEX1002, got %s", got.Code)
	}
	if got.Message != "Unterminated string literal" {
		t.Errorf("unexpected message %q", got.Message)
	}

	loc := got.Location
	if loc.File != "test.kv" || loc.UnitKind != "text" {
		t.Errorf("unexpected file %q (%s)", loc.File, loc.UnitKind)
	}
	if loc.StartByte != 16 || loc.EndByte != 29 {
		t.Errorf("unexpected bytes %d..%d", loc.StartByte, loc.EndByte)
	}
	if loc.StartLine != 2 || loc.StartCol != 8 || loc.EndLine != 2 || loc.EndCol != 21 {
		t.Errorf("unexpected positions %+v", loc)
	}

	if len(got.Notes) != 1 || got.Notes[0].Message != "inside this section" || got.Notes[0].Location.EndCol != 9 {
		t.Errorf("unexpected notes %+v", got.Notes)
	}
}

// TestJSONOptions проверяет Max, IncludePositions и IncludeNotes
func TestJSONOptions(t *testing.T) {
	us := source.NewUnitSet()
	unitID := us.AddText("a.kv", "a\nb\nc\n")

	bag := diag.NewBag(0)
	for i := range uint32(3) {
		sp := source.Span{Unit: unitID, Start: i * 2, End: i*2 + 1}
		bag.Add(diag.NewError(diag.SynUnexpected, sp, "bad").WithNote(sp, "here"))
	}

	out := BuildDiagnosticsOutput(bag, us, JSONOpts{Max: 2})
	if out.Count != 2 || out.Errors != 3 {
		t.Fatalf("Max should cut output only: %+v", out)
	}
	for _, d := range out.Diagnostics {
		if d.Location.StartLine != 0 {
			t.Error("positions must be omitted")
		}
		if len(d.Notes) != 0 {
			t.Error("notes must be omitted")
		}
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, us, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "start_line") {
		t.Errorf("start_line should be omitted:\n%s", buf.String())
	}
}

func TestJSONStreamLocation(t *testing.T) {
	us := source.NewUnitSet()
	unit := us.AddStream("macro", 3)
	rep := Build([]diag.Diagnostic{
		diag.NewError(diag.SynExpected, source.Span{Unit: unit, Kind: source.UnitStream, Start: 1, End: 2}, "expected `,`"),
	}, us, BuildOpts{})

	var buf bytes.Buffer
	if err := (JSONRenderer{Opts: JSONOpts{IncludePositions: true}}).Render(&buf, rep); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	loc := out.Diagnostics[0].Location
	if loc.UnitKind != "stream" || loc.StartByte != 1 || loc.EndByte != 2 || loc.StartLine != 0 {
		t.Fatalf("unexpected stream location %+v", loc)
	}
}

func TestSarif(t *testing.T) {
	us := source.NewUnitSet()
	id := us.AddText("cfg.kv", "port = 70000\nport = 1\n")
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemOutOfRange, source.Span{Unit: id, Start: 7, End: 12}, "port 70000 out of range"))
	bag.Add(diag.New(diag.SevWarning, diag.SemDuplicateKey, source.Span{Unit: id, Start: 13, End: 17}, "duplicate key `port`").
		WithNote(source.Span{Unit: id, Start: 0, End: 4}, "first defined here"))

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "flexparse", ToolVersion: "1.2.3", InvocationArgs: []string{"check", "cfg.kv"}}
	if err := Sarif(&buf, bag, us, meta); err != nil {
		t.Fatal(err)
	}

	var log SarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "flexparse" || len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("unexpected driver %+v", run.Tool.Driver)
	}
	if _, err := uuid.Parse(run.AutomationDetails.GUID); err != nil {
		t.Errorf("run guid %q: %v", run.AutomationDetails.GUID, err)
	}
	if got := BuildSarif(Report{}, SarifRunMeta{RunGUID: "fixed"}).Runs[0].AutomationDetails.GUID; got != "fixed" {
		t.Errorf("RunGUID ignored: %q", got)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Error("run with errors must not be successful")
	}

	first := run.Results[0]
	if first.RuleID != "SEM3002" || first.Level != "error" {
		t.Errorf("unexpected first result %+v", first)
	}
	region := first.Locations[0].PhysicalLocation.Region
	if region.StartLine != 1 || region.StartColumn != 8 || region.CharOffset != 7 || region.CharLength != 5 {
		t.Errorf("unexpected region %+v", region)
	}

	second := run.Results[1]
	if second.Level != "warning" || len(second.RelatedLocations) != 1 {
		t.Fatalf("unexpected second result %+v", second)
	}
	if second.RelatedLocations[0].Message.Text != "first defined here" {
		t.Errorf("unexpected related location %+v", second.RelatedLocations[0])
	}
}

func TestFormatTokens(t *testing.T) {
	us := source.NewUnitSet()
	id := us.AddText("t.calc", "a<=1")
	toks := lexer.Tokenize(us.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, us); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got:\n%s", buf.String())
	}
	if lines[1] != `  2: Punct      "<" at 1:2-1:3 (joint)` {
		t.Errorf("unexpected row %q", lines[1])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out[1]["spacing"] != "Joint" || out[2]["spacing"] != "Alone" || out[3]["value"] != float64(1) {
		t.Errorf("unexpected token json %v", out)
	}
}
