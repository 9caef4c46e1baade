package diagfmt

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"flexparse/internal/diag"
	"flexparse/internal/source"
)

// SARIF 2.1.0 constants
const (
	SarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	SarifVersion   = "2.1.0"
)

// SarifLog is the top-level SARIF report structure
type SarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SarifRun `json:"runs"`
}

// SarifRun represents a single invocation of the tool
type SarifRun struct {
	Tool              SarifTool              `json:"tool"`
	AutomationDetails SarifAutomationDetails `json:"automationDetails"`
	Invocations       []SarifInvocation      `json:"invocations,omitempty"`
	Results           []SarifResult          `json:"results"`
}

// SarifAutomationDetails lets consumers tell runs of the same tool apart.
type SarifAutomationDetails struct {
	GUID string `json:"guid"`
}

type SarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

// SarifTool describes the analysis tool
type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

// SarifDriver contains tool metadata
type SarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []SarifRule `json:"rules,omitempty"`
}

// SarifRule describes one diagnostic code.
type SarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription SarifMessage `json:"shortDescription"`
}

// SarifResult represents a single diagnostic
type SarifResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          SarifMessage    `json:"message"`
	Locations        []SarifLocation `json:"locations"`
	RelatedLocations []SarifLocation `json:"relatedLocations,omitempty"`
}

// SarifMessage contains message text
type SarifMessage struct {
	Text string `json:"text"`
}

// SarifLocation describes where a result was found
type SarifLocation struct {
	ID               int                   `json:"id,omitempty"`
	PhysicalLocation SarifPhysicalLocation `json:"physicalLocation"`
	Message          *SarifMessage         `json:"message,omitempty"`
}

// SarifPhysicalLocation specifies file location
type SarifPhysicalLocation struct {
	ArtifactLocation SarifArtifactLocation `json:"artifactLocation"`
	Region           SarifRegion           `json:"region"`
}

// SarifArtifactLocation identifies the unit
type SarifArtifactLocation struct {
	URI string `json:"uri"`
}

// SarifRegion specifies the line/column range. Stream units have no lines;
// their token range is carried in charOffset/charLength.
type SarifRegion struct {
	StartLine   uint32 `json:"startLine,omitempty"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
	CharOffset  uint32 `json:"charOffset"`
	CharLength  uint32 `json:"charLength"`
}

// BuildSarif converts a report to a SARIF log with one run.
func BuildSarif(rep Report, meta SarifRunMeta) SarifLog {
	name := meta.ToolName
	if name == "" {
		name = "flexparse"
	}
	guid := meta.RunGUID
	if guid == "" {
		guid = uuid.NewString()
	}
	run := SarifRun{
		Tool:              SarifTool{Driver: SarifDriver{Name: name, Version: meta.ToolVersion}},
		AutomationDetails: SarifAutomationDetails{GUID: guid},
		Results:           []SarifResult{},
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []SarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: rep.Errors == 0}}
	}

	seen := make(map[diag.Code]bool)
	for i := range rep.Entries {
		e := &rep.Entries[i]
		if !seen[e.Code] {
			seen[e.Code] = true
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SarifRule{
				ID:               e.Code.ID(),
				Name:             e.Code.Title(),
				ShortDescription: SarifMessage{Text: e.Code.Title()},
			})
		}
		res := SarifResult{
			RuleID:    e.Code.ID(),
			Level:     sarifLevel(e.Severity),
			Message:   SarifMessage{Text: e.Message},
			Locations: []SarifLocation{{PhysicalLocation: sarifPhysical(e.Primary)}},
		}
		for j, l := range e.Secondary {
			res.RelatedLocations = append(res.RelatedLocations, SarifLocation{
				ID:               j + 1,
				PhysicalLocation: sarifPhysical(l.Location),
				Message:          &SarifMessage{Text: l.Message},
			})
		}
		run.Results = append(run.Results, res)
	}

	return SarifLog{Schema: SarifSchemaURI, Version: SarifVersion, Runs: []SarifRun{run}}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, us *source.UnitSet, meta SarifRunMeta) error {
	rep := BuildBag(bag, us, BuildOpts{PathMode: PathModeRelative})
	return encodeJSON(w, BuildSarif(rep, meta))
}

// SarifRenderer adapts SARIF output to the Renderer interface.
type SarifRenderer struct {
	Meta SarifRunMeta
}

func (r SarifRenderer) Render(w io.Writer, rep Report) error {
	return encodeJSON(w, BuildSarif(rep, r.Meta))
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "note"
}

func sarifPhysical(l Location) SarifPhysicalLocation {
	region := SarifRegion{
		CharOffset: l.Span.Start,
		CharLength: l.Span.Len(),
	}
	if !l.IsStream() {
		region.StartLine = l.Start.Line
		region.StartColumn = l.Start.Col
		region.EndLine = l.End.Line
		region.EndColumn = l.End.Col
	}
	return SarifPhysicalLocation{
		ArtifactLocation: SarifArtifactLocation{URI: formatFileURI(l.Path)},
		Region:           region,
	}
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
