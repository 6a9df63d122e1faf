package domain

import (
	"encoding/json"
	"fmt"
	"log/slog"

	m "slinx.dev/pkg/slinx/internal/model"
)

// manifestDoc mirrors the top-level shape of a graphical-interface
// manifest. Entries are kept raw so that one malformed record is skipped
// without losing the rest.
type manifestDoc struct {
	GraphicalInterface *struct {
		ExternalFileReferences []json.RawMessage `json:"ExternalFileReferences"`
		SolverName             *string           `json:"SolverName"`
	} `json:"GraphicalInterface"`
}

type manifestRef struct {
	Path      *string `json:"Path"`
	Reference *string `json:"Reference"`
	SID       *string `json:"SID"`
	Type      *string `json:"Type"`
}

// ParseGraphicalInterfaceFile reads and parses the graphical-interface
// manifest: external-file-reference records plus solver configuration.
// Unknown reference-kind and solver tokens map to their sentinels; records
// missing required fields are skipped and recorded as diagnostics. Only IO
// failures and undecodable JSON fail the call.
func (p *Parser) ParseGraphicalInterfaceFile(file m.Path) (*m.GraphicalInterface, error) {
	text, err := p.read(file)
	if err != nil {
		return nil, fmt.Errorf("parse graphical interface: %w", err)
	}

	var doc manifestDoc
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &ParseError{Path: file, Hint: "malformed manifest", Err: err}
	}
	if doc.GraphicalInterface == nil {
		return nil, &ParseError{Path: file, Hint: "no GraphicalInterface object"}
	}

	gi := &m.GraphicalInterface{}
	for i, raw := range doc.GraphicalInterface.ExternalFileReferences {
		var ref manifestRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			p.diagnose(DiagSkippedReference, file, fmt.Sprintf("entry %d", i), err.Error())
			continue
		}
		if ref.Path == nil || ref.Reference == nil || ref.SID == nil || ref.Type == nil {
			p.diagnose(DiagSkippedReference, file, fmt.Sprintf("entry %d", i), "missing required field")
			continue
		}
		gi.References = append(gi.References, m.ExternalFileReference{
			Path:      *ref.Path,
			Reference: *ref.Reference,
			SID:       *ref.SID,
			Kind:      m.ReferenceKindFromString(*ref.Type),
			KindRaw:   *ref.Type,
		})
	}

	if doc.GraphicalInterface.SolverName != nil {
		gi.Solver = m.SolverNameFromString(*doc.GraphicalInterface.SolverName)
		gi.SolverRaw = *doc.GraphicalInterface.SolverName
		if gi.Solver == m.SolverUnset {
			slog.Debug("unknown solver name preserved as unset", "path", file, "solver", gi.SolverRaw)
		}
	}

	slog.Debug("parsed graphical interface", "path", file, "references", len(gi.References))

	return gi, nil
}
