package domain

import (
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"slinx.dev/pkg/slinx/internal/adapter"
	m "slinx.dev/pkg/slinx/internal/model"
)

// readConcurrency bounds the parallel fetches of referenced system files.
const readConcurrency = 4

// Parser walks a tree of interlinked system files and produces a validated
// model tree. Paths are logical paths of the ContentSource, which carries
// its own root. One Parser owns one ContentSource; two concurrent parses
// must use two Parsers.
type Parser struct {
	source adapter.ContentSource

	// srcMu serializes source reads: a ContentSource may cache and is not
	// required to be safe for concurrent use.
	srcMu sync.Mutex

	diagMu sync.Mutex
	diags  []Diagnostic
}

// NewParser constructs a Parser over a content source.
func NewParser(source adapter.ContentSource) *Parser {
	return &Parser{source: source}
}

// Diagnostics returns the contained, non-fatal issues recorded since the
// parser was constructed, in the order they were found.
func (p *Parser) Diagnostics() []Diagnostic {
	p.diagMu.Lock()
	defer p.diagMu.Unlock()
	out := make([]Diagnostic, len(p.diags))
	copy(out, p.diags)
	return out
}

func (p *Parser) diagnose(kind DiagnosticKind, file m.Path, subject, detail string) {
	p.diagMu.Lock()
	defer p.diagMu.Unlock()
	p.diags = append(p.diags, Diagnostic{Kind: kind, Path: string(file), Subject: subject, Detail: detail})
}

func (p *Parser) read(file m.Path) (string, error) {
	p.srcMu.Lock()
	defer p.srcMu.Unlock()
	return p.source.Read(file)
}

func (p *Parser) list(dir m.Path) ([]m.Path, error) {
	p.srcMu.Lock()
	defer p.srcMu.Unlock()
	return p.source.List(dir)
}

// ParseSystemFile reads and parses a system file, recursively resolving
// every cross-file subsystem reference reachable from it. IO failures and
// malformed markup at the requested file fail the call; failures inside
// referenced files degrade to absent subsystems and are recorded as
// diagnostics. A reference cycle fails the call with a ParseError wrapping
// ErrCycle.
func (p *Parser) ParseSystemFile(file m.Path) (*m.System, error) {
	visited := map[string]bool{cleanPath(file): true}
	text, err := p.read(file)
	if err != nil {
		return nil, fmt.Errorf("parse system: %w", err)
	}
	sys, err := p.parseSystemText(text, file)
	if err != nil {
		return nil, err
	}
	if err := p.resolveSubsystems(sys, dirOf(file), visited); err != nil {
		return nil, err
	}
	slog.Debug("parsed system file", "path", file, "blocks", len(sys.Blocks), "lines", len(sys.Lines))
	return sys, nil
}

// parseSystemText deserializes markup and locates the <System> root.
func (p *Parser) parseSystemText(text string, file m.Path) (*m.System, error) {
	root, err := parseMarkup(text)
	if err != nil {
		return nil, &ParseError{Path: file, Hint: "malformed markup", Err: err}
	}
	sysEl := root.descendant("System")
	if sysEl == nil {
		return nil, &ParseError{Path: file, Hint: "no <System> element"}
	}
	return p.parseSystemElement(sysEl, file), nil
}

// resolveSubsystems is the link pass: it walks the freshly parsed tree and
// attaches the systems referenced by SystemRef. Referenced files are read
// concurrently but attached strictly in block order, so the resulting tree
// is independent of read completion order.
func (p *Parser) resolveSubsystems(sys *m.System, baseDir m.Path, visited map[string]bool) error {
	type job struct {
		blockIndex int
		file       m.Path
		text       string
		err        error
	}

	var jobs []*job
	for i := range sys.Blocks {
		blk := &sys.Blocks[i]
		if blk.Subsystem != nil {
			if err := p.resolveSubsystems(blk.Subsystem, baseDir, visited); err != nil {
				return err
			}
			continue
		}
		if blk.SystemRef == "" {
			continue
		}
		jobs = append(jobs, &job{blockIndex: i, file: resolveSystemReference(blk.SystemRef, baseDir)})
	}
	if len(jobs) == 0 {
		return nil
	}

	var group errgroup.Group
	group.SetLimit(readConcurrency)
	for _, j := range jobs {
		j := j
		group.Go(func() error {
			j.text, j.err = p.read(j.file)
			return nil
		})
	}
	// Reads never abort the group; failures degrade per block below.
	_ = group.Wait()

	for _, j := range jobs {
		blk := &sys.Blocks[j.blockIndex]
		key := cleanPath(j.file)
		if visited[key] {
			return &ParseError{Path: j.file, Hint: "referenced from " + blk.Name, Err: ErrCycle}
		}
		if j.err != nil {
			p.diagnose(DiagUnresolvedReference, j.file, blk.Name, j.err.Error())
			slog.Warn("unresolved subsystem reference", "path", j.file, "block", blk.Name, "error", j.err)
			continue
		}
		sub, err := p.parseSystemText(j.text, j.file)
		if err != nil {
			p.diagnose(DiagUnresolvedReference, j.file, blk.Name, err.Error())
			slog.Warn("unresolved subsystem reference", "path", j.file, "block", blk.Name, "error", err)
			continue
		}
		childVisited := make(map[string]bool, len(visited)+1)
		for k := range visited {
			childVisited[k] = true
		}
		childVisited[key] = true
		if err := p.resolveSubsystems(sub, dirOf(j.file), childVisited); err != nil {
			return err
		}
		blk.Subsystem = sub
	}
	return nil
}

// resolveSystemReference turns a reference like "system_22" into the file
// path it names: relative references resolve beside the referencing file,
// and the ".xml" extension is appended when missing.
func resolveSystemReference(ref string, baseDir m.Path) m.Path {
	candidate := ref
	if path.Ext(candidate) != ".xml" {
		candidate += ".xml"
	}
	if path.IsAbs(candidate) {
		return m.Path(candidate)
	}
	if baseDir == "" || baseDir == "." {
		return m.Path(candidate)
	}
	return m.Path(path.Join(string(baseDir), candidate))
}

func dirOf(file m.Path) m.Path {
	dir := path.Dir(string(file))
	if dir == "." {
		return ""
	}
	return m.Path(dir)
}

func cleanPath(file m.Path) string {
	p := strings.TrimPrefix(string(file), "./")
	return path.Clean(strings.TrimPrefix(p, "/"))
}
