package domain

import (
	"strconv"
	"strings"

	m "slinx.dev/pkg/slinx/internal/model"
)

// Element-to-model mapping for system markup. Every function here is
// shallow: cross-file subsystem references are recorded as SystemRef and
// resolved by the parser's link pass.

func (p *Parser) parseSystemElement(el *element, path m.Path) *m.System {
	sys := &m.System{Properties: make(map[string]string)}
	for i := range el.Children {
		child := &el.Children[i]
		switch child.tag() {
		case "P":
			if name, ok := child.attr("Name"); ok {
				sys.Properties[name] = child.text()
			}
		case "Block", "Reference":
			sys.Blocks = append(sys.Blocks, *p.parseBlockElement(child, path))
		case "Line":
			sys.Lines = append(sys.Lines, parseLineElement(child))
		case "Annotation":
			sys.Annotations = append(sys.Annotations, parseAnnotationElement(child))
		case "chart":
			sys.Chart = p.parseChartElement(child, path)
		}
	}
	return sys
}

func (p *Parser) parseBlockElement(el *element, path m.Path) *m.Block {
	blk := &m.Block{
		Type:       el.attrOr("BlockType", ""),
		Name:       el.attrOr("Name", ""),
		Properties: make(map[string]string),
	}
	// <Reference> elements behave like blocks of type Reference.
	if blk.Type == "" && el.tag() == "Reference" {
		blk.Type = "Reference"
	}
	if raw, ok := el.attr("SID"); ok {
		if sid, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			blk.SID = &sid
		} else {
			p.diagnose(DiagFieldCoercion, path, blk.Name, "SID "+strconv.Quote(raw)+" is not an integer")
		}
	}

	style := &m.BlockStyle{}
	styled := false

	for i := range el.Children {
		child := &el.Children[i]
		switch child.tag() {
		case "P":
			name, ok := child.attr("Name")
			if !ok {
				continue
			}
			value := child.text()
			if ref, ok := child.attr("Ref"); ok {
				value = ref
			}
			blk.Properties[name] = value

			switch name {
			case "Position":
				if rect, ok := m.ParseRect(value); ok {
					blk.Position = &rect
				} else {
					p.diagnose(DiagFieldCoercion, path, blk.Name, "Position "+strconv.Quote(value)+" is not a rectangle")
				}
			case "ZOrder":
				if z, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
					blk.ZOrder = &z
				} else {
					p.diagnose(DiagFieldCoercion, path, blk.Name, "ZOrder "+strconv.Quote(value)+" is not an integer")
				}
			case "Commented":
				blk.Commented = isOn(value)
			case "SFBlockType":
				if value == "MATLAB Function" {
					blk.CodeBlock = true
				}
			case "Script":
				blk.Code = value
			case "BackgroundColor":
				style.BackgroundColor = value
				styled = true
			case "ShowName":
				show := !strings.EqualFold(value, "off")
				style.ShowName = &show
				styled = true
			case "FontSize":
				if size, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
					style.FontSize = &size
					styled = true
				} else {
					p.diagnose(DiagFieldCoercion, path, blk.Name, "FontSize "+strconv.Quote(value)+" is not an integer")
				}
			case "FontWeight":
				style.FontWeight = value
				styled = true
			}
		case "PortCounts":
			blk.Ports = append(blk.Ports, portsFromCounts(child)...)
		case "PortProperties":
			blk.Ports = append(blk.Ports, parsePortProperties(child)...)
		case "System":
			if ref, ok := child.attr("Ref"); ok {
				blk.SystemRef = ref
			} else {
				blk.Subsystem = p.parseSystemElement(child, path)
			}
		case "Mask":
			blk.Mask = parseMaskElement(child)
		case "Annotation":
			ann := parseAnnotationElement(child)
			blk.Annotations = append(blk.Annotations, ann.Text)
		}
	}

	if styled {
		blk.Style = style
	}
	if blk.Mask != nil {
		blk.MaskDisplay = EvaluateMaskDisplay(blk.Mask)
	}
	return blk
}

// portsFromCounts expands a <PortCounts in="n" out="n"/> element into
// sequentially indexed ports.
func portsFromCounts(el *element) []m.Port {
	var ports []m.Port
	add := func(dir m.PortDirection, raw string) {
		count, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return
		}
		for i := 1; i <= count; i++ {
			idx := i
			ports = append(ports, m.Port{Direction: dir, Index: &idx})
		}
	}
	if raw, ok := el.attr("in"); ok {
		add(m.PortIn, raw)
	}
	if raw, ok := el.attr("out"); ok {
		add(m.PortOut, raw)
	}
	return ports
}

func parsePortProperties(el *element) []m.Port {
	var ports []m.Port
	for i := range el.Children {
		child := &el.Children[i]
		if child.tag() != "Port" {
			continue
		}
		port := m.Port{
			Direction:  portDirection(child.attrOr("Type", "")),
			Properties: child.properties(),
		}
		if raw, ok := child.attr("Index"); ok {
			if idx, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				port.Index = &idx
			}
		}
		ports = append(ports, port)
	}
	return ports
}

func portDirection(s string) m.PortDirection {
	if strings.EqualFold(s, "out") || strings.EqualFold(s, "output") {
		return m.PortOut
	}
	return m.PortIn
}

func parseMaskElement(el *element) *m.Mask {
	mask := &m.Mask{}
	for i := range el.Children {
		child := &el.Children[i]
		switch child.tag() {
		case "Display":
			mask.Display = child.text()
		case "Description":
			mask.Description = child.text()
		case "Initialization":
			mask.Initialization = child.text()
		case "Help":
			mask.Help = child.text()
		case "MaskParameter":
			mask.Parameters = append(mask.Parameters, parseMaskParameterElement(child))
		case "DialogControl":
			mask.Dialog = append(mask.Dialog, parseDialogControlElement(child))
		}
	}
	return mask
}

func parseMaskParameterElement(el *element) m.MaskParameter {
	raw := el.attrOr("Type", "")
	param := m.MaskParameter{
		Name:    el.attrOr("Name", ""),
		Type:    m.MaskParamTypeFromString(raw),
		TypeRaw: raw,
	}
	if v, ok := el.attr("Tunable"); ok {
		tunable := isOn(v)
		param.Tunable = &tunable
	}
	if v, ok := el.attr("Visible"); ok {
		visible := isOn(v)
		param.Visible = &visible
	}
	for i := range el.Children {
		child := &el.Children[i]
		switch child.tag() {
		case "Prompt":
			param.Prompt = child.text()
		case "Value":
			value := child.text()
			param.Value = &value
		case "Callback":
			param.Callback = child.text()
		case "TypeOptions":
			for j := range child.Children {
				opt := &child.Children[j]
				if opt.tag() == "Option" {
					param.Options = append(param.Options, opt.text())
				}
			}
		}
	}
	return param
}

func parseDialogControlElement(el *element) m.DialogControl {
	raw := el.attrOr("Type", "")
	ctl := m.DialogControl{
		Type: m.DialogControlTypeFromString(raw),
		Name: el.attrOr("Name", ""),
	}
	for i := range el.Children {
		child := &el.Children[i]
		switch child.tag() {
		case "Prompt":
			ctl.Prompt = child.text()
		case "DialogControl":
			ctl.Children = append(ctl.Children, parseDialogControlElement(child))
		}
	}
	return ctl
}

func parseLineElement(el *element) m.Line {
	line := m.Line{}
	for i := range el.Children {
		child := &el.Children[i]
		switch child.tag() {
		case "P":
			name, _ := child.attr("Name")
			value := child.text()
			switch name {
			case "Name":
				line.Name = value
			case "Src":
				line.Src = parseEndpoint(value)
			case "Dst":
				line.Dst = parseEndpoint(value)
			case "Labels":
				line.Labels = value
			case "Points":
				line.Points = append(line.Points, parsePoints(value)...)
			}
		case "Branch":
			line.Branches = append(line.Branches, parseBranchElement(child))
		}
	}
	return line
}

func parseBranchElement(el *element) m.Branch {
	branch := m.Branch{}
	for i := range el.Children {
		child := &el.Children[i]
		switch child.tag() {
		case "P":
			name, _ := child.attr("Name")
			value := child.text()
			switch name {
			case "Name":
				branch.Name = value
			case "Dst":
				branch.Dst = parseEndpoint(value)
			case "Labels":
				branch.Labels = value
			case "Points":
				branch.Points = append(branch.Points, parsePoints(value)...)
			}
		case "Branch":
			branch.Branches = append(branch.Branches, parseBranchElement(child))
		}
	}
	return branch
}

func parseAnnotationElement(el *element) m.Annotation {
	ann := m.Annotation{
		SID:        el.attrOr("SID", ""),
		Properties: el.properties(),
	}
	for name, value := range ann.Properties {
		switch name {
		case "Name":
			ann.Text = value
		case "Position":
			ann.Position = value
		case "Interpreter":
			ann.Interpreter = value
		}
	}
	return ann
}

// parseChartElement keeps the embedded state-machine payload opaque: id,
// name, the first script body found and the raw properties.
func (p *Parser) parseChartElement(el *element, path m.Path) *m.Chart {
	chart := &m.Chart{Properties: el.properties()}
	if raw, ok := el.attr("id"); ok {
		if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			chart.ID = &id
		} else {
			p.diagnose(DiagFieldCoercion, path, "chart", "id "+strconv.Quote(raw)+" is not an integer")
		}
	}
	chart.Name = chart.Properties["name"]
	if script := el.descendant("eml"); script != nil {
		for i := range script.Children {
			c := &script.Children[i]
			if c.tag() == "P" && c.attrOr("Name", "") == "script" {
				chart.Script = c.text()
				break
			}
		}
	}
	return chart
}

// parseEndpoint parses "5#out:1" into an endpoint reference. Malformed
// endpoints yield nil, leaving the line end unresolved.
func parseEndpoint(s string) *m.Endpoint {
	sid, rest, ok := strings.Cut(s, "#")
	if !ok {
		return nil
	}
	dir, idx, ok := strings.Cut(rest, ":")
	if !ok {
		return nil
	}
	index, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return nil
	}
	return &m.Endpoint{
		SID:       strings.TrimSpace(sid),
		Direction: portDirection(strings.TrimSpace(dir)),
		PortIndex: index,
	}
}

// parsePoints parses "[x, y]" or "[x, y; x2, y2; ...]" waypoint lists.
// Malformed pairs are dropped.
func parsePoints(s string) []m.Point {
	inner := strings.TrimSpace(s)
	inner = strings.TrimPrefix(inner, "[")
	inner = strings.TrimSuffix(inner, "]")
	var points []m.Point
	for _, pair := range strings.Split(inner, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			continue
		}
		x, errX := strconv.Atoi(strings.TrimSpace(xs))
		y, errY := strconv.Atoi(strings.TrimSpace(ys))
		if errX != nil || errY != nil {
			continue
		}
		points = append(points, m.Point{X: x, Y: y})
	}
	return points
}
