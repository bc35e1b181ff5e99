package docx

import (
	"strconv"
	"strings"
	"sync"
)

// ResolvedStyle contains the effective paragraph properties of a style
// after walking its basedOn chain.
type ResolvedStyle struct {
	ID        string
	Name      string
	Alignment string // raw w:jc value, empty when no style in the chain sets it
	NumID     string
	NumLevel  int // -1 when no style in the chain sets numbering
}

// HasNumbering reports whether the style chain supplies numbering.
func (rs *ResolvedStyle) HasNumbering() bool {
	return rs.NumLevel >= 0
}

// StyleResolver resolves paragraph styles from styles.xml with inheritance.
type StyleResolver struct {
	mu               sync.Mutex
	styles           map[string]*styleDefXML
	defaultParagraph string
	resolved         map[string]*ResolvedStyle
}

// NewStyleResolver creates a resolver from parsed styles.xml.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]*ResolvedStyle),
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		def := &styles.Styles[i]
		sr.styles[def.StyleID] = def
		if def.Type == "paragraph" && (def.Default == "1" || def.Default == "true") {
			sr.defaultParagraph = def.StyleID
		}
	}

	return sr
}

// Resolve returns the effective style for a paragraph style ID. An empty or
// unknown ID resolves to the document's default paragraph style. Results
// are cached and must not be modified.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if cached, ok := sr.resolved[styleID]; ok {
		return cached
	}

	resolved := &ResolvedStyle{ID: styleID, NumLevel: -1}

	id := styleID
	if _, ok := sr.styles[id]; !ok {
		if name, ok := builtInStyleName(id); ok {
			// Built-in styles referenced without a definition keep their
			// well-known names.
			resolved.Name = name
			sr.resolved[styleID] = resolved
			return resolved
		}
		id = sr.defaultParagraph
	}

	for _, sid := range sr.buildInheritanceChain(id) {
		sr.applyStyleDef(resolved, sr.styles[sid])
	}
	if def, ok := sr.styles[id]; ok {
		resolved.Name = def.Name.Val
	}

	sr.resolved[styleID] = resolved
	return resolved
}

// Name returns the display name of a paragraph style.
func (sr *StyleResolver) Name(styleID string) string {
	return sr.Resolve(styleID).Name
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		def, ok := sr.styles[current]
		if !ok {
			break
		}
		visited[current] = true
		chain = append([]string{current}, chain...) // Prepend
		current = def.BasedOn.Val
	}

	return chain
}

// applyStyleDef applies a style definition's paragraph properties.
func (sr *StyleResolver) applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	ppr := def.PPr
	if ppr.Justification.Val != "" {
		resolved.Alignment = ppr.Justification.Val
	}
	if ppr.NumPr != nil {
		numID, level := numbering(ppr.NumPr)
		resolved.NumID = numID
		resolved.NumLevel = level
	}
}

// numbering reads a numPr element. A missing ilvl means level 0.
func numbering(np *numberingPropsXML) (string, int) {
	var numID string
	if np.NumID != nil {
		numID = np.NumID.Val
	}
	level := 0
	if np.ILvl != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(np.ILvl.Val)); err == nil && n >= 0 {
			level = n
		}
	}
	return numID, level
}

// builtInStyleName maps Word's built-in paragraph style IDs to their style
// names.
func builtInStyleName(styleID string) (string, bool) {
	id := strings.ToLower(styleID)

	builtIn := map[string]string{
		"heading1": "heading 1", "heading2": "heading 2", "heading3": "heading 3",
		"heading4": "heading 4", "heading5": "heading 5", "heading6": "heading 6",
		"heading7": "heading 7", "heading8": "heading 8", "heading9": "heading 9",
		"title": "Title", "subtitle": "Subtitle", "caption": "caption",
		"listbullet": "List Bullet", "listnumber": "List Number",
	}

	name, ok := builtIn[id]
	return name, ok
}
