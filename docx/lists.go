package docx

import "strconv"

// NumberingResolver resolves numbering definitions from numbering.xml.
type NumberingResolver struct {
	abstractNums map[string]*abstractNumXML // abstractNumId -> definition
	numMappings  map[string]*numXML         // numId -> instance
}

// NewNumberingResolver creates a resolver from parsed numbering.xml.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{
		abstractNums: make(map[string]*abstractNumXML),
		numMappings:  make(map[string]*numXML),
	}

	if numbering == nil {
		return nr
	}

	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		nr.abstractNums[an.AbstractNumID] = an
	}

	for i := range numbering.Nums {
		num := &numbering.Nums[i]
		nr.numMappings[num.NumID] = num
	}

	return nr
}

// Format returns the numFmt value (bullet, decimal, lowerLetter, ...) for
// a numbering instance and level. The lookup follows num, then any
// lvlOverride for the level, then the abstract definition. It reports
// false when any step of the chain is missing.
func (nr *NumberingResolver) Format(numID string, level int) (string, bool) {
	if nr == nil || numID == "" {
		return "", false
	}

	num, ok := nr.numMappings[numID]
	if !ok {
		return "", false
	}

	levelStr := strconv.Itoa(level)
	for _, o := range num.Overrides {
		if o.ILvl == levelStr && o.Lvl != nil && o.Lvl.NumFmt.Val != "" {
			return o.Lvl.NumFmt.Val, true
		}
	}

	abstractNum, ok := nr.abstractNums[num.AbstractNumID.Val]
	if !ok {
		return "", false
	}

	for _, lvl := range abstractNum.Levels {
		if lvl.ILvl == levelStr {
			if lvl.NumFmt.Val == "" {
				return "", false
			}
			return lvl.NumFmt.Val, true
		}
	}

	return "", false
}

// IsBulletFormat reports whether a numFmt value renders as an unordered
// list marker.
func IsBulletFormat(format string) bool {
	switch format {
	case "bullet", "dingbat", "image":
		return true
	}
	return false
}
