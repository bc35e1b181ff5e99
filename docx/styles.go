package docx

import "encoding/xml"

// contentTypesXML represents [Content_Types].xml
type contentTypesXML struct {
	XMLName   xml.Name          `xml:"Types"`
	Defaults  []defaultTypeXML  `xml:"Default"`
	Overrides []overrideTypeXML `xml:"Override"`
}

// defaultTypeXML maps a file extension to a content type.
type defaultTypeXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// overrideTypeXML maps a part name to a content type.
type overrideTypeXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string            `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string            `xml:"styleId,attr"`
	Default string            `xml:"default,attr"` // "1" if default style
	Name    valXML            `xml:"name"`
	BasedOn valXML            `xml:"basedOn"`
	PPr     paragraphPropsXML `xml:"pPr"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         valXML             `xml:"pStyle"`
	NumPr         *numberingPropsXML `xml:"numPr"`
	Justification valXML             `xml:"jc"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  *valXML `xml:"ilvl"`
	NumID *valXML `xml:"numId"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold      boolXML `xml:"b"`
	Italic    boolXML `xml:"i"`
	Underline boolXML `xml:"u"`
	Strike    boolXML `xml:"strike"`
	Color     valXML  `xml:"color"`
	Highlight valXML  `xml:"highlight"`
	VertAlign valXML  `xml:"vertAlign"`
}

// boolXML represents a toggle property. The element being present means
// true unless val turns it off.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// on reports the toggle state.
func (b boolXML) on() bool {
	if b.XMLName.Local == "" {
		return false
	}
	switch b.Val {
	case "false", "0", "off":
		return false
	}
	return true
}

// valXML is any element whose payload is a w:val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// rowPropsXML represents table row properties (<w:trPr>).
type rowPropsXML struct {
	Header boolXML `xml:"tblHeader"`
}

// cellPropsXML represents table cell properties (<w:tcPr>).
type cellPropsXML struct {
	GridSpan valXML  `xml:"gridSpan"`
	VMerge   *valXML `xml:"vMerge"`
}

// numberingXML represents word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string   `xml:"abstractNumId,attr"`
	Levels        []lvlXML `xml:"lvl"`
}

// lvlXML represents a numbering level.
type lvlXML struct {
	ILvl   string `xml:"ilvl,attr"`
	NumFmt valXML `xml:"numFmt"` // decimal, bullet, lowerLetter, upperLetter, lowerRoman, upperRoman
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string           `xml:"numId,attr"`
	AbstractNumID valXML           `xml:"abstractNumId"`
	Overrides     []lvlOverrideXML `xml:"lvlOverride"`
}

// lvlOverrideXML replaces one level of the abstract definition.
type lvlOverrideXML struct {
	ILvl string  `xml:"ilvl,attr"`
	Lvl  *lvlXML `xml:"lvl"`
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"` // External or empty (internal)
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName     xml.Name `xml:"coreProperties"`
	Title       string   `xml:"title"`
	Subject     string   `xml:"subject"`
	Creator     string   `xml:"creator"`
	Keywords    string   `xml:"keywords"`
	Description string   `xml:"description"`
}
