package omml

import "strings"

// escaper replaces LaTeX special characters in a single pass, so the braces
// introduced for the backslash are not escaped again.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`^`, `\^{}`,
)

// Escape escapes LaTeX special characters in literal text.
func Escape(s string) string {
	return escaper.Replace(s)
}

var naryOperators = map[string]string{
	"∑": `\sum`,
	"∏": `\prod`,
	"∐": `\coprod`,
	"∫": `\int`,
	"∬": `\iint`,
	"∭": `\iiint`,
	"∮": `\oint`,
	"∯": `\oiint`,
	"⋂": `\bigcap`,
	"⋃": `\bigcup`,
	"⋁": `\bigvee`,
	"⋀": `\bigwedge`,
	"⋄": `\bigodot`,
	"⨀": `\bigodot`,
	"⊕": `\bigoplus`,
	"⨁": `\bigoplus`,
	"⊗": `\bigotimes`,
	"⨂": `\bigotimes`,
	"∧": `\land`,
	"∨": `\lor`,
}

var accents = map[string]string{
	"¯": `\bar`,
	"ˉ": `\bar`,
	"ˆ": `\hat`,
	"^": `\hat`,
	"ˇ": `\check`,
	"˘": `\breve`,
	"˙": `\dot`,
	"¨": `\ddot`,
	"˜": `\tilde`,
	"˚": `\mathring`,
	"˛": `\textpolhook`,
	"´": `\acute`,
	"ˊ": `\acute`,
	"`": `\grave`,
	"ˋ": `\grave`,

	// Combining forms, which is what Word writes by default.
	"\u0300": `\grave`,
	"\u0301": `\acute`,
	"\u0302": `\hat`,
	"\u0303": `\tilde`,
	"\u0304": `\bar`,
	"\u0305": `\bar`,
	"\u0306": `\breve`,
	"\u0307": `\dot`,
	"\u0308": `\ddot`,
	"\u030a": `\mathring`,
	"\u030c": `\check`,
	"\u20d7": `\vec`,
}

var functions = map[string]string{
	"sin":    `\sin`,
	"cos":    `\cos`,
	"tan":    `\tan`,
	"cot":    `\cot`,
	"sec":    `\sec`,
	"csc":    `\csc`,
	"arcsin": `\arcsin`,
	"arccos": `\arccos`,
	"arctan": `\arctan`,
	"sinh":   `\sinh`,
	"cosh":   `\cosh`,
	"tanh":   `\tanh`,
	"coth":   `\coth`,
	"log":    `\log`,
	"lg":     `\lg`,
	"ln":     `\ln`,
	"exp":    `\exp`,
	"det":    `\det`,
	"dim":    `\dim`,
	"mod":    `\bmod`,
	"gcd":    `\gcd`,
	"lim":    `\lim`,
	"sup":    `\sup`,
	"inf":    `\inf`,
	"max":    `\max`,
	"min":    `\min`,
	"arg":    `\arg`,
	"deg":    `\deg`,
}

var delimiters = map[string]string{
	"(": `(`,
	")": `)`,
	"[": `[`,
	"]": `]`,
	"{": `\{`,
	"}": `\}`,
	"|": `|`,
	"∣": `|`,
	"‖": `\|`,
	"∥": `\|`,
	"⌊": `\lfloor`,
	"⌋": `\rfloor`,
	"⌈": `\lceil`,
	"⌉": `\rceil`,
	"⟨": `\langle`,
	"⟩": `\rangle`,
	"⟪": `\langle\langle`,
	"⟫": `\rangle\rangle`,
	"<": `\langle`,
	">": `\rangle`,
}

// closers maps an opening delimiter to its closing counterpart.
var closers = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
	"<": ">",
	"⟨": "⟩",
	"⟪": "⟫",
	"|": "|",
	"∣": "∣",
	"‖": "‖",
	"∥": "∥",
	"⌊": "⌋",
	"⌈": "⌉",
}

// formatDelimiter returns the LaTeX form of a delimiter character for use
// after \left or \right. An empty character is the invisible delimiter.
// Control words get a trailing space so they do not absorb the next letter.
func formatDelimiter(c string) string {
	if c == "" {
		return "."
	}
	d, ok := delimiters[c]
	if !ok {
		d = Escape(c)
	}
	if last := d[len(d)-1]; strings.HasPrefix(d, `\`) && (last >= 'a' && last <= 'z' || last >= 'A' && last <= 'Z') {
		d += " "
	}
	return d
}

// closing returns the closing form of c when c is a known opener.
func closing(c string) string {
	if cl, ok := closers[c]; ok {
		return cl
	}
	return c
}
