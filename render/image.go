package render

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"  // register GIF for sniffing
	_ "image/jpeg" // register JPEG for sniffing
	_ "image/png"  // register PNG for sniffing
	"mime"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP for sniffing
	_ "golang.org/x/image/tiff" // register TIFF for sniffing
	_ "golang.org/x/image/webp" // register WebP for sniffing
	"golang.org/x/net/html"

	"github.com/tsawler/quizdoc/docx"
	"github.com/tsawler/quizdoc/internal/diag"
)

// imageExtensions maps image MIME types to file extensions. It is
// consulted before the host MIME database so names are the same on every
// platform.
var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/pjpeg":   ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/tiff":    ".tif",
	"image/bmp":     ".bmp",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/x-wmf":   ".wmf",
	"image/wmf":     ".wmf",
	"image/x-emf":   ".emf",
	"image/emf":     ".emf",
}

// drawing renders a drawing: its text boxes first, then its picture. A
// successfully extracted picture advances the run's image counter.
func (r *Renderer) drawing(d *docx.Drawing, pos Position) Output {
	r.log.Debug("drawing found", "paragraph", pos.Para, "run", pos.Run, "image_in_run", *pos.Images)

	out := r.textBoxes(d, pos)

	if d.Blip() == "" {
		if len(d.TextBoxes) == 0 {
			r.unresolved(pos, "drawing has no image reference")
		}
		return out
	}

	img, ok := r.image(d, pos)
	if ok {
		*pos.Images++
		out.HTML += img
	}
	return out
}

// textBoxes renders the paragraphs of every text box in a drawing. Box
// content keeps the enclosing run position.
func (r *Renderer) textBoxes(d *docx.Drawing, pos Position) Output {
	var parts, texts []string

	for _, box := range d.TextBoxes {
		for _, block := range box {
			p, ok := block.(*docx.Paragraph)
			if !ok {
				continue
			}
			boxPos := pos
			out := r.inlines(p.Inlines, &boxPos)
			if strings.TrimSpace(out.HTML) != "" {
				parts = append(parts, `<div class="textbox-paragraph">`+out.HTML+`</div>`)
			}
			if strings.TrimSpace(out.Text) != "" {
				texts = append(texts, out.Text)
			}
		}
	}

	if len(parts) == 0 {
		return Output{}
	}
	return Output{
		HTML: `<div class="drawing-textbox">` + strings.Join(parts, "") + `</div>`,
		Text: strings.Join(texts, " "),
	}
}

// image resolves the drawing's picture and returns its <img> markup.
func (r *Renderer) image(d *docx.Drawing, pos Position) (string, bool) {
	relID := d.Blip()

	part, ok := r.doc.Media(relID)
	if !ok {
		rel, known := r.doc.Relationship(relID)
		switch {
		case !known:
			r.unresolved(pos, "unknown relationship "+relID)
		case rel.External:
			r.unresolved(pos, "relationship "+relID+" targets external "+rel.Target)
		default:
			r.unresolved(pos, "relationship "+relID+" targets missing part "+rel.Target)
		}
		return "", false
	}

	mimeType := sniffMIME(part)
	alt := d.Description
	if alt == "" {
		alt = d.Title
	}
	if alt == "" {
		alt = r.recognize(part, pos)
	}

	var src string
	if r.opts.Images.Embed {
		src = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(part.Data)
	} else {
		name, err := r.writeImage(part, mimeType, pos)
		if err != nil {
			r.warn.Addf(diag.ImageWrite, pos.Para, pos.Run, "writing %s: %v", part.Name, err)
			r.log.Warn("image not written", "paragraph", pos.Para, "run", pos.Run, "part", part.Name, "error", err)
			return "", false
		}
		src = filepath.ToSlash(name)
	}

	r.log.Debug("image found", "paragraph", pos.Para, "run", pos.Run, "image_in_run", *pos.Images, "mime", mimeType)

	var sb strings.Builder
	sb.WriteString(`<img src="`)
	sb.WriteString(html.EscapeString(src))
	sb.WriteString(`"`)
	if alt != "" {
		sb.WriteString(` alt="`)
		sb.WriteString(html.EscapeString(alt))
		sb.WriteString(`"`)
	}
	sb.WriteString(` style="`)
	sb.WriteString(html.EscapeString(r.opts.ImageStyle))
	sb.WriteString(`" />`)
	return sb.String(), true
}

// unresolved records a drawing that produced no image.
func (r *Renderer) unresolved(pos Position, msg string) {
	r.warn.Addf(diag.ImageResolution, pos.Para, pos.Run, "%s", msg)
	r.log.Warn("image not resolved", "paragraph", pos.Para, "run", pos.Run, "reason", msg)
}

// recognize returns OCR text for an image, or "" when no recognizer is
// configured or recognition fails.
func (r *Renderer) recognize(part docx.Part, pos Position) string {
	if r.opts.Recognizer == nil {
		return ""
	}
	text, err := r.opts.Recognizer.RecognizeImage(part.Data)
	if err != nil {
		r.warn.Addf(diag.Recognition, pos.Para, pos.Run, "recognizing %s: %v", part.Name, err)
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// writeImage stores the image in the configured directory and returns the
// file path.
func (r *Renderer) writeImage(part docx.Part, mimeType string, pos Position) (string, error) {
	dir := r.opts.Images.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := imageFileName(r.opts.Images.Namer, pos.Para, pos.Run, *pos.Images, extension(mimeType))
	full := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, part.Data, 0o644); err != nil {
		return "", err
	}
	return full, nil
}

// imageFileName expands the name template. Templates that would leave the
// output directory fall back to the default name.
func imageFileName(namer string, para, run, index int, ext string) string {
	def := "image_" + strconv.Itoa(para) + "_" + strconv.Itoa(run) + "_" + strconv.Itoa(index) + ext
	if namer == "" {
		return def
	}

	name := strings.NewReplacer(
		"{para}", strconv.Itoa(para),
		"{run}", strconv.Itoa(run),
		"{index}", strconv.Itoa(index),
		"{ext}", strings.TrimPrefix(ext, "."),
	).Replace(namer)

	if !filepath.IsLocal(name) {
		return def
	}
	return name
}

// sniffMIME returns the MIME type of an image part: the declared content
// type, else the decoded image format, else the type registered for the
// file extension.
func sniffMIME(part docx.Part) string {
	if ct := part.ContentType; ct != "" && ct != "application/octet-stream" {
		return ct
	}

	if _, format, err := image.DecodeConfig(bytes.NewReader(part.Data)); err == nil {
		return "image/" + format
	}

	if t := mime.TypeByExtension(path.Ext(part.Name)); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
		return t
	}

	if ext := strings.ToLower(path.Ext(part.Name)); ext != "" {
		for mt, e := range imageExtensions {
			if e == ext && strings.HasPrefix(mt, "image/x-") {
				return mt
			}
		}
	}

	return "application/octet-stream"
}

// extension returns the file extension, with its dot, for a MIME type.
func extension(mimeType string) string {
	if ext, ok := imageExtensions[mimeType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
