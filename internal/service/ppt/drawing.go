package ppt

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	emuPerInch = 914400

	slideWidthEMU  = 9144000
	slideHeightEMU = 5143500

	white = "FFFFFF"
)

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsC = "http://schemas.openxmlformats.org/drawingml/2006/chart"

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

func emu(inches float64) int64 {
	return int64(math.Round(inches * emuPerInch))
}

// esc escapes s for use in element text and attribute values.
func esc(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// hexColor turns "#2563eb" into "2563EB". Anything that is not a six digit
// hex value becomes fallback.
func hexColor(c, fallback string) string {
	c = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(c), "#"))
	if len(c) != 6 {
		return fallback
	}
	if _, err := strconv.ParseUint(c, 16, 32); err != nil {
		return fallback
	}
	return c
}

// darken subtracts percent*2.55 from each channel.
func darken(c string, percent float64) string {
	n, err := strconv.ParseUint(hexColor(c, "000000"), 16, 32)
	if err != nil {
		return "000000"
	}
	amt := int64(math.Round(2.55 * percent))
	r := max(0, int64(n>>16)-amt)
	g := max(0, int64((n>>8)&0xFF)-amt)
	b := max(0, int64(n&0xFF)-amt)
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}

func solidFill(color string) string {
	return `<a:solidFill><a:srgbClr val="` + color + `"/></a:solidFill>`
}

type box struct {
	x, y, w, h float64
}

func (b box) xfrm(prefix string) string {
	return fmt.Sprintf(`<%s:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></%s:xfrm>`,
		prefix, emu(b.x), emu(b.y), emu(b.w), emu(b.h), prefix)
}

func alignAttr(align string) string {
	switch align {
	case "center":
		return "ctr"
	case "right":
		return "r"
	default:
		return "l"
	}
}

func anchorAttr(valign string) string {
	switch valign {
	case "middle":
		return "ctr"
	case "bottom":
		return "b"
	default:
		return "t"
	}
}

// runStyle is the character formatting of a text run.
type runStyle struct {
	size   float64
	face   string
	color  string
	bold   bool
	italic bool
}

func (s runStyle) rPr() string {
	var sb strings.Builder
	sb.WriteString(`<a:rPr lang="en-US"`)
	if s.size > 0 {
		fmt.Fprintf(&sb, ` sz="%d"`, int(math.Round(s.size*100)))
	}
	if s.bold {
		sb.WriteString(` b="1"`)
	}
	if s.italic {
		sb.WriteString(` i="1"`)
	}
	sb.WriteString(` dirty="0">`)
	if s.color != "" {
		sb.WriteString(solidFill(s.color))
	}
	if s.face != "" {
		f := esc(s.face)
		fmt.Fprintf(&sb, `<a:latin typeface="%s"/><a:ea typeface="%s"/><a:cs typeface="%s"/>`, f, f, f)
	}
	sb.WriteString(`</a:rPr>`)
	return sb.String()
}

func (s runStyle) run(text string) string {
	return `<a:r>` + s.rPr() + `<a:t>` + esc(text) + `</a:t></a:r>`
}
