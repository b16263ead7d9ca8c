// Package render defines the document-rendering collaborator contract.
// Producers build an ordered list of draw instructions; a Renderer turns
// them into a binary artifact. Producers never depend on the output format.
package render

// Align is a horizontal cell/text alignment
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Op is a single draw instruction
type Op interface {
	isOp()
}

// Text places a string at a position on the page. X and Y are in
// millimetres from the top-left corner of a 210mm-wide page.
type Text struct {
	X     float64
	Y     float64
	Value string
	Size  float64
	Bold  bool
	Align Align
}

// Rect fills a rectangle. Fill is an RRGGBB hex color.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Fill   string
}

// Table draws a bordered table below the last drawn content.
// Widths are column widths in millimetres; Aligns apply per column.
type Table struct {
	Headers []string
	Rows    [][]string
	Widths  []float64
	Aligns  []Align
}

func (Text) isOp()  {}
func (Rect) isOp()  {}
func (Table) isOp() {}

// Document is an ordered list of draw instructions plus naming metadata.
// Filename carries no extension; the renderer owns the output format.
type Document struct {
	Title    string
	Filename string
	Ops      []Op
}

// Renderer turns a document into binary output and a suggested filename
type Renderer interface {
	Render(doc *Document) ([]byte, string, error)
}
