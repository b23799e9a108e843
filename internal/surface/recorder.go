package surface

type OpKind int

const (
	OpCircle OpKind = iota
	OpLine
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpCircle:
		return "circle"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one recorded draw call with the paint state it was issued under.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64
	Radius         float64
	Text           string
	Paint          Paint
}

// Alpha is the opacity the op would be composited with.
func (o Op) Alpha() float64 {
	if o.Kind == OpLine {
		return o.Paint.StrokeAlpha()
	}
	return o.Paint.FillAlpha()
}

// Recorder is a Surface that keeps the draw calls issued since the last Clear.
type Recorder struct {
	width, height float64
	paint         Paint
	Ops           []Op
	Clears        int
}

func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height, paint: DefaultPaint()}
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }
func (r *Recorder) Paint() *Paint            { return &r.paint }

func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.Clears++
}

func (r *Recorder) FillCircle(x, y, radius float64) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X0: x, Y0: y, Radius: radius, Paint: r.paint})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Paint: r.paint})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X0: x, Y0: y, Text: text, Paint: r.paint})
}

// Filter returns the recorded ops of one kind in draw order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Count returns how many ops of each kind were recorded.
func (r *Recorder) Count() map[OpKind]int {
	counts := make(map[OpKind]int, 3)
	for _, op := range r.Ops {
		counts[op.Kind]++
	}
	return counts
}
