package traversal

import (
	"fmt"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

// Visitor receives a method body one element at a time, in stream order.
// Returning an error stops the walk.
type Visitor interface {
	VisitLine(line int) error
	VisitLabel(name string) error
	VisitBlock() error
	VisitFinallyStart() error
	VisitFinallyEnd() error
	VisitSuppress(reason string) error
	VisitResume(reason string) error
	VisitInsn(insn m.Instruction) error
}

// Walk feeds code to v.
func Walk(code []m.Instruction, v Visitor) error {
	for pos, insn := range code {
		if err := visit(insn, v); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", pos, insn, err)
		}
	}

	return nil
}

func visit(insn m.Instruction, v Visitor) error {
	switch insn.Kind {
	case m.KindLine:
		return v.VisitLine(insn.LineNumber())
	case m.KindLabel:
		return v.VisitLabel(insn.Arg)
	case m.KindBlock:
		return v.VisitBlock()
	case m.KindFinallyStart:
		return v.VisitFinallyStart()
	case m.KindFinallyEnd:
		return v.VisitFinallyEnd()
	case m.KindSuppress:
		return v.VisitSuppress(insn.Arg)
	case m.KindResume:
		return v.VisitResume(insn.Arg)
	case m.KindInsn:
		return v.VisitInsn(insn)
	default:
		return v.VisitInsn(insn)
	}
}

// Forwarder passes every element to Next unchanged. Mutators embed it and
// override only what they inspect.
type Forwarder struct {
	Next Visitor
}

// VisitLine implements Visitor.
func (f Forwarder) VisitLine(line int) error { return f.Next.VisitLine(line) }

// VisitLabel implements Visitor.
func (f Forwarder) VisitLabel(name string) error { return f.Next.VisitLabel(name) }

// VisitBlock implements Visitor.
func (f Forwarder) VisitBlock() error { return f.Next.VisitBlock() }

// VisitFinallyStart implements Visitor.
func (f Forwarder) VisitFinallyStart() error { return f.Next.VisitFinallyStart() }

// VisitFinallyEnd implements Visitor.
func (f Forwarder) VisitFinallyEnd() error { return f.Next.VisitFinallyEnd() }

// VisitSuppress implements Visitor.
func (f Forwarder) VisitSuppress(reason string) error { return f.Next.VisitSuppress(reason) }

// VisitResume implements Visitor.
func (f Forwarder) VisitResume(reason string) error { return f.Next.VisitResume(reason) }

// VisitInsn implements Visitor.
func (f Forwarder) VisitInsn(insn m.Instruction) error { return f.Next.VisitInsn(insn) }

// Tracker keeps a Context in step with the structural markers of the
// stream before handing each element on.
type Tracker struct {
	Forwarder
	ctx *Context
}

// NewTracker wraps next so ctx sees lines, blocks, finally regions and
// suppression markers first.
func NewTracker(ctx *Context, next Visitor) *Tracker {
	return &Tracker{Forwarder: Forwarder{Next: next}, ctx: ctx}
}

// VisitLine implements Visitor.
func (t *Tracker) VisitLine(line int) error {
	t.ctx.RecordLine(line)
	return t.Next.VisitLine(line)
}

// VisitBlock implements Visitor.
func (t *Tracker) VisitBlock() error {
	t.ctx.EnterBlock()
	return t.Next.VisitBlock()
}

// VisitFinallyStart implements Visitor.
func (t *Tracker) VisitFinallyStart() error {
	t.ctx.EnterFinally()
	return t.Next.VisitFinallyStart()
}

// VisitFinallyEnd implements Visitor.
func (t *Tracker) VisitFinallyEnd() error {
	t.ctx.ExitFinally()
	return t.Next.VisitFinallyEnd()
}

// VisitSuppress implements Visitor.
func (t *Tracker) VisitSuppress(reason string) error {
	t.ctx.Suppress(reason)
	return t.Next.VisitSuppress(reason)
}

// VisitResume implements Visitor.
func (t *Tracker) VisitResume(reason string) error {
	t.ctx.Unsuppress(reason)
	return t.Next.VisitResume(reason)
}

// Recorder is the end of a visitor chain; it rebuilds the emitted stream.
type Recorder struct {
	code []m.Instruction
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Code returns the instructions emitted so far.
func (r *Recorder) Code() []m.Instruction {
	return r.code
}

// VisitLine implements Visitor.
func (r *Recorder) VisitLine(line int) error {
	r.code = append(r.code, m.Line(line))
	return nil
}

// VisitLabel implements Visitor.
func (r *Recorder) VisitLabel(name string) error {
	r.code = append(r.code, m.Label(name))
	return nil
}

// VisitBlock implements Visitor.
func (r *Recorder) VisitBlock() error {
	r.code = append(r.code, m.Block())
	return nil
}

// VisitFinallyStart implements Visitor.
func (r *Recorder) VisitFinallyStart() error {
	r.code = append(r.code, m.FinallyStart())
	return nil
}

// VisitFinallyEnd implements Visitor.
func (r *Recorder) VisitFinallyEnd() error {
	r.code = append(r.code, m.FinallyEnd())
	return nil
}

// VisitSuppress implements Visitor.
func (r *Recorder) VisitSuppress(reason string) error {
	r.code = append(r.code, m.Suppress(reason))
	return nil
}

// VisitResume implements Visitor.
func (r *Recorder) VisitResume(reason string) error {
	r.code = append(r.code, m.Resume(reason))
	return nil
}

// VisitInsn implements Visitor.
func (r *Recorder) VisitInsn(insn m.Instruction) error {
	r.code = append(r.code, insn)
	return nil
}
