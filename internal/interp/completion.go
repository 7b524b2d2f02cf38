package interp

import "github.com/cwbudde-lumen/lumen/internal/runtime"

// CompletionType tags how a statement finished (spec.md §4.6's
// completion record: Normal, Return, Throw, Break, Continue).
type CompletionType int

const (
	Normal CompletionType = iota
	ReturnCompletion
	ThrowCompletion
	BreakCompletion
	ContinueCompletion
)

// Completion is the uniform result of evaluating a Statement; Value is
// populated for Return/Throw, Target for a labeled Break/Continue.
type Completion struct {
	Type   CompletionType
	Value  runtime.Value
	Target string
}

func normal() Completion { return Completion{Type: Normal} }

func returnC(v runtime.Value) Completion { return Completion{Type: ReturnCompletion, Value: v} }

func throwC(v runtime.Value) Completion { return Completion{Type: ThrowCompletion, Value: v} }

func breakC(label string) Completion { return Completion{Type: BreakCompletion, Target: label} }

func continueC(label string) Completion { return Completion{Type: ContinueCompletion, Target: label} }

// abrupt reports whether c should unwind the current statement list
// rather than continue to the next statement.
func (c Completion) abrupt() bool { return c.Type != Normal }
