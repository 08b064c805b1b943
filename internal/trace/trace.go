// Package trace generates random sequences of deque operations and replays them against a
// [deq.Deque] and a plain slice, reporting the first step where the two disagree.
package trace

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/teenjuna/deq"
)

// Op is a deque operation.
type Op int

const (
	PushBack Op = iota
	PushFront
	PopBack
	PopFront
	Set
	Clear
	Copy
)

var names = [...]string{
	PushBack:  "PushBack",
	PushFront: "PushFront",
	PopBack:   "PopBack",
	PopFront:  "PopFront",
	Set:       "Set",
	Clear:     "Clear",
	Copy:      "Copy",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(names) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return names[o]
}

// Step is one operation of a trace. Value is pushed or set, Index is used by Set and may be out of
// range on purpose.
type Step struct {
	Op    Op
	Value int
	Index int
}

// Mismatch describes the first step after which the deque and the model disagree.
type Mismatch struct {
	Step int
	Op   Op
	Want string
	Got  string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("step %d (%s): want %s, got %s", m.Step, m.Op, m.Want, m.Got)
}

// Generate returns n random steps. Pushes are twice as likely as pops so that the deque grows
// several times; Clear and Copy are rare.
func Generate(r *rand.Rand, n int) []Step {
	steps := make([]Step, n)
	for i := range steps {
		var op Op
		switch p := r.IntN(100); {
		case p < 25:
			op = PushBack
		case p < 50:
			op = PushFront
		case p < 66:
			op = PopBack
		case p < 82:
			op = PopFront
		case p < 97:
			op = Set
		case p < 98:
			op = Clear
		default:
			op = Copy
		}
		steps[i] = Step{
			Op:    op,
			Value: r.IntN(1_000_000),
			Index: r.IntN(64) - 8,
		}
	}
	return steps
}

// Replay applies the steps to a new deque configured by configFuncs and to a slice, and compares
// them after every step.
//
// Returns a [*Mismatch] for the first disagreement.
func Replay(steps []Step, configFuncs ...deq.ConfigFunc) error {
	var (
		d     = deq.New[int](configFuncs...)
		model = make([]int, 0)
	)

	for i, step := range steps {
		mismatch := func(want, got any) error {
			return &Mismatch{
				Step: i,
				Op:   step.Op,
				Want: fmt.Sprint(want),
				Got:  fmt.Sprint(got),
			}
		}

		switch step.Op {
		case PushBack:
			d.PushBack(step.Value)
			model = append(model, step.Value)

		case PushFront:
			d.PushFront(step.Value)
			model = slices.Insert(model, 0, step.Value)

		case PopBack, PopFront:
			var (
				got int
				err error
			)
			if step.Op == PopBack {
				got, err = d.PopBack()
			} else {
				got, err = d.PopFront()
			}
			if len(model) == 0 {
				if !errors.Is(err, deq.ErrEmpty) {
					return mismatch(deq.ErrEmpty, err)
				}
				break
			}
			var want int
			if step.Op == PopBack {
				want, model = model[len(model)-1], model[:len(model)-1]
			} else {
				want, model = model[0], model[1:]
			}
			if err != nil || got != want {
				return mismatch(want, result(got, err))
			}

		case Set:
			err := d.Set(step.Index, step.Value)
			if step.Index < 0 || step.Index >= len(model) {
				if !errors.Is(err, deq.ErrOutOfRange) {
					return mismatch(deq.ErrOutOfRange, err)
				}
				break
			}
			if err != nil {
				return mismatch(nil, err)
			}
			model[step.Index] = step.Value

		case Clear:
			d.Clear()
			model = model[:0]

		case Copy:
			// Continue with a copy to check that the copy carries the whole state.
			c := deq.New[int]()
			c.Assign(d)
			d.Clear()
			d = c
		}

		if diff := compare(d, model); diff != nil {
			return mismatch(diff.want, diff.got)
		}
	}

	return nil
}

type difference struct {
	want any
	got  any
}

func compare(d *deq.Deque[int], model []int) *difference {
	if d.Size() != len(model) {
		return &difference{want: fmt.Sprintf("size %d", len(model)), got: fmt.Sprintf("size %d", d.Size())}
	}
	if d.IsEmpty() != (len(model) == 0) {
		return &difference{want: len(model) == 0, got: d.IsEmpty()}
	}
	if d.Size() > d.Capacity() {
		return &difference{want: fmt.Sprintf("capacity >= %d", d.Size()), got: d.Capacity()}
	}

	if len(model) == 0 {
		if _, err := d.Front(); !errors.Is(err, deq.ErrEmpty) {
			return &difference{want: deq.ErrEmpty, got: err}
		}
		if _, err := d.Back(); !errors.Is(err, deq.ErrEmpty) {
			return &difference{want: deq.ErrEmpty, got: err}
		}
	} else {
		if front, err := d.Front(); err != nil || front != model[0] {
			return &difference{want: fmt.Sprintf("front %d", model[0]), got: result(front, err)}
		}
		if back, err := d.Back(); err != nil || back != model[len(model)-1] {
			return &difference{want: fmt.Sprintf("back %d", model[len(model)-1]), got: result(back, err)}
		}
	}

	if _, err := d.At(len(model)); !errors.Is(err, deq.ErrOutOfRange) {
		return &difference{want: deq.ErrOutOfRange, got: err}
	}

	items := make([]int, 0, d.Size())
	for it := d.Begin(); !it.Equal(d.End()); it = it.Next() {
		item, err := it.Get()
		if err != nil {
			return &difference{want: "item", got: err}
		}
		items = append(items, item)
	}
	if !slices.Equal(items, model) {
		return &difference{want: model, got: items}
	}

	n, err := d.End().Distance(d.Begin())
	if err != nil || n != len(model) {
		return &difference{want: fmt.Sprintf("distance %d", len(model)), got: result(n, err)}
	}

	return nil
}

func result(v int, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprint(v)
}
