// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"
	"math/rand/v2"

	"github.com/creachadair/jtok"
)

// Record returns a string describing event ev just reported by p, including
// its value if it has one.
func Record(p *jtok.Parser, ev jtok.Event) string {
	switch ev {
	case jtok.FieldName, jtok.ValueString:
		return fmt.Sprintf("%v %q", ev, p.CurrentString())
	case jtok.ValueInt, jtok.ValueDouble:
		return fmt.Sprintf("%v %s", ev, p.Text())
	default:
		return ev.String()
	}
}

// Run feeds input to p and returns the records of the events it reports, up
// to and including EOF or Error. The input is fed in chunks whose sizes are
// taken cyclically from sizes; a size <= 0, or no sizes at all, feeds as much
// as the feeder will accept.
func Run(p *jtok.Parser, input []byte, sizes ...int) []string {
	var out []string
	f := p.Feeder()
	for i := 0; ; {
		ev := p.NextEvent()
		if ev == jtok.NeedMoreInput {
			n := len(input)
			if len(sizes) != 0 {
				if s := sizes[i%len(sizes)]; s > 0 {
					n = min(s, n)
				}
				i++
			}
			input = input[f.Feed(input[:n]):]
			if len(input) == 0 {
				f.Done()
			}
			continue
		}
		out = append(out, Record(p, ev))
		if ev == jtok.EOF || ev == jtok.Error {
			return out
		}
	}
}

// RandomSizes returns n chunk sizes between 1 and limit inclusive, generated
// from a fixed seed so that failures are reproducible.
func RandomSizes(seed uint64, n, limit int) []int {
	rng := rand.New(rand.NewPCG(seed, seed))
	out := make([]int, n)
	for i := range out {
		out[i] = 1 + rng.IntN(limit)
	}
	return out
}
