// Package calc implements the closed-form valve design calculations: the
// Valve Data sheet and the DC-series design calculation sheets. Every
// calculation is a pure function from a validated input struct to a result
// struct; nothing here touches I/O or shared state.
package calc

// Verdict is the outcome of a design check. Boundaries are inclusive: a
// computed value exactly equal to its limit passes.
type Verdict string

const (
	Verified    Verdict = "VERIFIED"
	NotVerified Verdict = "NOT VERIFIED"
)

func verdictOf(ok bool) Verdict {
	if ok {
		return Verified
	}
	return NotVerified
}

func (v Verdict) OK() bool { return v == Verified }
