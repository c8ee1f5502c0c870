package navigate

import "fmt"

// Towards picks which child to take when a commit has more than one live
// child. The committed date decides what counts as oldest and newest. The
// zero value means no preference was given, so an ambiguous step either
// prompts or stops depending on interactivity.
type Towards int

const (
	TowardsNone Towards = iota
	TowardsNewest
	TowardsOldest
)

func (t Towards) String() string {
	switch t {
	case TowardsNewest:
		return "newest"
	case TowardsOldest:
		return "oldest"
	default:
		return "none"
	}
}

// ParseTowards converts flag or config text into a Towards. Empty text means
// no preference.
func ParseTowards(s string) (Towards, error) {
	switch s {
	case "":
		return TowardsNone, nil
	case "newest":
		return TowardsNewest, nil
	case "oldest":
		return TowardsOldest, nil
	default:
		return TowardsNone, fmt.Errorf("invalid towards value %q (expected \"newest\" or \"oldest\")", s)
	}
}
