package elevation

// Kind identifies an elevation strategy.
type Kind int

// Supported strategies. The set is closed: dispatch happens over a switch
// in the executor rather than through open polymorphism.
const (
	// KindPolkit prompts through a polkit authorization agent (pkexec).
	KindPolkit Kind = iota
	// KindSudo pipes a caller-supplied password to sudo's stdin.
	KindSudo
)

var kindNames = map[Kind]string{
	KindPolkit: "polkit",
	KindSudo:   "sudo",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Strategy is one method of running the listing command with elevated
// privileges. A Strategy is immutable once constructed and is executed at
// most once per call; it holds no state beyond the optional secret.
type Strategy struct {
	kind     Kind
	password string
}

// Polkit returns the passwordless strategy backed by the polkit prompt tool.
func Polkit() Strategy {
	return Strategy{kind: KindPolkit}
}

// Sudo returns the password strategy bound to the supplied secret. The
// password is taken verbatim: no validation, no trimming, the empty string
// is legal and will simply fail the elevation prompt.
func Sudo(password string) Strategy {
	return Strategy{kind: KindSudo, password: password}
}

// Kind returns the strategy's kind.
func (s Strategy) Kind() Kind {
	return s.kind
}
