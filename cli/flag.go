package cli

import (
	"strconv"

	"github.com/morikuni/failure/v2"
	"github.com/spf13/pflag"
)

// portFlag remembers whether --port was given so it can override PORT
type portFlag struct {
	IsSet bool
	Value int
}

// String implements pflag.Value.
func (p *portFlag) String() string {
	if !p.IsSet {
		return ""
	}
	return strconv.Itoa(p.Value)
}

func (p *portFlag) Set(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 || n > 65535 {
		return failure.New(InvalidPort,
			failure.Message("port must be between 1 and 65535"),
			failure.Context{"port": value},
		)
	}
	p.Value = n
	p.IsSet = true
	return nil
}

func (p *portFlag) Type() string {
	return "port"
}

var _ pflag.Value = &portFlag{}
