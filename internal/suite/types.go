package suite

import (
	"fmt"
	"strconv"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
)

const DefaultRuns = 1

// Suite is a named set of expressions with their expected outcomes.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Runs        int    `yaml:"runs"`
	Cases       []Case `yaml:"cases"`
}

// Case expects either a value or an error kind, never both.
type Case struct {
	ID          string           `yaml:"id"`
	Description string           `yaml:"description,omitempty"`
	Expression  string           `yaml:"expression"`
	Expect      *int64           `yaml:"expect,omitempty"`
	ExpectError domain.ErrorKind `yaml:"expect_error,omitempty"`
}

// Expected renders what the case expects, e.g. "7" or "error(divide_by_zero)".
func (c *Case) Expected() string {
	if c.Expect != nil {
		return strconv.FormatInt(*c.Expect, 10)
	}
	return fmt.Sprintf("error(%s)", c.ExpectError)
}

func (c *Case) validate() error {
	switch {
	case c.Expect != nil && c.ExpectError != "":
		return fmt.Errorf("case %q sets both expect and expect_error", c.ID)
	case c.Expect == nil && c.ExpectError == "":
		return fmt.Errorf("case %q sets neither expect nor expect_error", c.ID)
	case c.ExpectError != "" && !c.ExpectError.Valid():
		return fmt.Errorf("case %q expects unknown error kind %q", c.ID, c.ExpectError)
	}
	return nil
}
