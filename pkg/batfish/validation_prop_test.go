package batfish_test

import (
	"strings"
	"testing"

	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestValidateName_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("names from the allowed alphabet are accepted", prop.ForAll(
		func(name string) bool {
			return batfish.ValidateName(name) == nil
		},
		gen.RegexMatch(`[A-Za-z0-9.-]{1,32}`),
	))

	properties.Property("a disallowed character anywhere is rejected", prop.ForAll(
		func(prefix, suffix string, bad rune) bool {
			return batfish.ValidateName(prefix+string(bad)+suffix) != nil
		},
		gen.RegexMatch(`[A-Za-z0-9.-]{0,16}`),
		gen.RegexMatch(`[A-Za-z0-9.-]{0,16}`),
		gen.OneConstOf(' ', '!', '_', '/', '@', 'é', '\t'),
	))

	properties.Property("validation ignores case", prop.ForAll(
		func(name string) bool {
			return (batfish.ValidateName(name) == nil) == (batfish.ValidateName(strings.ToUpper(name)) == nil)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
