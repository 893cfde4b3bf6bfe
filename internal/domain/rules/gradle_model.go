package rules

import (
	"regexp"
	"strings"

	"github.com/cifix/cifix/internal/domain"
)

const (
	buildConfigFieldToken = "buildConfigField"
	geminiModelToken      = "GEMINI_MODEL"

	// GeminiModel is the model name written into the build config.
	GeminiModel = "gemini-2.5-flash"
)

// geminiModelField matches a GEMINI_MODEL buildConfigField declaration,
// including ones split across lines, up to the first closing paren.
var geminiModelField = regexp.MustCompile(`buildConfigField\((\s*)"String",(\s*)"GEMINI_MODEL",(\s*)[^)]*\)`)

// geminiModelDecl is the Kotlin source of the fixed declaration. The value is
// a Kotlin string holding a quoted Java literal.
var geminiModelDecl = `buildConfigField("String", "GEMINI_MODEL", "\"` + GeminiModel + `\"")`

// GradleModelQuote rewrites the GEMINI_MODEL build field to a correctly
// escaped literal when Gradle rejects its quoting.
type GradleModelQuote struct{}

func (GradleModelQuote) ID() string                { return "gradle-model-quote" }
func (GradleModelQuote) Target() domain.TargetKind { return domain.TargetBuildFile }

func (GradleModelQuote) Matches(corpus string) bool {
	return strings.Contains(corpus, buildConfigFieldToken) && strings.Contains(corpus, geminiModelToken)
}

// Apply replaces every matching declaration, discarding the previous value.
func (GradleModelQuote) Apply(current string) string {
	return geminiModelField.ReplaceAllLiteralString(current, geminiModelDecl)
}
