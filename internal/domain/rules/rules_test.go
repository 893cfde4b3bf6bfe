package rules_test

import (
	"strings"
	"testing"

	"github.com/cifix/cifix/internal/domain"
	"github.com/cifix/cifix/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workflow = `name: Android Build
on: [push]
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4

      - name: Download Gradle
        run: curl -fo gradle.zip https://services.gradle.org/distributions/gradle-8.7-bin.zip
`

func TestDefault_Order(t *testing.T) {
	rs := rules.Default()
	require.Len(t, rs, 2)
	assert.Equal(t, "sdk-root", rs[0].ID())
	assert.Equal(t, domain.TargetWorkflow, rs[0].Target())
	assert.Equal(t, "gradle-model-quote", rs[1].ID())
	assert.Equal(t, domain.TargetBuildFile, rs[1].Target())
}

func TestSDKRoot_Matches(t *testing.T) {
	r := rules.SDKRoot{}
	assert.True(t, r.Matches("Error: "+rules.SDKManagerFingerprint+"\nCaused by: ..."))
	assert.False(t, r.Matches("Could not find or load main class"))
	assert.False(t, r.Matches(""))
}

func TestSDKRoot_InsertsBeforeAnchor(t *testing.T) {
	r := rules.SDKRoot{}
	out := r.Apply(workflow)

	require.NotEqual(t, workflow, out)
	setup := strings.Index(out, "- name: Setup Android SDK (ai-fix)")
	anchor := strings.Index(out, rules.DownloadGradleAnchor)
	require.GreaterOrEqual(t, setup, 0)
	assert.Greater(t, anchor, setup, "setup step should precede the anchor")
	assert.Equal(t, 1, strings.Count(out, rules.DownloadGradleAnchor))
	assert.Contains(t, out, "commandlinetools-linux-11076708_latest.zip")
	assert.Contains(t, out, "cmdline-tools/latest")

	// The step directly precedes the anchor, separated by a blank line.
	assert.Contains(t, out, "\"build-tools;34.0.0\"\n\n      - name: Download Gradle")
}

func TestSDKRoot_Idempotent(t *testing.T) {
	r := rules.SDKRoot{}
	once := r.Apply(workflow)
	twice := r.Apply(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, "Setup Android SDK (ai-fix)"))
}

func TestSDKRoot_OneMarkerStillPatches(t *testing.T) {
	r := rules.SDKRoot{}
	in := strings.Replace(workflow, "runs-on: ubuntu-latest", "runs-on: ubuntu-latest\n    env:\n      TOOLS: cmdline-tools/latest", 1)
	out := r.Apply(in)
	assert.NotEqual(t, in, out)
}

func TestSDKRoot_MissingAnchorIsNoop(t *testing.T) {
	r := rules.SDKRoot{}
	in := strings.Replace(workflow, "Download Gradle", "Fetch Gradle", 1)
	assert.Equal(t, in, r.Apply(in))
}

func TestGradleModelQuote_Matches(t *testing.T) {
	r := rules.GradleModelQuote{}
	assert.True(t, r.Matches("e: app/build.gradle.kts:30: buildConfigField GEMINI_MODEL unexpected token"))
	assert.False(t, r.Matches("buildConfigField failed"))
	assert.False(t, r.Matches("GEMINI_MODEL unset"))
}

func TestGradleModelQuote_ReplacesValue(t *testing.T) {
	r := rules.GradleModelQuote{}
	in := "defaultConfig {\n    buildConfigField(\"String\", \"GEMINI_MODEL\", \"\\\"old-value\\\"\")\n}\n"
	out := r.Apply(in)

	want := "defaultConfig {\n    buildConfigField(\"String\", \"GEMINI_MODEL\", \"\\\"gemini-2.5-flash\\\"\")\n}\n"
	assert.Equal(t, want, out)
}

func TestGradleModelQuote_UnquotedValue(t *testing.T) {
	r := rules.GradleModelQuote{}
	in := `buildConfigField("String", "GEMINI_MODEL", "gemini-pro")`
	assert.Equal(t, `buildConfigField("String", "GEMINI_MODEL", "\"gemini-2.5-flash\"")`, r.Apply(in))
}

func TestGradleModelQuote_MultiLineDeclaration(t *testing.T) {
	r := rules.GradleModelQuote{}
	in := `        buildConfigField(
            "String",
            "GEMINI_MODEL",
            "\"gemini-1.5-pro\""
        )
        buildConfigField(
            "String",
            "GEMINI_API_KEY",
            findGeminiKey(project)
        )`
	out := r.Apply(in)

	assert.Contains(t, out, `buildConfigField("String", "GEMINI_MODEL", "\"gemini-2.5-flash\"")`)
	assert.NotContains(t, out, "gemini-1.5-pro")
	assert.Contains(t, out, "findGeminiKey(project)", "other fields are untouched")
}

func TestGradleModelQuote_Idempotent(t *testing.T) {
	r := rules.GradleModelQuote{}
	fixed := `buildConfigField("String", "GEMINI_MODEL", "\"gemini-2.5-flash\"")`
	assert.Equal(t, fixed, r.Apply(fixed))
}

func TestGradleModelQuote_NoDeclaration(t *testing.T) {
	r := rules.GradleModelQuote{}
	in := "android { namespace = \"com.okx.ai.trader\" }\n"
	assert.Equal(t, in, r.Apply(in))
}
