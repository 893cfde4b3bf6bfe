package rules

import (
	"strings"

	"github.com/cifix/cifix/internal/domain"
)

const (
	// SDKManagerFingerprint appears when the preinstalled sdkmanager is missing
	// its class path, typically because ANDROID_SDK_ROOT points at an SDK
	// without cmdline-tools/latest.
	SDKManagerFingerprint = "Could not find or load main class com.android.sdklib.tool.sdkmanager.SdkManagerCli"

	// DownloadGradleAnchor is the workflow step the SDK setup is inserted before.
	DownloadGradleAnchor = "- name: Download Gradle"

	cmdlineToolsMarker = "commandlinetools-linux"
	latestToolsMarker  = "cmdline-tools/latest"
)

// sdkSetupStep installs the Android command-line tools manually. It ends with
// the anchor so the splice keeps the original step in place.
const sdkSetupStep = `- name: Setup Android SDK (ai-fix)
        shell: bash
        run: |
          set -euo pipefail
          ANDROID_SDK_ROOT="$HOME/android-sdk"
          echo "ANDROID_SDK_ROOT=$ANDROID_SDK_ROOT" >> $GITHUB_ENV
          mkdir -p "$ANDROID_SDK_ROOT"
          curl -fo sdk.zip https://dl.google.com/android/repository/commandlinetools-linux-11076708_latest.zip
          mkdir -p "$ANDROID_SDK_ROOT/cmdline-tools"
          unzip -q sdk.zip -d "$ANDROID_SDK_ROOT/cmdline-tools"
          mv "$ANDROID_SDK_ROOT/cmdline-tools/cmdline-tools" "$ANDROID_SDK_ROOT/cmdline-tools/latest"
          yes | "$ANDROID_SDK_ROOT"/cmdline-tools/latest/bin/sdkmanager --sdk_root="$ANDROID_SDK_ROOT" --licenses
          "$ANDROID_SDK_ROOT"/cmdline-tools/latest/bin/sdkmanager --sdk_root="$ANDROID_SDK_ROOT" \
            "platform-tools" \
            "platforms;android-34" \
            "build-tools;34.0.0"

      ` + DownloadGradleAnchor

// SDKRoot inserts a manual Android SDK install step into the CI workflow
// when sdkmanager fails to start.
type SDKRoot struct{}

func (SDKRoot) ID() string                { return "sdk-root" }
func (SDKRoot) Target() domain.TargetKind { return domain.TargetWorkflow }

func (SDKRoot) Matches(corpus string) bool {
	return strings.Contains(corpus, SDKManagerFingerprint)
}

// Apply is a no-op once both markers are present. A workflow without the
// anchor is returned unchanged.
func (SDKRoot) Apply(current string) string {
	if strings.Contains(current, cmdlineToolsMarker) && strings.Contains(current, latestToolsMarker) {
		return current
	}
	return strings.ReplaceAll(current, DownloadGradleAnchor, sdkSetupStep)
}
