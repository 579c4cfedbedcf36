package toolchain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslate_UnknownPackage(t *testing.T) {
	output := "error: package ID specification `demo-plugin` did not match any packages"

	msg := NewErrorTranslator().Translate(output)
	require.Contains(t, msg, "demo-plugin")
	require.Contains(t, msg, "--target")
}

func TestTranslate_UnknownProfile(t *testing.T) {
	output := "error: profile `release-debug` is not defined"

	msg := NewErrorTranslator().Translate(output)
	require.Contains(t, msg, "release-debug")
	require.Contains(t, msg, "[profile.release-debug]")
}

func TestTranslate_LinkerFailure(t *testing.T) {
	output := "error: linking with `cc` failed: exit status: 1"

	msg := NewErrorTranslator().Translate(output)
	require.Contains(t, msg, "Linking failed")
}

func TestTranslate_CompileError_ExtractsFirstDiagnostic(t *testing.T) {
	output := "Compiling demo-plugin v0.1.0\nerror[E0425]: cannot find value `frequncy` in this scope\n --> src/lib.rs:42:9"

	msg := NewErrorTranslator().Translate(output)
	require.Contains(t, msg, "error[E0425]")
	require.NotContains(t, msg, "Compiling")
}

func TestTranslate_Noise_IsStripped(t *testing.T) {
	output := "Updating crates.io index\nDownloading cpal v0.15.0\n\nsomething went wrong"

	msg := NewErrorTranslator().Translate(output)
	require.Equal(t, "something went wrong", msg)
}

func TestTranslate_EmptyOutput_ReturnsEmpty(t *testing.T) {
	require.Empty(t, NewErrorTranslator().Translate(""))
}
